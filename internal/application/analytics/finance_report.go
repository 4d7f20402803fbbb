package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/finance"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// FinanceReportUseCase arma el snapshot (ventas del período, sus cuotas y los
// datos de referencia) y lo entrega al motor de conciliación. El snapshot se
// carga una sola vez y la evaluación usa un único instante de referencia, de
// modo que dos llamadas sobre los mismos datos producen el mismo reporte.
type FinanceReportUseCase struct {
	saleRepo  repository.SaleRepository
	instRepo  repository.InstallmentRepository
	userRepo  repository.UserRepository
	batchRepo repository.BatchRepository
}

// NewFinanceReportUseCase construye el caso de uso.
func NewFinanceReportUseCase(
	saleRepo repository.SaleRepository,
	instRepo repository.InstallmentRepository,
	userRepo repository.UserRepository,
	batchRepo repository.BatchRepository,
) *FinanceReportUseCase {
	return &FinanceReportUseCase{
		saleRepo:  saleRepo,
		instRepo:  instRepo,
		userRepo:  userRepo,
		batchRepo: batchRepo,
	}
}

// FinanceReport genera el reporte de conciliación del período solicitado.
// Sin fechas: del primer día del mes actual a hoy.
func (uc *FinanceReportUseCase) FinanceReport(ctx context.Context, req dto.FinanceReportRequest) (*dto.FinanceReportDTO, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := now
	if req.StartDate != "" {
		parsed, err := time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("%w: start_date inválida", domain.ErrInvalidInput)
		}
		start = parsed
	}
	if req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: end_date inválida", domain.ErrInvalidInput)
		}
		// incluye el día completo
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: el rango de fechas está invertido", domain.ErrInvalidInput)
	}

	sales, err := uc.saleRepo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("error al cargar ventas del período: %w", err)
	}

	saleIDs := make([]string, 0, len(sales))
	for _, sale := range sales {
		saleIDs = append(saleIDs, sale.ID)
	}

	// Carga en paralelo del resto del snapshot
	type ledgerResult struct {
		bySale map[string][]*entity.InstallmentPayment
		err    error
	}
	type usersResult struct {
		users []*entity.User
		err   error
	}
	type batchesResult struct {
		batches []*entity.Batch
		err     error
	}
	ledgerCh := make(chan ledgerResult, 1)
	usersCh := make(chan usersResult, 1)
	batchesCh := make(chan batchesResult, 1)

	go func() {
		bySale, err := uc.instRepo.ListBySaleIDs(ctx, saleIDs)
		ledgerCh <- ledgerResult{bySale: bySale, err: err}
	}()
	go func() {
		users, err := uc.userRepo.List()
		usersCh <- usersResult{users: users, err: err}
	}()
	go func() {
		batches, err := uc.batchRepo.List()
		batchesCh <- batchesResult{batches: batches, err: err}
	}()

	ledgerRes := <-ledgerCh
	usersRes := <-usersCh
	batchesRes := <-batchesCh
	if ledgerRes.err != nil {
		return nil, fmt.Errorf("error al cargar cuotas: %w", ledgerRes.err)
	}
	if usersRes.err != nil {
		return nil, fmt.Errorf("error al cargar vendedores: %w", usersRes.err)
	}
	if batchesRes.err != nil {
		return nil, fmt.Errorf("error al cargar etapas: %w", batchesRes.err)
	}

	sellerNames := make(map[string]string, len(usersRes.users))
	for _, u := range usersRes.users {
		sellerNames[u.ID] = u.Name
	}
	batchLocations := make(map[string]string, len(batchesRes.batches))
	for _, b := range batchesRes.batches {
		batchLocations[b.ID] = b.Location
	}

	records := make([]finance.SaleRecord, 0, len(sales))
	for _, sale := range sales {
		records = append(records, finance.SaleRecord{
			Sale:          sale,
			Installments:  ledgerRes.bySale[sale.ID],
			SellerName:    sellerNames[sale.SellerID],
			BatchLocation: batchLocations[sale.BatchID],
		})
	}

	summary := finance.Reconcile(finance.ReconcileInput{
		Records:       records,
		PeriodStart:   start,
		PeriodEnd:     end,
		ReferenceTime: now,
	})
	return toFinanceReportDTO(summary, start, end), nil
}

func toFinanceReportDTO(s *finance.Summary, start, end time.Time) *dto.FinanceReportDTO {
	out := &dto.FinanceReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format(dateLayout),
			EndDate:   end.Format(dateLayout),
		},
		TotalRevenue:       s.TotalRevenue,
		TotalCollected:     s.TotalCollected,
		Collected:          s.Collected,
		Commission:         s.Commission,
		OverdueAmount:      s.OverdueAmount,
		OverdueCount:       s.OverdueCount,
		ExpectedThisPeriod: s.ExpectedThisPeriod,
		SalesCount:         s.SalesCount,
		CompletedCount:     s.CompletedCount,
		BySeller:           s.BySeller,
		ByLocation:         s.ByLocation,
	}
	for _, w := range s.Warnings {
		out.Warnings = append(out.Warnings, dto.MismatchDTO{
			SaleID:     w.SaleID,
			Expected:   w.Expected,
			Actual:     w.Actual,
			Difference: w.Difference(),
		})
	}
	return out
}
