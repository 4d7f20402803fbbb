package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/ledger"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// GetSaleUseCase consulta de ventas y su libro de cuotas.
type GetSaleUseCase struct {
	saleRepo repository.SaleRepository
	instRepo repository.InstallmentRepository
}

// NewGetSaleUseCase construye el caso de uso.
func NewGetSaleUseCase(saleRepo repository.SaleRepository, instRepo repository.InstallmentRepository) *GetSaleUseCase {
	return &GetSaleUseCase{saleRepo: saleRepo, instRepo: instRepo}
}

// GetSale devuelve la venta por ID.
func (uc *GetSaleUseCase) GetSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(sale), nil
}

// ListInstallments devuelve el cronograma de la venta. El estado de cada cuota
// es el efectivo al instante de la consulta: una cuota pendiente con fecha de
// vencimiento pasada se reporta como vencida sin que exista ese estado en BD.
func (uc *GetSaleUseCase) ListInstallments(ctx context.Context, saleID string) ([]dto.InstallmentResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.instRepo.ListBySaleID(saleID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.InstallmentResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toInstallmentResponse(row, now))
	}
	return out, nil
}

func toInstallmentResponse(row *entity.InstallmentPayment, ref time.Time) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:          row.ID,
		SaleID:      row.SaleID,
		Number:      row.Number,
		AmountDue:   row.AmountDue,
		AmountPaid:  row.AmountPaid,
		Outstanding: row.Outstanding(),
		DueDate:     row.DueDate,
		PaidDate:    row.PaidDate,
		Status:      ledger.StatusAt(row, ref),
	}
}
