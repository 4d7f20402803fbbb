package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Terrenos-api/internal/application/dto"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/plan"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// ConfirmSaleUseCase pasa una venta de pendiente a completada. Para ventas
// financiadas materializa el cronograma de cuotas en una sola transacción con
// el cambio de estado: nunca queda una venta completada sin su plan.
type ConfirmSaleUseCase struct {
	txRunner  TxRunner
	saleRepo  repository.SaleRepository
	offerRepo repository.OfferRepository
}

// NewConfirmSaleUseCase construye el caso de uso.
func NewConfirmSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository, offerRepo repository.OfferRepository) *ConfirmSaleUseCase {
	return &ConfirmSaleUseCase{txRunner: txRunner, saleRepo: saleRepo, offerRepo: offerRepo}
}

// ConfirmSale confirma la venta y genera las cuotas si aplica.
func (uc *ConfirmSaleUseCase) ConfirmSale(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return nil, domain.ErrSaleCancelled
	}
	if sale.Status != entity.SaleStatusPending {
		return nil, domain.ErrSaleNotPending
	}

	now := time.Now()
	var rows []*entity.InstallmentPayment
	if terms, ok := sale.Terms.(entity.InstallmentTerms); ok {
		offer, err := uc.offerRepo.GetByID(terms.OfferID)
		if err != nil || offer == nil {
			return nil, domain.ErrInvalidOffer
		}
		p, err := plan.Build(plan.BuildInput{
			SalePrice:     sale.SalePrice,
			DepositAmount: sale.DepositAmount,
			Offer:         offer,
			SaleDate:      sale.SaleDate,
			StartDate:     terms.StartDate,
		})
		if err != nil {
			return nil, err
		}
		rows = make([]*entity.InstallmentPayment, 0, len(p.Schedule))
		for _, sched := range p.Schedule {
			rows = append(rows, &entity.InstallmentPayment{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				Number:    sched.Number,
				AmountDue: sched.AmountDue,
				DueDate:   sched.DueDate,
				Status:    entity.InstallmentStatusPending,
				Version:   1,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		pieceRepo repository.PieceRepository,
		instRepo repository.InstallmentRepository,
	) error {
		if err := saleRepo.UpdateStatus(sale.ID, entity.SaleStatusCompleted, now); err != nil {
			return err
		}
		if err := pieceRepo.UpdateStatus(sale.PieceID, entity.PieceStatusSold); err != nil {
			return err
		}
		if len(rows) > 0 {
			return instRepo.BatchInsert(rows)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sale.Status = entity.SaleStatusCompleted
	return toSaleResponse(sale), nil
}
