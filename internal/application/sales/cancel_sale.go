package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// CancelSaleUseCase anula una venta, elimina sus cuotas y libera el lote.
// Las ventas anuladas quedan fuera de toda agregación financiera.
type CancelSaleUseCase struct {
	txRunner TxRunner
	saleRepo repository.SaleRepository
}

// NewCancelSaleUseCase construye el caso de uso.
func NewCancelSaleUseCase(txRunner TxRunner, saleRepo repository.SaleRepository) *CancelSaleUseCase {
	return &CancelSaleUseCase{txRunner: txRunner, saleRepo: saleRepo}
}

// CancelSale marca la venta como anulada y devuelve el lote a disponible.
func (uc *CancelSaleUseCase) CancelSale(ctx context.Context, saleID string) error {
	sale, err := uc.saleRepo.GetByID(saleID)
	if err != nil || sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return domain.ErrSaleCancelled
	}

	return uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		pieceRepo repository.PieceRepository,
		instRepo repository.InstallmentRepository,
	) error {
		if err := instRepo.DeleteBySaleID(sale.ID); err != nil {
			return err
		}
		if err := pieceRepo.UpdateStatus(sale.PieceID, entity.PieceStatusAvailable); err != nil {
			return err
		}
		return saleRepo.UpdateStatus(sale.ID, entity.SaleStatusCancelled, time.Now())
	})
}
