package sales

import (
	"context"

	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para crear, confirmar y
// cancelar ventas: o se persiste todo (venta, estado del lote, cuotas) o nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		pieceRepo repository.PieceRepository,
		instRepo repository.InstallmentRepository,
	) error) error
}
