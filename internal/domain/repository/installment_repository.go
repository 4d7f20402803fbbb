package repository

import (
	"context"

	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

// InstallmentRepository define el puerto de persistencia para el libro de cuotas.
// Las cuotas solo mutan al registrar un abono; se eliminan únicamente como
// consecuencia de cancelar la venta.
type InstallmentRepository interface {
	// BatchInsert materializa el calendario completo de una venta confirmada.
	// Se invoca dentro de la transacción de confirmación: o entran todas las
	// cuotas o ninguna.
	BatchInsert(rows []*entity.InstallmentPayment) error
	ListBySaleID(saleID string) ([]*entity.InstallmentPayment, error)
	// ListBySaleIDs carga el libro de varias ventas para el snapshot de
	// conciliación, agrupado por venta.
	ListBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.InstallmentPayment, error)
	// GetForUpdate bloquea la fila de la cuota (SELECT FOR UPDATE): el único
	// camino de escritura con contención es registrar un abono.
	GetForUpdate(id string) (*entity.InstallmentPayment, error)
	// UpdatePayment persiste el abono con predicado optimista sobre Version;
	// si la versión ya no coincide devuelve domain.ErrVersionConflict.
	UpdatePayment(row *entity.InstallmentPayment, expectedVersion int) error
	DeleteBySaleID(saleID string) error
}
