package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	UpdateStatus(id, status string, updatedAt time.Time) error
	// ListByDateRange devuelve las ventas de la ventana [start, end] por fecha
	// de venta, excluyendo las canceladas (snapshot del motor de conciliación).
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
}
