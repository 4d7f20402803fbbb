package repository

import "github.com/jhoicas/Terrenos-api/internal/domain/entity"

// PieceRepository define el puerto de persistencia para lotes.
// Usado dentro de transacciones de venta para reservar/liberar el lote.
type PieceRepository interface {
	Create(piece *entity.Piece) error
	GetByID(id string) (*entity.Piece, error)
	ListByBatch(batchID string) ([]*entity.Piece, error)
	// GetForUpdate bloquea la fila del lote (SELECT FOR UPDATE) para que dos
	// ventas concurrentes no reserven el mismo lote.
	GetForUpdate(id string) (*entity.Piece, error)
	UpdateStatus(id, status string) error
}
