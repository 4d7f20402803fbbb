package repository

import "github.com/jhoicas/Terrenos-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para etapas (batches).
type BatchRepository interface {
	Create(batch *entity.Batch) error
	Update(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	List() ([]*entity.Batch, error)
}
