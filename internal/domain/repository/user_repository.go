package repository

import "github.com/jhoicas/Terrenos-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (vendedores).
type UserRepository interface {
	Create(user *entity.User) error
	FindByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	List() ([]*entity.User, error)
}
