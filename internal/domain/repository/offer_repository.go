package repository

import "github.com/jhoicas/Terrenos-api/internal/domain/entity"

// OfferRepository define el puerto de persistencia para ofertas de financiamiento.
type OfferRepository interface {
	Create(offer *entity.InstallmentOffer) error
	Update(offer *entity.InstallmentOffer) error
	GetByID(id string) (*entity.InstallmentOffer, error)
	List(onlyActive bool) ([]*entity.InstallmentOffer, error)
}
