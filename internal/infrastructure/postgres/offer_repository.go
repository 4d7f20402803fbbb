package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo implementación del puerto OfferRepository sobre PostgreSQL.
type OfferRepo struct {
	q Querier
}

// NewOfferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

const offerColumns = `id, name, price_m2, advance_mode, advance_value, calc_mode, months, monthly_amount, active, created_at, updated_at`

// Create persiste una nueva oferta de financiamiento.
func (r *OfferRepo) Create(offer *entity.InstallmentOffer) error {
	query := `
		INSERT INTO installment_offers (id, name, price_m2, advance_mode, advance_value, calc_mode, months, monthly_amount, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.Name, offer.PriceM2, offer.AdvanceMode, offer.AdvanceValue,
		offer.CalcMode, offer.Months, offer.MonthlyAmount, offer.Active,
		offer.CreatedAt, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

// Update actualiza nombre y estado activo de la oferta.
func (r *OfferRepo) Update(offer *entity.InstallmentOffer) error {
	query := `
		UPDATE installment_offers SET name = $2, active = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		offer.ID, offer.Name, offer.Active, offer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	return nil
}

// GetByID obtiene una oferta por ID.
func (r *OfferRepo) GetByID(id string) (*entity.InstallmentOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM installment_offers WHERE id = $1`
	var o entity.InstallmentOffer
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.Name, &o.PriceM2, &o.AdvanceMode, &o.AdvanceValue,
		&o.CalcMode, &o.Months, &o.MonthlyAmount, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return &o, nil
}

// List lista ofertas; con onlyActive solo las activas.
func (r *OfferRepo) List(onlyActive bool) ([]*entity.InstallmentOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM installment_offers`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var list []*entity.InstallmentOffer
	for rows.Next() {
		var o entity.InstallmentOffer
		if err := rows.Scan(&o.ID, &o.Name, &o.PriceM2, &o.AdvanceMode, &o.AdvanceValue,
			&o.CalcMode, &o.Months, &o.MonthlyAmount, &o.Active, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}
