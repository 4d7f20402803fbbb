package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL.
// La variante de condiciones de pago se aplana en columnas: payment_method
// discrimina, y payment_offer_id / installment_start_date /
// advance_after_deposit / partial_payment_amount solo tienen valor para el
// método que les corresponde.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, client_id, seller_id, batch_id, piece_id, sale_price, deposit_amount, company_fee,
	status, sale_date, payment_method, payment_offer_id, installment_start_date, advance_after_deposit,
	partial_payment_amount, created_at, updated_at`

// Create persiste una nueva venta con su variante de pago aplanada.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	var (
		offerID       any
		startDate     *time.Time
		advance       *decimal.Decimal
		partialAmount *decimal.Decimal
	)
	switch terms := sale.Terms.(type) {
	case entity.InstallmentTerms:
		offerID = terms.OfferID
		startDate = terms.StartDate
		adv := terms.AdvanceAfterDeposit
		advance = &adv
	case entity.PromiseTerms:
		partial := terms.PartialAmount
		partialAmount = &partial
	}

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.ClientID, sale.SellerID, sale.BatchID, sale.PieceID,
		sale.SalePrice, sale.DepositAmount, sale.CompanyFee,
		sale.Status, sale.SaleDate, sale.PaymentMethod(),
		offerID, startDate, advance, partialAmount,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("venta duplicada: %w", err)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	sale, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

// UpdateStatus cambia el estado de la venta.
func (r *SaleRepo) UpdateStatus(id, status string, updatedAt time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $2, updated_at = $3 WHERE id = $1`, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	return nil
}

// ListByDateRange devuelve las ventas de la ventana [start, end] por fecha de
// venta, excluyendo las canceladas.
func (r *SaleRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + `
		FROM sales
		WHERE sale_date BETWEEN $1 AND $2 AND status <> $3
		ORDER BY sale_date`
	rows, err := r.q.Query(ctx, query, start, end, entity.SaleStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, sale)
	}
	return list, rows.Err()
}

// scanSale reconstruye la venta y su variante de Terms desde las columnas
// aplanadas. Una fila con payment_method desconocido es un error de datos.
func scanSale(row pgx.Row) (*entity.Sale, error) {
	var (
		s             entity.Sale
		method        string
		offerID       *string
		startDate     *time.Time
		advance       *decimal.Decimal
		partialAmount *decimal.Decimal
	)
	err := row.Scan(
		&s.ID, &s.ClientID, &s.SellerID, &s.BatchID, &s.PieceID,
		&s.SalePrice, &s.DepositAmount, &s.CompanyFee,
		&s.Status, &s.SaleDate, &method,
		&offerID, &startDate, &advance, &partialAmount,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	switch method {
	case entity.PaymentMethodFull:
		s.Terms = entity.FullPaymentTerms{}
	case entity.PaymentMethodInstallment:
		terms := entity.InstallmentTerms{StartDate: startDate}
		if offerID != nil {
			terms.OfferID = *offerID
		}
		if advance != nil {
			terms.AdvanceAfterDeposit = *advance
		}
		s.Terms = terms
	case entity.PaymentMethodPromise:
		terms := entity.PromiseTerms{}
		if partialAmount != nil {
			terms.PartialAmount = *partialAmount
		}
		s.Terms = terms
	default:
		return nil, fmt.Errorf("payment_method desconocido: %q", method)
	}
	return &s, nil
}
