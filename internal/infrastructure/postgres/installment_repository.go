package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

// InstallmentRepo implementación del puerto InstallmentRepository sobre
// PostgreSQL. Los abonos usan bloqueo de fila más predicado optimista sobre
// version; el resto son lecturas y el borrado en cascada de la cancelación.
type InstallmentRepo struct {
	q Querier
}

// NewInstallmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInstallmentRepository(q Querier) *InstallmentRepo {
	return &InstallmentRepo{q: q}
}

const installmentColumns = `id, sale_id, number, amount_due, amount_paid, due_date, paid_date, status, version, created_at, updated_at`

// BatchInsert materializa el calendario completo de una venta confirmada.
func (r *InstallmentRepo) BatchInsert(rows []*entity.InstallmentPayment) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	query := `
		INSERT INTO installment_payments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, row := range rows {
		batch.Queue(query,
			row.ID, row.SaleID, row.Number, row.AmountDue, row.AmountPaid,
			row.DueDate, row.PaidDate, row.Status, row.Version,
			row.CreatedAt, row.UpdatedAt,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range rows {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert installment: %w", err)
		}
	}
	return nil
}

// ListBySaleID lista las cuotas de una venta en orden de calendario.
func (r *InstallmentRepo) ListBySaleID(saleID string) ([]*entity.InstallmentPayment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installment_payments WHERE sale_id = $1 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()
	return collectInstallments(rows)
}

// ListBySaleIDs carga el libro de varias ventas en una sola consulta,
// agrupado por venta (snapshot del motor de conciliación).
func (r *InstallmentRepo) ListBySaleIDs(ctx context.Context, saleIDs []string) (map[string][]*entity.InstallmentPayment, error) {
	out := make(map[string][]*entity.InstallmentPayment, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + installmentColumns + ` FROM installment_payments WHERE sale_id = ANY($1) ORDER BY sale_id, number`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("list installments by sales: %w", err)
	}
	defer rows.Close()
	list, err := collectInstallments(rows)
	if err != nil {
		return nil, err
	}
	for _, row := range list {
		out[row.SaleID] = append(out[row.SaleID], row)
	}
	return out, nil
}

// GetForUpdate bloquea la fila de la cuota dentro de la transacción actual.
func (r *InstallmentRepo) GetForUpdate(id string) (*entity.InstallmentPayment, error) {
	query := `SELECT ` + installmentColumns + ` FROM installment_payments WHERE id = $1 FOR UPDATE`
	var p entity.InstallmentPayment
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.SaleID, &p.Number, &p.AmountDue, &p.AmountPaid,
		&p.DueDate, &p.PaidDate, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &p, nil
}

// UpdatePayment persiste el abono con predicado optimista sobre version.
// Cero filas afectadas significa que otra transacción ganó la carrera.
func (r *InstallmentRepo) UpdatePayment(row *entity.InstallmentPayment, expectedVersion int) error {
	query := `
		UPDATE installment_payments
		SET amount_paid = $2, paid_date = $3, status = $4, version = $5, updated_at = $6
		WHERE id = $1 AND version = $7`
	cmd, err := r.q.Exec(context.Background(), query,
		row.ID, row.AmountPaid, row.PaidDate, row.Status, row.Version, row.UpdatedAt,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update installment: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrVersionConflict
	}
	return nil
}

// DeleteBySaleID elimina el calendario completo de una venta cancelada.
func (r *InstallmentRepo) DeleteBySaleID(saleID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM installment_payments WHERE sale_id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("delete installments: %w", err)
	}
	return nil
}

func collectInstallments(rows pgx.Rows) ([]*entity.InstallmentPayment, error) {
	var list []*entity.InstallmentPayment
	for rows.Next() {
		var p entity.InstallmentPayment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Number, &p.AmountDue, &p.AmountPaid,
			&p.DueDate, &p.PaidDate, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
