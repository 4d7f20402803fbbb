package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/repository"
)

var _ repository.PieceRepository = (*PieceRepo)(nil)

// PieceRepo implementación del puerto PieceRepository sobre PostgreSQL.
type PieceRepo struct {
	q Querier
}

// NewPieceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPieceRepository(q Querier) *PieceRepo {
	return &PieceRepo{q: q}
}

const pieceColumns = `id, batch_id, number, surface_m2, direct_price, status, created_at, updated_at`

// Create persiste un nuevo lote.
func (r *PieceRepo) Create(piece *entity.Piece) error {
	query := `
		INSERT INTO pieces (id, batch_id, number, surface_m2, direct_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		piece.ID, piece.BatchID, piece.Number, piece.SurfaceM2, piece.DirectPrice,
		piece.Status, piece.CreatedAt, piece.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("número de lote duplicado en la etapa: %w", err)
		}
		return fmt.Errorf("insert piece: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *PieceRepo) GetByID(id string) (*entity.Piece, error) {
	query := `SELECT ` + pieceColumns + ` FROM pieces WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate bloquea la fila del lote dentro de la transacción actual.
func (r *PieceRepo) GetForUpdate(id string) (*entity.Piece, error) {
	query := `SELECT ` + pieceColumns + ` FROM pieces WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// ListByBatch lista los lotes de una etapa ordenados por número.
func (r *PieceRepo) ListByBatch(batchID string) ([]*entity.Piece, error) {
	query := `SELECT ` + pieceColumns + ` FROM pieces WHERE batch_id = $1 ORDER BY number`
	rows, err := r.q.Query(context.Background(), query, batchID)
	if err != nil {
		return nil, fmt.Errorf("list pieces: %w", err)
	}
	defer rows.Close()
	var list []*entity.Piece
	for rows.Next() {
		var p entity.Piece
		if err := rows.Scan(&p.ID, &p.BatchID, &p.Number, &p.SurfaceM2, &p.DirectPrice, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan piece: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado del lote (available | reserved | sold).
func (r *PieceRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE pieces SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update piece status: %w", err)
	}
	return nil
}

func (r *PieceRepo) scanOne(row pgx.Row) (*entity.Piece, error) {
	var p entity.Piece
	err := row.Scan(&p.ID, &p.BatchID, &p.Number, &p.SurfaceM2, &p.DirectPrice, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get piece: %w", err)
	}
	return &p, nil
}
