package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBatchRequest alta de etapa.
type CreateBatchRequest struct {
	Name        string          `json:"name" validate:"required"`
	Location    string          `json:"location"`
	CashPriceM2 decimal.Decimal `json:"cash_price_m2"`
}

// UpdateBatchRequest actualización parcial de etapa.
type UpdateBatchRequest struct {
	Name        *string          `json:"name,omitempty"`
	Location    *string          `json:"location,omitempty"`
	CashPriceM2 *decimal.Decimal `json:"cash_price_m2,omitempty"`
}

// BatchResponse etapa para respuestas HTTP.
type BatchResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	CashPriceM2 decimal.Decimal `json:"cash_price_m2"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePieceRequest alta de lote dentro de una etapa.
type CreatePieceRequest struct {
	Number      string           `json:"number" validate:"required"`
	SurfaceM2   decimal.Decimal  `json:"surface_m2" validate:"required"`
	DirectPrice *decimal.Decimal `json:"direct_price,omitempty"` // override de precio total
}

// PieceResponse lote para respuestas HTTP.
type PieceResponse struct {
	ID          string           `json:"id"`
	BatchID     string           `json:"batch_id"`
	Number      string           `json:"number"`
	SurfaceM2   decimal.Decimal  `json:"surface_m2"`
	DirectPrice *decimal.Decimal `json:"direct_price,omitempty"`
	Status      string           `json:"status"`
}
