package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest abono contra una cuota.
type RecordPaymentRequest struct {
	InstallmentID string          `json:"installment_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"` // por defecto: ahora
}

// RecordPaymentResponse estado de la cuota tras el abono.
type RecordPaymentResponse struct {
	Installment InstallmentResponse `json:"installment"`
}
