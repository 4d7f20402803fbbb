package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest alta de venta. Según payment_method:
//   - installment: payment_offer_id obligatorio; installment_start_date opcional
//   - promise: partial_payment_amount obligatorio
//   - full: sin campos adicionales
type CreateSaleRequest struct {
	ClientID             string           `json:"client_id" validate:"required"`
	PieceID              string           `json:"piece_id" validate:"required"`
	PaymentMethod        string           `json:"payment_method" validate:"required"` // full | installment | promise
	DepositAmount        decimal.Decimal  `json:"deposit_amount"`
	CompanyFee           decimal.Decimal  `json:"company_fee"`
	PaymentOfferID       string           `json:"payment_offer_id,omitempty"`
	InstallmentStartDate *time.Time       `json:"installment_start_date,omitempty"`
	PartialPaymentAmount *decimal.Decimal `json:"partial_payment_amount,omitempty"`
	SaleDate             *time.Time       `json:"sale_date,omitempty"` // por defecto: ahora
}

// SaleResponse venta para respuestas HTTP.
type SaleResponse struct {
	ID                   string           `json:"id"`
	ClientID             string           `json:"client_id"`
	SellerID             string           `json:"seller_id"`
	BatchID              string           `json:"batch_id"`
	PieceID              string           `json:"piece_id"`
	PaymentMethod        string           `json:"payment_method"`
	SalePrice            decimal.Decimal  `json:"sale_price"`
	DepositAmount        decimal.Decimal  `json:"deposit_amount"`
	CompanyFee           decimal.Decimal  `json:"company_fee"`
	Status               string           `json:"status"`
	SaleDate             time.Time        `json:"sale_date"`
	PaymentOfferID       string           `json:"payment_offer_id,omitempty"`
	AdvanceAfterDeposit  *decimal.Decimal `json:"advance_after_deposit,omitempty"`
	PartialPaymentAmount *decimal.Decimal `json:"partial_payment_amount,omitempty"`
}

// InstallmentResponse cuota para respuestas HTTP. Status es el estado efectivo
// al instante de la consulta (pending | paid | overdue).
type InstallmentResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	Number      int             `json:"number"`
	AmountDue   decimal.Decimal `json:"amount_due"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
	DueDate     time.Time       `json:"due_date"`
	PaidDate    *time.Time      `json:"paid_date,omitempty"`
	Status      string          `json:"status"`
}
