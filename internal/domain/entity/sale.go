package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de una venta.
const (
	PaymentMethodFull        = "full"        // pago de contado
	PaymentMethodInstallment = "installment" // plan de cuotas (depósito + prima + mensualidades)
	PaymentMethodPromise     = "promise"     // promesa de venta con abono parcial
)

// Estados de una venta.
const (
	SaleStatusPending   = "pending"   // creada, lote reservado
	SaleStatusCompleted = "completed" // confirmada; en cuotas, el plan ya está materializado
	SaleStatusCancelled = "cancelled" // anulada; no aporta a ningún agregado financiero
)

// PaymentTerms es la variante de condiciones de pago de la venta. Cada método
// lleva solo los campos que le aplican; el switch exhaustivo sobre la variante
// reemplaza los chequeos de campos opcionales.
type PaymentTerms interface {
	Method() string
}

// FullPaymentTerms: pago de contado. El saldo (precio − depósito) se liquida
// al completar la venta.
type FullPaymentTerms struct{}

// InstallmentTerms: venta financiada contra una oferta.
// AdvanceAfterDeposit se materializa al crear la venta (prima − depósito,
// nunca negativo) para que los reportes no dependan de releer la oferta.
type InstallmentTerms struct {
	OfferID             string
	StartDate           *time.Time // primera fecha de vencimiento explícita; nil = un mes después de SaleDate
	AdvanceAfterDeposit decimal.Decimal
}

// PromiseTerms: promesa de venta con un abono parcial único contra una
// liquidación futura; no genera calendario de cuotas.
type PromiseTerms struct {
	PartialAmount decimal.Decimal
}

func (FullPaymentTerms) Method() string { return PaymentMethodFull }
func (InstallmentTerms) Method() string { return PaymentMethodInstallment }
func (PromiseTerms) Method() string     { return PaymentMethodPromise }

// Sale representa la venta de un lote a un cliente.
// Invariantes (para toda venta no cancelada):
//   - SalePrice = superficie × precio/m² aplicable (ver pricing.SalePrice)
//   - DepositAmount ≤ SalePrice
//   - En cuotas: depósito + prima restante + Σ cuotas = SalePrice exacto
type Sale struct {
	ID            string
	ClientID      string
	SellerID      string
	BatchID       string
	PieceID       string
	SalePrice     decimal.Decimal
	DepositAmount decimal.Decimal
	CompanyFee    decimal.Decimal // comisión retenida por la empresa; cero si no aplica
	Status        string
	SaleDate      time.Time // ancla del calendario de cuotas
	Terms         PaymentTerms
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PaymentMethod devuelve el método de pago según la variante de Terms.
func (s *Sale) PaymentMethod() string {
	if s.Terms == nil {
		return ""
	}
	return s.Terms.Method()
}
