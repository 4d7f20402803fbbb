package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados persistidos de una cuota. "overdue" NO se persiste: es una vista
// derivada de (status, due_date, momento de referencia); ver ledger.StatusAt.
const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
	InstallmentStatusOverdue = "overdue" // solo como valor derivado en reportes
)

// InstallmentPayment es una cuota del plan de pagos de una venta financiada.
// Number es 1-based en el orden del calendario. Version respalda el check
// optimista al registrar abonos concurrentes sobre la misma cuota.
type InstallmentPayment struct {
	ID         string
	SaleID     string
	Number     int
	AmountDue  decimal.Decimal
	AmountPaid decimal.Decimal
	DueDate    time.Time
	PaidDate   *time.Time
	Status     string // pending | paid
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Outstanding devuelve el saldo pendiente de la cuota (AmountDue − AmountPaid).
func (p *InstallmentPayment) Outstanding() decimal.Decimal {
	return p.AmountDue.Sub(p.AmountPaid)
}
