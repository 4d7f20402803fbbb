// Package ledger implementa la máquina de estados de las cuotas:
// pending → paid por abonos, y "overdue" como vista derivada en el tiempo.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

// centTolerance tolerancia de redondeo al conciliar un plan contra su venta.
var centTolerance = decimal.New(1, -2) // 0.01

// IsOverdue indica si la cuota está vencida en el instante de referencia.
// "Overdue" nunca se persiste: es función pura de (status, due_date, ref).
func IsOverdue(p *entity.InstallmentPayment, ref time.Time) bool {
	return p.Status == entity.InstallmentStatusPending && p.DueDate.Before(ref)
}

// StatusAt devuelve el estado efectivo de la cuota en el instante de
// referencia: paid, overdue (derivado) o pending.
func StatusAt(p *entity.InstallmentPayment, ref time.Time) string {
	if p.Status == entity.InstallmentStatusPaid {
		return entity.InstallmentStatusPaid
	}
	if IsOverdue(p, ref) {
		return entity.InstallmentStatusOverdue
	}
	return entity.InstallmentStatusPending
}

// ApplyPayment aplica un abono sobre la cuota (transición pura; la
// serialización por fila la garantiza la capa de persistencia).
// Acumula AmountPaid; si alcanza AmountDue la cuota pasa a paid y se fija
// PaidDate al instante del abono. Un abono parcial la deja pending (y por
// tanto evaluará overdue una vez vencida). Nunca permite superar AmountDue.
func ApplyPayment(p *entity.InstallmentPayment, amount decimal.Decimal, when time.Time) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if p.Status == entity.InstallmentStatusPaid {
		return domain.ErrInstallmentPaid
	}
	if p.AmountPaid.Add(amount).GreaterThan(p.AmountDue) {
		return domain.ErrOverpayment
	}
	p.AmountPaid = p.AmountPaid.Add(amount)
	if p.AmountPaid.GreaterThanOrEqual(p.AmountDue) {
		p.Status = entity.InstallmentStatusPaid
		paidAt := when
		p.PaidDate = &paidAt
	}
	p.UpdatedAt = when
	return nil
}

// Mismatch advertencia no fatal: el plan de una venta no concilia con su
// precio dentro de la tolerancia de redondeo. El operador debe revisarla;
// los agregados estrictos la excluyen en vez de incluirla en silencio.
type Mismatch struct {
	SaleID   string
	Expected decimal.Decimal // SalePrice
	Actual   decimal.Decimal // depósito + prima restante + Σ cuotas
}

// Difference devuelve Actual − Expected.
func (m *Mismatch) Difference() decimal.Decimal {
	return m.Actual.Sub(m.Expected)
}

// CheckConsistency verifica el invariante de una venta financiada:
// depósito + prima restante + Σ(amount_due) = precio de venta (exacto al
// centavo). Devuelve nil si concilia, o la advertencia con los montos.
func CheckConsistency(sale *entity.Sale, rows []*entity.InstallmentPayment) *Mismatch {
	terms, ok := sale.Terms.(entity.InstallmentTerms)
	if !ok {
		return nil
	}
	sum := sale.DepositAmount.Add(terms.AdvanceAfterDeposit)
	for _, r := range rows {
		sum = sum.Add(r.AmountDue)
	}
	if sum.Sub(sale.SalePrice).Abs().GreaterThan(centTolerance) {
		return &Mismatch{SaleID: sale.ID, Expected: sale.SalePrice, Actual: sum}
	}
	return nil
}
