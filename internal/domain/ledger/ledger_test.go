package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/ledger"
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func pendingInstallment(due time.Time, amountDue string) *entity.InstallmentPayment {
	return &entity.InstallmentPayment{
		ID:         "inst-1",
		SaleID:     "sale-1",
		Number:     1,
		AmountDue:  dec(amountDue),
		AmountPaid: decimal.Zero,
		DueDate:    due,
		Status:     entity.InstallmentStatusPending,
	}
}

// Cuota vencida el 2024-01-01 evaluada el 2024-02-01: overdue con saldo 1000.
func TestStatusAt_CuotaVencida(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ref := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inst := pendingInstallment(due, "1000")

	assert.True(t, ledger.IsOverdue(inst, ref))
	assert.Equal(t, entity.InstallmentStatusOverdue, ledger.StatusAt(inst, ref))
	assert.True(t, inst.Outstanding().Equal(dec("1000")))
}

// Antes del vencimiento la cuota sigue pending; "overdue" depende solo del
// instante de referencia, no de cuándo se consulte el registro.
func TestStatusAt_PendienteAntesDelVencimiento(t *testing.T) {
	due := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	inst := pendingInstallment(due, "1000")

	ref := time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, entity.InstallmentStatusPending, ledger.StatusAt(inst, ref))
	assert.False(t, ledger.IsOverdue(inst, ref))
}

// Una cuota pagada nunca se reporta vencida, sin importar la referencia.
func TestStatusAt_PagadaNoVence(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := pendingInstallment(due, "1000")
	when := due.AddDate(0, 0, -5)
	require.NoError(t, ledger.ApplyPayment(inst, dec("1000"), when))

	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, entity.InstallmentStatusPaid, ledger.StatusAt(inst, ref))
	assert.False(t, ledger.IsOverdue(inst, ref))
}

// Abono completo: pending → paid con PaidDate al instante del abono.
func TestApplyPayment_AbonoCompleto(t *testing.T) {
	inst := pendingInstallment(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "4800")
	when := time.Date(2023, 12, 20, 10, 30, 0, 0, time.UTC)

	require.NoError(t, ledger.ApplyPayment(inst, dec("4800"), when))
	assert.Equal(t, entity.InstallmentStatusPaid, inst.Status)
	require.NotNil(t, inst.PaidDate)
	assert.Equal(t, when, *inst.PaidDate)
	assert.True(t, inst.Outstanding().IsZero())
}

// Abono parcial: la cuota queda pending, el saldo refleja lo ya abonado y la
// cuota evalúa overdue una vez vencida.
func TestApplyPayment_AbonoParcial(t *testing.T) {
	due := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := pendingInstallment(due, "4800")

	require.NoError(t, ledger.ApplyPayment(inst, dec("1800"), due.AddDate(0, 0, -10)))
	assert.Equal(t, entity.InstallmentStatusPending, inst.Status)
	assert.Nil(t, inst.PaidDate)
	assert.True(t, inst.Outstanding().Equal(dec("3000")))

	ref := due.AddDate(0, 1, 0)
	assert.True(t, ledger.IsOverdue(inst, ref), "parcial y vencida ⇒ overdue")
}

// Dos abonos parciales acumulan; el segundo completa la cuota.
func TestApplyPayment_AcumulaHastaPagar(t *testing.T) {
	inst := pendingInstallment(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "4800")
	t1 := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	t2 := time.Date(2023, 12, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ledger.ApplyPayment(inst, dec("1800"), t1))
	require.NoError(t, ledger.ApplyPayment(inst, dec("3000"), t2))
	assert.Equal(t, entity.InstallmentStatusPaid, inst.Status)
	require.NotNil(t, inst.PaidDate)
	assert.Equal(t, t2, *inst.PaidDate)
}

func TestApplyPayment_RechazaSobrepago(t *testing.T) {
	inst := pendingInstallment(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "4800")
	err := ledger.ApplyPayment(inst, dec("4800.01"), time.Now())
	assert.ErrorIs(t, err, domain.ErrOverpayment)
	assert.True(t, inst.AmountPaid.IsZero(), "un abono rechazado no muta la cuota")
}

func TestApplyPayment_RechazaCuotaPagada(t *testing.T) {
	inst := pendingInstallment(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "4800")
	require.NoError(t, ledger.ApplyPayment(inst, dec("4800"), time.Now()))
	err := ledger.ApplyPayment(inst, dec("1"), time.Now())
	assert.ErrorIs(t, err, domain.ErrInstallmentPaid)
}

func TestApplyPayment_RechazaMontoNoPositivo(t *testing.T) {
	inst := pendingInstallment(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "4800")
	assert.ErrorIs(t, ledger.ApplyPayment(inst, decimal.Zero, time.Now()), domain.ErrInvalidInput)
	assert.ErrorIs(t, ledger.ApplyPayment(inst, dec("-10"), time.Now()), domain.ErrInvalidInput)
}

// ── Conciliación plan vs. venta ──────────────────────────────────────────────

func installmentSale(price, deposit, advanceAfterDeposit string) *entity.Sale {
	return &entity.Sale{
		ID:            "sale-1",
		SalePrice:     dec(price),
		DepositAmount: dec(deposit),
		Status:        entity.SaleStatusCompleted,
		Terms:         entity.InstallmentTerms{OfferID: "offer-1", AdvanceAfterDeposit: dec(advanceAfterDeposit)},
	}
}

func rows(amounts ...string) []*entity.InstallmentPayment {
	out := make([]*entity.InstallmentPayment, len(amounts))
	for i, a := range amounts {
		out[i] = &entity.InstallmentPayment{
			SaleID: "sale-1", Number: i + 1, AmountDue: dec(a),
			Status: entity.InstallmentStatusPending,
		}
	}
	return out
}

func TestCheckConsistency_PlanConcilia(t *testing.T) {
	sale := installmentSale("50000", "1000", "1000")
	assert.Nil(t, ledger.CheckConsistency(sale, rows("24000", "24000")))
}

func TestCheckConsistency_DetectaDescuadre(t *testing.T) {
	sale := installmentSale("50000", "1000", "1000")
	m := ledger.CheckConsistency(sale, rows("24000", "23000"))
	require.NotNil(t, m)
	assert.Equal(t, "sale-1", m.SaleID)
	assert.True(t, m.Difference().Equal(dec("-1000")))
}

// Un descuadre de un centavo queda dentro de la tolerancia de redondeo.
func TestCheckConsistency_ToleranciaDeUnCentavo(t *testing.T) {
	sale := installmentSale("50000", "1000", "1000")
	assert.Nil(t, ledger.CheckConsistency(sale, rows("24000.01", "23999.99")))
	assert.Nil(t, ledger.CheckConsistency(sale, rows("24000", "24000.01")))
	assert.NotNil(t, ledger.CheckConsistency(sale, rows("24000", "24000.02")))
}

// Las ventas que no son financiadas no tienen plan que conciliar.
func TestCheckConsistency_SoloAplicaACuotas(t *testing.T) {
	sale := &entity.Sale{
		ID: "sale-2", SalePrice: dec("36000"), DepositAmount: dec("5000"),
		Status: entity.SaleStatusCompleted, Terms: entity.FullPaymentTerms{},
	}
	assert.Nil(t, ledger.CheckConsistency(sale, nil))
}
