package plan_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/plan"
)

var saleDate = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func offerMonths(advMode string, advValue string, months int) *entity.InstallmentOffer {
	return &entity.InstallmentOffer{
		ID:           "offer-1",
		PriceM2:      dec("500"),
		AdvanceMode:  advMode,
		AdvanceValue: dec(advValue),
		CalcMode:     entity.CalcModeMonths,
		Months:       months,
	}
}

func offerMonthly(advMode string, advValue string, monthly string) *entity.InstallmentOffer {
	return &entity.InstallmentOffer{
		ID:            "offer-2",
		PriceM2:       dec("500"),
		AdvanceMode:   advMode,
		AdvanceValue:  dec(advValue),
		CalcMode:      entity.CalcModeMonthlyAmount,
		MonthlyAmount: dec(monthly),
	}
}

func scheduleSum(p *plan.Plan) decimal.Decimal {
	sum := decimal.Zero
	for _, c := range p.Schedule {
		sum = sum.Add(c.AmountDue)
	}
	return sum
}

// Escenario de referencia: 100 m² × 500 = 50000, prima fija 2000, depósito
// 1000, 10 meses ⇒ prima restante 1000, saldo 48000, 10 cuotas de 4800.
func TestBuild_ModoMeses_DivisionExacta(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "2000", 10),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)

	assert.True(t, p.AdvanceAmount.Equal(dec("2000")))
	assert.True(t, p.AdvanceAfterDeposit.Equal(dec("1000")))
	assert.True(t, p.Remaining.Equal(dec("48000")))
	require.Len(t, p.Schedule, 10)
	for i, c := range p.Schedule {
		assert.Equal(t, i+1, c.Number)
		assert.True(t, c.AmountDue.Equal(dec("4800")), "cuota %d", i+1)
		assert.Equal(t, saleDate.AddDate(0, i+1, 0), c.DueDate)
	}
	// depósito + prima restante + Σ cuotas = precio de venta, exacto
	total := dec("1000").Add(p.AdvanceAfterDeposit).Add(scheduleSum(p))
	assert.True(t, total.Equal(dec("50000")))
}

// División inexacta: la última cuota absorbe el residuo y la suma es exacta.
func TestBuild_ModoMeses_UltimaCuotaAbsorbeResiduo(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("1000"),
		DepositAmount: decimal.Zero,
		Offer:         offerMonths(entity.AdvanceModeFixed, "0", 3),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)

	require.Len(t, p.Schedule, 3)
	assert.True(t, p.Schedule[0].AmountDue.Equal(dec("333.33")))
	assert.True(t, p.Schedule[1].AmountDue.Equal(dec("333.33")))
	assert.True(t, p.Schedule[2].AmountDue.Equal(dec("333.34")))
	assert.True(t, scheduleSum(p).Equal(dec("1000")))
}

// Monto mensual con división exacta: sin cuota residual.
func TestBuild_ModoMontoMensual_DivisionExacta(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonthly(entity.AdvanceModeFixed, "2000", "3000"),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)

	// saldo 48000 / 3000 = 16 cuotas exactas
	require.Len(t, p.Schedule, 16)
	for _, c := range p.Schedule {
		assert.True(t, c.AmountDue.Equal(dec("3000")))
	}
	assert.True(t, scheduleSum(p).Equal(dec("48000")))
}

// Monto mensual con división inexacta: 16 cuotas de 3000 y una 17ª de 500.
func TestBuild_ModoMontoMensual_CuotaResidual(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50500"),
		DepositAmount: dec("1000"),
		Offer:         offerMonthly(entity.AdvanceModeFixed, "2000", "3000"),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)

	// saldo 48500
	require.Len(t, p.Schedule, 17)
	for i := 0; i < 16; i++ {
		assert.True(t, p.Schedule[i].AmountDue.Equal(dec("3000")))
	}
	last := p.Schedule[16].AmountDue
	assert.True(t, last.Equal(dec("500")), "la última cuota es el saldo restante")
	assert.True(t, last.LessThanOrEqual(dec("3000")), "nunca mayor que el monto mensual")
	assert.True(t, scheduleSum(p).Equal(dec("48500")))
}

// Prima porcentual: 10% de 50000 = 5000; depósito 1000 ⇒ prima restante 4000.
func TestBuild_PrimaPorcentual(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModePercent, "10", 10),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)
	assert.True(t, p.AdvanceAmount.Equal(dec("5000")))
	assert.True(t, p.AdvanceAfterDeposit.Equal(dec("4000")))
	assert.True(t, p.Remaining.Equal(dec("45000")))
}

// Borde: porcentaje 0 ⇒ prima restante max(0, 0 − depósito) = 0.
func TestBuild_PrimaPorcentualCero(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModePercent, "0", 10),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)
	assert.True(t, p.AdvanceAfterDeposit.IsZero())
}

// Borde: depósito ≥ prima ⇒ prima restante 0 (nunca negativa).
func TestBuild_DepositoCubrePrima(t *testing.T) {
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("3000"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "2000", 10),
		SaleDate:      saleDate,
	})
	require.NoError(t, err)
	assert.True(t, p.AdvanceAfterDeposit.IsZero())
	assert.True(t, p.Remaining.Equal(dec("47000")))
}

// Idempotencia: la misma entrada produce siempre el mismo calendario.
func TestBuild_Idempotente(t *testing.T) {
	in := plan.BuildInput{
		SalePrice:     dec("50500"),
		DepositAmount: dec("1000"),
		Offer:         offerMonthly(entity.AdvanceModeFixed, "2000", "3000"),
		SaleDate:      saleDate,
	}
	p1, err1 := plan.Build(in)
	p2, err2 := plan.Build(in)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, len(p1.Schedule), len(p2.Schedule))
	for i := range p1.Schedule {
		assert.True(t, p1.Schedule[i].AmountDue.Equal(p2.Schedule[i].AmountDue))
		assert.Equal(t, p1.Schedule[i].DueDate, p2.Schedule[i].DueDate)
	}
}

// Con fecha de inicio explícita, esa es la primera cuota.
func TestBuild_FechaInicioExplicita(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	p, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "2000", 3),
		SaleDate:      saleDate,
		StartDate:     &start,
	})
	require.NoError(t, err)
	require.Len(t, p.Schedule, 3)
	assert.Equal(t, start, p.Schedule[0].DueDate)
	assert.Equal(t, start.AddDate(0, 1, 0), p.Schedule[1].DueDate)
	// vencimientos estrictamente crecientes
	for i := 1; i < len(p.Schedule); i++ {
		assert.True(t, p.Schedule[i].DueDate.After(p.Schedule[i-1].DueDate))
	}
}

// ── Errores de configuración: el plan se rechaza antes de crear cuotas ───────

func TestBuild_MesesInvalidos(t *testing.T) {
	_, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "2000", 0),
		SaleDate:      saleDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOffer)
}

func TestBuild_MontoMensualInvalido(t *testing.T) {
	_, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonthly(entity.AdvanceModeFixed, "2000", "0"),
		SaleDate:      saleDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOffer)
}

func TestBuild_SaldoNegativo(t *testing.T) {
	// prima fija 60000 > precio − depósito
	_, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "60000", 10),
		SaleDate:      saleDate,
	})
	assert.ErrorIs(t, err, domain.ErrNegativeRemaining)
}

func TestBuild_DepositoMayorQuePrecio(t *testing.T) {
	_, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("50001"),
		Offer:         offerMonths(entity.AdvanceModeFixed, "2000", 10),
		SaleDate:      saleDate,
	})
	assert.ErrorIs(t, err, domain.ErrDepositExceedsPrice)
}

func TestBuild_ModoAvanceDesconocido(t *testing.T) {
	_, err := plan.Build(plan.BuildInput{
		SalePrice:     dec("50000"),
		DepositAmount: dec("1000"),
		Offer:         offerMonths("otro", "2000", 10),
		SaleDate:      saleDate,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidOffer)
}
