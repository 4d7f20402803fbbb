// Package plan construye el calendario de cuotas de una venta financiada:
// prima restante tras el depósito y mensualidades deterministas.
package plan

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// BuildInput entrada del constructor de planes.
type BuildInput struct {
	SalePrice     decimal.Decimal
	DepositAmount decimal.Decimal
	Offer         *entity.InstallmentOffer
	SaleDate      time.Time
	StartDate     *time.Time // primera fecha de vencimiento explícita; nil = un mes después de SaleDate
}

// ScheduledInstallment una cuota generada: número 1-based, monto y vencimiento.
type ScheduledInstallment struct {
	Number    int
	AmountDue decimal.Decimal
	DueDate   time.Time
}

// Plan resultado del constructor. Garantía: Σ AmountDue = Remaining exacto
// (al centavo), y DepositAmount + AdvanceAfterDeposit + Remaining = SalePrice.
type Plan struct {
	AdvanceAmount       decimal.Decimal // prima según la oferta
	AdvanceAfterDeposit decimal.Decimal // max(0, prima − depósito)
	Remaining           decimal.Decimal // saldo a distribuir en cuotas
	Schedule            []ScheduledInstallment
}

// Build genera el plan de pagos. Función pura e idempotente: la misma entrada
// produce siempre el mismo calendario. Toda falla de configuración se reporta
// antes de crear cuota alguna.
//
// Reglas:
//   - prima fija o porcentual según AdvanceMode; AdvanceAfterDeposit nunca negativo
//   - CalcMode=months: n cuotas iguales (redondeo al centavo); la última absorbe
//     el residuo para que la suma sea exacta
//   - CalcMode=monthlyAmount: cuotas del monto fijo; la última es el saldo
//     restante, en (0, monto], nunca mayor ni negativa
//   - vencimientos mensuales estrictamente crecientes anclados en SaleDate
//     (o en StartDate si viene explícita)
func Build(in BuildInput) (*Plan, error) {
	if in.Offer == nil {
		return nil, domain.ErrInvalidOffer
	}
	if in.DepositAmount.GreaterThan(in.SalePrice) {
		return nil, domain.ErrDepositExceedsPrice
	}

	advance, err := advanceAmount(in.Offer, in.SalePrice)
	if err != nil {
		return nil, err
	}
	advanceAfterDeposit := advance.Sub(in.DepositAmount)
	if advanceAfterDeposit.IsNegative() {
		advanceAfterDeposit = decimal.Zero
	}
	remaining := in.SalePrice.Sub(in.DepositAmount).Sub(advanceAfterDeposit)
	if remaining.IsNegative() {
		return nil, domain.ErrNegativeRemaining
	}

	amounts, err := installmentAmounts(in.Offer, remaining)
	if err != nil {
		return nil, err
	}

	schedule := make([]ScheduledInstallment, len(amounts))
	for i, amount := range amounts {
		schedule[i] = ScheduledInstallment{
			Number:    i + 1,
			AmountDue: amount,
			DueDate:   dueDate(in, i),
		}
	}
	return &Plan{
		AdvanceAmount:       advance,
		AdvanceAfterDeposit: advanceAfterDeposit,
		Remaining:           remaining,
		Schedule:            schedule,
	}, nil
}

// advanceAmount calcula la prima: monto fijo o porcentaje del precio de venta.
func advanceAmount(offer *entity.InstallmentOffer, salePrice decimal.Decimal) (decimal.Decimal, error) {
	switch offer.AdvanceMode {
	case entity.AdvanceModeFixed:
		if offer.AdvanceValue.IsNegative() {
			return decimal.Zero, domain.ErrInvalidOffer
		}
		return offer.AdvanceValue.Round(2), nil
	case entity.AdvanceModePercent:
		if offer.AdvanceValue.IsNegative() || offer.AdvanceValue.GreaterThan(hundred) {
			return decimal.Zero, domain.ErrInvalidOffer
		}
		return salePrice.Mul(offer.AdvanceValue).Div(hundred).Round(2), nil
	default:
		return decimal.Zero, domain.ErrInvalidOffer
	}
}

// installmentAmounts distribuye el saldo en montos por cuota según CalcMode.
func installmentAmounts(offer *entity.InstallmentOffer, remaining decimal.Decimal) ([]decimal.Decimal, error) {
	switch offer.CalcMode {
	case entity.CalcModeMonths:
		n := offer.Months
		if n < 1 {
			return nil, domain.ErrInvalidOffer
		}
		// Cuota base truncada al centavo; la última absorbe el residuo.
		per := remaining.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
		amounts := make([]decimal.Decimal, n)
		for i := 0; i < n-1; i++ {
			amounts[i] = per
		}
		amounts[n-1] = remaining.Sub(per.Mul(decimal.NewFromInt(int64(n - 1))))
		return amounts, nil

	case entity.CalcModeMonthlyAmount:
		monthly := offer.MonthlyAmount
		if !monthly.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidOffer
		}
		if remaining.IsZero() {
			return nil, nil
		}
		n := int(remaining.Div(monthly).Ceil().IntPart())
		amounts := make([]decimal.Decimal, n)
		for i := 0; i < n-1; i++ {
			amounts[i] = monthly
		}
		amounts[n-1] = remaining.Sub(monthly.Mul(decimal.NewFromInt(int64(n - 1))))
		return amounts, nil

	default:
		return nil, domain.ErrInvalidOffer
	}
}

// dueDate vencimiento de la cuota i (0-based): mensual desde el ancla.
// Con StartDate explícita, esa es la primera cuota; si no, un mes después de
// la fecha de venta.
func dueDate(in BuildInput, i int) time.Time {
	if in.StartDate != nil {
		return in.StartDate.AddDate(0, i, 0)
	}
	return in.SaleDate.AddDate(0, i+1, 0)
}
