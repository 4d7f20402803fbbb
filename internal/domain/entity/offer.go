package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de cálculo de la prima (advance) de una oferta.
const (
	AdvanceModeFixed   = "fixed"   // AdvanceValue es un monto fijo
	AdvanceModePercent = "percent" // AdvanceValue es un porcentaje del precio de venta
)

// Modos de cálculo de las cuotas mensuales.
const (
	CalcModeMonths        = "months"        // número fijo de cuotas; el monto se deriva
	CalcModeMonthlyAmount = "monthlyAmount" // monto fijo por cuota; el número se deriva
)

// InstallmentOffer es una oferta de financiamiento: precio por m² para ventas
// a cuotas, prima y regla de cuotas mensuales. Según CalcMode, exactamente uno
// de Months / MonthlyAmount es autoritativo.
type InstallmentOffer struct {
	ID            string
	Name          string
	PriceM2       decimal.Decimal // precio por m² para ventas financiadas
	AdvanceMode   string          // fixed | percent
	AdvanceValue  decimal.Decimal
	CalcMode      string // months | monthlyAmount
	Months        int    // autoritativo si CalcMode=months
	MonthlyAmount decimal.Decimal // autoritativo si CalcMode=monthlyAmount
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
