package dto

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain/finance"
)

// FinanceReportRequest parámetros de GET /api/dashboard/finance.
type FinanceReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
}

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MismatchDTO advertencia de plan que no concilia con su venta.
type MismatchDTO struct {
	SaleID     string          `json:"sale_id"`
	Expected   decimal.Decimal `json:"expected"`
	Actual     decimal.Decimal `json:"actual"`
	Difference decimal.Decimal `json:"difference"`
}

// FinanceReportDTO respuesta completa del reporte de conciliación: totales,
// categorías disyuntas de recaudo y desgloses por vendedor y ubicación.
type FinanceReportDTO struct {
	Period             PeriodDTO                  `json:"period"`
	TotalRevenue       decimal.Decimal            `json:"total_revenue"`
	TotalCollected     decimal.Decimal            `json:"total_collected"`
	Collected          finance.CollectedBreakdown `json:"collected"`
	Commission         decimal.Decimal            `json:"commission"`
	OverdueAmount      decimal.Decimal            `json:"overdue_amount"`
	OverdueCount       int                        `json:"overdue_count"`
	ExpectedThisPeriod decimal.Decimal            `json:"expected_this_period"`
	SalesCount         int                        `json:"sales_count"`
	CompletedCount     int                        `json:"completed_count"`
	BySeller           []finance.SellerSummary    `json:"by_seller"`
	ByLocation         []finance.LocationSummary  `json:"by_location"`
	Warnings           []MismatchDTO              `json:"warnings,omitempty"`
}
