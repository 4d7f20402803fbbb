package dto

import "github.com/shopspring/decimal"

// CreateOfferRequest alta de oferta de financiamiento.
// Según calc_mode, exactamente uno de months/monthly_amount es autoritativo.
type CreateOfferRequest struct {
	Name          string          `json:"name" validate:"required"`
	PriceM2       decimal.Decimal `json:"price_m2" validate:"required"`
	AdvanceMode   string          `json:"advance_mode" validate:"required"` // fixed | percent
	AdvanceValue  decimal.Decimal `json:"advance_value"`
	CalcMode      string          `json:"calc_mode" validate:"required"` // months | monthlyAmount
	Months        int             `json:"months"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
}

// UpdateOfferRequest actualización parcial de oferta (p. ej. desactivarla).
type UpdateOfferRequest struct {
	Name   *string `json:"name,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// OfferResponse oferta para respuestas HTTP.
type OfferResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	PriceM2       decimal.Decimal `json:"price_m2"`
	AdvanceMode   string          `json:"advance_mode"`
	AdvanceValue  decimal.Decimal `json:"advance_value"`
	CalcMode      string          `json:"calc_mode"`
	Months        int             `json:"months,omitempty"`
	MonthlyAmount decimal.Decimal `json:"monthly_amount"`
	Active        bool            `json:"active"`
}
