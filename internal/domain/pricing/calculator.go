// Package pricing deriva el precio total de venta de un lote a partir de su
// superficie y la fuente de precio aplicable (servicio de dominio, sin estado).
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
)

// PriceInput entrada del cálculo de precio. OfferPriceM2 solo aplica cuando
// PaymentMethod es installment; DirectPrice y BatchCashPriceM2 son opcionales.
type PriceInput struct {
	SurfaceM2        decimal.Decimal
	PaymentMethod    string
	OfferPriceM2     *decimal.Decimal // precio/m² de la oferta de financiamiento
	DirectPrice      *decimal.Decimal // precio total directo del lote (override)
	BatchCashPriceM2 *decimal.Decimal // precio de contado/m² de la etapa
}

// SalePrice calcula el precio total de venta.
// Prioridad de fuente: precio/m² de la oferta (si método=installment) →
// precio directo del lote → precio de contado/m² de la etapa.
// Falla con ErrNoPriceSource si no hay fuente aplicable y con
// ErrNonPositivePrice si el resultado no es positivo. Sin efectos secundarios.
func SalePrice(in PriceInput) (decimal.Decimal, error) {
	if in.PaymentMethod == entity.PaymentMethodInstallment && in.OfferPriceM2 != nil {
		return totalFromM2(in.SurfaceM2, *in.OfferPriceM2)
	}
	if in.DirectPrice != nil {
		if !in.DirectPrice.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.ErrNonPositivePrice
		}
		return in.DirectPrice.Round(2), nil
	}
	if in.BatchCashPriceM2 != nil {
		return totalFromM2(in.SurfaceM2, *in.BatchCashPriceM2)
	}
	return decimal.Zero, domain.ErrNoPriceSource
}

func totalFromM2(surface, priceM2 decimal.Decimal) (decimal.Decimal, error) {
	total := surface.Mul(priceM2).Round(2)
	if !total.GreaterThan(decimal.Zero) {
		return decimal.Zero, domain.ErrNonPositivePrice
	}
	return total, nil
}
