package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch representa una etapa o manzana del proyecto: un grupo de lotes con
// ubicación y precio de contado por metro cuadrado.
type Batch struct {
	ID          string
	Name        string
	Location    string
	CashPriceM2 decimal.Decimal // precio de contado por m² (fallback de precio)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
