package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote.
const (
	PieceStatusAvailable = "available" // disponible para venta
	PieceStatusReserved  = "reserved"  // con venta pendiente
	PieceStatusSold      = "sold"      // con venta completada
)

// Piece representa un lote de terreno dentro de una etapa (Batch).
// Datos de referencia inmutables para el motor de precios: superficie en m²
// y, opcionalmente, un precio directo que prevalece sobre el precio de la etapa.
type Piece struct {
	ID          string
	BatchID     string
	Number      string
	SurfaceM2   decimal.Decimal
	DirectPrice *decimal.Decimal // override de precio total de contado; nil si no aplica
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
