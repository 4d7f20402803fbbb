// Package finance implementa el motor de conciliación financiera: un fold
// puro y de solo lectura sobre un snapshot de ventas y sus cuotas, que produce
// totales por categorías disyuntas (sin doble conteo) y desgloses por
// vendedor y por ubicación. El snapshot y el instante de referencia se
// reciben explícitos: no hay caché ni recálculo por señales ambientales.
package finance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/ledger"
)

// SaleRecord una venta del snapshot con su libro de cuotas y los datos de
// referencia ya resueltos (nombre del vendedor, ubicación de la etapa).
type SaleRecord struct {
	Sale          *entity.Sale
	Installments  []*entity.InstallmentPayment
	SellerName    string
	BatchLocation string
}

// ReconcileInput snapshot de entrada: ventas de la ventana de reporte (ya sin
// canceladas), el período y un único instante de referencia para evaluar
// vencimientos en todo el pase.
type ReconcileInput struct {
	Records       []SaleRecord
	PeriodStart   time.Time
	PeriodEnd     time.Time
	ReferenceTime time.Time
}

// CollectedBreakdown categorías disyuntas de lo recaudado. Cada unidad
// monetaria de una venta aporta a exactamente una categoría.
type CollectedBreakdown struct {
	Deposits       decimal.Decimal `json:"deposits"`        // depósitos de ventas no canceladas
	Advances       decimal.Decimal `json:"advances"`        // prima restante de ventas financiadas completadas
	FullRemainders decimal.Decimal `json:"full_remainders"` // saldo (precio − depósito) de ventas de contado completadas
	Installments   decimal.Decimal `json:"installments"`    // abonos de cuotas pagadas
	Promises       decimal.Decimal `json:"promises"`        // abono parcial − depósito de promesas, cuando es positivo
}

// Total suma de todas las categorías de recaudo.
func (c CollectedBreakdown) Total() decimal.Decimal {
	return c.Deposits.Add(c.Advances).Add(c.FullRemainders).Add(c.Installments).Add(c.Promises)
}

// SellerSummary desglose por vendedor, ordenado por recaudo descendente.
type SellerSummary struct {
	SellerID   string          `json:"seller_id"`
	SellerName string          `json:"seller_name"`
	Revenue    decimal.Decimal `json:"revenue"`
	Collected  decimal.Decimal `json:"collected"`
	Commission decimal.Decimal `json:"commission"`
	SalesCount int             `json:"sales_count"`
}

// LocationSummary desglose por ubicación de etapa, ordenado por recaudo
// descendente.
type LocationSummary struct {
	BatchID     string          `json:"batch_id"`
	Location    string          `json:"location"`
	Revenue     decimal.Decimal `json:"revenue"`
	Collected   decimal.Decimal `json:"collected"`
	PieceCount  int             `json:"piece_count"`
	ClientCount int             `json:"client_count"`
}

// Summary resultado completo de la conciliación. Internamente consistente:
// TotalCollected = Collected.Total(), y una venta cancelada aporta cero a
// todos los campos.
type Summary struct {
	TotalRevenue       decimal.Decimal    `json:"total_revenue"`
	TotalCollected     decimal.Decimal    `json:"total_collected"`
	Collected          CollectedBreakdown `json:"collected"`
	Commission         decimal.Decimal    `json:"commission"`
	OverdueAmount      decimal.Decimal    `json:"overdue_amount"`
	OverdueCount       int                `json:"overdue_count"`
	ExpectedThisPeriod decimal.Decimal    `json:"expected_this_period"`
	SalesCount         int                `json:"sales_count"`
	CompletedCount     int                `json:"completed_count"`
	BySeller           []SellerSummary    `json:"by_seller"`
	ByLocation         []LocationSummary  `json:"by_location"`
	Warnings           []*ledger.Mismatch `json:"warnings,omitempty"`
}

// saleContribution aporte financiero de una sola venta. Las contribuciones
// son independientes entre ventas, así que el fold final es una suma
// asociativa por categoría.
type saleContribution struct {
	revenue      decimal.Decimal
	collected    CollectedBreakdown
	commission   decimal.Decimal
	overdue      decimal.Decimal
	overdueCount int
	expected     decimal.Decimal
	warning      *ledger.Mismatch
}

// Reconcile evalúa el snapshot completo. Nunca aborta por anomalías de una
// venta: un libro faltante la deja fuera de las categorías de cuotas ("plan
// aún no activo") y un plan que no concilia se reporta como advertencia y se
// excluye de los agregados estrictos.
func Reconcile(in ReconcileInput) *Summary {
	s := &Summary{}
	sellers := make(map[string]*SellerSummary)
	locations := make(map[string]*LocationSummary)
	locationClients := make(map[string]map[string]struct{})
	locationPieces := make(map[string]map[string]struct{})

	for _, rec := range in.Records {
		sale := rec.Sale
		if sale == nil || sale.Status == entity.SaleStatusCancelled {
			// Una venta cancelada aporta exactamente cero a todos los agregados.
			continue
		}
		c := contribution(rec, in)

		s.SalesCount++
		if sale.Status == entity.SaleStatusCompleted {
			s.CompletedCount++
		}
		s.TotalRevenue = s.TotalRevenue.Add(c.revenue)
		s.Collected.Deposits = s.Collected.Deposits.Add(c.collected.Deposits)
		s.Collected.Advances = s.Collected.Advances.Add(c.collected.Advances)
		s.Collected.FullRemainders = s.Collected.FullRemainders.Add(c.collected.FullRemainders)
		s.Collected.Installments = s.Collected.Installments.Add(c.collected.Installments)
		s.Collected.Promises = s.Collected.Promises.Add(c.collected.Promises)
		s.Commission = s.Commission.Add(c.commission)
		s.OverdueAmount = s.OverdueAmount.Add(c.overdue)
		s.OverdueCount += c.overdueCount
		s.ExpectedThisPeriod = s.ExpectedThisPeriod.Add(c.expected)
		if c.warning != nil {
			s.Warnings = append(s.Warnings, c.warning)
		}

		collectedTotal := c.collected.Total()

		seller, ok := sellers[sale.SellerID]
		if !ok {
			seller = &SellerSummary{SellerID: sale.SellerID, SellerName: rec.SellerName}
			sellers[sale.SellerID] = seller
		}
		seller.Revenue = seller.Revenue.Add(c.revenue)
		seller.Collected = seller.Collected.Add(collectedTotal)
		seller.Commission = seller.Commission.Add(c.commission)
		seller.SalesCount++

		loc, ok := locations[sale.BatchID]
		if !ok {
			loc = &LocationSummary{BatchID: sale.BatchID, Location: rec.BatchLocation}
			locations[sale.BatchID] = loc
			locationClients[sale.BatchID] = make(map[string]struct{})
			locationPieces[sale.BatchID] = make(map[string]struct{})
		}
		loc.Revenue = loc.Revenue.Add(c.revenue)
		loc.Collected = loc.Collected.Add(collectedTotal)
		locationClients[sale.BatchID][sale.ClientID] = struct{}{}
		locationPieces[sale.BatchID][sale.PieceID] = struct{}{}
	}

	s.TotalCollected = s.Collected.Total()

	for id, loc := range locations {
		loc.ClientCount = len(locationClients[id])
		loc.PieceCount = len(locationPieces[id])
		s.ByLocation = append(s.ByLocation, *loc)
	}
	for _, seller := range sellers {
		s.BySeller = append(s.BySeller, *seller)
	}
	sortByCollected(s.BySeller, s.ByLocation)
	return s
}

// contribution calcula el aporte de una venta no cancelada a cada categoría.
// El switch sobre la variante de Terms es exhaustivo por método de pago.
func contribution(rec SaleRecord, in ReconcileInput) saleContribution {
	sale := rec.Sale
	completed := sale.Status == entity.SaleStatusCompleted
	var c saleContribution

	if completed {
		c.revenue = sale.SalePrice
	}
	// El depósito se captura al crear la venta: cuenta para toda venta no cancelada.
	c.collected.Deposits = sale.DepositAmount
	c.commission = sale.CompanyFee

	switch terms := sale.Terms.(type) {
	case entity.FullPaymentTerms:
		if completed {
			c.collected.FullRemainders = sale.SalePrice.Sub(sale.DepositAmount)
		}

	case entity.InstallmentTerms:
		if completed {
			c.collected.Advances = terms.AdvanceAfterDeposit
		}
		if len(rec.Installments) == 0 {
			// Plan aún no materializado: la venta cuenta en ingresos y depósito,
			// pero no en las categorías de cuotas.
			return c
		}
		if m := ledger.CheckConsistency(sale, rec.Installments); m != nil {
			c.warning = m
			return c
		}
		for _, row := range rec.Installments {
			switch {
			case row.Status == entity.InstallmentStatusPaid:
				c.collected.Installments = c.collected.Installments.Add(row.AmountPaid)
			case ledger.IsOverdue(row, in.ReferenceTime):
				c.overdue = c.overdue.Add(row.Outstanding())
				c.overdueCount++
			}
			if row.Status == entity.InstallmentStatusPending && inPeriod(row.DueDate, in.PeriodStart, in.PeriodEnd) {
				c.expected = c.expected.Add(row.Outstanding())
			}
		}

	case entity.PromiseTerms:
		if diff := terms.PartialAmount.Sub(sale.DepositAmount); diff.GreaterThan(decimal.Zero) {
			c.collected.Promises = diff
		}
	}
	return c
}

func inPeriod(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// sortByCollected ordena ambos desgloses por recaudo descendente, con el ID
// como desempate para que el reporte sea determinista.
func sortByCollected(sellers []SellerSummary, locations []LocationSummary) {
	sort.Slice(sellers, func(i, j int) bool {
		if !sellers[i].Collected.Equal(sellers[j].Collected) {
			return sellers[i].Collected.GreaterThan(sellers[j].Collected)
		}
		return sellers[i].SellerID < sellers[j].SellerID
	})
	sort.Slice(locations, func(i, j int) bool {
		if !locations[i].Collected.Equal(locations[j].Collected) {
			return locations[i].Collected.GreaterThan(locations[j].Collected)
		}
		return locations[i].BatchID < locations[j].BatchID
	})
}
