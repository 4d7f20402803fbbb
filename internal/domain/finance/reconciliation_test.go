package finance_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jhoicas/Terrenos-api/internal/domain/entity"
	"github.com/jhoicas/Terrenos-api/internal/domain/finance"
)

var (
	periodStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)
	refTime     = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
)

func dec(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func input(records ...finance.SaleRecord) finance.ReconcileInput {
	return finance.ReconcileInput{
		Records:       records,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		ReferenceTime: refTime,
	}
}

func fullSale(id, status, price, deposit string) *entity.Sale {
	return &entity.Sale{
		ID: id, ClientID: "client-" + id, SellerID: "seller-1", BatchID: "batch-1",
		PieceID: "piece-" + id, SalePrice: dec(price), DepositAmount: dec(deposit),
		Status: status, Terms: entity.FullPaymentTerms{},
	}
}

func installmentSale(id, status, price, deposit, advance string) *entity.Sale {
	return &entity.Sale{
		ID: id, ClientID: "client-" + id, SellerID: "seller-1", BatchID: "batch-1",
		PieceID: "piece-" + id, SalePrice: dec(price), DepositAmount: dec(deposit),
		Status: status,
		Terms:  entity.InstallmentTerms{OfferID: "offer-1", AdvanceAfterDeposit: dec(advance)},
	}
}

func promiseSale(id, status, price, deposit, partial string) *entity.Sale {
	return &entity.Sale{
		ID: id, ClientID: "client-" + id, SellerID: "seller-1", BatchID: "batch-1",
		PieceID: "piece-" + id, SalePrice: dec(price), DepositAmount: dec(deposit),
		Status: status, Terms: entity.PromiseTerms{PartialAmount: dec(partial)},
	}
}

func inst(saleID string, number int, due time.Time, amountDue, amountPaid string, paid bool) *entity.InstallmentPayment {
	status := entity.InstallmentStatusPending
	if paid {
		status = entity.InstallmentStatusPaid
	}
	return &entity.InstallmentPayment{
		ID: fmt.Sprintf("%s-%d", saleID, number), SaleID: saleID, Number: number,
		AmountDue: dec(amountDue), AmountPaid: dec(amountPaid), DueDate: due, Status: status,
	}
}

// Venta de contado completada: ingreso total; lo recaudado se parte en
// depósito + saldo, sin doble conteo.
func TestReconcile_VentaContadoCompletada(t *testing.T) {
	s := finance.Reconcile(input(finance.SaleRecord{
		Sale: fullSale("s1", entity.SaleStatusCompleted, "36000", "5000"),
	}))

	assert.True(t, s.TotalRevenue.Equal(dec("36000")))
	assert.True(t, s.Collected.Deposits.Equal(dec("5000")))
	assert.True(t, s.Collected.FullRemainders.Equal(dec("31000")))
	assert.True(t, s.TotalCollected.Equal(dec("36000")))
	assert.Equal(t, 1, s.CompletedCount)
}

// Venta pendiente: solo cuenta el depósito, sin ingreso todavía.
func TestReconcile_VentaPendienteSoloDeposito(t *testing.T) {
	s := finance.Reconcile(input(finance.SaleRecord{
		Sale: fullSale("s1", entity.SaleStatusPending, "36000", "5000"),
	}))

	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.TotalCollected.Equal(dec("5000")))
	assert.True(t, s.Collected.FullRemainders.IsZero())
}

// Venta financiada completada con libro mixto: depósito + prima + cuotas
// pagadas en categorías disyuntas; las pendientes vencidas van a overdue.
func TestReconcile_VentaFinanciadaConLibro(t *testing.T) {
	sale := installmentSale("s1", entity.SaleStatusCompleted, "50000", "1000", "1000")
	rows := []*entity.InstallmentPayment{
		inst("s1", 1, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "24000", "24000", true),
		inst("s1", 2, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), "24000", "6000", false),
	}
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale, Installments: rows}))

	assert.True(t, s.TotalRevenue.Equal(dec("50000")))
	assert.True(t, s.Collected.Deposits.Equal(dec("1000")))
	assert.True(t, s.Collected.Advances.Equal(dec("1000")))
	assert.True(t, s.Collected.Installments.Equal(dec("24000")), "solo cuotas pagadas")
	assert.True(t, s.TotalCollected.Equal(dec("26000")))

	// la cuota 2 está vencida a la referencia, con saldo 18000
	assert.True(t, s.OverdueAmount.Equal(dec("18000")))
	assert.Equal(t, 1, s.OverdueCount)
	// y su vencimiento cae dentro del período ⇒ esperada en el período
	assert.True(t, s.ExpectedThisPeriod.Equal(dec("18000")))
	assert.Empty(t, s.Warnings)
}

// Escenario D del libro: cuota vencida 2024-01-01 de 1000 sin abonos,
// referencia 2024-02-01 ⇒ overdue con saldo 1000.
func TestReconcile_CuotaVencidaSinAbonos(t *testing.T) {
	sale := installmentSale("s1", entity.SaleStatusCompleted, "2000", "0", "0")
	rows := []*entity.InstallmentPayment{
		inst("s1", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "1000", "0", false),
		inst("s1", 2, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "1000", "0", false),
	}
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale, Installments: rows}))

	assert.True(t, s.OverdueAmount.Equal(dec("1000")), "solo la cuota ya vencida")
	assert.Equal(t, 1, s.OverdueCount)
	// la cuota 2 vence fuera del período ⇒ no es esperada en el período
	assert.True(t, s.ExpectedThisPeriod.Equal(dec("1000")))
}

// Promesa: abono parcial 8000 con depósito 3000 ⇒ 5000 en la categoría
// promesa y 3000 en depósitos.
func TestReconcile_PromesaDeVenta(t *testing.T) {
	s := finance.Reconcile(input(finance.SaleRecord{
		Sale: promiseSale("s1", entity.SaleStatusCompleted, "40000", "3000", "8000"),
	}))

	assert.True(t, s.Collected.Promises.Equal(dec("5000")))
	assert.True(t, s.Collected.Deposits.Equal(dec("3000")))
	assert.True(t, s.TotalCollected.Equal(dec("8000")))
}

// Si el abono parcial no supera el depósito, la categoría promesa queda en cero.
func TestReconcile_PromesaSinExcedente(t *testing.T) {
	s := finance.Reconcile(input(finance.SaleRecord{
		Sale: promiseSale("s1", entity.SaleStatusCompleted, "40000", "3000", "3000"),
	}))
	assert.True(t, s.Collected.Promises.IsZero())
	assert.True(t, s.TotalCollected.Equal(dec("3000")))
}

// Una venta cancelada aporta exactamente cero a todos los agregados.
func TestReconcile_VentaCanceladaAportaCero(t *testing.T) {
	sale := installmentSale("s1", entity.SaleStatusCancelled, "50000", "1000", "1000")
	rows := []*entity.InstallmentPayment{
		inst("s1", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "24000", "24000", true),
	}
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale, Installments: rows}))

	assert.True(t, s.TotalRevenue.IsZero())
	assert.True(t, s.TotalCollected.IsZero())
	assert.True(t, s.OverdueAmount.IsZero())
	assert.True(t, s.ExpectedThisPeriod.IsZero())
	assert.True(t, s.Commission.IsZero())
	assert.Equal(t, 0, s.SalesCount)
	assert.Empty(t, s.BySeller)
	assert.Empty(t, s.ByLocation)
}

// Venta financiada completada sin libro: cuenta en ingresos, depósito y prima
// ("plan aún no activo"), pero no en cuotas/vencidos, y el reporte no aborta.
func TestReconcile_LibroFaltanteNoAborta(t *testing.T) {
	sale := installmentSale("s1", entity.SaleStatusCompleted, "50000", "1000", "1000")
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale}))

	assert.True(t, s.TotalRevenue.Equal(dec("50000")))
	assert.True(t, s.TotalCollected.Equal(dec("2000")))
	assert.True(t, s.Collected.Installments.IsZero())
	assert.True(t, s.OverdueAmount.IsZero())
	assert.Empty(t, s.Warnings)
}

// Un plan que no concilia con el precio se reporta como advertencia y se
// excluye de las categorías de cuotas, sin incluirse en silencio.
func TestReconcile_DescuadreGeneraAdvertencia(t *testing.T) {
	sale := installmentSale("s1", entity.SaleStatusCompleted, "50000", "1000", "1000")
	rows := []*entity.InstallmentPayment{
		inst("s1", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "10000", "10000", true),
	}
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale, Installments: rows}))

	require.Len(t, s.Warnings, 1)
	assert.Equal(t, "s1", s.Warnings[0].SaleID)
	assert.True(t, s.Collected.Installments.IsZero(), "excluida de los agregados estrictos")
	assert.True(t, s.TotalRevenue.Equal(dec("50000")), "los ingresos sí se reportan")
}

// Comisión: se agrega aparte de las categorías de recaudo del cliente.
func TestReconcile_ComisionSeparada(t *testing.T) {
	sale := fullSale("s1", entity.SaleStatusCompleted, "36000", "5000")
	sale.CompanyFee = dec("1200")
	s := finance.Reconcile(input(finance.SaleRecord{Sale: sale}))

	assert.True(t, s.Commission.Equal(dec("1200")))
	assert.True(t, s.TotalCollected.Equal(dec("36000")), "la comisión no infla lo recaudado")
}

// Invariante: la suma de categorías por venta es el aporte de esa venta al
// total recaudado (sin doble conteo entre ventas heterogéneas).
func TestReconcile_CategoriasDisyuntasSumanTotal(t *testing.T) {
	full := fullSale("s1", entity.SaleStatusCompleted, "36000", "5000")
	fin := installmentSale("s2", entity.SaleStatusCompleted, "50000", "1000", "1000")
	finRows := []*entity.InstallmentPayment{
		inst("s2", 1, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), "24000", "24000", true),
		inst("s2", 2, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), "24000", "0", false),
	}
	prom := promiseSale("s3", entity.SaleStatusCompleted, "40000", "3000", "8000")

	s := finance.Reconcile(input(
		finance.SaleRecord{Sale: full},
		finance.SaleRecord{Sale: fin, Installments: finRows},
		finance.SaleRecord{Sale: prom},
	))

	// 36000 (contado) + 26000 (dep+prima+cuota pagada) + 8000 (dep+promesa)
	assert.True(t, s.TotalCollected.Equal(dec("70000")))
	perCategory := s.Collected.Deposits.Add(s.Collected.Advances).
		Add(s.Collected.FullRemainders).Add(s.Collected.Installments).Add(s.Collected.Promises)
	assert.True(t, perCategory.Equal(s.TotalCollected))
}

// Desgloses por vendedor y ubicación, ordenados por recaudo descendente.
func TestReconcile_Desgloses(t *testing.T) {
	s1 := fullSale("s1", entity.SaleStatusCompleted, "36000", "5000")
	s1.SellerID, s1.BatchID = "seller-a", "batch-norte"
	s1.CompanyFee = dec("500")
	s2 := fullSale("s2", entity.SaleStatusCompleted, "80000", "10000")
	s2.SellerID, s2.BatchID = "seller-b", "batch-sur"
	s3 := fullSale("s3", entity.SaleStatusPending, "20000", "2000")
	s3.SellerID, s3.BatchID = "seller-a", "batch-norte"

	s := finance.Reconcile(input(
		finance.SaleRecord{Sale: s1, SellerName: "Ana", BatchLocation: "Zona Norte"},
		finance.SaleRecord{Sale: s2, SellerName: "Luis", BatchLocation: "Zona Sur"},
		finance.SaleRecord{Sale: s3, SellerName: "Ana", BatchLocation: "Zona Norte"},
	))

	require.Len(t, s.BySeller, 2)
	assert.Equal(t, "seller-b", s.BySeller[0].SellerID, "mayor recaudo primero")
	assert.True(t, s.BySeller[0].Collected.Equal(dec("80000")))
	assert.Equal(t, "seller-a", s.BySeller[1].SellerID)
	assert.True(t, s.BySeller[1].Collected.Equal(dec("38000")))
	assert.True(t, s.BySeller[1].Commission.Equal(dec("500")))
	assert.Equal(t, 2, s.BySeller[1].SalesCount)

	require.Len(t, s.ByLocation, 2)
	assert.Equal(t, "batch-sur", s.ByLocation[0].BatchID)
	assert.Equal(t, "Zona Norte", s.ByLocation[1].Location)
	assert.Equal(t, 2, s.ByLocation[1].PieceCount)
	assert.Equal(t, 2, s.ByLocation[1].ClientCount)
}
