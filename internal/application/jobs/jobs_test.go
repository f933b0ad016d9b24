package jobs_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func clock() time.Time { return testNow }

type fixture struct {
	store    *memory.Store
	products repository.ProductRepository
	batches  repository.BatchRepository
	alerts   repository.AlertRepository
}

func newFixture() *fixture {
	s := memory.NewStore()
	return &fixture{store: s, products: s.Products(), batches: s.Batches(), alerts: s.Alerts()}
}

func (f *fixture) product(t *testing.T, id string, reorder, cached int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		ID: id, Name: "Producto " + id, SKU: "SKU-" + id,
		ReorderPoint: qty(reorder), TotalStock: qty(cached), CreatedAt: testNow,
	}
	require.NoError(t, f.products.Create(context.Background(), p))
	return p
}

func (f *fixture) batch(t *testing.T, id, productID string, q int64, expiry *time.Time) {
	t.Helper()
	require.NoError(t, f.batches.Create(context.Background(), &entity.Batch{
		ID: id, ProductID: productID, LocationID: "loc-1", BatchNumber: "L-" + id,
		Quantity: qty(q), ExpiryDate: expiry, CreatedAt: testNow,
	}))
}

func (f *fixture) recalculator() *jobs.StockLevelRecalculator {
	return jobs.NewStockLevelRecalculator(f.products, f.batches, f.alerts, nil, jobs.Options{Now: clock})
}

func (f *fixture) generator() *jobs.AlertGenerator {
	return jobs.NewAlertGenerator(f.products, f.batches, f.alerts, nil, jobs.Options{Now: clock})
}

func (f *fixture) allAlerts(t *testing.T) []*entity.Alert {
	t.Helper()
	list, err := f.alerts.List(context.Background())
	require.NoError(t, err)
	return list
}

func at(d time.Duration) *time.Time {
	v := testNow.Add(d)
	return &v
}

const day = 24 * time.Hour

// ──────────────────────────────────────────────────────────────────────────────
// StockLevelRecalculator
// ──────────────────────────────────────────────────────────────────────────────

func TestStockLevel_SumaCantidadesDeLotes(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 5, 0)
	f.batch(t, "b1", "p1", 5, nil)
	f.batch(t, "b2", "p1", 0, nil)
	f.batch(t, "b3", "p1", 12, nil)

	res, err := f.recalculator().Run(context.Background(), "")
	require.NoError(t, err)

	p, err := f.products.GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, qty(17).Equal(p.TotalStock), "total_stock debe ser 17, fue %s", p.TotalStock)
	assert.Equal(t, 1, res.ProductsChecked)
	assert.Equal(t, 0, res.LowStockProducts)
	assert.Empty(t, f.allAlerts(t))
}

func TestStockLevel_UmbralDeReorden(t *testing.T) {
	f := newFixture()
	f.product(t, "igual", 10, 0)
	f.batch(t, "b1", "igual", 10, nil)
	f.product(t, "menos", 10, 0)
	f.batch(t, "b2", "menos", 9, nil)

	res, err := f.recalculator().Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 2, res.ProductsChecked)
	assert.Equal(t, 1, res.LowStockProducts)
	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.ProductTarget("menos"), alerts[0].Target)
	assert.Equal(t, entity.AlertTypeStock, alerts[0].Type)
	assert.Equal(t, entity.AlertLevelMedium, alerts[0].Level)
}

func TestStockLevel_SinStockEsSeveridadAlta(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 3, 99) // sin lotes: total recalculado = 0

	_, err := f.recalculator().Run(context.Background(), "")
	require.NoError(t, err)

	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.AlertLevelHigh, alerts[0].Level)
	assert.Contains(t, alerts[0].Message, "Current stock: 0, Reorder point: 3")
}

func TestStockLevel_NoDuplicaAlertaSinResolver(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 10, 0)
	f.batch(t, "b1", "p1", 2, nil)

	r := f.recalculator()
	first, err := r.Run(context.Background(), "")
	require.NoError(t, err)
	second, err := r.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, first.AlertsCreated)
	assert.Equal(t, 0, second.AlertsCreated)
	assert.Equal(t, 1, second.LowStockProducts, "sigue contando el producto aunque no cree alerta")
	assert.Len(t, f.allAlerts(t), 1)
}

func TestStockLevel_AlertaResueltaPermiteNuevaAlerta(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 10, 0)

	r := f.recalculator()
	_, err := r.Run(context.Background(), "")
	require.NoError(t, err)
	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	require.NoError(t, f.alerts.Resolve(context.Background(), alerts[0].ID, testNow))

	res, err := r.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.AlertsCreated)
	assert.Len(t, f.allAlerts(t), 2)
}

func TestStockLevel_UnSoloProducto(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 0, 0)
	f.product(t, "p2", 0, 0)
	f.batch(t, "b1", "p1", 4, nil)
	f.batch(t, "b2", "p2", 6, nil)

	res, err := f.recalculator().Run(context.Background(), "p2")
	require.NoError(t, err)
	assert.Equal(t, 1, res.ProductsChecked)

	p1, _ := f.products.GetByID(context.Background(), "p1")
	p2, _ := f.products.GetByID(context.Background(), "p2")
	assert.True(t, p1.TotalStock.IsZero(), "p1 no debe recalcularse")
	assert.True(t, qty(6).Equal(p2.TotalStock))
}

func TestStockLevel_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.recalculator().Run(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// failingBatches falla ListByProduct para un producto concreto.
type failingBatches struct {
	repository.BatchRepository
	failFor string
}

func (b failingBatches) ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	if productID == b.failFor {
		return nil, errors.New("timeout leyendo lotes")
	}
	return b.BatchRepository.ListByProduct(ctx, productID)
}

func TestStockLevel_ToleraFallaParcial(t *testing.T) {
	f := newFixture()
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("p%d", i)
		f.product(t, id, 0, 0)
		f.batch(t, "b"+id, id, 3, nil)
	}

	r := jobs.NewStockLevelRecalculator(f.products, failingBatches{f.batches, "p4"}, f.alerts, nil, jobs.Options{Now: clock})
	res, err := r.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 10, res.ProductsChecked)
	assert.Equal(t, 1, res.Skipped)

	products, err := f.products.List(context.Background())
	require.NoError(t, err)
	updated := 0
	for _, p := range products {
		if p.TotalStock.Equal(qty(3)) {
			updated++
		}
	}
	assert.Equal(t, 9, updated)
}

// failingProducts falla la lectura inicial.
type failingProducts struct {
	repository.ProductRepository
}

func (failingProducts) List(context.Context) ([]*entity.Product, error) {
	return nil, errors.New("conexión rechazada")
}

func (failingProducts) ListBelowReorderPoint(context.Context) ([]*entity.Product, error) {
	return nil, errors.New("conexión rechazada")
}

func TestStockLevel_FallaLecturaInicial(t *testing.T) {
	f := newFixture()
	r := jobs.NewStockLevelRecalculator(failingProducts{f.products}, f.batches, f.alerts, nil, jobs.Options{})

	_, err := r.Run(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error fetching products")
}

// ──────────────────────────────────────────────────────────────────────────────
// AlertGenerator
// ──────────────────────────────────────────────────────────────────────────────

func TestAlertGenerator_VentanaDeVencimiento(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 0, 100)
	f.batch(t, "dentro", "p1", 5, at(29*day))
	f.batch(t, "fuera", "p1", 5, at(30*day+time.Second))
	f.batch(t, "vacio", "p1", 0, at(10*day))
	f.batch(t, "vencido", "p1", 5, at(-day))
	f.batch(t, "sin-fecha", "p1", 5, nil)

	res, err := f.generator().Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.AlertsGenerated)
	assert.Equal(t, 1, res.ExpiryAlerts)
	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	assert.Equal(t, entity.BatchTarget("dentro"), alerts[0].Target)
	assert.Equal(t, entity.AlertLevelMedium, alerts[0].Level)
	assert.Equal(t, "Batch L-dentro of Producto p1 (SKU-p1) will expire in 29 days", alerts[0].Message)
}

func TestAlertGenerator_SeveridadDeVencimiento(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 0, 100)
	f.batch(t, "siete", "p1", 1, at(7*day))
	f.batch(t, "ocho", "p1", 1, at(7*day+time.Minute))

	_, err := f.generator().Run(context.Background())
	require.NoError(t, err)

	levels := map[string]entity.AlertLevel{}
	for _, a := range f.allAlerts(t) {
		levels[a.Target.ID] = a.Level
	}
	assert.Equal(t, entity.AlertLevelHigh, levels["siete"])
	assert.Equal(t, entity.AlertLevelMedium, levels["ocho"])
}

func TestAlertGenerator_StockBajoUsaValorCacheado(t *testing.T) {
	f := newFixture()
	f.product(t, "bajo", 10, 9)
	f.product(t, "igual", 10, 10)
	f.product(t, "cero", 10, 0)
	f.batch(t, "b1", "bajo", 50, nil) // no se recalcula: la pasada B lee total_stock cacheado

	res, err := f.generator().Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.StockAlerts)
	levels := map[string]entity.AlertLevel{}
	for _, a := range f.allAlerts(t) {
		assert.Equal(t, entity.AlertTypeStock, a.Type)
		levels[a.Target.ID] = a.Level
	}
	assert.Equal(t, entity.AlertLevelMedium, levels["bajo"])
	assert.Equal(t, entity.AlertLevelHigh, levels["cero"])
	assert.NotContains(t, levels, "igual")
}

func TestAlertGenerator_Idempotente(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 10, 2)
	f.batch(t, "b1", "p1", 2, at(3*day))

	g := f.generator()
	first, err := g.Run(context.Background())
	require.NoError(t, err)
	countAfterFirst := len(f.allAlerts(t))

	second, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, first.AlertsGenerated)
	assert.Equal(t, 0, second.AlertsGenerated)
	assert.Len(t, f.allAlerts(t), countAfterFirst)
}

func TestAlertGenerator_NoDuplicaAlertaDelRecalculo(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 10, 0)
	f.batch(t, "b1", "p1", 1, nil)

	_, err := f.recalculator().Run(context.Background(), "")
	require.NoError(t, err)
	res, err := f.generator().Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, res.StockAlerts)
	assert.Len(t, f.allAlerts(t), 1)
}

// missingProductLookup simula error al leer el producto de un lote.
type missingProductLookup struct {
	repository.ProductRepository
	failFor string
}

func (m missingProductLookup) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	if id == m.failFor {
		return nil, errors.New("fila bloqueada")
	}
	return m.ProductRepository.GetByID(ctx, id)
}

func TestAlertGenerator_OmiteLoteSiFallaProducto(t *testing.T) {
	f := newFixture()
	f.product(t, "ok", 0, 10)
	f.product(t, "roto", 0, 10)
	f.batch(t, "b-ok", "ok", 1, at(5*day))
	f.batch(t, "b-roto", "roto", 1, at(5*day))

	g := jobs.NewAlertGenerator(missingProductLookup{f.products, "roto"}, f.batches, f.alerts, nil, jobs.Options{Now: clock})
	res, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.AlertsGenerated)
	alerts := f.allAlerts(t)
	require.Len(t, alerts, 1)
	assert.Equal(t, "b-ok", alerts[0].Target.ID)
}

func TestAlertGenerator_FallaPasadaBConservaInsercionesDeA(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 0, 10)
	f.batch(t, "b1", "p1", 1, at(5*day))

	g := jobs.NewAlertGenerator(failingProducts{f.products}, f.batches, f.alerts, nil, jobs.Options{Now: clock})
	_, err := g.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error fetching low stock products")

	assert.Len(t, f.allAlerts(t), 1, "la alerta de vencimiento insertada antes del fallo se conserva")
}

// ──────────────────────────────────────────────────────────────────────────────
// Lock de ejecución
// ──────────────────────────────────────────────────────────────────────────────

type recordingLocker struct {
	acquireErr error
	keys       []string
	released   int
}

func (l *recordingLocker) Acquire(_ context.Context, key string, _ time.Duration) (func(context.Context) error, error) {
	l.keys = append(l.keys, key)
	if l.acquireErr != nil {
		return nil, l.acquireErr
	}
	return func(context.Context) error { l.released++; return nil }, nil
}

func TestRunLock_SeLiberaAlTerminar(t *testing.T) {
	f := newFixture()
	locker := &recordingLocker{}
	g := jobs.NewAlertGenerator(f.products, f.batches, f.alerts, nil, jobs.Options{Now: clock, Locker: locker})

	_, err := g.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"lock:jobs:generate-alerts"}, locker.keys)
	assert.Equal(t, 1, locker.released)
}

func TestRunLock_SinLockSeEjecutaIgual(t *testing.T) {
	f := newFixture()
	f.product(t, "p1", 10, 0)
	locker := &recordingLocker{acquireErr: jobs.ErrLockNotObtained}
	r := jobs.NewStockLevelRecalculator(f.products, f.batches, f.alerts, nil, jobs.Options{Now: clock, Locker: locker})

	res, err := r.Run(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, 1, res.ProductsChecked)
	assert.Equal(t, 0, locker.released)
}
