package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

var (
	products = []*entity.Product{
		{ID: "p1", Name: "Guantes de nitrilo", SKU: "GL-100", Category: "Protección"},
		{ID: "p2", Name: "Alcohol", SKU: "AL-200", Category: "Antisépticos"},
	}
	locations = []*entity.Location{
		{ID: "l1", Code: "WH-N", Name: "Bodega Norte", Description: "Planta baja"},
		{ID: "l2", Code: "WH-S", Name: "Bodega Sur"},
	}
	batches = []*entity.Batch{
		{ID: "b1", ProductID: "p1", LocationID: "l1", BatchNumber: "LOT-2024-01"},
		{ID: "b2", ProductID: "p2", LocationID: "l2", BatchNumber: "LOT-2024-02"},
	}
)

func TestMatches(t *testing.T) {
	assert.True(t, search.Matches("", "cualquier"))
	assert.True(t, search.Matches("   ", "cualquier"))
	assert.True(t, search.Matches("gl-1", "Guantes", "GL-100"))
	assert.True(t, search.Matches("GUANTES", "guantes"))
	assert.True(t, search.Matches("guantes gl", "Guantes", "GL-100"), "coincide sobre campos unidos por espacio")
	assert.False(t, search.Matches("guantesgl", "Guantes", "", "GL-100"))
	assert.False(t, search.Matches("xyz", "Guantes"))
}

func TestFilterProducts_PorCategoria(t *testing.T) {
	got := search.FilterProducts(products, "antisép")
	assert.Len(t, got, 1)
	assert.Equal(t, "p2", got[0].ID)

	assert.Len(t, search.FilterProducts(products, ""), 2)
}

func TestFilterLocations_PorDescripcion(t *testing.T) {
	got := search.FilterLocations(locations, "planta")
	assert.Len(t, got, 1)
	assert.Equal(t, "l1", got[0].ID)
}

func TestFilterBatches_PorProductoYUbicacion(t *testing.T) {
	pIdx, lIdx := search.IndexProducts(products), search.IndexLocations(locations)

	got := search.FilterBatches(batches, pIdx, lIdx, "nitrilo")
	assert.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	got = search.FilterBatches(batches, pIdx, lIdx, "wh-s")
	assert.Len(t, got, 1)
	assert.Equal(t, "b2", got[0].ID)

	assert.Len(t, search.FilterBatches(batches, pIdx, lIdx, "lot-2024"), 2)
}

func TestFilterMovements_DescartaLoteDesconocido(t *testing.T) {
	movements := []*entity.Movement{
		{ID: "m1", BatchID: "b1", SourceLocationID: "l1", DestinationLocationID: "l2", Notes: "traslado urgente"},
		{ID: "m2", BatchID: "huérfano", SourceLocationID: "l1", DestinationLocationID: "l2"},
	}
	bIdx, pIdx, lIdx := search.IndexBatches(batches), search.IndexProducts(products), search.IndexLocations(locations)

	got := search.FilterMovements(movements, bIdx, pIdx, lIdx, "")
	assert.Len(t, got, 1, "el término vacío no recupera movimientos sin lote")
	assert.Equal(t, "m1", got[0].ID)

	assert.Len(t, search.FilterMovements(movements, bIdx, pIdx, lIdx, "bodega sur"), 1)
	assert.Len(t, search.FilterMovements(movements, bIdx, pIdx, lIdx, "urgente"), 1)
	assert.Empty(t, search.FilterMovements(movements, bIdx, pIdx, lIdx, "alcohol"))
}

func TestFilterAlerts_EstadoYProductoPorLote(t *testing.T) {
	alerts := []*entity.Alert{
		{ID: "a1", Type: entity.AlertTypeStock, Message: "below reorder point", Target: entity.ProductTarget("p2")},
		{ID: "a2", Type: entity.AlertTypeExpiry, Message: "will expire", Target: entity.BatchTarget("b1"), Resolved: true},
	}
	pIdx, bIdx := search.IndexProducts(products), search.IndexBatches(batches)

	got := search.FilterAlerts(alerts, pIdx, bIdx, "nitrilo", search.StatusAll)
	assert.Len(t, got, 1)
	assert.Equal(t, "a2", got[0].ID, "el producto se resuelve a través del lote")

	got = search.FilterAlerts(alerts, pIdx, bIdx, "", search.StatusUnresolved)
	assert.Len(t, got, 1)
	assert.Equal(t, "a1", got[0].ID)

	assert.Len(t, search.FilterAlerts(alerts, pIdx, bIdx, "expiry", search.StatusResolved), 1)
	assert.Empty(t, search.FilterAlerts(alerts, pIdx, bIdx, "expiry", search.StatusUnresolved))
}

func TestParseAlertStatus(t *testing.T) {
	assert.Equal(t, search.StatusResolved, search.ParseAlertStatus("Resolved"))
	assert.Equal(t, search.StatusUnresolved, search.ParseAlertStatus("unresolved"))
	assert.Equal(t, search.StatusAll, search.ParseAlertStatus(""))
	assert.Equal(t, search.StatusAll, search.ParseAlertStatus("otro"))
}
