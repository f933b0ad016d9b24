package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/stock-inventory-api/internal/application/analytics"
	"github.com/jhoicas/stock-inventory-api/internal/application/inventory"
	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stock-inventory-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// App completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	s := memory.NewStore()
	products, locations, batches := s.Products(), s.Locations(), s.Batches()
	movements, alerts := s.Movements(), s.Alerts()

	alertUC := usecase.NewAlertUseCase(alerts, products, batches)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ServiceName:      "stock-inventory-test",
		ProductUC:        usecase.NewProductUseCase(products),
		LocationUC:       usecase.NewLocationUseCase(locations),
		BatchUC:          usecase.NewBatchUseCase(batches, products, locations),
		MovementUC:       usecase.NewMovementUseCase(movements, batches, products, locations),
		AlertUC:          alertUC,
		AlertExportUC:    usecase.NewAlertExportUseCase(alertUC, nil, nil),
		RegisterMovement: inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s), batches, locations),
		ReplenishmentUC:  inventory.NewReplenishmentUseCase(products),
		DashboardUC:      appanalytics.NewDashboardUseCase(products, locations, batches, alerts, 0),
		StockJob:         jobs.NewStockLevelRecalculator(products, batches, alerts, nil, jobs.Options{}),
		AlertJob:         jobs.NewAlertGenerator(products, batches, alerts, nil, jobs.Options{}),
		JWTSecret:        testJWTSecret,
		JWTIssuer:        testIssuer,
	})
	return &apiClient{t: t, app: app, token: tokenForRole(t, "authenticated")}
}

// do envía la petición autenticada y decodifica el JSON de respuesta en out (si no es nil).
func (a *apiClient) do(method, path string, body any, out any) int {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", a.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(a.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type idResp struct {
	ID string `json:"id"`
}

func (a *apiClient) seed() (productID, locA, locB, batchID string) {
	a.t.Helper()
	var p, la, lb, b idResp
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/api/products", map[string]any{
		"sku": "LECHE-1L", "name": "Leche entera", "unit": "unidad", "price": "2.50", "reorder_point": "10",
	}, &p))
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/api/locations", map[string]any{
		"code": "A-01", "name": "Bodega principal",
	}, &la))
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/api/locations", map[string]any{
		"code": "B-01", "name": "Tienda centro",
	}, &lb))
	expiry := time.Now().Add(10 * 24 * time.Hour)
	require.Equal(a.t, http.StatusCreated, a.do(http.MethodPost, "/api/batches", map[string]any{
		"product_id": p.ID, "location_id": la.ID, "batch_number": "L-2026-01", "quantity": "8", "expiry_date": expiry,
	}, &b))
	return p.ID, la.ID, lb.ID, b.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stock-inventory-test", body["service"])
}

func TestAPI_SinTokenRetorna401(t *testing.T) {
	api := newAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProductos_ValidacionYDuplicado(t *testing.T) {
	api := newAPI(t)

	var verr struct {
		Code   string            `json:"code"`
		Fields map[string]string `json:"fields"`
	}
	status := api.do(http.MethodPost, "/api/products", map[string]any{"name": "Sin SKU", "unit": "unidad"}, &verr)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", verr.Code)
	assert.Equal(t, "required", verr.Fields["sku"])

	api.seed()
	var dup struct {
		Code string `json:"code"`
	}
	status = api.do(http.MethodPost, "/api/products", map[string]any{"sku": "LECHE-1L", "name": "Otra", "unit": "unidad"}, &dup)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", dup.Code)
}

func TestProductos_BusquedaSinMayusculas(t *testing.T) {
	api := newAPI(t)
	api.seed()

	var list struct {
		Items []struct {
			SKU string `json:"sku"`
		} `json:"items"`
		Page struct {
			Total int `json:"total"`
		} `json:"page"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/products?search=leche", nil, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "LECHE-1L", list.Items[0].SKU)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/products?search=pan", nil, &list))
	assert.Empty(t, list.Items)
	assert.Zero(t, list.Page.Total)
}

func TestMovimientos_Reglas(t *testing.T) {
	api := newAPI(t)
	_, locA, locB, batchID := api.seed()

	var e struct {
		Code string `json:"code"`
	}
	status := api.do(http.MethodPost, "/api/movements", map[string]any{
		"batch_id": batchID, "source_location_id": locA, "destination_location_id": locB, "quantity": "9",
	}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	status = api.do(http.MethodPost, "/api/movements", map[string]any{
		"batch_id": batchID, "source_location_id": locA, "destination_location_id": locA, "quantity": "1",
	}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SAME_LOCATION", e.Code)

	var mov idResp
	status = api.do(http.MethodPost, "/api/movements", map[string]any{
		"batch_id": batchID, "source_location_id": locA, "destination_location_id": locB, "quantity": "3",
	}, &mov)
	assert.Equal(t, http.StatusCreated, status)
	assert.NotEmpty(t, mov.ID)

	var list struct {
		Items []struct {
			ID string `json:"id"`
		} `json:"items"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/movements", nil, &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, mov.ID, list.Items[0].ID)
}

func TestProductos_BorradoConLotesRetorna409(t *testing.T) {
	api := newAPI(t)
	productID, _, _, batchID := api.seed()

	var e struct {
		Code string `json:"code"`
	}
	assert.Equal(t, http.StatusConflict, api.do(http.MethodDelete, "/api/products/"+productID, nil, &e))
	assert.Equal(t, "CONFLICT", e.Code)

	require.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/batches/"+batchID, nil, nil))
	assert.Equal(t, http.StatusNoContent, api.do(http.MethodDelete, "/api/products/"+productID, nil, nil))
}

func TestAlertas_JobsListadoYResolucion(t *testing.T) {
	api := newAPI(t)
	api.seed()

	// 8 en stock con punto de reorden 10 y un lote que vence en 10 días.
	var stock map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/functions/check-stock-levels", nil, &stock))
	assert.EqualValues(t, 1, stock["low_stock_products"])

	var gen map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/functions/generate-alerts", nil, &gen))
	assert.EqualValues(t, 1, gen["alerts_generated"], "solo la de vencimiento; la de stock bajo ya existía")

	type alertList struct {
		Items []struct {
			ID         string `json:"id"`
			AlertType  string `json:"alert_type"`
			ProductSKU string `json:"product_sku"`
		} `json:"items"`
	}
	var list alertList
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/alerts?status=unresolved&search=leche", nil, &list))
	require.Len(t, list.Items, 2)
	for _, a := range list.Items {
		assert.Equal(t, "LECHE-1L", a.ProductSKU)
	}

	var resolved struct {
		Resolved bool `json:"resolved"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/api/alerts/"+list.Items[0].ID+"/resolve", nil, &resolved))
	assert.True(t, resolved.Resolved)

	var again struct {
		Code string `json:"code"`
	}
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/alerts/"+list.Items[0].ID+"/resolve", nil, &again))
	assert.Equal(t, "ALREADY_RESOLVED", again.Code)

	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/alerts?status=unresolved", nil, &list))
	assert.Len(t, list.Items, 1)

	var bad struct {
		Code string `json:"code"`
	}
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/alerts?status=pendiente", nil, &bad))
	assert.Equal(t, "VALIDATION", bad.Code)
}

func TestAlertas_ExportJSON(t *testing.T) {
	api := newAPI(t)
	api.seed()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/functions/generate-alerts", nil, nil))

	req := httptest.NewRequest(http.MethodGet, "/api/alerts/export", nil)
	req.Header.Set("Authorization", api.token)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "alerts-")

	var rows []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rows))
	assert.Len(t, rows, 2)

	var e struct {
		Code string `json:"code"`
	}
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/alerts/export?format=pdf", nil, &e),
		"sin renderer PDF configurado el formato no está disponible")
}

func TestDashboard_Resumen(t *testing.T) {
	api := newAPI(t)
	api.seed()
	require.Equal(t, http.StatusOK, api.do(http.MethodPost, "/functions/check-stock-levels", nil, nil))

	var summary struct {
		TotalProducts    int `json:"total_products"`
		TotalLocations   int `json:"total_locations"`
		TotalBatches     int `json:"total_batches"`
		LowStockProducts int `json:"low_stock_products"`
		ExpiringBatches  int `json:"expiring_batches"`
		UnresolvedStock  int `json:"unresolved_stock_alerts"`
	}
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/dashboard/summary", nil, &summary))
	assert.Equal(t, 1, summary.TotalProducts)
	assert.Equal(t, 2, summary.TotalLocations)
	assert.Equal(t, 1, summary.TotalBatches)
	assert.Equal(t, 1, summary.LowStockProducts)
	assert.Equal(t, 1, summary.ExpiringBatches)
	assert.Equal(t, 1, summary.UnresolvedStock)
}
