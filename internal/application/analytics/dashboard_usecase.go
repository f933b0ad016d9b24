// Package analytics contiene el resumen del Dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain/alerting"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

const dashboardRecentAlerts = 5 // alertas sin resolver en el widget del dashboard

// DashboardUseCase genera los contadores y widgets del dashboard.
// Solo lectura; delega todo en los repositorios.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	batchRepo    repository.BatchRepository
	alertRepo    repository.AlertRepository
	expiryWindow time.Duration
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso. expiryWindow <= 0 usa la ventana por defecto.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	batchRepo repository.BatchRepository,
	alertRepo repository.AlertRepository,
	expiryWindow time.Duration,
) *DashboardUseCase {
	if expiryWindow <= 0 {
		expiryWindow = alerting.DefaultExpiryWindow
	}
	return &DashboardUseCase{
		productRepo:  productRepo,
		locationRepo: locationRepo,
		batchRepo:    batchRepo,
		alertRepo:    alertRepo,
		expiryWindow: expiryWindow,
		now:          time.Now,
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro lecturas en paralelo: productos, ubicaciones, lotes y alertas.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// ── Goroutines para paralelizar las lecturas ──────────────────────────────
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type locationsResult struct {
		list []*entity.Location
		err  error
	}
	type batchesResult struct {
		list []*entity.Batch
		err  error
	}
	type alertsResult struct {
		list []*entity.Alert
		err  error
	}

	productsCh := make(chan productsResult, 1)
	locationsCh := make(chan locationsResult, 1)
	batchesCh := make(chan batchesResult, 1)
	alertsCh := make(chan alertsResult, 1)

	go func() {
		list, err := uc.productRepo.List(ctx)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.locationRepo.List(ctx)
		locationsCh <- locationsResult{list, err}
	}()
	go func() {
		list, err := uc.batchRepo.List(ctx)
		batchesCh <- batchesResult{list, err}
	}()
	go func() {
		list, err := uc.alertRepo.List(ctx)
		alertsCh <- alertsResult{list, err}
	}()

	products := <-productsCh
	locations := <-locationsCh
	batches := <-batchesCh
	alerts := <-alertsCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if locations.err != nil {
		return nil, fmt.Errorf("dashboard: ubicaciones: %w", locations.err)
	}
	if batches.err != nil {
		return nil, fmt.Errorf("dashboard: lotes: %w", batches.err)
	}
	if alerts.err != nil {
		return nil, fmt.Errorf("dashboard: alertas: %w", alerts.err)
	}

	summary := &dto.DashboardSummaryDTO{
		TotalProducts:  len(products.list),
		TotalLocations: len(locations.list),
		TotalBatches:   len(batches.list),
		RecentAlerts:   []dto.AlertResponse{},
		LowStock:       []dto.LowStockItemDTO{},
	}

	// ── Stock bajo: total_stock <= reorder_point (criterio del dashboard) ─────
	for _, p := range products.list {
		if p.TotalStock.LessThanOrEqual(p.ReorderPoint) {
			summary.LowStockProducts++
			summary.LowStock = append(summary.LowStock, dto.LowStockItemDTO{
				ProductID:    p.ID,
				SKU:          p.SKU,
				ProductName:  p.Name,
				TotalStock:   p.TotalStock,
				ReorderPoint: p.ReorderPoint,
			})
		}
	}

	for _, b := range batches.list {
		if b.ExpiryDate != nil && b.Quantity.IsPositive() && alerting.InExpiryWindow(*b.ExpiryDate, now, uc.expiryWindow) {
			summary.ExpiringBatches++
		}
	}

	// ── Alertas sin resolver (el repositorio devuelve más reciente primero) ───
	pIdx, bIdx := search.IndexProducts(products.list), search.IndexBatches(batches.list)
	for _, a := range alerts.list {
		if a.Resolved {
			continue
		}
		summary.UnresolvedAlerts++
		switch a.Type {
		case entity.AlertTypeStock:
			summary.UnresolvedStock++
		case entity.AlertTypeExpiry:
			summary.UnresolvedExpiry++
		}
		if len(summary.RecentAlerts) < dashboardRecentAlerts {
			summary.RecentAlerts = append(summary.RecentAlerts, dto.AlertFromEntity(a, search.AlertProduct(a, pIdx, bIdx)))
		}
	}
	return summary, nil
}
