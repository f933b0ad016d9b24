package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts    int `json:"total_products"`
	TotalLocations   int `json:"total_locations"`
	TotalBatches     int `json:"total_batches"`
	LowStockProducts int `json:"low_stock_products"` // total_stock <= reorder_point
	ExpiringBatches  int `json:"expiring_batches"`   // lotes con cantidad por vencer en la ventana
	UnresolvedAlerts int `json:"unresolved_alerts"`
	UnresolvedStock  int `json:"unresolved_stock_alerts"`
	UnresolvedExpiry int `json:"unresolved_expiry_alerts"`

	// Las 5 alertas sin resolver más recientes
	RecentAlerts []AlertResponse `json:"recent_alerts"`

	// Productos en stock bajo (para el widget)
	LowStock []LowStockItemDTO `json:"low_stock"`
}

// LowStockItemDTO resumen de un producto en stock bajo.
type LowStockItemDTO struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	ProductName  string          `json:"product_name"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}
