package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// TotalStock es un agregado cacheado (suma de cantidades de sus lotes); solo lo escribe el
// recálculo de stock y puede quedar desactualizado entre ejecuciones.
type Product struct {
	ID           string
	Name         string
	SKU          string
	Description  string
	Category     string
	Unit         string // unidad de medida mostrada (kg, unidad, caja...)
	Price        decimal.Decimal
	ReorderPoint decimal.Decimal // por debajo de este umbral el producto está en stock bajo
	TotalStock   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
