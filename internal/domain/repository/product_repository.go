package repository

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateTotalStock escribe el agregado cacheado; solo lo usa el recálculo de stock.
	UpdateTotalStock(ctx context.Context, productID string, total decimal.Decimal) error
	List(ctx context.Context) ([]*entity.Product, error)
	// ListBelowReorderPoint productos con total_stock < reorder_point (usa el valor cacheado).
	ListBelowReorderPoint(ctx context.Context) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
