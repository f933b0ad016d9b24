package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto. total_stock no se acepta: lo calcula el recálculo.
type CreateProductRequest struct {
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"max=1000"`
	Category     string          `json:"category" validate:"max=100"`
	Unit         string          `json:"unit" validate:"required,max=30"`
	Price        decimal.Decimal `json:"price"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// UpdateProductRequest entrada para actualizar un producto (sin total_stock).
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description" validate:"omitempty,max=1000"`
	Category     *string          `json:"category" validate:"omitempty,max=100"`
	Unit         *string          `json:"unit" validate:"omitempty,min=1,max=30"`
	Price        *decimal.Decimal `json:"price"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	TotalStock   decimal.Decimal `json:"total_stock"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductFromEntity mapea la entidad a la respuesta.
func ProductFromEntity(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Unit:         p.Unit,
		Price:        p.Price,
		ReorderPoint: p.ReorderPoint,
		TotalStock:   p.TotalStock,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
