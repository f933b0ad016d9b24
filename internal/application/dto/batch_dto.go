package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// CreateBatchRequest entrada para registrar un lote en una ubicación.
type CreateBatchRequest struct {
	ProductID   string          `json:"product_id" validate:"required"`
	LocationID  string          `json:"location_id" validate:"required"`
	BatchNumber string          `json:"batch_number" validate:"required,min=1,max=100"`
	Quantity    decimal.Decimal `json:"quantity"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Notes       string          `json:"notes" validate:"max=1000"`
}

// UpdateBatchRequest ajuste manual de un lote (cantidad, vencimiento, notas).
type UpdateBatchRequest struct {
	BatchNumber *string          `json:"batch_number" validate:"omitempty,min=1,max=100"`
	Quantity    *decimal.Decimal `json:"quantity"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
	ClearExpiry bool             `json:"clear_expiry"`
	Notes       *string          `json:"notes" validate:"omitempty,max=1000"`
}

// BatchResponse salida de un lote, con nombres de producto y ubicación para la vista.
type BatchResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	ProductSKU   string          `json:"product_sku,omitempty"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name,omitempty"`
	BatchNumber  string          `json:"batch_number"`
	Quantity     decimal.Decimal `json:"quantity"`
	ExpiryDate   *time.Time      `json:"expiry_date"`
	Notes        string          `json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// BatchListResponse lista paginada de lotes.
type BatchListResponse struct {
	Items []BatchResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// BatchFromEntity mapea el lote; producto y ubicación son opcionales (nil si no se conocen).
func BatchFromEntity(b *entity.Batch, p *entity.Product, l *entity.Location) BatchResponse {
	out := BatchResponse{
		ID:          b.ID,
		ProductID:   b.ProductID,
		LocationID:  b.LocationID,
		BatchNumber: b.BatchNumber,
		Quantity:    b.Quantity,
		ExpiryDate:  b.ExpiryDate,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if p != nil {
		out.ProductName = p.Name
		out.ProductSKU = p.SKU
	}
	if l != nil {
		out.LocationName = l.Name
	}
	return out
}
