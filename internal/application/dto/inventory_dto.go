package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	BatchID               string          `json:"batch_id" validate:"required"`
	SourceLocationID      string          `json:"source_location_id" validate:"required"`
	DestinationLocationID string          `json:"destination_location_id" validate:"required"`
	Quantity              decimal.Decimal `json:"quantity"`
	Notes                 string          `json:"notes" validate:"max=1000"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                    string          `json:"id"`
	BatchID               string          `json:"batch_id"`
	SourceLocationID      string          `json:"source_location_id"`
	DestinationLocationID string          `json:"destination_location_id"`
	Quantity              decimal.Decimal `json:"quantity"`
	Notes                 string          `json:"notes"`
	CreatedAt             time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

func MovementFromEntity(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:                    m.ID,
		BatchID:               m.BatchID,
		SourceLocationID:      m.SourceLocationID,
		DestinationLocationID: m.DestinationLocationID,
		Quantity:              m.Quantity,
		Notes:                 m.Notes,
		CreatedAt:             m.CreatedAt,
	}
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un SKU bajo su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	Category           string          `json:"category"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderPoint       decimal.Decimal `json:"reorder_point"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // ReorderPoint * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitPrice          decimal.Decimal `json:"unit_price"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"`
	Priority           int             `json:"priority"` // 1 = más urgente
}
