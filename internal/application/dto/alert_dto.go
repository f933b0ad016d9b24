package dto

import (
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// AlertListRequest query de GET /api/alerts.
type AlertListRequest struct {
	ListRequest
	Status string `query:"status" validate:"omitempty,oneof=all resolved unresolved"`
}

// AlertResponse salida de una alerta. ProductName/ProductSKU se resuelven a través del destino.
type AlertResponse struct {
	ID          string     `json:"id"`
	AlertType   string     `json:"alert_type"`
	AlertLevel  string     `json:"alert_level"`
	Message     string     `json:"message"`
	RelatedType string     `json:"related_type"`
	RelatedID   string     `json:"related_id"`
	ProductName string     `json:"product_name,omitempty"`
	ProductSKU  string     `json:"product_sku,omitempty"`
	Resolved    bool       `json:"resolved"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// AlertListResponse lista paginada de alertas.
type AlertListResponse struct {
	Items []AlertResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// AlertFromEntity mapea la alerta; p puede ser nil.
func AlertFromEntity(a *entity.Alert, p *entity.Product) AlertResponse {
	out := AlertResponse{
		ID:          a.ID,
		AlertType:   string(a.Type),
		AlertLevel:  string(a.Level),
		Message:     a.Message,
		RelatedType: string(a.Target.Kind),
		RelatedID:   a.Target.ID,
		Resolved:    a.Resolved,
		CreatedAt:   a.CreatedAt,
		ResolvedAt:  a.ResolvedAt,
	}
	if p != nil {
		out.ProductName = p.Name
		out.ProductSKU = p.SKU
	}
	return out
}
