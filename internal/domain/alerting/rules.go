// Package alerting contiene las reglas de negocio de las alertas de stock y vencimiento
// (servicio de dominio sin I/O).
package alerting

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

const (
	// DefaultExpiryWindow horizonte en el que un lote se considera "por vencer".
	DefaultExpiryWindow = 30 * 24 * time.Hour
	// ExpiryHighThresholdDays a partir de cuántos días restantes la alerta es high.
	ExpiryHighThresholdDays = 7

	day = 24 * time.Hour
)

// IsLowStock comparación estricta: total == reorderPoint no es stock bajo.
func IsLowStock(total, reorderPoint decimal.Decimal) bool {
	return total.LessThan(reorderPoint)
}

// StockSeverity high sin existencias (total <= 0), medium en otro caso.
func StockSeverity(total decimal.Decimal) entity.AlertLevel {
	if total.LessThanOrEqual(decimal.Zero) {
		return entity.AlertLevelHigh
	}
	return entity.AlertLevelMedium
}

// DaysUntilExpiry = ceil((expiry - now) / 1 día).
func DaysUntilExpiry(expiry, now time.Time) int {
	return int(math.Ceil(float64(expiry.Sub(now)) / float64(day)))
}

// ExpirySeverity high cuando quedan 7 días o menos.
func ExpirySeverity(days int) entity.AlertLevel {
	if days <= ExpiryHighThresholdDays {
		return entity.AlertLevelHigh
	}
	return entity.AlertLevelMedium
}

// InExpiryWindow intervalo abierto (now, now+window).
func InExpiryWindow(expiry, now time.Time, window time.Duration) bool {
	return expiry.After(now) && expiry.Before(now.Add(window))
}

// StockMessage texto de la alerta de stock bajo.
func StockMessage(name, sku string, total, reorderPoint decimal.Decimal) string {
	return fmt.Sprintf("%s (%s) is below reorder point. Current stock: %s, Reorder point: %s",
		name, sku, total.String(), reorderPoint.String())
}

// ExpiryMessage texto de la alerta de vencimiento.
func ExpiryMessage(batchNumber, name, sku string, days int) string {
	return fmt.Sprintf("Batch %s of %s (%s) will expire in %d days", batchNumber, name, sku, days)
}

// NewStockAlert construye la alerta sin resolver de stock bajo para el producto.
func NewStockAlert(p *entity.Product, total decimal.Decimal, now time.Time) *entity.Alert {
	return &entity.Alert{
		ID:        uuid.New().String(),
		Type:      entity.AlertTypeStock,
		Level:     StockSeverity(total),
		Message:   StockMessage(p.Name, p.SKU, total, p.ReorderPoint),
		Target:    entity.ProductTarget(p.ID),
		CreatedAt: now,
	}
}

// NewExpiryAlert construye la alerta sin resolver de vencimiento del lote.
// El lote debe tener ExpiryDate; sin fecha devuelve nil.
func NewExpiryAlert(b *entity.Batch, p *entity.Product, now time.Time) *entity.Alert {
	if b.ExpiryDate == nil {
		return nil
	}
	days := DaysUntilExpiry(*b.ExpiryDate, now)
	return &entity.Alert{
		ID:        uuid.New().String(),
		Type:      entity.AlertTypeExpiry,
		Level:     ExpirySeverity(days),
		Message:   ExpiryMessage(b.BatchNumber, p.Name, p.SKU, days),
		Target:    entity.BatchTarget(b.ID),
		CreatedAt: now,
	}
}
