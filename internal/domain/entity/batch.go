package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch es una cantidad rastreada de un producto en una ubicación, con vencimiento opcional.
// Quantity es autoritativa y nunca negativa; la modifican operadores y movimientos, no los jobs.
type Batch struct {
	ID          string
	ProductID   string
	LocationID  string
	BatchNumber string
	Quantity    decimal.Decimal
	ExpiryDate  *time.Time
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsExpired indica si el lote ya venció respecto a now. Sin fecha de vencimiento nunca vence.
func (b *Batch) IsExpired(now time.Time) bool {
	return b.ExpiryDate != nil && b.ExpiryDate.Before(now)
}
