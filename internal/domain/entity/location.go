package entity

import "time"

// Location representa una ubicación física donde se almacenan lotes (bodega, estante, sucursal).
type Location struct {
	ID          string
	Code        string // código legible, único
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
