package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement registro de auditoría inmutable: cantidad de un lote trasladada entre dos ubicaciones.
type Movement struct {
	ID                    string
	BatchID               string
	SourceLocationID      string
	DestinationLocationID string
	Quantity              decimal.Decimal
	Notes                 string
	CreatedAt             time.Time
}
