package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes.
// Usado dentro de transacciones (GetForUpdate) para los movimientos.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id string) (*entity.Batch, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Batch, error)
	// FindByLocation busca el lote de un producto con el mismo número en otra ubicación.
	FindByLocation(ctx context.Context, productID, locationID, batchNumber string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	List(ctx context.Context) ([]*entity.Batch, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error)
	// ListExpiring lotes con quantity > 0 y vencimiento en el intervalo abierto (from, to).
	ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Batch, error)
	Delete(ctx context.Context, id string) error
}
