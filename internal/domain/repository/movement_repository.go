package repository

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	List(ctx context.Context) ([]*entity.Movement, error)
	ListByBatch(ctx context.Context, batchID string) ([]*entity.Movement, error)
}
