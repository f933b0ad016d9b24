package inventory

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para los movimientos entre ubicaciones.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		movementRepo repository.MovementRepository,
	) error) error
}
