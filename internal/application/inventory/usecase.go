package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// RegisterMovementUseCase traslada cantidad de un lote entre ubicaciones de forma transaccional
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	locationRepo repository.LocationRepository
	now          func() time.Time
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	batchRepo repository.BatchRepository,
	locationRepo repository.LocationRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		batchRepo:    batchRepo,
		locationRepo: locationRepo,
		now:          time.Now,
	}
}

// MovementInput entrada para registrar un movimiento.
type MovementInput struct {
	BatchID               string
	SourceLocationID      string
	DestinationLocationID string
	Quantity              decimal.Decimal
	Notes                 string
}

// Register valida la entrada sin escribir nada y, si pasa, dentro de una transacción:
// bloquea el lote origen, resta la cantidad, suma (o crea) el lote con el mismo número
// en el destino y guarda el movimiento.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor a 0", domain.ErrInvalidInput)
	}
	if in.SourceLocationID == in.DestinationLocationID {
		return nil, domain.ErrSameLocation
	}

	batch, err := uc.batchRepo.GetByID(ctx, in.BatchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if batch.LocationID != in.SourceLocationID {
		return nil, fmt.Errorf("%w: el lote no está en la ubicación origen", domain.ErrInvalidInput)
	}
	if in.Quantity.GreaterThan(batch.Quantity) {
		return nil, domain.ErrInsufficientStock
	}
	dest, err := uc.locationRepo.GetByID(ctx, in.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	mov := &entity.Movement{
		ID:                    uuid.New().String(),
		BatchID:               batch.ID,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Quantity:              in.Quantity,
		Notes:                 in.Notes,
		CreatedAt:             now,
	}

	// Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(batchRepo repository.BatchRepository, movementRepo repository.MovementRepository) error {
		return uc.transfer(ctx, batchRepo, movementRepo, mov, now)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (uc *RegisterMovementUseCase) transfer(
	ctx context.Context,
	batchRepo repository.BatchRepository,
	movementRepo repository.MovementRepository,
	mov *entity.Movement,
	now time.Time,
) error {
	// Bloquea la fila del lote origen para evitar condiciones de carrera
	origin, err := batchRepo.GetForUpdate(ctx, mov.BatchID)
	if err != nil {
		return err
	}
	if origin == nil {
		return domain.ErrNotFound
	}
	if origin.LocationID != mov.SourceLocationID {
		return domain.ErrConflict
	}
	if origin.Quantity.LessThan(mov.Quantity) {
		return domain.ErrInsufficientStock
	}

	origin.Quantity = origin.Quantity.Sub(mov.Quantity)
	origin.UpdatedAt = now
	if err := batchRepo.Update(ctx, origin); err != nil {
		return err
	}

	dest, err := batchRepo.FindByLocation(ctx, origin.ProductID, mov.DestinationLocationID, origin.BatchNumber)
	if err != nil {
		return err
	}
	if dest == nil {
		dest = &entity.Batch{
			ID:          uuid.New().String(),
			ProductID:   origin.ProductID,
			LocationID:  mov.DestinationLocationID,
			BatchNumber: origin.BatchNumber,
			Quantity:    mov.Quantity,
			ExpiryDate:  origin.ExpiryDate,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := batchRepo.Create(ctx, dest); err != nil {
			return err
		}
	} else {
		dest.Quantity = dest.Quantity.Add(mov.Quantity)
		dest.UpdatedAt = now
		if err := batchRepo.Update(ctx, dest); err != nil {
			return err
		}
	}

	return movementRepo.Create(ctx, mov)
}
