package usecase

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// MovementUseCase consulta del historial de movimientos. El registro va por inventory.RegisterMovementUseCase.
type MovementUseCase struct {
	movementRepo repository.MovementRepository
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	movementRepo repository.MovementRepository,
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *MovementUseCase {
	return &MovementUseCase{
		movementRepo: movementRepo,
		batchRepo:    batchRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// List lista movimientos, más reciente primero. Los movimientos de lotes inexistentes no se muestran.
func (uc *MovementUseCase) List(ctx context.Context, req dto.ListRequest) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	batches, err := uc.batchRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	locations, err := uc.locationRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	filtered := search.FilterMovements(movements,
		search.IndexBatches(batches), search.IndexProducts(products), search.IndexLocations(locations),
		req.Search)
	pageItems, page := paginate(filtered, req.PageRequest)
	items := make([]dto.MovementResponse, 0, len(pageItems))
	for _, m := range pageItems {
		items = append(items, dto.MovementFromEntity(m))
	}
	return &dto.MovementListResponse{Items: items, Page: page}, nil
}
