package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// BatchUseCase alta, ajuste y consulta de lotes. Los traslados entre ubicaciones van por movimientos.
type BatchUseCase struct {
	batchRepo    repository.BatchRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	batchRepo repository.BatchRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *BatchUseCase {
	return &BatchUseCase{batchRepo: batchRepo, productRepo: productRepo, locationRepo: locationRepo}
}

// Create registra un lote. Producto y ubicación deben existir; el mismo número de lote
// no puede repetirse para el producto en la misma ubicación.
func (uc *BatchUseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*dto.BatchResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	location, err := uc.locationRepo.GetByID(ctx, in.LocationID)
	if err != nil {
		return nil, err
	}
	if product == nil || location == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.batchRepo.FindByLocation(ctx, in.ProductID, in.LocationID, in.BatchNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	batch := &entity.Batch{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		BatchNumber: in.BatchNumber,
		Quantity:    in.Quantity,
		ExpiryDate:  in.ExpiryDate,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	out := dto.BatchFromEntity(batch, product, location)
	return &out, nil
}

// GetByID obtiene un lote por ID con los datos de producto y ubicación.
func (uc *BatchUseCase) GetByID(ctx context.Context, id string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil || batch == nil {
		return nil, err
	}
	product, _ := uc.productRepo.GetByID(ctx, batch.ProductID)
	location, _ := uc.locationRepo.GetByID(ctx, batch.LocationID)
	out := dto.BatchFromEntity(batch, product, location)
	return &out, nil
}

// Update ajusta un lote. La cantidad nunca puede quedar negativa.
func (uc *BatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil || batch == nil {
		return nil, err
	}
	if in.BatchNumber != nil {
		batch.BatchNumber = *in.BatchNumber
	}
	if in.Quantity != nil {
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		batch.Quantity = *in.Quantity
	}
	switch {
	case in.ClearExpiry:
		batch.ExpiryDate = nil
	case in.ExpiryDate != nil:
		batch.ExpiryDate = in.ExpiryDate
	}
	if in.Notes != nil {
		batch.Notes = *in.Notes
	}
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(ctx, batch); err != nil {
		return nil, err
	}
	product, _ := uc.productRepo.GetByID(ctx, batch.ProductID)
	location, _ := uc.locationRepo.GetByID(ctx, batch.LocationID)
	out := dto.BatchFromEntity(batch, product, location)
	return &out, nil
}

// List lista lotes filtrados por número de lote, producto o ubicación.
func (uc *BatchUseCase) List(ctx context.Context, req dto.ListRequest) (*dto.BatchListResponse, error) {
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
	pIdx, lIdx := search.IndexProducts(products), search.IndexLocations(locations)

	pageItems, page := paginate(search.FilterBatches(batches, pIdx, lIdx, req.Search), req.PageRequest)
	items := make([]dto.BatchResponse, 0, len(pageItems))
	for _, b := range pageItems {
		items = append(items, dto.BatchFromEntity(b, pIdx[b.ProductID], lIdx[b.LocationID]))
	}
	return &dto.BatchListResponse{Items: items, Page: page}, nil
}

// Delete elimina un lote por ID.
func (uc *BatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.batchRepo.Delete(ctx, id)
}
