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

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo}
}

// Create crea una nueva ubicación. El código es único.
func (uc *LocationUseCase) Create(ctx context.Context, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	existing, _ := uc.repo.GetByCode(ctx, in.Code)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	location := &entity.Location{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, location); err != nil {
		return nil, err
	}
	out := dto.LocationFromEntity(location)
	return &out, nil
}

// GetByID obtiene una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil || location == nil {
		return nil, err
	}
	out := dto.LocationFromEntity(location)
	return &out, nil
}

// Update actualiza una ubicación.
func (uc *LocationUseCase) Update(ctx context.Context, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(ctx, id)
	if err != nil || location == nil {
		return nil, err
	}
	if in.Code != nil && *in.Code != location.Code {
		if other, _ := uc.repo.GetByCode(ctx, *in.Code); other != nil {
			return nil, domain.ErrDuplicate
		}
		location.Code = *in.Code
	}
	if in.Name != nil {
		location.Name = *in.Name
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, location); err != nil {
		return nil, err
	}
	out := dto.LocationFromEntity(location)
	return &out, nil
}

// List lista ubicaciones filtradas por nombre, código o descripción.
func (uc *LocationUseCase) List(ctx context.Context, req dto.ListRequest) (*dto.LocationListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	pageItems, page := paginate(search.FilterLocations(list, req.Search), req.PageRequest)
	items := make([]dto.LocationResponse, 0, len(pageItems))
	for _, l := range pageItems {
		items = append(items, dto.LocationFromEntity(l))
	}
	return &dto.LocationListResponse{Items: items, Page: page}, nil
}

// Delete elimina una ubicación por ID.
func (uc *LocationUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
