package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// AlertUseCase consulta y resolución manual de alertas. Las alertas las crean los jobs.
type AlertUseCase struct {
	alertRepo   repository.AlertRepository
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	now         func() time.Time
}

// NewAlertUseCase construye el caso de uso.
func NewAlertUseCase(
	alertRepo repository.AlertRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
) *AlertUseCase {
	return &AlertUseCase{alertRepo: alertRepo, productRepo: productRepo, batchRepo: batchRepo, now: time.Now}
}

// List lista alertas filtradas por texto y estado (all, resolved, unresolved).
func (uc *AlertUseCase) List(ctx context.Context, req dto.AlertListRequest) (*dto.AlertListResponse, error) {
	alerts, products, batches, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := search.FilterAlerts(alerts, products, batches, req.Search, search.ParseAlertStatus(req.Status))
	pageItems, page := paginate(filtered, req.PageRequest)
	items := make([]dto.AlertResponse, 0, len(pageItems))
	for _, a := range pageItems {
		items = append(items, dto.AlertFromEntity(a, search.AlertProduct(a, products, batches)))
	}
	return &dto.AlertListResponse{Items: items, Page: page}, nil
}

// GetByID obtiene una alerta por ID.
func (uc *AlertUseCase) GetByID(ctx context.Context, id string) (*dto.AlertResponse, error) {
	alert, err := uc.alertRepo.GetByID(ctx, id)
	if err != nil || alert == nil {
		return nil, err
	}
	out := dto.AlertFromEntity(alert, uc.productFor(ctx, alert))
	return &out, nil
}

// Resolve marca la alerta como resuelta. Una vez resuelta, el siguiente job puede volver a crearla
// si la condición persiste.
func (uc *AlertUseCase) Resolve(ctx context.Context, id string) (*dto.AlertResponse, error) {
	if err := uc.alertRepo.Resolve(ctx, id, uc.now()); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// Delete elimina una alerta por ID.
func (uc *AlertUseCase) Delete(ctx context.Context, id string) error {
	return uc.alertRepo.Delete(ctx, id)
}

// Rows devuelve todas las alertas filtradas, sin paginar (exportación).
func (uc *AlertUseCase) Rows(ctx context.Context, term string, status search.AlertStatus) ([]dto.AlertResponse, error) {
	alerts, products, batches, err := uc.load(ctx)
	if err != nil {
		return nil, err
	}
	filtered := search.FilterAlerts(alerts, products, batches, term, status)
	rows := make([]dto.AlertResponse, 0, len(filtered))
	for _, a := range filtered {
		rows = append(rows, dto.AlertFromEntity(a, search.AlertProduct(a, products, batches)))
	}
	return rows, nil
}

func (uc *AlertUseCase) load(ctx context.Context) (
	[]*entity.Alert, map[string]*entity.Product, map[string]*entity.Batch, error,
) {
	alerts, err := uc.alertRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	batches, err := uc.batchRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return alerts, search.IndexProducts(products), search.IndexBatches(batches), nil
}

func (uc *AlertUseCase) productFor(ctx context.Context, a *entity.Alert) *entity.Product {
	productID := a.Target.ID
	if a.Target.Kind == entity.TargetBatch {
		b, err := uc.batchRepo.GetByID(ctx, a.Target.ID)
		if err != nil || b == nil {
			return nil
		}
		productID = b.ProductID
	}
	p, _ := uc.productRepo.GetByID(ctx, productID)
	return p
}
