package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/alerting"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

const stockLevelLockKey = "lock:jobs:check-stock-levels"

// StockCheckResult resumen de una ejecución del recálculo.
type StockCheckResult struct {
	ProductsChecked  int // productos obtenidos (conjunto intentado)
	LowStockProducts int
	AlertsCreated    int
	Skipped          int // productos omitidos por error de lectura/escritura
}

// StockLevelRecalculator sincroniza products.total_stock con la suma de sus lotes
// y crea alertas de stock bajo.
type StockLevelRecalculator struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	alertRepo   repository.AlertRepository
	log         *logger.Logger
	opts        Options
}

// NewStockLevelRecalculator construye el job.
func NewStockLevelRecalculator(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	alertRepo repository.AlertRepository,
	log *logger.Logger,
	opts Options,
) *StockLevelRecalculator {
	if log == nil {
		log = logger.Nop()
	}
	return &StockLevelRecalculator{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		alertRepo:   alertRepo,
		log:         log.Child("job", "check_stock_levels"),
		opts:        opts.withDefaults(),
	}
}

// Run recalcula todos los productos, o solo productID si no está vacío.
// Solo falla si no se puede obtener el conjunto inicial de productos; los errores por
// producto se registran y ese producto se omite.
func (r *StockLevelRecalculator) Run(ctx context.Context, productID string) (StockCheckResult, error) {
	log := r.log.Child("run_id", uuid.New().String())
	var result StockCheckResult
	err := withRunLock(ctx, r.opts, stockLevelLockKey, log, func() error {
		var err error
		result, err = r.run(ctx, log, productID)
		return err
	})
	return result, err
}

func (r *StockLevelRecalculator) run(ctx context.Context, log *logger.Logger, productID string) (StockCheckResult, error) {
	var result StockCheckResult

	products, err := r.loadProducts(ctx, productID)
	if err != nil {
		return result, err
	}
	result.ProductsChecked = len(products)
	log.Info().Int("products", len(products)).Msg("iniciando revisión de stock")

	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		batches, err := r.batchRepo.ListByProduct(ctx, p.ID)
		if err != nil {
			log.Error().Err(err).Str("product_id", p.ID).Msg("error obteniendo lotes del producto")
			result.Skipped++
			continue
		}
		total := sumQuantities(batches)

		if err := r.productRepo.UpdateTotalStock(ctx, p.ID, total); err != nil {
			log.Error().Err(err).Str("product_id", p.ID).Msg("error actualizando total_stock")
			result.Skipped++
			continue
		}

		if !alerting.IsLowStock(total, p.ReorderPoint) {
			continue
		}
		result.LowStockProducts++

		created, err := r.alertRepo.CreateIfAbsent(ctx, alerting.NewStockAlert(p, total, r.opts.Now()))
		if err != nil {
			log.Error().Err(err).Str("product_id", p.ID).Msg("error creando alerta de stock")
			continue
		}
		if created {
			result.AlertsCreated++
		}
	}

	log.Info().
		Int("products_checked", result.ProductsChecked).
		Int("low_stock_products", result.LowStockProducts).
		Int("alerts_created", result.AlertsCreated).
		Int("skipped", result.Skipped).
		Msg("revisión de stock completada")
	return result, nil
}

func (r *StockLevelRecalculator) loadProducts(ctx context.Context, productID string) ([]*entity.Product, error) {
	if productID == "" {
		products, err := r.productRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("error fetching products: %w", err)
		}
		return products, nil
	}
	p, err := r.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("error fetching product %s: %w", productID, err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return []*entity.Product{p}, nil
}

// sumQuantities suma las cantidades de los lotes (cantidad ausente cuenta como 0).
func sumQuantities(batches []*entity.Batch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		if b == nil {
			continue
		}
		total = total.Add(b.Quantity)
	}
	return total
}
