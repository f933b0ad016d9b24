package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-inventory-api/internal/domain/alerting"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

const alertGeneratorLockKey = "lock:jobs:generate-alerts"

// AlertRunResult resumen de una ejecución. AlertsGenerated cuenta solo alertas insertadas.
type AlertRunResult struct {
	AlertsGenerated int
	ExpiryAlerts    int
	StockAlerts     int
}

// AlertGenerator detecta lotes por vencer y productos bajo punto de reorden
// y crea las alertas correspondientes de forma idempotente.
type AlertGenerator struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
	alertRepo   repository.AlertRepository
	log         *logger.Logger
	opts        Options
}

// NewAlertGenerator construye el job.
func NewAlertGenerator(
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	alertRepo repository.AlertRepository,
	log *logger.Logger,
	opts Options,
) *AlertGenerator {
	if log == nil {
		log = logger.Nop()
	}
	return &AlertGenerator{
		productRepo: productRepo,
		batchRepo:   batchRepo,
		alertRepo:   alertRepo,
		log:         log.Child("job", "generate_alerts"),
		opts:        opts.withDefaults(),
	}
}

// Run ejecuta las dos pasadas: vencimientos (A) y stock bajo (B).
// Sin atomicidad global: si la pasada B falla al leer, las alertas ya insertadas por A quedan.
func (g *AlertGenerator) Run(ctx context.Context) (AlertRunResult, error) {
	log := g.log.Child("run_id", uuid.New().String())
	var result AlertRunResult
	err := withRunLock(ctx, g.opts, alertGeneratorLockKey, log, func() error {
		now := g.opts.Now()

		n, err := g.expiryPass(ctx, log, now)
		if err != nil {
			return err
		}
		result.ExpiryAlerts = n

		n, err = g.lowStockPass(ctx, log)
		if err != nil {
			return err
		}
		result.StockAlerts = n
		result.AlertsGenerated = result.ExpiryAlerts + result.StockAlerts
		return nil
	})
	if err != nil {
		return AlertRunResult{}, err
	}
	log.Info().
		Int("alerts_generated", result.AlertsGenerated).
		Int("expiry_alerts", result.ExpiryAlerts).
		Int("stock_alerts", result.StockAlerts).
		Msg("generación de alertas completada")
	return result, nil
}

func (g *AlertGenerator) expiryPass(ctx context.Context, log *logger.Logger, now time.Time) (int, error) {
	batches, err := g.batchRepo.ListExpiring(ctx, now, now.Add(g.opts.ExpiryWindow))
	if err != nil {
		return 0, fmt.Errorf("error fetching expiring batches: %w", err)
	}
	log.Info().Int("batches", len(batches)).Msg("lotes por vencer encontrados")

	products := make(map[string]*entity.Product)
	created := 0
	for _, b := range batches {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if b.ExpiryDate == nil || !b.Quantity.IsPositive() ||
			!alerting.InExpiryWindow(*b.ExpiryDate, now, g.opts.ExpiryWindow) {
			continue
		}

		p, ok := products[b.ProductID]
		if !ok {
			p, err = g.productRepo.GetByID(ctx, b.ProductID)
			if err != nil || p == nil {
				log.Error().Err(err).Str("batch_id", b.ID).Str("product_id", b.ProductID).
					Msg("error obteniendo producto del lote")
				continue
			}
			products[b.ProductID] = p
		}

		ok, err = g.alertRepo.CreateIfAbsent(ctx, alerting.NewExpiryAlert(b, p, now))
		if err != nil {
			log.Error().Err(err).Str("batch_id", b.ID).Msg("error creando alerta de vencimiento")
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// lowStockPass usa el total_stock cacheado: solo es exacto justo después de un recálculo.
func (g *AlertGenerator) lowStockPass(ctx context.Context, log *logger.Logger) (int, error) {
	products, err := g.productRepo.ListBelowReorderPoint(ctx)
	if err != nil {
		return 0, fmt.Errorf("error fetching low stock products: %w", err)
	}
	log.Info().Int("products", len(products)).Msg("productos con stock bajo encontrados")

	created := 0
	for _, p := range products {
		if err := ctx.Err(); err != nil {
			return created, err
		}
		if !alerting.IsLowStock(p.TotalStock, p.ReorderPoint) {
			continue
		}
		ok, err := g.alertRepo.CreateIfAbsent(ctx, alerting.NewStockAlert(p, p.TotalStock, g.opts.Now()))
		if err != nil {
			log.Error().Err(err).Str("product_id", p.ID).Msg("error creando alerta de stock")
			continue
		}
		if ok {
			created++
		}
	}
	return created, nil
}
