// Package storage arma los repositorios según STORAGE (postgres | memory)
// y el lock opcional de los jobs. Lo comparten cmd/api y cmd/jobs.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-inventory-api/internal/application/inventory"
	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/stock-inventory-api/internal/infrastructure/redis"
	"github.com/jhoicas/stock-inventory-api/pkg/config"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

// Repositories puertos de persistencia listos para inyectar.
type Repositories struct {
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Batches   repository.BatchRepository
	Movements repository.MovementRepository
	Alerts    repository.AlertRepository
	Tx        inventory.TxRunner
}

// Open construye los repositorios. close libera el pool (no-op en memoria).
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Repositories, func(), error) {
	switch cfg.App.Storage {
	case config.StorageMemory:
		log.Warn().Msg("STORAGE=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &Repositories{
			Products:  s.Products(),
			Locations: s.Locations(),
			Batches:   s.Batches(),
			Movements: s.Movements(),
			Alerts:    s.Alerts(),
			Tx:        memory.NewTxRunner(s),
		}, func() {}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return &Repositories{
			Products:  postgres.NewProductRepository(pool),
			Locations: postgres.NewLocationRepository(pool),
			Batches:   postgres.NewBatchRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Alerts:    postgres.NewAlertRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
		}, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("storage desconocido %q", cfg.App.Storage)
}

// RunLocker devuelve el lock de Redis si REDIS_ADDRESS está configurado.
// Si Redis no responde los jobs corren sin lock.
func RunLocker(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (jobs.RunLocker, func()) {
	if !cfg.Enabled() {
		return nil, func() {}
	}
	rdb, err := infraredis.NewClient(ctx, cfg)
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Addr).Msg("redis no disponible; jobs sin lock de ejecución")
		return nil, func() {}
	}
	return infraredis.NewLocker(rdb), func() { _ = rdb.Close() }
}

// JobOptions opciones comunes de los jobs a partir de la configuración.
func JobOptions(cfg config.JobsConfig, locker jobs.RunLocker) jobs.Options {
	return jobs.Options{
		Locker:       locker,
		LockTTL:      cfg.RunLockTTL,
		ExpiryWindow: cfg.ExpiryWindow(),
	}
}
