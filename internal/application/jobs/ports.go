// Package jobs contiene los procesos de recálculo de stock y generación de alertas.
// Se ejecutan completos dentro de una invocación (HTTP o CLI); no hay scheduler persistente.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain/alerting"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

// ErrLockNotObtained otra ejecución del mismo job tiene el lock.
var ErrLockNotObtained = errors.New("lock de ejecución no obtenido")

// RunLocker lock distribuido de mejor esfuerzo para serializar ejecuciones del mismo job.
type RunLocker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// Options dependencias opcionales de los jobs. Los valores cero toman defaults.
type Options struct {
	Locker       RunLocker
	LockTTL      time.Duration
	ExpiryWindow time.Duration
	Now          func() time.Time
}

func (o Options) withDefaults() Options {
	if o.LockTTL <= 0 {
		o.LockTTL = 2 * time.Minute
	}
	if o.ExpiryWindow <= 0 {
		o.ExpiryWindow = alerting.DefaultExpiryWindow
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// withRunLock ejecuta fn con el lock del job si hay locker configurado.
// Si el lock no se obtiene se continúa igual: la inserción condicional de alertas
// sigue garantizando la unicidad.
func withRunLock(ctx context.Context, opts Options, key string, log *logger.Logger, fn func() error) error {
	if opts.Locker == nil {
		return fn()
	}
	release, err := opts.Locker.Acquire(ctx, key, opts.LockTTL)
	switch {
	case errors.Is(err, ErrLockNotObtained):
		log.Warn().Str("lock", key).Msg("otra ejecución tiene el lock; se continúa sin lock")
	case err != nil:
		log.Warn().Err(err).Str("lock", key).Msg("error obteniendo lock; se continúa sin lock")
	default:
		defer func() {
			if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
				log.Warn().Err(relErr).Str("lock", key).Msg("no se pudo liberar el lock")
			}
		}()
	}
	return fn()
}
