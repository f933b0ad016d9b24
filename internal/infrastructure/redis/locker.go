package redis

import (
	"context"
	"errors"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
)

var _ jobs.RunLocker = (*Locker)(nil)

// Locker implementa jobs.RunLocker con redislock (SET NX + TTL).
type Locker struct {
	client *redislock.Client
}

// NewLocker construye el locker sobre un cliente ya conectado.
func NewLocker(rdb *goredis.Client) *Locker {
	return &Locker{client: redislock.New(rdb)}
}

// Acquire intenta una sola vez, sin reintentos. jobs.ErrLockNotObtained si otra ejecución lo tiene.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, jobs.ErrLockNotObtained
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := lock.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			// el TTL expiró antes de terminar
			return nil
		}
		return err
	}, nil
}
