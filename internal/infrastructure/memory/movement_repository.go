package memory

import (
	"context"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo movimientos en memoria (orden de inserción, más reciente primero al listar).
type MovementRepo struct {
	s *Store
}

func (r *MovementRepo) Create(_ context.Context, m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	return r.filter(func(entity.Movement) bool { return true }), nil
}

func (r *MovementRepo) ListByBatch(_ context.Context, batchID string) ([]*entity.Movement, error) {
	return r.filter(func(m entity.Movement) bool { return m.BatchID == batchID }), nil
}

func (r *MovementRepo) filter(keep func(entity.Movement) bool) []*entity.Movement {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Movement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if keep(m) {
			list = append(list, &m)
		}
	}
	return list
}
