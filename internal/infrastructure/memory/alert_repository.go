package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo alertas en memoria. CreateIfAbsent verifica e inserta bajo el mismo lock.
type AlertRepo struct {
	s *Store
}

func (r *AlertRepo) CreateIfAbsent(_ context.Context, a *entity.Alert) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.alerts {
		if !existing.Resolved && existing.Type == a.Type && existing.Target.ID == a.Target.ID {
			return false, nil
		}
	}
	if _, ok := r.s.alerts[a.ID]; ok {
		return false, domain.ErrDuplicate
	}
	r.s.alerts[a.ID] = *a
	return true, nil
}

func (r *AlertRepo) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	a, ok := r.s.alerts[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AlertRepo) List(_ context.Context) ([]*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Alert, 0, len(r.s.alerts))
	for _, a := range r.s.alerts {
		a := a
		list = append(list, &a)
	}
	sortByCreated(list, func(a *entity.Alert) time.Time { return a.CreatedAt }, func(a *entity.Alert) string { return a.ID })
	return list, nil
}

func (r *AlertRepo) Resolve(_ context.Context, id string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Resolved {
		return domain.ErrAlreadyResolved
	}
	a.Resolved = true
	a.ResolvedAt = &at
	r.s.alerts[id] = a
	return nil
}

func (r *AlertRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.alerts, id)
	return nil
}
