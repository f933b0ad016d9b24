package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct {
	s *Store
}

func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.locations {
		if existing.ID == l.ID || existing.Code == l.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) GetByID(_ context.Context, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) GetByCode(_ context.Context, code string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, l := range r.s.locations {
		if l.Code == code {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *LocationRepo) List(_ context.Context) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]*entity.Location, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		l := l
		list = append(list, &l)
	}
	sortByCreated(list, func(l *entity.Location) time.Time { return l.CreatedAt }, func(l *entity.Location) string { return l.ID })
	return list, nil
}

func (r *LocationRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.batches {
		if b.LocationID == id {
			return domain.ErrConflict
		}
	}
	for _, m := range r.s.movements {
		if m.SourceLocationID == id || m.DestinationLocationID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.locations, id)
	return nil
}
