package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

// BatchRepo lotes en memoria.
type BatchRepo struct {
	s *Store
}

func (r *BatchRepo) Create(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.batches[b.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.batches[b.ID] = cloneBatch(*b)
	return nil
}

func (r *BatchRepo) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	b = cloneBatch(b)
	return &b, nil
}

// GetForUpdate en memoria el bloqueo lo da TxRunner.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.GetByID(ctx, id)
}

func (r *BatchRepo) FindByLocation(_ context.Context, productID, locationID, batchNumber string) (*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, b := range r.s.batches {
		if b.ProductID == productID && b.LocationID == locationID && b.BatchNumber == batchNumber {
			b = cloneBatch(b)
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BatchRepo) Update(_ context.Context, b *entity.Batch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.batches[b.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.batches[b.ID] = cloneBatch(*b)
	return nil
}

func (r *BatchRepo) List(_ context.Context) ([]*entity.Batch, error) {
	return r.filter(func(entity.Batch) bool { return true }), nil
}

func (r *BatchRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Batch, error) {
	return r.filter(func(b entity.Batch) bool { return b.ProductID == productID }), nil
}

func (r *BatchRepo) ListExpiring(_ context.Context, from, to time.Time) ([]*entity.Batch, error) {
	return r.filter(func(b entity.Batch) bool {
		return b.ExpiryDate != nil && b.ExpiryDate.After(from) && b.ExpiryDate.Before(to) && b.Quantity.IsPositive()
	}), nil
}

func (r *BatchRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.movements {
		if m.BatchID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.batches, id)
	return nil
}

func (r *BatchRepo) filter(keep func(entity.Batch) bool) []*entity.Batch {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Batch
	for _, b := range r.s.batches {
		if keep(b) {
			b = cloneBatch(b)
			list = append(list, &b)
		}
	}
	sortByCreated(list, func(b *entity.Batch) time.Time { return b.CreatedAt }, func(b *entity.Batch) string { return b.ID })
	return list
}

func cloneBatch(b entity.Batch) entity.Batch {
	if b.ExpiryDate != nil {
		exp := *b.ExpiryDate
		b.ExpiryDate = &exp
	}
	return b
}
