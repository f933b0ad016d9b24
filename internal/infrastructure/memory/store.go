// Package memory implementa los puertos de persistencia en memoria.
// Se usa en tests y en ejecuciones locales con STORAGE=memory.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	txMu      sync.Mutex
	products  map[string]entity.Product
	locations map[string]entity.Location
	batches   map[string]entity.Batch
	movements []entity.Movement
	alerts    map[string]entity.Alert
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		products:  map[string]entity.Product{},
		locations: map[string]entity.Location{},
		batches:   map[string]entity.Batch{},
		alerts:    map[string]entity.Alert{},
	}
}

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

// Batches devuelve el repositorio de lotes.
func (s *Store) Batches() *BatchRepo { return &BatchRepo{s: s} }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Alerts devuelve el repositorio de alertas.
func (s *Store) Alerts() *AlertRepo { return &AlertRepo{s: s} }

// TxRunner ejecuta fn sobre el store y restaura el estado previo si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner transaccional en memoria.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run serializa las transacciones. La restauración emula el Rollback, también cuando
// ctx se cancela antes del commit.
func (t *TxRunner) Run(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	movementRepo repository.MovementRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	snap := t.s.snapshot()
	if err := fn(t.s.Batches(), t.s.Movements()); err != nil {
		t.s.restore(snap)
		return err
	}
	if err := ctx.Err(); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}

type snapshot struct {
	batches   map[string]entity.Batch
	movements []entity.Movement
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := make(map[string]entity.Batch, len(s.batches))
	for k, v := range s.batches {
		b[k] = v
	}
	return snapshot{batches: b, movements: append([]entity.Movement(nil), s.movements...)}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = snap.batches
	s.movements = snap.movements
}

func sortByCreated[T any](items []*T, created func(*T) time.Time, id func(*T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := created(items[i]), created(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) < id(items[j])
	})
}
