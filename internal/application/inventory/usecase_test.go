package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-inventory-api/internal/application/inventory"
	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func qty(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	ctx := context.Background()
	s := memory.NewStore()
	now := time.Now()
	expiry := now.Add(90 * 24 * time.Hour)

	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "loc-a", Code: "A", Name: "Bodega A", CreatedAt: now}))
	require.NoError(t, s.Locations().Create(ctx, &entity.Location{ID: "loc-b", Code: "B", Name: "Bodega B", CreatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "p1", Name: "Guantes", SKU: "GL-1", CreatedAt: now}))
	require.NoError(t, s.Batches().Create(ctx, &entity.Batch{
		ID: "b1", ProductID: "p1", LocationID: "loc-a", BatchNumber: "L-1",
		Quantity: qty(10), ExpiryDate: &expiry, CreatedAt: now,
	}))
	return s
}

func newUseCase(s *memory.Store) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(memory.NewTxRunner(s), s.Batches(), s.Locations())
}

func batchQty(t *testing.T, s *memory.Store, id string) decimal.Decimal {
	t.Helper()
	b, err := s.Batches().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, b)
	return b.Quantity
}

func assertNoWrites(t *testing.T, s *memory.Store) {
	t.Helper()
	ctx := context.Background()
	movs, err := s.Movements().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, movs, "no debe registrarse ningún movimiento")
	batches, err := s.Batches().List(ctx)
	require.NoError(t, err)
	assert.Len(t, batches, 1)
	assert.True(t, qty(10).Equal(batchQty(t, s, "b1")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación previa (sin escrituras)
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_RechazaEntradasInvalidas(t *testing.T) {
	cases := []struct {
		name string
		in   inventory.MovementInput
		want error
	}{
		{"cantidad cero", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(0)}, domain.ErrInvalidInput},
		{"cantidad negativa", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(-3)}, domain.ErrInvalidInput},
		{"misma ubicación", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-a", Quantity: qty(1)}, domain.ErrSameLocation},
		{"lote inexistente", inventory.MovementInput{BatchID: "nope", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(1)}, domain.ErrNotFound},
		{"origen distinto al del lote", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-b", DestinationLocationID: "loc-a", Quantity: qty(1)}, domain.ErrInvalidInput},
		{"excede cantidad del lote", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(11)}, domain.ErrInsufficientStock},
		{"destino inexistente", inventory.MovementInput{BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-z", Quantity: qty(1)}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			_, err := newUseCase(s).Register(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			assertNoWrites(t, s)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Traslado
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaLoteEnDestino(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	mov, err := newUseCase(s).Register(ctx, inventory.MovementInput{
		BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(4), Notes: "reposición",
	})
	require.NoError(t, err)
	require.NotNil(t, mov)
	assert.NotEmpty(t, mov.ID)

	assert.True(t, qty(6).Equal(batchQty(t, s, "b1")))

	dest, err := s.Batches().FindByLocation(ctx, "p1", "loc-b", "L-1")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.True(t, qty(4).Equal(dest.Quantity))
	require.NotNil(t, dest.ExpiryDate, "el lote destino conserva el vencimiento")

	movs, err := s.Movements().ListByBatch(ctx, "b1")
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, "reposición", movs[0].Notes)
}

func TestRegister_SumaALoteExistente(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.Batches().Create(ctx, &entity.Batch{
		ID: "b2", ProductID: "p1", LocationID: "loc-b", BatchNumber: "L-1", Quantity: qty(5), CreatedAt: time.Now(),
	}))

	_, err := newUseCase(s).Register(ctx, inventory.MovementInput{
		BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(10),
	})
	require.NoError(t, err)

	assert.True(t, batchQty(t, s, "b1").IsZero())
	assert.True(t, qty(15).Equal(batchQty(t, s, "b2")))
	batches, err := s.Batches().List(ctx)
	require.NoError(t, err)
	assert.Len(t, batches, 2)
}

// failingMovements falla al insertar el movimiento (último paso de la transacción).
type failingMovements struct {
	repository.MovementRepository
}

func (failingMovements) Create(context.Context, *entity.Movement) error {
	return errors.New("insert movement: conexión perdida")
}

type failingMovementTx struct {
	inner *memory.TxRunner
}

func (f failingMovementTx) Run(ctx context.Context, fn func(repository.BatchRepository, repository.MovementRepository) error) error {
	return f.inner.Run(ctx, func(b repository.BatchRepository, m repository.MovementRepository) error {
		return fn(b, failingMovements{m})
	})
}

func TestRegister_RollbackSiFallaElMovimiento(t *testing.T) {
	s := newStore(t)
	uc := inventory.NewRegisterMovementUseCase(failingMovementTx{memory.NewTxRunner(s)}, s.Batches(), s.Locations())

	_, err := uc.Register(context.Background(), inventory.MovementInput{
		BatchID: "b1", SourceLocationID: "loc-a", DestinationLocationID: "loc-b", Quantity: qty(3),
	})
	require.Error(t, err)
	assertNoWrites(t, s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reposición
// ──────────────────────────────────────────────────────────────────────────────

func TestReplenishment_OrdenaPorDeficitRelativo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "a", SKU: "A", ReorderPoint: qty(100), TotalStock: qty(80), Price: qty(2), CreatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "b", SKU: "B", ReorderPoint: qty(10), TotalStock: qty(1), Price: qty(5), CreatedAt: now}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "c", SKU: "C", ReorderPoint: qty(10), TotalStock: qty(10), CreatedAt: now}))

	list, err := inventory.NewReplenishmentUseCase(s.Products()).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "b", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, qty(14).Equal(list[0].SuggestedOrderQty), "15 - 1 = 14, fue %s", list[0].SuggestedOrderQty)
	assert.True(t, qty(70).Equal(list[0].EstimatedOrderCost))
	assert.Equal(t, "a", list[1].ProductID)
	assert.Equal(t, 2, list[1].Priority)
}

func TestReplenishment_SinProductos(t *testing.T) {
	list, err := inventory.NewReplenishmentUseCase(memory.NewStore().Products()).GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
