package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, batch_id, source_location_id, destination_location_id, quantity, notes, created_at`

// MovementRepo registros inmutables de movimientos (solo INSERT y SELECT).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO movements (`+movementColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.BatchID, m.SourceLocationID, m.DestinationLocationID, m.Quantity, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements ORDER BY created_at DESC, id`)
}

func (r *MovementRepo) ListByBatch(ctx context.Context, batchID string) ([]*entity.Movement, error) {
	return r.list(ctx, `SELECT `+movementColumns+` FROM movements WHERE batch_id = $1 ORDER BY created_at DESC, id`, batchID)
}

func (r *MovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.BatchID, &m.SourceLocationID, &m.DestinationLocationID, &m.Quantity, &m.Notes, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
