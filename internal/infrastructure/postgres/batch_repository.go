package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stock-inventory-api/internal/domain"
	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
	"github.com/jhoicas/stock-inventory-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, product_id, location_id, batch_number, quantity, expiry_date, notes, created_at, updated_at`

// BatchRepo implementación del puerto BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador. Dentro de TxRunner recibe la tx.
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

func (r *BatchRepo) Create(ctx context.Context, b *entity.Batch) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO batches (`+batchColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.ProductID, b.LocationID, b.BatchNumber, b.Quantity, b.ExpiryDate, b.Notes, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) GetByID(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1`, id)
}

// GetForUpdate bloquea la fila del lote hasta el fin de la transacción.
func (r *BatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.Batch, error) {
	return r.get(ctx, `SELECT `+batchColumns+` FROM batches WHERE id = $1 FOR UPDATE`, id)
}

func (r *BatchRepo) FindByLocation(ctx context.Context, productID, locationID, batchNumber string) (*entity.Batch, error) {
	return r.get(ctx,
		`SELECT `+batchColumns+` FROM batches WHERE product_id = $1 AND location_id = $2 AND batch_number = $3`,
		productID, locationID, batchNumber,
	)
}

func (r *BatchRepo) Update(ctx context.Context, b *entity.Batch) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE batches SET batch_number = $2, quantity = $3, expiry_date = $4, notes = $5, updated_at = $6
		WHERE id = $1`,
		b.ID, b.BatchNumber, b.Quantity, b.ExpiryDate, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update batch: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BatchRepo) List(ctx context.Context) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches ORDER BY created_at DESC, id`)
}

func (r *BatchRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Batch, error) {
	return r.list(ctx, `SELECT `+batchColumns+` FROM batches WHERE product_id = $1 ORDER BY created_at DESC, id`, productID)
}

// ListExpiring lotes con existencias y vencimiento en (from, to), el más próximo primero.
func (r *BatchRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Batch, error) {
	return r.list(ctx, `
		SELECT `+batchColumns+` FROM batches
		WHERE expiry_date > $1 AND expiry_date < $2 AND quantity > 0
		ORDER BY expiry_date, id`, from, to)
}

func (r *BatchRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM batches WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}

func (r *BatchRepo) get(ctx context.Context, query string, args ...any) (*entity.Batch, error) {
	b, err := scanBatch(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return b, nil
}

func (r *BatchRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Batch, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()
	var list []*entity.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBatch(row pgx.Row) (*entity.Batch, error) {
	var b entity.Batch
	err := row.Scan(
		&b.ID, &b.ProductID, &b.LocationID, &b.BatchNumber, &b.Quantity,
		&b.ExpiryDate, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
