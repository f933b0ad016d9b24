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

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, alert_type, alert_level, message, related_type, related_id, resolved, created_at, resolved_at`

// AlertRepo implementación del puerto AlertRepository sobre PostgreSQL.
// La unicidad de alertas sin resolver la garantiza el índice parcial alerts_unresolved_uniq.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

// CreateIfAbsent inserción condicional atómica: (false, nil) si ya hay una alerta sin resolver
// con el mismo related_id y alert_type.
func (r *AlertRepo) CreateIfAbsent(ctx context.Context, a *entity.Alert) (bool, error) {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO alerts (`+alertColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (related_id, alert_type) WHERE NOT resolved DO NOTHING`,
		a.ID, string(a.Type), string(a.Level), a.Message, string(a.Target.Kind), a.Target.ID,
		a.Resolved, a.CreatedAt, a.ResolvedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert alert: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	a, err := scanAlert(r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert: %w", err)
	}
	return a, nil
}

// List todas las alertas, más reciente primero.
func (r *AlertRepo) List(ctx context.Context) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `SELECT `+alertColumns+` FROM alerts ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// Resolve marca la alerta como resuelta. ErrNotFound si no existe, ErrAlreadyResolved si ya lo estaba.
func (r *AlertRepo) Resolve(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE alerts SET resolved = true, resolved_at = $2 WHERE id = $1 AND NOT resolved`, id, at)
	if err != nil {
		return fmt.Errorf("resolve alert: %w", err)
	}
	if cmd.RowsAffected() == 1 {
		return nil
	}
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return domain.ErrAlreadyResolved
}

func (r *AlertRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM alerts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete alert: %w", err)
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	var (
		a                    entity.Alert
		alertType, level     string
		relatedType, related string
	)
	err := row.Scan(&a.ID, &alertType, &level, &a.Message, &relatedType, &related, &a.Resolved, &a.CreatedAt, &a.ResolvedAt)
	if err != nil {
		return nil, err
	}
	target, err := entity.ParseTarget(relatedType, related)
	if err != nil {
		return nil, err
	}
	a.Type = entity.AlertType(alertType)
	a.Level = entity.AlertLevel(level)
	a.Target = target
	return &a, nil
}
