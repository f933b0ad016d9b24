package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para alertas.
type AlertRepository interface {
	// CreateIfAbsent inserta la alerta salvo que ya exista una sin resolver para el mismo
	// (Target.ID, Type). Devuelve false sin error en ese caso. Debe ser atómico frente a
	// ejecuciones concurrentes.
	CreateIfAbsent(ctx context.Context, alert *entity.Alert) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	List(ctx context.Context) ([]*entity.Alert, error)
	Resolve(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}
