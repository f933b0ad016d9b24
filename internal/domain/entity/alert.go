package entity

import (
	"fmt"
	"time"
)

// AlertType taxonomía abierta de alertas.
type AlertType string

// Tipos de alerta emitidos por los jobs.
const (
	AlertTypeStock  AlertType = "stock"
	AlertTypeExpiry AlertType = "expiry"
)

// AlertLevel severidad de la alerta.
type AlertLevel string

const (
	AlertLevelHigh   AlertLevel = "high"
	AlertLevelMedium AlertLevel = "medium"
	AlertLevelLow    AlertLevel = "low"
)

// TargetKind discrimina la entidad a la que apunta una alerta.
type TargetKind string

const (
	TargetProduct TargetKind = "product"
	TargetBatch   TargetKind = "batch"
)

// AlertTarget referencia polimórfica de una alerta: Kind + ID.
// Se persiste como related_type + related_id.
type AlertTarget struct {
	Kind TargetKind
	ID   string
}

// ProductTarget apunta la alerta a un producto.
func ProductTarget(id string) AlertTarget { return AlertTarget{Kind: TargetProduct, ID: id} }

// BatchTarget apunta la alerta a un lote.
func BatchTarget(id string) AlertTarget { return AlertTarget{Kind: TargetBatch, ID: id} }

// ParseTarget reconstruye el destino desde las columnas persistidas.
func ParseTarget(kind, id string) (AlertTarget, error) {
	switch TargetKind(kind) {
	case TargetProduct, TargetBatch:
		return AlertTarget{Kind: TargetKind(kind), ID: id}, nil
	}
	return AlertTarget{}, fmt.Errorf("related_type desconocido: %q", kind)
}

// Alert alerta derivada. Invariante: a lo sumo una alerta sin resolver por (Target.ID, Type).
type Alert struct {
	ID         string
	Type       AlertType
	Level      AlertLevel
	Message    string
	Target     AlertTarget
	Resolved   bool
	CreatedAt  time.Time
	ResolvedAt *time.Time
}
