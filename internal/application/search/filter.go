// Package search implementa los filtros de texto de los listados.
// Funciones puras sobre colecciones ya obtenidas del repositorio.
package search

import (
	"strings"

	"github.com/jhoicas/stock-inventory-api/internal/domain/entity"
)

// AlertStatus filtro de estado para alertas.
type AlertStatus string

const (
	StatusAll        AlertStatus = "all"
	StatusResolved   AlertStatus = "resolved"
	StatusUnresolved AlertStatus = "unresolved"
)

// ParseAlertStatus valor vacío o desconocido equivale a "all".
func ParseAlertStatus(s string) AlertStatus {
	switch AlertStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusResolved:
		return StatusResolved
	case StatusUnresolved:
		return StatusUnresolved
	}
	return StatusAll
}

// Matches búsqueda de subcadena sin distinguir mayúsculas sobre los campos unidos por espacio.
// Campos vacíos se ignoran; un término vacío coincide con todo.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			parts = append(parts, f)
		}
	}
	return strings.Contains(strings.ToLower(strings.Join(parts, " ")), term)
}

// IndexProducts construye un lookup por id.
func IndexProducts(products []*entity.Product) map[string]*entity.Product {
	idx := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		idx[p.ID] = p
	}
	return idx
}

// IndexLocations construye un lookup por id.
func IndexLocations(locations []*entity.Location) map[string]*entity.Location {
	idx := make(map[string]*entity.Location, len(locations))
	for _, l := range locations {
		idx[l.ID] = l
	}
	return idx
}

// IndexBatches construye un lookup por id.
func IndexBatches(batches []*entity.Batch) map[string]*entity.Batch {
	idx := make(map[string]*entity.Batch, len(batches))
	for _, b := range batches {
		idx[b.ID] = b
	}
	return idx
}

// FilterProducts por nombre, SKU y categoría.
func FilterProducts(products []*entity.Product, term string) []*entity.Product {
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if Matches(term, p.Name, p.SKU, p.Category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterLocations por nombre, código y descripción.
func FilterLocations(locations []*entity.Location, term string) []*entity.Location {
	out := make([]*entity.Location, 0, len(locations))
	for _, l := range locations {
		if Matches(term, l.Name, l.Code, l.Description) {
			out = append(out, l)
		}
	}
	return out
}

// FilterBatches por número de lote, nombre/SKU del producto y nombre/código de la ubicación.
func FilterBatches(
	batches []*entity.Batch,
	products map[string]*entity.Product,
	locations map[string]*entity.Location,
	term string,
) []*entity.Batch {
	out := make([]*entity.Batch, 0, len(batches))
	for _, b := range batches {
		fields := []string{b.BatchNumber}
		fields = appendProduct(fields, products[b.ProductID])
		fields = appendLocation(fields, locations[b.LocationID])
		if Matches(term, fields...) {
			out = append(out, b)
		}
	}
	return out
}

// FilterMovements descarta movimientos cuyo lote no se conoce, aunque el término esté vacío.
func FilterMovements(
	movements []*entity.Movement,
	batches map[string]*entity.Batch,
	products map[string]*entity.Product,
	locations map[string]*entity.Location,
	term string,
) []*entity.Movement {
	out := make([]*entity.Movement, 0, len(movements))
	for _, m := range movements {
		b, ok := batches[m.BatchID]
		if !ok || b == nil {
			continue
		}
		fields := []string{b.BatchNumber}
		fields = appendProduct(fields, products[b.ProductID])
		fields = appendLocation(fields, locations[m.SourceLocationID])
		fields = appendLocation(fields, locations[m.DestinationLocationID])
		fields = append(fields, m.Notes)
		if Matches(term, fields...) {
			out = append(out, m)
		}
	}
	return out
}

// FilterAlerts por nombre/SKU del producto (resuelto a través del destino), mensaje y tipo,
// más el filtro de estado.
func FilterAlerts(
	alerts []*entity.Alert,
	products map[string]*entity.Product,
	batches map[string]*entity.Batch,
	term string,
	status AlertStatus,
) []*entity.Alert {
	out := make([]*entity.Alert, 0, len(alerts))
	for _, a := range alerts {
		switch status {
		case StatusResolved:
			if !a.Resolved {
				continue
			}
		case StatusUnresolved:
			if a.Resolved {
				continue
			}
		}
		fields := appendProduct(nil, AlertProduct(a, products, batches))
		fields = append(fields, a.Message, string(a.Type))
		if Matches(term, fields...) {
			out = append(out, a)
		}
	}
	return out
}

// AlertProduct producto al que se refiere la alerta: directo o vía el lote. nil si no se conoce.
func AlertProduct(a *entity.Alert, products map[string]*entity.Product, batches map[string]*entity.Batch) *entity.Product {
	switch a.Target.Kind {
	case entity.TargetProduct:
		return products[a.Target.ID]
	case entity.TargetBatch:
		if b, ok := batches[a.Target.ID]; ok && b != nil {
			return products[b.ProductID]
		}
	}
	return nil
}

func appendProduct(fields []string, p *entity.Product) []string {
	if p == nil {
		return fields
	}
	return append(fields, p.Name, p.SKU)
}

func appendLocation(fields []string, l *entity.Location) []string {
	if l == nil {
		return fields
	}
	return append(fields, l.Name, l.Code)
}
