// Package pdf genera el reporte de alertas en PDF.
//
// Layout de la página A4 apaisada:
//
//	┌───────────────────────────────────────────────────────────────┐
//	│  Título + fecha de generación  │  Totales por estado          │
//	│  ───────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | Nivel | Producto | Mensaje | Estado    │
//	└───────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorHigh    = &props.Color{Red: 180, Green: 30, Blue: 30}
)

var _ usecase.AlertReportRenderer = (*AlertReportGenerator)(nil)

// AlertReportGenerator implementa usecase.AlertReportRenderer usando Maroto v2.
type AlertReportGenerator struct{}

// NewAlertReportGenerator construye el generador.
func NewAlertReportGenerator() *AlertReportGenerator { return &AlertReportGenerator{} }

// Render genera el PDF y devuelve sus bytes.
func (g *AlertReportGenerator) Render(rows []dto.AlertResponse, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Reporte de alertas", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rows, generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(rows)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(rows []dto.AlertResponse, generatedAt time.Time) core.Row {
	unresolved := 0
	for _, r := range rows {
		if !r.Resolved {
			unresolved++
		}
	}
	return row.New(16).Add(
		col.New(8).Add(
			text.New("Reporte de alertas de inventario", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("Total: %d", len(rows)), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New(fmt.Sprintf("Sin resolver: %d   |   Resueltas: %d", unresolved, len(rows)-unresolved), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 1, align.Left),
		h("Nivel", 1, align.Center),
		h("Producto", 2, align.Left),
		h("Mensaje", 5, align.Left),
		h("Estado", 1, align.Center),
	)
}

func tableRows(alerts []dto.AlertResponse) []core.Row {
	result := make([]core.Row, 0, len(alerts))
	for _, a := range alerts {
		levelProps := props.Text{Size: 8, Align: align.Center, Top: 1}
		if a.AlertLevel == "high" {
			levelProps.Style = fontstyle.Bold
			levelProps.Color = colorHigh
		}
		status := "Abierta"
		if a.Resolved {
			status = "Resuelta"
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(a.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(a.AlertType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(a.AlertLevel, levelProps)),
			col.New(2).Add(text.New(productLabel(a), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(a.Message, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(status, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func productLabel(a dto.AlertResponse) string {
	if a.ProductName == "" {
		return "-"
	}
	if a.ProductSKU == "" {
		return a.ProductName
	}
	return a.ProductName + " (" + a.ProductSKU + ")"
}
