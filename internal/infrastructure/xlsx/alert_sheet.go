// Package xlsx genera el reporte de alertas como hoja de cálculo.
package xlsx

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
)

// SheetName nombre de la hoja con las alertas.
const SheetName = "Alertas"

var headers = []string{"ID", "Fecha", "Tipo", "Nivel", "Producto", "SKU", "Mensaje", "Destino", "Resuelta", "Fecha resolución"}

var _ usecase.AlertReportRenderer = (*AlertSheetGenerator)(nil)

// AlertSheetGenerator implementa usecase.AlertReportRenderer con excelize.
type AlertSheetGenerator struct{}

// NewAlertSheetGenerator construye el generador.
func NewAlertSheetGenerator() *AlertSheetGenerator { return &AlertSheetGenerator{} }

// Render una fila por alerta; la fila 1 es la cabecera.
func (g *AlertSheetGenerator) Render(rows []dto.AlertResponse, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   "Reporte de alertas",
		Created: generatedAt.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, fmt.Errorf("xlsx: propiedades: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return nil, fmt.Errorf("xlsx: cabecera: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("xlsx: estilo cabecera: %w", err)
	}

	for i, a := range rows {
		resolvedAt := ""
		if a.ResolvedAt != nil {
			resolvedAt = a.ResolvedAt.Format("2006-01-02 15:04")
		}
		values := []any{
			a.ID,
			a.CreatedAt.Format("2006-01-02 15:04"),
			a.AlertType,
			a.AlertLevel,
			a.ProductName,
			a.ProductSKU,
			a.Message,
			a.RelatedType + ":" + a.RelatedID,
			a.Resolved,
			resolvedAt,
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(SheetName, "G", "G", 80)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
