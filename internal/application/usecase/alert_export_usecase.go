package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/stock-inventory-api/internal/application/dto"
	"github.com/jhoicas/stock-inventory-api/internal/application/search"
	"github.com/jhoicas/stock-inventory-api/internal/domain"
)

// Formatos de exportación soportados.
const (
	ExportJSON = "json"
	ExportPDF  = "pdf"
	ExportXLSX = "xlsx"
)

// AlertReportRenderer genera el reporte de alertas en un formato binario (PDF, XLSX).
type AlertReportRenderer interface {
	Render(rows []dto.AlertResponse, generatedAt time.Time) ([]byte, error)
}

// ExportFile archivo listo para descargar.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// AlertExportUseCase exporta el listado de alertas filtrado.
type AlertExportUseCase struct {
	alerts *AlertUseCase
	pdf    AlertReportRenderer
	xlsx   AlertReportRenderer
	now    func() time.Time
}

// NewAlertExportUseCase construye el caso de uso. pdf y xlsx pueden ser nil (formato no disponible).
func NewAlertExportUseCase(alerts *AlertUseCase, pdf, xlsx AlertReportRenderer) *AlertExportUseCase {
	return &AlertExportUseCase{alerts: alerts, pdf: pdf, xlsx: xlsx, now: time.Now}
}

// Export genera el archivo en el formato pedido (json por defecto).
func (uc *AlertExportUseCase) Export(ctx context.Context, format, term string, status search.AlertStatus) (*ExportFile, error) {
	if format == "" {
		format = ExportJSON
	}
	var renderer AlertReportRenderer
	var contentType string
	switch format {
	case ExportJSON:
	case ExportPDF:
		renderer, contentType = uc.pdf, "application/pdf"
	case ExportXLSX:
		renderer, contentType = uc.xlsx, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, fmt.Errorf("%w: formato %q no soportado", domain.ErrInvalidInput, format)
	}
	if format != ExportJSON && renderer == nil {
		return nil, fmt.Errorf("%w: formato %q no disponible", domain.ErrInvalidInput, format)
	}

	rows, err := uc.alerts.Rows(ctx, term, status)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	filename := fmt.Sprintf("alerts-%s.%s", now.Format("2006-01-02"), format)

	if format == ExportJSON {
		content, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("export json: %w", err)
		}
		return &ExportFile{Content: content, ContentType: "application/json", Filename: filename}, nil
	}

	content, err := renderer.Render(rows, now)
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", format, err)
	}
	return &ExportFile{Content: content, ContentType: contentType, Filename: filename}, nil
}
