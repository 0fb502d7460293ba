package inventory

import (
	"context"
	"fmt"
	"time"
)

// ExportUseCase exporta el dashboard de inventario a PDF a través del puerto
// ReportGenerator. El cálculo es el mismo del dashboard JSON; aquí solo se
// conecta con el generador.
type ExportUseCase struct {
	dashboard *DashboardUseCase
	generator ReportGenerator
}

// NewExportUseCase construye el caso de uso.
func NewExportUseCase(dashboard *DashboardUseCase, generator ReportGenerator) *ExportUseCase {
	return &ExportUseCase{dashboard: dashboard, generator: generator}
}

// ExportPDF calcula el dashboard y devuelve los bytes del PDF.
func (uc *ExportUseCase) ExportPDF(ctx context.Context, plantID string, desde, hasta time.Time) ([]byte, error) {
	report, err := uc.dashboard.Get(ctx, plantID, desde, hasta)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.generator.GenerateDashboardPDF(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("generar PDF del dashboard: %w", err)
	}
	return pdf, nil
}
