// Package pdf implementa la generación del reporte de inventario en PDF
// con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Planta + Período                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | S.Inicial | Entradas | Salidas |          │
//	│         Teórico | Físico | Var %                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ATENCIÓN: materiales con varianza fuera de tolerancia       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	appinventory "github.com/dcconcretos/concreto-api/internal/application/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRisk    = &props.Color{Red: 176, Green: 30, Blue: 30}
)

var _ appinventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateDashboardPDF genera el PDF del tablero y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateDashboardPDF(
	_ context.Context,
	report *dto.InventoryDashboardDTO,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)

	// Header principal
	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Tabla de materiales
	m.AddRows(tableHeaderRow())
	for _, r := range tableMaterialRows(report.Materials) {
		m.AddRows(r)
	}

	// Sección de atención
	if len(report.Attention) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		for _, r := range attentionRows(report.Attention) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: planta (izq) y período del reporte (der).
func headerRow(report *dto.InventoryDashboardDTO) core.Row {
	periodo := report.StartDate.Format("02/01/2006") + " a " + report.EndDate.Format("02/01/2006")

	return row.New(16).Add(
		col.New(7).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Planta: "+report.PlantID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("PERÍODO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(periodo, props.Text{
				Size: 9, Align: align.Right, Top: 8,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de flujos por material.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Material", 3, align.Left),
		h("S. Inicial", 1, align.Right),
		h("Entradas", 2, align.Right),
		h("Salidas", 2, align.Right),
		h("Teórico", 1, align.Right),
		h("Físico", 1, align.Right),
		h("Var %", 2, align.Right),
	)
}

// tableMaterialRows: una fila por material con sus flujos del período.
func tableMaterialRows(materials []dto.MaterialFlowDTO) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{
			Size: 7.5, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	result := make([]core.Row, 0, len(materials))
	for _, m := range materials {
		entradas := m.Entries.Add(m.ManualAdditions)
		salidas := m.Consumption.Add(m.ManualWithdrawals).Add(m.Waste)

		fisico := "N/D"
		varianza := "N/D"
		if m.CountedStock != nil {
			fisico = m.CountedStock.StringFixed(2)
			varianza = m.VariancePct.StringFixed(2) + "%"
		}

		result = append(result, row.New(6).Add(
			cell(m.Name, 3, align.Left),
			cell(m.InitialStock.StringFixed(2), 1, align.Right),
			cell(entradas.StringFixed(2), 2, align.Right),
			cell(salidas.StringFixed(2), 2, align.Right),
			cell(m.TheoreticalStock.StringFixed(2), 1, align.Right),
			cell(fisico, 1, align.Right),
			cell(varianza, 2, align.Right),
		))
	}
	return result
}

// attentionRows: materiales cuya varianza supera los umbrales configurados.
func attentionRows(items []dto.AttentionItemDTO) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("MATERIALES QUE REQUIEREN ATENCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorRisk, Top: 1,
			}),
		)),
	}

	for _, it := range items {
		color := colorGray
		if it.Level == "riesgo" {
			color = colorRisk
		}
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(it.Name, props.Text{
				Size: 8, Top: 1, Left: 2,
			})),
			col.New(3).Add(text.New("Varianza: "+it.VariancePct.StringFixed(2)+"%", props.Text{
				Size: 8, Align: align.Right, Top: 1,
			})),
			col.New(3).Add(text.New(it.Level, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: color, Top: 1, Right: 1,
			})),
		))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Varianza = (stock teórico - stock físico contado) / stock teórico. "+
				"Verifique conteos y registre los ajustes manuales que correspondan.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}
