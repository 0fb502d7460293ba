package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
)

// MaterialSummaryDTO consumo agregado de un material.
type MaterialSummaryDTO struct {
	MaterialID     string          `json:"material_id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Unit           string          `json:"unit"`
	TheoreticalQty decimal.Decimal `json:"theoretical_qty"`
	ActualQty      decimal.Decimal `json:"actual_qty"`
	Adjustment     decimal.Decimal `json:"adjustment"`
	ActualPerM3    decimal.Decimal `json:"actual_per_m3"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	HasPrice       bool            `json:"has_price"`
	IsCement       bool            `json:"is_cement"`
}

// RecipeSummaryDTO consumos agregados de una receta.
type RecipeSummaryDTO struct {
	RecipeID    string               `json:"recipe_id"`
	Remisiones  int                  `json:"remisiones"`
	TotalVolume decimal.Decimal      `json:"total_volume_m3"`
	TotalCost   decimal.Decimal      `json:"total_cost"`
	CostPerM3   decimal.Decimal      `json:"cost_per_m3"`
	Materials   []MaterialSummaryDTO `json:"materials"`
}

// CategoryTotalDTO costo por categoría de material.
type CategoryTotalDTO struct {
	Category  string          `json:"category"`
	Materials int             `json:"materials"`
	TotalCost decimal.Decimal `json:"total_cost"`
	SharePct  decimal.Decimal `json:"share_pct"`
}

// ConsumptionSummaryDTO totales de consumo de una ventana de producción.
type ConsumptionSummaryDTO struct {
	Remisiones         int                  `json:"remisiones"`
	RemisionesNoVolume int                  `json:"remisiones_sin_volumen"`
	TotalVolume        decimal.Decimal      `json:"total_volume_m3"`
	TotalCost          decimal.Decimal      `json:"total_cost"`
	CostPerM3          decimal.Decimal      `json:"cost_per_m3"`
	CementCost         decimal.Decimal      `json:"cement_cost"`
	Materials          []MaterialSummaryDTO `json:"materials"`
	TopMaterials       []MaterialSummaryDTO `json:"top_materials"`
	Categories         []CategoryTotalDTO   `json:"categories"`
	Recipes            []RecipeSummaryDTO   `json:"recipes"`
	MaterialsNoPrice   []string             `json:"materials_without_price,omitempty"`
}

// TrendDTO comparación contra el período anterior.
type TrendDTO struct {
	Available    bool            `json:"available"`
	ChangePct    decimal.Decimal `json:"change_pct"`
	Direction    string          `json:"direction,omitempty"`
	CurrentCost  decimal.Decimal `json:"current_cost"`
	PreviousCost decimal.Decimal `json:"previous_cost"`
	PreviousFrom time.Time       `json:"previous_from"`
	PreviousTo   time.Time       `json:"previous_to"`
}

// PartialResultDTO remisiones cuyo detalle de materiales no pudo cargarse.
type PartialResultDTO struct {
	DroppedRemisiones []string `json:"dropped_remisiones"`
}

// ProductionDetailsDTO reporte de producción de una ventana.
type ProductionDetailsDTO struct {
	PlantID   string                 `json:"plant_id"`
	StartDate time.Time              `json:"start_date"`
	EndDate   time.Time              `json:"end_date"`
	Summary   *ConsumptionSummaryDTO `json:"summary"`
	Trend     *TrendDTO              `json:"trend,omitempty"`
	Partial   *PartialResultDTO      `json:"partial,omitempty"`
}

// BatchDeviationDTO desviación de una remisión frente al baseline.
type BatchDeviationDTO struct {
	RemisionID     string          `json:"remision_id"`
	Number         string          `json:"number"`
	ActualPerM3    decimal.Decimal `json:"actual_per_m3"`
	DeviationPct   decimal.Decimal `json:"deviation_pct"`
	Classification string          `json:"classification"`
}

// ProblematicRemisionDTO remisión con datos de consumo deficientes.
type ProblematicRemisionDTO struct {
	RemisionID string `json:"remision_id"`
	Number     string `json:"number"`
	Reason     string `json:"reason"`
	Materials  int    `json:"materials"`
}

// RecipeAnalysisDTO baseline y clasificación por remisión de una receta.
type RecipeAnalysisDTO struct {
	RecipeID      string                   `json:"recipe_id"`
	RecipeCode    string                   `json:"recipe_code"`
	MaterialID    string                   `json:"material_id"`
	BaselinePerM3 decimal.Decimal          `json:"baseline_per_m3"`
	SampleSize    int                      `json:"sample_size"`
	ThresholdPct  decimal.Decimal          `json:"threshold_pct"`
	Batches       []BatchDeviationDTO      `json:"batches"`
	Problematic   []ProblematicRemisionDTO `json:"problematic"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Mapeo dominio → DTO
// ──────────────────────────────────────────────────────────────────────────────

// NewConsumptionSummaryDTO convierte el resultado del agregador.
func NewConsumptionSummaryDTO(s *consumption.Summary) *ConsumptionSummaryDTO {
	out := &ConsumptionSummaryDTO{
		Remisiones:         s.NumRemisiones,
		RemisionesNoVolume: s.RemisionesSinVolumen,
		TotalVolume:        s.VolumenTotal,
		TotalCost:          s.CostoTotal,
		CostPerM3:          s.CostoPorM3,
		CementCost:         s.CostoCemento,
		Materials:          materialSummaries(s.Materiales),
		TopMaterials:       materialSummaries(s.TopMateriales),
		MaterialsNoPrice:   s.MaterialesSinPrecio,
	}
	for _, c := range s.PorCategoria {
		out.Categories = append(out.Categories, CategoryTotalDTO{
			Category:  c.Categoria,
			Materials: c.NumMateriales,
			TotalCost: c.CostoTotal,
			SharePct:  c.Participacion,
		})
	}
	for _, r := range s.PorReceta {
		out.Recipes = append(out.Recipes, RecipeSummaryDTO{
			RecipeID:    r.RecipeID,
			Remisiones:  r.NumRemisiones,
			TotalVolume: r.VolumenTotal,
			TotalCost:   r.CostoTotal,
			CostPerM3:   r.CostoPorM3,
			Materials:   materialSummaries(r.Materiales),
		})
	}
	return out
}

func materialSummaries(ms []consumption.MaterialSummary) []MaterialSummaryDTO {
	out := make([]MaterialSummaryDTO, 0, len(ms))
	for _, m := range ms {
		out = append(out, MaterialSummaryDTO{
			MaterialID:     m.MaterialID,
			Name:           m.Nombre,
			Category:       m.Categoria,
			Unit:           m.Unidad,
			TheoreticalQty: m.CantidadTeorica,
			ActualQty:      m.CantidadReal,
			Adjustment:     m.Ajuste,
			ActualPerM3:    m.ConsumoRealPorM3,
			TotalCost:      m.CostoTotal,
			HasPrice:       m.TienePrecio,
			IsCement:       m.EsCemento,
		})
	}
	return out
}

// NewTrendDTO convierte el resultado del comparador de períodos.
func NewTrendDTO(t consumption.TrendResult) *TrendDTO {
	return &TrendDTO{
		Available:    t.Disponible,
		ChangePct:    t.VariacionPct,
		Direction:    t.Direccion,
		CurrentCost:  t.Actual.CostoTotal,
		PreviousCost: t.Anterior.CostoTotal,
		PreviousFrom: t.Anterior.Desde,
		PreviousTo:   t.Anterior.Hasta,
	}
}
