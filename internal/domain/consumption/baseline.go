package consumption

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// Clasificación de una remisión respecto al baseline de su receta.
const (
	DesviacionNormal = "normal"
	DesviacionAlta   = "alta" // sobreconsumo
	DesviacionBaja   = "baja" // subconsumo
)

// Motivos por los que una remisión se marca problemática.
const (
	ProblemaSinMateriales    = "sin_materiales"
	ProblemaDatosIncompletos = "datos_incompletos"
)

// RecipeBaseline consumo promedio por m³ de un material en una receta,
// calculado sobre las remisiones con volumen y consumo registrados.
type RecipeBaseline struct {
	RecipeID             string
	MaterialID           string
	ConsumoPromedioPorM3 decimal.Decimal
	NumRemisiones        int // remisiones que participaron en el promedio
}

// BatchDeviation desviación de una remisión frente al baseline.
type BatchDeviation struct {
	RemisionID    string
	Number        string
	ConsumoPorM3  decimal.Decimal
	DesviacionPct decimal.Decimal
	Clasificacion string
}

// ProblematicRemision remisión con datos de consumo deficientes.
type ProblematicRemision struct {
	RemisionID string
	Number     string
	Motivo     string // sin_materiales | datos_incompletos
	Materiales int    // materiales distintos registrados
}

// ComputeBaseline calcula el promedio aritmético del consumo por m³ de un
// material sobre las remisiones de la receta.
//
// Participan solo remisiones con volumen positivo y consumo real distinto de
// cero del material; una remisión que no dosificó el material no arrastra el
// promedio hacia abajo. Devuelve ok=false si ninguna remisión califica.
func ComputeBaseline(
	recipeID, materialID string,
	remisiones []entity.Remision,
	usos []entity.RemisionMaterial,
) (RecipeBaseline, bool) {
	consumoPorRemision := make(map[string]decimal.Decimal)
	for _, u := range usos {
		if u.MaterialID != materialID {
			continue
		}
		consumoPorRemision[u.RemisionID] = consumoPorRemision[u.RemisionID].Add(u.CantidadReal)
	}

	suma := decimal.Zero
	n := 0
	for _, r := range remisiones {
		if r.RecipeID != recipeID || !r.TieneVolumen() {
			continue
		}
		consumo, ok := consumoPorRemision[r.ID]
		if !ok || consumo.IsZero() {
			continue
		}
		suma = suma.Add(consumo.Div(r.VolumenFabricado))
		n++
	}
	if n == 0 {
		return RecipeBaseline{}, false
	}
	return RecipeBaseline{
		RecipeID:             recipeID,
		MaterialID:           materialID,
		ConsumoPromedioPorM3: suma.Div(decimal.NewFromInt(int64(n))).Round(4),
		NumRemisiones:        n,
	}, true
}

// Classify compara el consumo por m³ de una remisión contra el baseline con
// el umbral dado (en %). Es pura: reclasificar con otro umbral no requiere
// recalcular el baseline ni volver a consultar datos.
//
// Con umbral 0 cualquier diferencia clasifica como alta o baja; con baseline
// 0 toda desviación se reporta como 0% y normal.
func Classify(consumoPorM3, baseline, umbralPct decimal.Decimal) (string, decimal.Decimal) {
	if baseline.IsZero() {
		return DesviacionNormal, decimal.Zero
	}
	// La comparación usa el valor exacto; solo el reporte se redondea. Con
	// umbral 0 una desviación menor a 0.005% también clasifica.
	pct := consumoPorM3.Sub(baseline).Div(baseline).Mul(hundred)
	clasif := DesviacionNormal
	switch {
	case pct.GreaterThan(umbralPct):
		clasif = DesviacionAlta
	case pct.LessThan(umbralPct.Neg()):
		clasif = DesviacionBaja
	}
	return clasif, pct.Round(2)
}

// ClassifyBatches clasifica cada remisión de la receta frente al baseline.
// Remisiones sin volumen o sin consumo del material no se clasifican.
func ClassifyBatches(
	baseline RecipeBaseline,
	remisiones []entity.Remision,
	usos []entity.RemisionMaterial,
	umbralPct decimal.Decimal,
) []BatchDeviation {
	consumoPorRemision := make(map[string]decimal.Decimal)
	for _, u := range usos {
		if u.MaterialID != baseline.MaterialID {
			continue
		}
		consumoPorRemision[u.RemisionID] = consumoPorRemision[u.RemisionID].Add(u.CantidadReal)
	}

	var out []BatchDeviation
	for _, r := range remisiones {
		if r.RecipeID != baseline.RecipeID || !r.TieneVolumen() {
			continue
		}
		consumo, ok := consumoPorRemision[r.ID]
		if !ok || consumo.IsZero() {
			continue
		}
		porM3 := consumo.Div(r.VolumenFabricado).Round(4)
		clasif, pct := Classify(porM3, baseline.ConsumoPromedioPorM3, umbralPct)
		out = append(out, BatchDeviation{
			RemisionID:    r.ID,
			Number:        r.Number,
			ConsumoPorM3:  porM3,
			DesviacionPct: pct,
			Clasificacion: clasif,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// DetectProblematic marca remisiones sin filas de consumo o con menos
// materiales distintos que minMateriales. No depende de umbrales ni de
// baselines: es un control de calidad del dato, no de la dosificación.
func DetectProblematic(
	remisiones []entity.Remision,
	usos []entity.RemisionMaterial,
	minMateriales int,
) []ProblematicRemision {
	distintos := make(map[string]map[string]struct{})
	for _, u := range usos {
		set := distintos[u.RemisionID]
		if set == nil {
			set = make(map[string]struct{})
			distintos[u.RemisionID] = set
		}
		set[u.MaterialID] = struct{}{}
	}

	var out []ProblematicRemision
	for _, r := range remisiones {
		n := len(distintos[r.ID])
		switch {
		case n == 0:
			out = append(out, ProblematicRemision{RemisionID: r.ID, Number: r.Number, Motivo: ProblemaSinMateriales})
		case n < minMateriales:
			out = append(out, ProblematicRemision{RemisionID: r.ID, Number: r.Number, Motivo: ProblemaDatosIncompletos, Materiales: n})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
