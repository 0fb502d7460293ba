package consumption

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/pricing"
)

var hundred = decimal.NewFromInt(100)

// MaterialSummary consumo agregado de un material dentro de un conjunto de
// remisiones (global o por receta).
type MaterialSummary struct {
	MaterialID      string
	Nombre          string
	Categoria       string
	Unidad          string
	CantidadTeorica decimal.Decimal
	CantidadReal    decimal.Decimal
	Ajuste          decimal.Decimal // real - teórico
	// ConsumoRealPorM3 tasa sobre el volumen con dato del grupo; 0 si el
	// grupo no tiene volumen.
	ConsumoRealPorM3 decimal.Decimal
	CostoTotal       decimal.Decimal // 0 cuando TienePrecio es false
	TienePrecio      bool
	EsCemento        bool
}

// RecipeSummary consumo agregado de las remisiones de una receta.
type RecipeSummary struct {
	RecipeID      string
	NumRemisiones int
	// VolumenTotal suma solo las remisiones con volumen positivo; las demás
	// cuentan en NumRemisiones y en los totales, no en tasas por m³.
	VolumenTotal decimal.Decimal
	Materiales   []MaterialSummary
	CostoTotal   decimal.Decimal
	CostoPorM3   decimal.Decimal
}

// CategoryTotal costo agregado por categoría de material.
type CategoryTotal struct {
	Categoria     string
	NumMateriales int // materiales distintos de la categoría
	CostoTotal    decimal.Decimal
	Participacion decimal.Decimal // % del costo total del período
}

// Summary resultado del agregador para una ventana de producción.
type Summary struct {
	NumRemisiones        int
	RemisionesSinVolumen int
	VolumenTotal         decimal.Decimal
	CostoTotal           decimal.Decimal
	CostoPorM3           decimal.Decimal
	CostoCemento         decimal.Decimal
	Materiales           []MaterialSummary
	TopMateriales        []MaterialSummary
	PorCategoria         []CategoryTotal
	PorReceta            []RecipeSummary
	MaterialesSinPrecio  []string
}

// Aggregate construye los totales por material, por receta y por categoría
// de un conjunto de remisiones con sus consumos.
//
// Filas duplicadas del mismo par (remisión, material) se suman, nunca se
// descartan. Consumos de remisiones que no están en la lista se ignoran.
// Materiales sin precio resuelto aportan costo 0 y quedan marcados.
func Aggregate(
	remisiones []entity.Remision,
	usos []entity.RemisionMaterial,
	materiales map[string]entity.Material,
	precios *pricing.PriceIndex,
	clasificador Classifier,
	topN int,
) *Summary {
	s := &Summary{NumRemisiones: len(remisiones)}

	porRemision := make(map[string]entity.Remision, len(remisiones))
	recetas := make(map[string]*RecipeSummary)
	for _, r := range remisiones {
		porRemision[r.ID] = r
		rec := recetas[r.RecipeID]
		if rec == nil {
			rec = &RecipeSummary{RecipeID: r.RecipeID}
			recetas[r.RecipeID] = rec
		}
		rec.NumRemisiones++
		if r.TieneVolumen() {
			rec.VolumenTotal = rec.VolumenTotal.Add(r.VolumenFabricado)
			s.VolumenTotal = s.VolumenTotal.Add(r.VolumenFabricado)
		} else {
			s.RemisionesSinVolumen++
		}
	}

	// Acumulación por suma: global y por (receta, material).
	global := make(map[string]*MaterialSummary)
	porReceta := make(map[string]map[string]*MaterialSummary)
	for _, u := range usos {
		rem, ok := porRemision[u.RemisionID]
		if !ok {
			continue
		}
		acum(global, u)
		rm := porReceta[rem.RecipeID]
		if rm == nil {
			rm = make(map[string]*MaterialSummary)
			porReceta[rem.RecipeID] = rm
		}
		acum(rm, u)
	}

	cerrar := func(ms *MaterialSummary, volumen decimal.Decimal) {
		mat, conocido := materiales[ms.MaterialID]
		if conocido {
			ms.Nombre = mat.Name
			ms.Categoria = mat.Category
			ms.Unidad = mat.Unit
		} else {
			// El catálogo puede venir incompleto; el ID sirve de etiqueta.
			ms.Nombre = ms.MaterialID
		}
		ms.Ajuste = ms.CantidadReal.Sub(ms.CantidadTeorica)
		if precio, ok := precios.Price(ms.MaterialID); ok {
			ms.TienePrecio = true
			ms.CostoTotal = ms.CantidadReal.Mul(precio).Round(2)
		}
		ms.EsCemento = clasificador.EsCemento(mat)
		if volumen.GreaterThan(decimal.Zero) {
			ms.ConsumoRealPorM3 = ms.CantidadReal.Div(volumen).Round(4)
		}
	}

	for _, ms := range global {
		cerrar(ms, s.VolumenTotal)
		s.Materiales = append(s.Materiales, *ms)
		s.CostoTotal = s.CostoTotal.Add(ms.CostoTotal)
		if ms.EsCemento {
			s.CostoCemento = s.CostoCemento.Add(ms.CostoTotal)
		}
		if !ms.TienePrecio {
			s.MaterialesSinPrecio = append(s.MaterialesSinPrecio, ms.MaterialID)
		}
	}
	ordenarPorNombre(s.Materiales)
	sort.Strings(s.MaterialesSinPrecio)

	if s.VolumenTotal.GreaterThan(decimal.Zero) {
		s.CostoPorM3 = s.CostoTotal.Div(s.VolumenTotal).Round(2)
	}

	s.TopMateriales = topPorCosto(s.Materiales, topN)
	s.PorCategoria = totalesPorCategoria(s.Materiales, s.CostoTotal)

	for recipeID, rm := range porReceta {
		rec := recetas[recipeID]
		for _, ms := range rm {
			cerrar(ms, rec.VolumenTotal)
			rec.Materiales = append(rec.Materiales, *ms)
			rec.CostoTotal = rec.CostoTotal.Add(ms.CostoTotal)
		}
		ordenarPorNombre(rec.Materiales)
		if rec.VolumenTotal.GreaterThan(decimal.Zero) {
			rec.CostoPorM3 = rec.CostoTotal.Div(rec.VolumenTotal).Round(2)
		}
	}
	for _, rec := range recetas {
		s.PorReceta = append(s.PorReceta, *rec)
	}
	sort.Slice(s.PorReceta, func(i, j int) bool {
		return s.PorReceta[i].RecipeID < s.PorReceta[j].RecipeID
	})

	return s
}

func acum(dst map[string]*MaterialSummary, u entity.RemisionMaterial) {
	ms := dst[u.MaterialID]
	if ms == nil {
		ms = &MaterialSummary{MaterialID: u.MaterialID, Unidad: u.Unit}
		dst[u.MaterialID] = ms
	}
	ms.CantidadTeorica = ms.CantidadTeorica.Add(u.CantidadTeorica)
	ms.CantidadReal = ms.CantidadReal.Add(u.CantidadReal)
}

func ordenarPorNombre(ms []MaterialSummary) {
	sort.Slice(ms, func(i, j int) bool {
		if ms[i].Nombre != ms[j].Nombre {
			return ms[i].Nombre < ms[j].Nombre
		}
		return ms[i].MaterialID < ms[j].MaterialID
	})
}

// topPorCosto devuelve los n materiales más costosos, de mayor a menor.
func topPorCosto(ms []MaterialSummary, n int) []MaterialSummary {
	if n <= 0 {
		return nil
	}
	top := make([]MaterialSummary, len(ms))
	copy(top, ms)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].CostoTotal.GreaterThan(top[j].CostoTotal)
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

func totalesPorCategoria(ms []MaterialSummary, costoTotal decimal.Decimal) []CategoryTotal {
	porCat := make(map[string]*CategoryTotal)
	for _, m := range ms {
		cat := m.Categoria
		if cat == "" {
			cat = "SIN_CATEGORIA"
		}
		ct := porCat[cat]
		if ct == nil {
			ct = &CategoryTotal{Categoria: cat}
			porCat[cat] = ct
		}
		ct.NumMateriales++
		ct.CostoTotal = ct.CostoTotal.Add(m.CostoTotal)
	}
	out := make([]CategoryTotal, 0, len(porCat))
	for _, ct := range porCat {
		if costoTotal.GreaterThan(decimal.Zero) {
			ct.Participacion = ct.CostoTotal.Div(costoTotal).Mul(hundred).Round(2)
		}
		out = append(out, *ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CostoTotal.Equal(out[j].CostoTotal) {
			return out[i].CostoTotal.GreaterThan(out[j].CostoTotal)
		}
		return out[i].Categoria < out[j].Categoria
	})
	return out
}
