// Package inventory calcula el stock teórico de materias primas a partir del
// libro de movimientos y su varianza contra los conteos físicos.
package inventory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Window ventana de fechas cerrada [Desde, Hasta].
type Window struct {
	Desde time.Time
	Hasta time.Time
}

// Contiene indica si t cae dentro de la ventana (extremos incluidos).
func (w Window) Contiene(t time.Time) bool {
	return !t.Before(w.Desde) && !t.After(w.Hasta)
}

// MaterialFlowSummary stock teórico de un material para una ventana.
//
// Identidad:
//
//	StockTeoricoFinal = StockInicial + Entradas + AdicionesManuales
//	                  - Consumo - RetirosManuales - Desperdicio
//
// Los buckets de la ventana son magnitudes positivas; el signo lo pone la
// identidad. StockInicial suma la historia completa previa a la ventana,
// nunca un stock final cacheado de un corte anterior.
type MaterialFlowSummary struct {
	MaterialID        string
	Nombre            string
	Unidad            string
	StockInicial      decimal.Decimal
	Entradas          decimal.Decimal
	AdicionesManuales decimal.Decimal
	Consumo           decimal.Decimal
	RetirosManuales   decimal.Decimal
	Desperdicio       decimal.Decimal
	StockTeoricoFinal decimal.Decimal
	// StockFisico conteo externo; nil cuando no hay conteo para el material.
	StockFisico *decimal.Decimal
	// Varianza = teórico - físico; 0 sin conteo. Positiva cuando el conteo
	// encontró menos existencias de las que el libro predice (faltante).
	Varianza decimal.Decimal
	// VarianzaPct es 0 cuando el stock teórico final es 0 (sin división).
	VarianzaPct decimal.Decimal
}

// Rollup calcula el resumen de flujo de un material. Los movimientos pueden
// venir en cualquier orden y de cualquier material; se filtran aquí.
func Rollup(materialID string, w Window, movimientos []entity.InventoryMovement, conteo *entity.MaterialStockCount) MaterialFlowSummary {
	s := MaterialFlowSummary{MaterialID: materialID}

	for _, m := range movimientos {
		if m.MaterialID != materialID {
			continue
		}
		if m.Fecha.Before(w.Desde) {
			// Historia previa completa, con signo
			s.StockInicial = s.StockInicial.Add(m.Cantidad)
			continue
		}
		if !w.Contiene(m.Fecha) {
			continue
		}
		mag := m.Cantidad.Abs()
		switch m.Kind {
		case entity.MovementKindEntry:
			s.Entradas = s.Entradas.Add(mag)
		case entity.MovementKindManualAddition:
			s.AdicionesManuales = s.AdicionesManuales.Add(mag)
		case entity.MovementKindConsumption:
			s.Consumo = s.Consumo.Add(mag)
		case entity.MovementKindManualWithdrawal:
			s.RetirosManuales = s.RetirosManuales.Add(mag)
		case entity.MovementKindWaste:
			s.Desperdicio = s.Desperdicio.Add(mag)
		}
	}

	s.StockTeoricoFinal = s.StockInicial.
		Add(s.Entradas).Add(s.AdicionesManuales).
		Sub(s.Consumo).Sub(s.RetirosManuales).Sub(s.Desperdicio)

	if conteo != nil {
		fisico := conteo.CountedStock
		s.StockFisico = &fisico
		s.Varianza = s.StockTeoricoFinal.Sub(fisico)
		if !s.StockTeoricoFinal.IsZero() {
			s.VarianzaPct = s.Varianza.Div(s.StockTeoricoFinal).Mul(hundred).Round(2)
		}
	}
	return s
}

// Niveles del listado de atención por varianza.
const (
	NivelAtencion = "atencion"
	NivelRiesgo   = "riesgo"
)

// AttentionItem material cuya varianza absoluta supera el umbral de atención.
type AttentionItem struct {
	MaterialID  string
	Nombre      string
	Varianza    decimal.Decimal
	VarianzaPct decimal.Decimal
	Nivel       string
}

// RequierenAtencion filtra los materiales con conteo físico cuya varianza
// absoluta (en %) alcanza atencionPct y los ordena de mayor a menor varianza
// absoluta. Los que alcanzan riesgoPct se marcan en nivel riesgo.
func RequierenAtencion(resumenes []MaterialFlowSummary, atencionPct, riesgoPct decimal.Decimal) []AttentionItem {
	var out []AttentionItem
	for _, s := range resumenes {
		if s.StockFisico == nil {
			continue
		}
		abs := s.VarianzaPct.Abs()
		if abs.LessThan(atencionPct) {
			continue
		}
		nivel := NivelAtencion
		if abs.GreaterThanOrEqual(riesgoPct) {
			nivel = NivelRiesgo
		}
		out = append(out, AttentionItem{
			MaterialID:  s.MaterialID,
			Nombre:      s.Nombre,
			Varianza:    s.Varianza,
			VarianzaPct: s.VarianzaPct,
			Nivel:       nivel,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VarianzaPct.Abs().GreaterThan(out[j].VarianzaPct.Abs())
	})
	return out
}
