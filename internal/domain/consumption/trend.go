package consumption

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección de la tendencia de costo entre períodos.
const (
	TendenciaIncremento = "incremento"
	TendenciaReduccion  = "reduccion"
	TendenciaEstable    = "estable"
)

// PeriodCost costo total de producción de un período.
type PeriodCost struct {
	Desde         time.Time
	Hasta         time.Time
	CostoTotal    decimal.Decimal
	NumRemisiones int
}

// TrendResult comparación de costo del período actual contra el anterior.
type TrendResult struct {
	// Disponible es false cuando el período anterior no tiene remisiones;
	// en ese caso los demás campos comparativos no significan nada.
	// Un período anterior con remisiones y costo 0 sí compara (es un 0% real).
	Disponible    bool
	VariacionPct  decimal.Decimal
	Direccion     string
	Actual        PeriodCost
	Anterior      PeriodCost
}

// CompareTrend compara el costo del período actual contra el anterior.
//
// Convención con costo anterior 0 pero con remisiones: si el actual también
// es 0 la tendencia es estable; si no, se reporta incremento del 100%.
func CompareTrend(actual, anterior PeriodCost) TrendResult {
	res := TrendResult{Actual: actual, Anterior: anterior}
	if anterior.NumRemisiones == 0 {
		return res
	}
	res.Disponible = true

	if anterior.CostoTotal.IsZero() {
		if actual.CostoTotal.IsZero() {
			res.Direccion = TendenciaEstable
			return res
		}
		res.VariacionPct = hundred
		res.Direccion = TendenciaIncremento
		return res
	}

	res.VariacionPct = actual.CostoTotal.Sub(anterior.CostoTotal).
		Div(anterior.CostoTotal).Mul(hundred).Round(2)
	switch {
	case res.VariacionPct.GreaterThan(decimal.Zero):
		res.Direccion = TendenciaIncremento
	case res.VariacionPct.LessThan(decimal.Zero):
		res.Direccion = TendenciaReduccion
	default:
		res.Direccion = TendenciaEstable
	}
	return res
}

// PreviousWindow devuelve la ventana inmediatamente anterior, de la misma
// duración: [desde-d, desde) expresada como [desde-d, desde-1ns].
func PreviousWindow(desde, hasta time.Time) (time.Time, time.Time) {
	d := hasta.Sub(desde)
	return desde.Add(-d - time.Nanosecond), desde.Add(-time.Nanosecond)
}
