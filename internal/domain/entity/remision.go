package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Remision lote de producción despachado (batch). Cada remisión fabrica un
// volumen de concreto de una receta en una planta.
type Remision struct {
	ID               string
	Number           string // consecutivo legible, ej. "REM-2026-00132"
	PlantID          string
	Fecha            time.Time
	VolumenFabricado decimal.Decimal // m³; <= 0 es un dato de calidad a rastrear
	RecipeID         string
	OrderID          string
}

// TieneVolumen indica si la remisión registró un volumen fabricado positivo.
// Las remisiones sin volumen entran a los totales pero no a tasas por m³.
func (r Remision) TieneVolumen() bool {
	return r.VolumenFabricado.GreaterThan(decimal.Zero)
}
