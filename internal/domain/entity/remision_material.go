package entity

import "github.com/shopspring/decimal"

// RemisionMaterial consumo de un material en una remisión. Puede haber más de
// una fila para el mismo par (remisión, material); los agregados las suman.
type RemisionMaterial struct {
	RemisionID      string
	MaterialID      string
	CantidadTeorica decimal.Decimal // dosis según diseño de mezcla
	CantidadReal    decimal.Decimal // lo efectivamente dosificado por la báscula
	Unit            string
}

// Ajuste diferencia entre lo dosificado y el diseño (real - teórico).
func (rm RemisionMaterial) Ajuste() decimal.Decimal {
	return rm.CantidadReal.Sub(rm.CantidadTeorica)
}
