package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaterialPrice precio unitario de un material con vigencia por fechas.
// El historial es append-only: un cambio de precio agrega una fila nueva,
// nunca modifica una existente.
type MaterialPrice struct {
	ID            string
	MaterialID    string
	PlantID       string // vacío = precio sin alcance de planta
	PricePerUnit  decimal.Decimal
	EffectiveDate time.Time
	EndDate       *time.Time // nil = vigencia abierta
	CreatedAt     time.Time
}

// VigenteEn indica si el precio aplica en la fecha dada: la vigencia inicia
// en EffectiveDate (inclusive) y termina en EndDate (inclusive) si existe.
func (p MaterialPrice) VigenteEn(fecha time.Time) bool {
	if p.EffectiveDate.After(fecha) {
		return false
	}
	if p.EndDate != nil && p.EndDate.Before(fecha) {
		return false
	}
	return true
}
