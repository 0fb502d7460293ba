// Package pricing resuelve precios unitarios de materiales a una fecha de
// corte, respetando la vigencia por fechas y el alcance por planta.
package pricing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// Resolve busca el precio vigente de un material en la fecha dada.
//
// Reglas:
//   - Solo participan precios del material con PlantID igual al solicitado.
//     No hay fallback de precio por planta a precio sin alcance: si la planta
//     no tiene precio propio, el material queda sin precio.
//   - Entre los vigentes gana el de EffectiveDate más reciente.
//   - Empate en EffectiveDate: gana la fila insertada primero (orden estable
//     del slice de entrada, que los repositorios devuelven por created_at).
//
// Devuelve (0, false) cuando ningún precio aplica; el costo se reporta en 0
// y el material se marca sin precio, nunca es un error.
func Resolve(prices []entity.MaterialPrice, materialID string, asOf time.Time, plantID string) (decimal.Decimal, bool) {
	var candidatos []entity.MaterialPrice
	for _, p := range prices {
		if p.MaterialID != materialID || p.PlantID != plantID {
			continue
		}
		if p.VigenteEn(asOf) {
			candidatos = append(candidatos, p)
		}
	}
	if len(candidatos) == 0 {
		return decimal.Zero, false
	}
	sort.SliceStable(candidatos, func(i, j int) bool {
		return candidatos[i].EffectiveDate.After(candidatos[j].EffectiveDate)
	})
	return candidatos[0].PricePerUnit, true
}

// PriceIndex precios ya resueltos por material para una fecha de corte.
// Evita re-resolver por cada fila de consumo dentro de un reporte.
type PriceIndex struct {
	asOf       time.Time
	byMaterial map[string]decimal.Decimal
	sinPrecio  map[string]struct{}
}

// BuildIndex resuelve el precio de cada material de la lista con Resolve y
// registra cuáles quedaron sin precio.
func BuildIndex(prices []entity.MaterialPrice, materialIDs []string, asOf time.Time, plantID string) *PriceIndex {
	ix := &PriceIndex{
		asOf:       asOf,
		byMaterial: make(map[string]decimal.Decimal, len(materialIDs)),
		sinPrecio:  make(map[string]struct{}),
	}
	for _, id := range materialIDs {
		if precio, ok := Resolve(prices, id, asOf, plantID); ok {
			ix.byMaterial[id] = precio
		} else {
			ix.sinPrecio[id] = struct{}{}
		}
	}
	return ix
}

// EmptyIndex índice sin precios: todo material consulta como sin precio.
// Lo usan los reportes cuando la carga de precios falla (degradación).
func EmptyIndex(asOf time.Time) *PriceIndex {
	return &PriceIndex{
		asOf:       asOf,
		byMaterial: map[string]decimal.Decimal{},
		sinPrecio:  map[string]struct{}{},
	}
}

// Price devuelve el precio resuelto del material y si existe.
func (ix *PriceIndex) Price(materialID string) (decimal.Decimal, bool) {
	p, ok := ix.byMaterial[materialID]
	return p, ok
}

// AsOf fecha de corte con la que se construyó el índice.
func (ix *PriceIndex) AsOf() time.Time { return ix.asOf }

// SinPrecio lista (ordenada) de materiales que quedaron sin precio resuelto.
func (ix *PriceIndex) SinPrecio() []string {
	out := make([]string, 0, len(ix.sinPrecio))
	for id := range ix.sinPrecio {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
