package repository

import (
	"context"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// MaterialPriceRepository puerto de lectura del historial de precios.
// Las implementaciones devuelven las filas ordenadas por created_at
// ascendente; el resolutor de precios depende de ese orden para desempatar.
type MaterialPriceRepository interface {
	// ListForMaterials trae el historial de precios de los materiales dados
	// con el alcance de planta indicado (plantID vacío = sin alcance).
	ListForMaterials(ctx context.Context, materialIDs []string, plantID string) ([]entity.MaterialPrice, error)
	// ListByMaterial historial completo de un material, todos los alcances.
	ListByMaterial(ctx context.Context, materialID string) ([]entity.MaterialPrice, error)
}
