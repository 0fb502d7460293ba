package repository

import (
	"context"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// MaterialRepository puerto de lectura del catálogo de materiales.
type MaterialRepository interface {
	List(ctx context.Context) ([]entity.Material, error)
	// GetByIDs devuelve los materiales encontrados; IDs inexistentes
	// simplemente no aparecen en el resultado.
	GetByIDs(ctx context.Context, ids []string) ([]entity.Material, error)
}
