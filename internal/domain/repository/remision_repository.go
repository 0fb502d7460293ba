package repository

import (
	"context"
	"time"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// RemisionRepository puerto de lectura de remisiones y sus consumos.
type RemisionRepository interface {
	// ListByWindow remisiones de la planta dentro de [desde, hasta].
	ListByWindow(ctx context.Context, plantID string, desde, hasta time.Time) ([]entity.Remision, error)
	// ListByRecipe remisiones de una receta en la planta dentro de la ventana.
	ListByRecipe(ctx context.Context, recipeID, plantID string, desde, hasta time.Time) ([]entity.Remision, error)
	// ListMateriales consumos de un lote de remisiones (un chunk de IDs).
	// El caller hace el chunking; la implementación no re-parte la lista.
	ListMateriales(ctx context.Context, remisionIDs []string) ([]entity.RemisionMaterial, error)
}

// RecipeRepository puerto de lectura de recetas.
type RecipeRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
}
