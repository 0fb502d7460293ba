package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

var _ repository.RemisionRepository = (*RemisionRepo)(nil)
var _ repository.RecipeRepository = (*RemisionRepo)(nil)

// RemisionRepo lectura de remisiones, consumos y recetas sobre PostgreSQL
// (usable con pool o tx).
type RemisionRepo struct {
	q Querier
}

// NewRemisionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRemisionRepository(q Querier) *RemisionRepo {
	return &RemisionRepo{q: q}
}

const remisionColumns = `id, number, plant_id, fecha, COALESCE(volumen_fabricado, 0), recipe_id, COALESCE(order_id, '')`

// ListByWindow remisiones de la planta dentro de [desde, hasta].
func (r *RemisionRepo) ListByWindow(ctx context.Context, plantID string, desde, hasta time.Time) ([]entity.Remision, error) {
	query := `
		SELECT ` + remisionColumns + `
		FROM remisiones
		WHERE plant_id = $1 AND fecha >= $2 AND fecha <= $3
		ORDER BY fecha, number`
	rows, err := r.q.Query(ctx, query, plantID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list remisiones: %w", err)
	}
	defer rows.Close()
	return scanRemisiones(rows)
}

// ListByRecipe remisiones de una receta en la planta dentro de la ventana.
func (r *RemisionRepo) ListByRecipe(ctx context.Context, recipeID, plantID string, desde, hasta time.Time) ([]entity.Remision, error) {
	query := `
		SELECT ` + remisionColumns + `
		FROM remisiones
		WHERE recipe_id = $1 AND plant_id = $2 AND fecha >= $3 AND fecha <= $4
		ORDER BY fecha, number`
	rows, err := r.q.Query(ctx, query, recipeID, plantID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("list remisiones by recipe: %w", err)
	}
	defer rows.Close()
	return scanRemisiones(rows)
}

// ListMateriales consumos de un lote de remisiones. El caller parte los IDs
// en lotes; aquí se consulta tal cual con = ANY.
func (r *RemisionRepo) ListMateriales(ctx context.Context, remisionIDs []string) ([]entity.RemisionMaterial, error) {
	if len(remisionIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT remision_id, material_id, COALESCE(cantidad_teorica, 0), COALESCE(cantidad_real, 0), COALESCE(unit, '')
		FROM remision_materiales
		WHERE remision_id = ANY($1)`
	rows, err := r.q.Query(ctx, query, remisionIDs)
	if err != nil {
		return nil, fmt.Errorf("list remision materiales: %w", err)
	}
	defer rows.Close()

	var list []entity.RemisionMaterial
	for rows.Next() {
		var rm entity.RemisionMaterial
		if err := rows.Scan(&rm.RemisionID, &rm.MaterialID, &rm.CantidadTeorica, &rm.CantidadReal, &rm.Unit); err != nil {
			return nil, fmt.Errorf("scan remision material: %w", err)
		}
		list = append(list, rm)
	}
	return list, rows.Err()
}

// GetByID obtiene una receta. Devuelve nil sin error si no existe.
func (r *RemisionRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	query := `
		SELECT id, code, COALESCE(strength_fc, 0)
		FROM recipes WHERE id = $1`
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, query, id).Scan(&rec.ID, &rec.Code, &rec.StrengthFC)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

func scanRemisiones(rows pgxRows) ([]entity.Remision, error) {
	var list []entity.Remision
	for rows.Next() {
		var rem entity.Remision
		if err := rows.Scan(&rem.ID, &rem.Number, &rem.PlantID, &rem.Fecha,
			&rem.VolumenFabricado, &rem.RecipeID, &rem.OrderID); err != nil {
			return nil, fmt.Errorf("scan remision: %w", err)
		}
		list = append(list, rem)
	}
	return list, rows.Err()
}
