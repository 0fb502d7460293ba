package postgres

import (
	"context"
	"fmt"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del catálogo de materiales sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// List devuelve el catálogo completo ordenado por nombre.
func (r *MaterialRepo) List(ctx context.Context) ([]entity.Material, error) {
	query := `
		SELECT id, name, code, category, unit
		FROM materials ORDER BY name, id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var list []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.Category, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// GetByIDs devuelve los materiales encontrados; IDs inexistentes no aparecen.
func (r *MaterialRepo) GetByIDs(ctx context.Context, ids []string) ([]entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name, code, category, unit
		FROM materials WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get materials by ids: %w", err)
	}
	defer rows.Close()

	var list []entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.Category, &m.Unit); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
