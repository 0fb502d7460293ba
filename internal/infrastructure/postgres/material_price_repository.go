package postgres

import (
	"context"
	"fmt"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

var _ repository.MaterialPriceRepository = (*MaterialPriceRepo)(nil)

// MaterialPriceRepo historial de precios sobre PostgreSQL (usable con pool o tx).
// Las filas salen ordenadas por created_at ascendente: el resolutor de
// precios desempata vigencias iguales por orden de inserción.
type MaterialPriceRepo struct {
	q Querier
}

// NewMaterialPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialPriceRepository(q Querier) *MaterialPriceRepo {
	return &MaterialPriceRepo{q: q}
}

const priceColumns = `id, material_id, COALESCE(plant_id, ''), price_per_unit, effective_date, end_date, created_at`

// ListForMaterials historial de los materiales dados con el alcance de planta
// indicado. plant_id vacío consulta los precios sin alcance (columna NULL).
func (r *MaterialPriceRepo) ListForMaterials(ctx context.Context, materialIDs []string, plantID string) ([]entity.MaterialPrice, error) {
	if len(materialIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT ` + priceColumns + `
		FROM material_prices
		WHERE material_id = ANY($1) AND COALESCE(plant_id, '') = $2
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, materialIDs, plantID)
	if err != nil {
		return nil, fmt.Errorf("list prices for materials: %w", err)
	}
	defer rows.Close()
	return scanPrices(rows)
}

// ListByMaterial historial completo de un material, todos los alcances.
func (r *MaterialPriceRepo) ListByMaterial(ctx context.Context, materialID string) ([]entity.MaterialPrice, error) {
	query := `
		SELECT ` + priceColumns + `
		FROM material_prices
		WHERE material_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, materialID)
	if err != nil {
		return nil, fmt.Errorf("list prices by material: %w", err)
	}
	defer rows.Close()
	return scanPrices(rows)
}

type pgxRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanPrices(rows pgxRows) ([]entity.MaterialPrice, error) {
	var list []entity.MaterialPrice
	for rows.Next() {
		var p entity.MaterialPrice
		if err := rows.Scan(&p.ID, &p.MaterialID, &p.PlantID, &p.PricePerUnit,
			&p.EffectiveDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
