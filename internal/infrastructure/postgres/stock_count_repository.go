package postgres

import (
	"context"
	"fmt"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

var _ repository.StockCountRepository = (*StockCountRepo)(nil)

// StockCountRepo conteos físicos sobre PostgreSQL (usable con pool o tx).
type StockCountRepo struct {
	q Querier
}

// NewStockCountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCountRepository(q Querier) *StockCountRepo {
	return &StockCountRepo{q: q}
}

// ListByPlant último conteo por material de la planta.
func (r *StockCountRepo) ListByPlant(ctx context.Context, plantID string) ([]entity.MaterialStockCount, error) {
	query := `
		SELECT plant_id, material_id, counted_stock, counted_at
		FROM material_stock_counts
		WHERE plant_id = $1
		ORDER BY material_id`
	rows, err := r.q.Query(ctx, query, plantID)
	if err != nil {
		return nil, fmt.Errorf("list stock counts: %w", err)
	}
	defer rows.Close()

	var list []entity.MaterialStockCount
	for rows.Next() {
		var c entity.MaterialStockCount
		if err := rows.Scan(&c.PlantID, &c.MaterialID, &c.CountedStock, &c.CountedAt); err != nil {
			return nil, fmt.Errorf("scan stock count: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Upsert reemplaza el conteo del par (planta, material).
func (r *StockCountRepo) Upsert(ctx context.Context, count *entity.MaterialStockCount) error {
	query := `
		INSERT INTO material_stock_counts (plant_id, material_id, counted_stock, counted_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (plant_id, material_id)
		DO UPDATE SET counted_stock = EXCLUDED.counted_stock, counted_at = EXCLUDED.counted_at`
	_, err := r.q.Exec(ctx, query, count.PlantID, count.MaterialID, count.CountedStock, count.CountedAt)
	if err != nil {
		return fmt.Errorf("upsert stock count: %w", err)
	}
	return nil
}
