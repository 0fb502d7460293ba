package repository

import (
	"context"
	"time"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// MovementFilter filtros para listar movimientos. Campos en cero no filtran.
type MovementFilter struct {
	PlantID    string
	MaterialID string
	Desde      *time.Time
	Hasta      *time.Time
	Limit      int
	Offset     int
}

// InventoryMovementRepository puerto de persistencia del libro de movimientos.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	List(ctx context.Context, filtro MovementFilter) ([]entity.InventoryMovement, error)
	// ListByPlantUpTo historia completa de la planta hasta la fecha dada,
	// todos los materiales. Es la entrada del rollup: el stock inicial se
	// reconstruye siempre desde el primer movimiento.
	ListByPlantUpTo(ctx context.Context, plantID string, hasta time.Time) ([]entity.InventoryMovement, error)
}

// StockCountRepository puerto de persistencia de conteos físicos.
type StockCountRepository interface {
	// ListByPlant último conteo por material de la planta.
	ListByPlant(ctx context.Context, plantID string) ([]entity.MaterialStockCount, error)
	// Upsert reemplaza el conteo del par (planta, material).
	Upsert(ctx context.Context, count *entity.MaterialStockCount) error
}
