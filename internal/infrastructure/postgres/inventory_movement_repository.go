package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, plant_id, material_id, fecha, cantidad, kind, COALESCE(reference, ''), COALESCE(notas, ''), created_at, COALESCE(created_by, '')`

// Create persiste un movimiento. El libro es append-only: no hay Update ni Delete.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, plant_id, material_id, fecha, cantidad, kind, reference, notas, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.PlantID, movement.MaterialID, movement.Fecha,
		movement.Cantidad, movement.Kind, movement.Reference, movement.Notas,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List lista movimientos según el filtro; campos en cero no filtran.
func (r *InventoryMovementRepo) List(ctx context.Context, filtro repository.MovementFilter) ([]entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements WHERE 1=1`
	var args []any
	pos := 1
	add := func(cond string, val any) {
		query += fmt.Sprintf(" AND "+cond, pos)
		args = append(args, val)
		pos++
	}
	if filtro.PlantID != "" {
		add("plant_id = $%d", filtro.PlantID)
	}
	if filtro.MaterialID != "" {
		add("material_id = $%d", filtro.MaterialID)
	}
	if filtro.Desde != nil {
		add("fecha >= $%d", *filtro.Desde)
	}
	if filtro.Hasta != nil {
		add("fecha <= $%d", *filtro.Hasta)
	}
	query += fmt.Sprintf(" ORDER BY fecha DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filtro.Limit, filtro.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListByPlantUpTo historia completa de la planta hasta la fecha, ascendente.
// Entrada del rollup: sin límite, el stock inicial necesita todo el libro.
func (r *InventoryMovementRepo) ListByPlantUpTo(ctx context.Context, plantID string, hasta time.Time) ([]entity.InventoryMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM inventory_movements
		WHERE plant_id = $1 AND fecha <= $2
		ORDER BY fecha, created_at`
	rows, err := r.q.Query(ctx, query, plantID, hasta)
	if err != nil {
		return nil, fmt.Errorf("list movements up to: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgxRows) ([]entity.InventoryMovement, error) {
	var list []entity.InventoryMovement
	for rows.Next() {
		var m entity.InventoryMovement
		if err := rows.Scan(&m.ID, &m.PlantID, &m.MaterialID, &m.Fecha, &m.Cantidad,
			&m.Kind, &m.Reference, &m.Notas, &m.CreatedAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
