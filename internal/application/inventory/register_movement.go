package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos manuales en el libro de
// inventario (entradas, correcciones y desperdicio) de forma transaccional.
// El libro es append-only: una corrección es un movimiento nuevo, no una
// edición; el consumo lo registra el pipeline de remisiones, no este caso de uso.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	materialRepo repository.MaterialRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, materialRepo repository.MaterialRepository) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, materialRepo: materialRepo}
}

// MovementInput entrada para registrar un movimiento manual.
// Cantidad es magnitud positiva; el signo lo normaliza el registro según Kind.
type MovementInput struct {
	PlantID    string
	MaterialID string
	Kind       string
	Cantidad   decimal.Decimal
	Fecha      time.Time // cero = ahora
	Reference  string
	Notas      string
	CreatedBy  string
	// ConteoFisico opcional: conteo tomado al momento de la corrección,
	// registrado en la misma transacción que el movimiento.
	ConteoFisico *decimal.Decimal
}

// Register valida la entrada, normaliza el signo y persiste el movimiento
// (y el conteo físico si viene) dentro de una transacción.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInput) (*entity.InventoryMovement, error) {
	if input.PlantID == "" || input.MaterialID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.EsKindValido(input.Kind) {
		return nil, domain.ErrUnknownMovement
	}
	if input.Kind == entity.MovementKindConsumption {
		// El consumo entra por remisiones, no por registro manual
		return nil, domain.ErrInvalidInput
	}
	if !input.Cantidad.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	mats, err := uc.materialRepo.GetByIDs(ctx, []string{input.MaterialID})
	if err != nil {
		return nil, err
	}
	if len(mats) == 0 {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	fecha := input.Fecha
	if fecha.IsZero() {
		fecha = now
	}

	cantidad := input.Cantidad
	if !entity.EsEntrada(input.Kind) {
		cantidad = cantidad.Neg()
	}

	mov := &entity.InventoryMovement{
		ID:         uuid.New().String(),
		PlantID:    input.PlantID,
		MaterialID: input.MaterialID,
		Fecha:      fecha,
		Cantidad:   cantidad,
		Kind:       input.Kind,
		Reference:  input.Reference,
		Notas:      input.Notas,
		CreatedAt:  now,
		CreatedBy:  input.CreatedBy,
	}

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.InventoryMovementRepository,
		countRepo repository.StockCountRepository,
	) error {
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		if input.ConteoFisico != nil {
			return countRepo.Upsert(ctx, &entity.MaterialStockCount{
				PlantID:      input.PlantID,
				MaterialID:   input.MaterialID,
				CountedStock: *input.ConteoFisico,
				CountedAt:    now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*entity.InventoryMovement, error) {
	var fecha time.Time
	if in.Date != "" {
		parsed, err := time.Parse("2006-01-02", in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		fecha = parsed
	}
	return uc.Register(ctx, MovementInput{
		PlantID:      in.PlantID,
		MaterialID:   in.MaterialID,
		Kind:         in.Kind,
		Cantidad:     in.Quantity,
		Fecha:        fecha,
		Reference:    in.Reference,
		Notas:        in.Notes,
		CreatedBy:    userID,
		ConteoFisico: in.CountedStock,
	})
}

// ListMovements lista el libro con los filtros dados (para la consulta GET).
type ListMovementsUseCase struct {
	movementRepo repository.InventoryMovementRepository
}

// NewListMovementsUseCase construye el caso de uso.
func NewListMovementsUseCase(movementRepo repository.InventoryMovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movementRepo: movementRepo}
}

// List consulta el libro y lo convierte a DTOs.
func (uc *ListMovementsUseCase) List(ctx context.Context, filtro repository.MovementFilter) ([]dto.MovementDTO, error) {
	movs, err := uc.movementRepo.List(ctx, filtro)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.MovementDTO{
			ID:         m.ID,
			PlantID:    m.PlantID,
			MaterialID: m.MaterialID,
			Date:       m.Fecha,
			Quantity:   m.Cantidad,
			Kind:       m.Kind,
			Reference:  m.Reference,
			Notes:      m.Notas,
		})
	}
	return out, nil
}
