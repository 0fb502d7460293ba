package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/domain/inventory"
)

// MaterialFlowDTO stock teórico y varianza de un material en la ventana.
type MaterialFlowDTO struct {
	MaterialID        string           `json:"material_id"`
	Name              string           `json:"name"`
	Unit              string           `json:"unit"`
	InitialStock      decimal.Decimal  `json:"initial_stock"`
	Entries           decimal.Decimal  `json:"entries"`
	ManualAdditions   decimal.Decimal  `json:"manual_additions"`
	Consumption       decimal.Decimal  `json:"consumption"`
	ManualWithdrawals decimal.Decimal  `json:"manual_withdrawals"`
	Waste             decimal.Decimal  `json:"waste"`
	TheoreticalStock  decimal.Decimal  `json:"theoretical_final_stock"`
	CountedStock      *decimal.Decimal `json:"counted_stock,omitempty"`
	Variance          decimal.Decimal  `json:"variance"`
	VariancePct       decimal.Decimal  `json:"variance_pct"`
}

// AttentionItemDTO material con varianza sobre el umbral de atención.
type AttentionItemDTO struct {
	MaterialID  string          `json:"material_id"`
	Name        string          `json:"name"`
	Variance    decimal.Decimal `json:"variance"`
	VariancePct decimal.Decimal `json:"variance_pct"`
	Level       string          `json:"level"`
}

// InventoryDashboardDTO rollup de inventario de una planta para una ventana.
type InventoryDashboardDTO struct {
	PlantID   string             `json:"plant_id"`
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	Materials []MaterialFlowDTO  `json:"materials"`
	Attention []AttentionItemDTO `json:"attention"`
}

// NewMaterialFlowDTO convierte el resumen de flujo del motor.
func NewMaterialFlowDTO(s inventory.MaterialFlowSummary) MaterialFlowDTO {
	return MaterialFlowDTO{
		MaterialID:        s.MaterialID,
		Name:              s.Nombre,
		Unit:              s.Unidad,
		InitialStock:      s.StockInicial,
		Entries:           s.Entradas,
		ManualAdditions:   s.AdicionesManuales,
		Consumption:       s.Consumo,
		ManualWithdrawals: s.RetirosManuales,
		Waste:             s.Desperdicio,
		TheoreticalStock:  s.StockTeoricoFinal,
		CountedStock:      s.StockFisico,
		Variance:          s.Varianza,
		VariancePct:       s.VarianzaPct,
	}
}

// RegisterMovementRequest cuerpo del POST de movimientos manuales.
// Quantity es una magnitud positiva; el signo lo pone el tipo de movimiento.
type RegisterMovementRequest struct {
	PlantID    string          `json:"plant_id"`
	MaterialID string          `json:"material_id"`
	Kind       string          `json:"kind"` // ENTRY, MANUAL_ADDITION, MANUAL_WITHDRAWAL, WASTE
	Quantity   decimal.Decimal `json:"quantity"`
	Date       string          `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Reference  string          `json:"reference,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	// CountedStock opcional: registra junto al movimiento el conteo físico
	// tomado al momento de la corrección, en la misma transacción.
	CountedStock *decimal.Decimal `json:"counted_stock,omitempty"`
}

// MovementDTO fila del libro de movimientos.
type MovementDTO struct {
	ID         string          `json:"id"`
	PlantID    string          `json:"plant_id"`
	MaterialID string          `json:"material_id"`
	Date       time.Time       `json:"date"`
	Quantity   decimal.Decimal `json:"quantity"`
	Kind       string          `json:"kind"`
	Reference  string          `json:"reference,omitempty"`
	Notes      string          `json:"notes,omitempty"`
}
