package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario de materia prima.
const (
	MovementKindEntry            = "ENTRY"             // recepción de proveedor
	MovementKindManualAddition   = "MANUAL_ADDITION"   // corrección manual a favor
	MovementKindConsumption      = "CONSUMPTION"       // consumo por remisión
	MovementKindManualWithdrawal = "MANUAL_WITHDRAWAL" // corrección manual en contra
	MovementKindWaste            = "WASTE"             // desperdicio
)

// EsKindValido indica si el tipo de movimiento es uno de los conocidos.
func EsKindValido(kind string) bool {
	switch kind {
	case MovementKindEntry, MovementKindManualAddition, MovementKindConsumption,
		MovementKindManualWithdrawal, MovementKindWaste:
		return true
	}
	return false
}

// EsEntrada indica si el tipo suma stock (entradas y adiciones manuales).
func EsEntrada(kind string) bool {
	return kind == MovementKindEntry || kind == MovementKindManualAddition
}

// InventoryMovement movimiento del libro de inventario de materia prima.
// El libro es append-only: las correcciones se registran como movimientos
// manuales nuevos, nunca editando filas.
//
// Convención de signo en Cantidad: entradas y adiciones positivas; consumo,
// retiros y desperdicio negativos. El registro normaliza el signo según Kind.
type InventoryMovement struct {
	ID         string
	PlantID    string
	MaterialID string
	Fecha      time.Time
	Cantidad   decimal.Decimal // con signo
	Kind       string
	Reference  string // ej. número de remisión o de conduce del proveedor
	Notas      string
	CreatedAt  time.Time
	CreatedBy  string
}

// MaterialStockCount conteo físico de un material en planta, suministrado
// externamente. Solo se usa para calcular varianza contra el stock teórico.
type MaterialStockCount struct {
	PlantID      string
	MaterialID   string
	CountedStock decimal.Decimal
	CountedAt    time.Time
}
