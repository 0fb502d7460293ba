package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testMaterialID = "mat-cemento"

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func dia(d int) time.Time {
	return time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC)
}

func ventana(desde, hasta int) inventory.Window {
	return inventory.Window{
		Desde: time.Date(2026, 4, desde, 0, 0, 0, 0, time.UTC),
		Hasta: time.Date(2026, 4, hasta, 23, 59, 59, 0, time.UTC),
	}
}

// mov registra el movimiento con el signo de la convención del libro.
func mov(materialID string, fecha time.Time, kind string, magnitud float64) entity.InventoryMovement {
	cantidad := dec(magnitud)
	if !entity.EsEntrada(kind) {
		cantidad = cantidad.Neg()
	}
	return entity.InventoryMovement{
		MaterialID: materialID, PlantID: "planta-norte",
		Fecha: fecha, Cantidad: cantidad, Kind: kind,
	}
}

func conteo(materialID string, stock float64) *entity.MaterialStockCount {
	return &entity.MaterialStockCount{
		PlantID: "planta-norte", MaterialID: materialID,
		CountedStock: dec(stock), CountedAt: dia(30),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Rollup
// ──────────────────────────────────────────────────────────────────────────────

func TestRollup_VentanaDeUnDia(t *testing.T) {
	// Entrada de 500, consumo de 300 y desperdicio de 20 el mismo día:
	// stock teórico final 180.
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 500),
		mov(testMaterialID, dia(15), entity.MovementKindConsumption, 300),
		mov(testMaterialID, dia(15), entity.MovementKindWaste, 20),
	}

	s := inventory.Rollup(testMaterialID, ventana(15, 15), movs, nil)

	assert.True(t, s.StockInicial.IsZero())
	assert.True(t, dec(500).Equal(s.Entradas))
	assert.True(t, dec(300).Equal(s.Consumo))
	assert.True(t, dec(20).Equal(s.Desperdicio))
	assert.True(t, dec(180).Equal(s.StockTeoricoFinal), "500 - 300 - 20 = 180, fue %s", s.StockTeoricoFinal)
	assert.Nil(t, s.StockFisico, "sin conteo no hay varianza")
}

func TestRollup_StockInicialEsHistoriaCompleta(t *testing.T) {
	// Todo lo anterior a la ventana suma al stock inicial con su signo,
	// sin importar qué tan atrás esté.
	movs := []entity.InventoryMovement{
		mov(testMaterialID, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC), entity.MovementKindEntry, 1000),
		mov(testMaterialID, time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC), entity.MovementKindConsumption, 400),
		mov(testMaterialID, dia(10), entity.MovementKindEntry, 200),
		mov(testMaterialID, dia(12), entity.MovementKindManualWithdrawal, 50),
	}

	s := inventory.Rollup(testMaterialID, ventana(10, 20), movs, nil)

	assert.True(t, dec(600).Equal(s.StockInicial), "1000 - 400 acumulado antes de la ventana")
	assert.True(t, dec(200).Equal(s.Entradas))
	assert.True(t, dec(50).Equal(s.RetirosManuales))
	assert.True(t, dec(750).Equal(s.StockTeoricoFinal))
}

func TestRollup_IgnoraOtrosMaterialesYFechasPosteriores(t *testing.T) {
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 100),
		mov("mat-arena", dia(15), entity.MovementKindEntry, 999),
		mov(testMaterialID, dia(25), entity.MovementKindEntry, 999), // después de la ventana
	}

	s := inventory.Rollup(testMaterialID, ventana(10, 20), movs, nil)
	assert.True(t, dec(100).Equal(s.StockTeoricoFinal))
}

// TestRollup_AditividadDeVentanas extender la ventana hacia atrás mueve los
// movimientos del stock inicial a los buckets sin cambiar el stock final.
func TestRollup_AditividadDeVentanas(t *testing.T) {
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(5), entity.MovementKindEntry, 300),
		mov(testMaterialID, dia(8), entity.MovementKindConsumption, 100),
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 50),
		mov(testMaterialID, dia(18), entity.MovementKindWaste, 10),
	}

	corta := inventory.Rollup(testMaterialID, ventana(10, 20), movs, nil)
	larga := inventory.Rollup(testMaterialID, ventana(1, 20), movs, nil)

	assert.True(t, dec(200).Equal(corta.StockInicial))
	assert.True(t, larga.StockInicial.IsZero())
	assert.True(t, corta.StockTeoricoFinal.Equal(larga.StockTeoricoFinal),
		"el stock final no depende de dónde se corte la ventana: %s vs %s",
		corta.StockTeoricoFinal, larga.StockTeoricoFinal)
}

func TestRollup_VarianzaContraConteoFisico(t *testing.T) {
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 500),
		mov(testMaterialID, dia(16), entity.MovementKindConsumption, 300),
	}

	s := inventory.Rollup(testMaterialID, ventana(1, 30), movs, conteo(testMaterialID, 190))

	require.NotNil(t, s.StockFisico)
	assert.True(t, dec(190).Equal(*s.StockFisico))
	assert.True(t, dec(10).Equal(s.Varianza), "200 teórico - 190 físico: faltante positivo")
	assert.True(t, dec(5).Equal(s.VarianzaPct), "10 de 200 = 5 por ciento")
}

// El signo de la varianza distingue faltante de sobrante: conteo por encima
// del teórico da varianza negativa.
func TestRollup_VarianzaNegativaConSobrante(t *testing.T) {
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 200),
	}

	s := inventory.Rollup(testMaterialID, ventana(1, 30), movs, conteo(testMaterialID, 210))

	assert.True(t, dec(-10).Equal(s.Varianza), "200 teórico - 210 físico")
	assert.True(t, dec(-5).Equal(s.VarianzaPct))
}

func TestRollup_VarianzaPctCeroConTeoricoCero(t *testing.T) {
	movs := []entity.InventoryMovement{
		mov(testMaterialID, dia(15), entity.MovementKindEntry, 100),
		mov(testMaterialID, dia(16), entity.MovementKindConsumption, 100),
	}

	s := inventory.Rollup(testMaterialID, ventana(1, 30), movs, conteo(testMaterialID, 25))

	assert.True(t, s.StockTeoricoFinal.IsZero())
	assert.True(t, dec(-25).Equal(s.Varianza))
	assert.True(t, s.VarianzaPct.IsZero(), "con teórico 0 no se divide, el porcentaje queda en 0")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequierenAtencion
// ──────────────────────────────────────────────────────────────────────────────

func TestRequierenAtencion_FiltraOrdenaYNivela(t *testing.T) {
	fisico := func(v float64) *decimal.Decimal { d := dec(v); return &d }
	resumenes := []inventory.MaterialFlowSummary{
		{MaterialID: "a", Nombre: "Arena", StockFisico: fisico(0), VarianzaPct: dec(0.5)},   // bajo umbral
		{MaterialID: "b", Nombre: "Cemento", StockFisico: fisico(0), VarianzaPct: dec(-7)},  // riesgo
		{MaterialID: "c", Nombre: "Grava", StockFisico: fisico(0), VarianzaPct: dec(2)},     // atención
		{MaterialID: "d", Nombre: "Aditivo", VarianzaPct: dec(90)},                          // sin conteo: fuera
	}

	items := inventory.RequierenAtencion(resumenes, dec(1), dec(5))

	require.Len(t, items, 2)
	assert.Equal(t, "b", items[0].MaterialID, "ordenado por varianza absoluta descendente")
	assert.Equal(t, inventory.NivelRiesgo, items[0].Nivel)
	assert.Equal(t, "c", items[1].MaterialID)
	assert.Equal(t, inventory.NivelAtencion, items[1].Nivel)
}
