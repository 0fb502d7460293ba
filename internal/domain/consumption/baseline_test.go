package consumption_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// ComputeBaseline
//
// Vector de referencia: tres remisiones de 1 m³ con consumos 10, 12 y 8 kg
// producen un baseline de 10 kg/m³; con umbral 10%, la de 12 se desvía +20%
// (alta) y la de 8 se desvía -20% (baja).
// ──────────────────────────────────────────────────────────────────────────────

func baselineFixture() ([]entity.Remision, []entity.RemisionMaterial) {
	rems := []entity.Remision{
		remision("r1", "rec-a", 1),
		remision("r2", "rec-a", 1),
		remision("r3", "rec-a", 1),
	}
	usos := []entity.RemisionMaterial{
		uso("r1", "cem", 10, 10),
		uso("r2", "cem", 10, 12),
		uso("r3", "cem", 10, 8),
	}
	return rems, usos
}

func TestComputeBaseline_VectorDeReferencia(t *testing.T) {
	rems, usos := baselineFixture()

	b, ok := consumption.ComputeBaseline("rec-a", "cem", rems, usos)
	require.True(t, ok)
	assert.True(t, dec(10).Equal(b.ConsumoPromedioPorM3), "baseline = (10+12+8)/3 = 10, fue %s", b.ConsumoPromedioPorM3)
	assert.Equal(t, 3, b.NumRemisiones)
}

func TestComputeBaseline_ExcluyeSinVolumenYSinConsumo(t *testing.T) {
	rems, usos := baselineFixture()
	// Sin volumen: no entra al promedio aunque tenga consumo
	rems = append(rems, remision("r4", "rec-a", 0))
	usos = append(usos, uso("r4", "cem", 10, 11))
	// Con volumen pero consumo cero del material: tampoco entra
	rems = append(rems, remision("r5", "rec-a", 1))
	usos = append(usos, uso("r5", "cem", 10, 0))

	b, ok := consumption.ComputeBaseline("rec-a", "cem", rems, usos)
	require.True(t, ok)
	assert.Equal(t, 3, b.NumRemisiones, "solo las tres remisiones completas participan")
	assert.True(t, dec(10).Equal(b.ConsumoPromedioPorM3))
}

func TestComputeBaseline_SinRemisionesValidas(t *testing.T) {
	rems := []entity.Remision{remision("r1", "rec-a", 0)}
	usos := []entity.RemisionMaterial{uso("r1", "cem", 10, 10)}

	_, ok := consumption.ComputeBaseline("rec-a", "cem", rems, usos)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Classify / ClassifyBatches
// ──────────────────────────────────────────────────────────────────────────────

func TestClassify_UmbralDiez(t *testing.T) {
	baseline := dec(10)
	umbral := dec(10)

	clasif, pct := consumption.Classify(dec(12), baseline, umbral)
	assert.Equal(t, consumption.DesviacionAlta, clasif)
	assert.True(t, dec(20).Equal(pct), "+20 por ciento, fue %s", pct)

	clasif, pct = consumption.Classify(dec(8), baseline, umbral)
	assert.Equal(t, consumption.DesviacionBaja, clasif)
	assert.True(t, dec(-20).Equal(pct))

	clasif, _ = consumption.Classify(dec(10.5), baseline, umbral)
	assert.Equal(t, consumption.DesviacionNormal, clasif, "+5 por ciento queda dentro del umbral")

	// El umbral es frontera cerrada: exactamente +10 por ciento es normal
	clasif, _ = consumption.Classify(dec(11), baseline, umbral)
	assert.Equal(t, consumption.DesviacionNormal, clasif)
}

func TestClassify_UmbralCeroYCien(t *testing.T) {
	baseline := dec(10)

	// Umbral 0: cualquier diferencia clasifica
	clasif, _ := consumption.Classify(dec(10.01), baseline, decimal.Zero)
	assert.Equal(t, consumption.DesviacionAlta, clasif)
	clasif, _ = consumption.Classify(dec(10), baseline, decimal.Zero)
	assert.Equal(t, consumption.DesviacionNormal, clasif)

	// Una desviación menor al medio centésimo de punto también clasifica,
	// aunque el porcentaje reportado redondee a 0
	clasif, pct := consumption.Classify(dec(10.0001), baseline, decimal.Zero)
	assert.Equal(t, consumption.DesviacionAlta, clasif, "0.001 por ciento sobre el baseline no es normal con umbral 0")
	assert.True(t, pct.IsZero(), "el reporte redondea a 2 decimales, fue %s", pct)
	clasif, _ = consumption.Classify(dec(9.9999), baseline, decimal.Zero)
	assert.Equal(t, consumption.DesviacionBaja, clasif)

	// Umbral 100: solo desviaciones de más del doble o bajo cero clasifican
	clasif, _ = consumption.Classify(dec(19.9), baseline, dec(100))
	assert.Equal(t, consumption.DesviacionNormal, clasif)
	clasif, _ = consumption.Classify(dec(20.1), baseline, dec(100))
	assert.Equal(t, consumption.DesviacionAlta, clasif)
}

func TestClassify_BaselineCeroNoDivide(t *testing.T) {
	clasif, pct := consumption.Classify(dec(5), decimal.Zero, dec(10))
	assert.Equal(t, consumption.DesviacionNormal, clasif)
	assert.True(t, pct.IsZero())
}

func TestClassifyBatches_ReclasificaSinRecalcular(t *testing.T) {
	rems, usos := baselineFixture()
	b, ok := consumption.ComputeBaseline("rec-a", "cem", rems, usos)
	require.True(t, ok)

	// Con umbral 10: r2 alta, r3 baja, r1 normal
	devs := consumption.ClassifyBatches(b, rems, usos, dec(10))
	require.Len(t, devs, 3)
	porNumero := map[string]consumption.BatchDeviation{}
	for _, d := range devs {
		porNumero[d.Number] = d
	}
	assert.Equal(t, consumption.DesviacionNormal, porNumero["REM-r1"].Clasificacion)
	assert.Equal(t, consumption.DesviacionAlta, porNumero["REM-r2"].Clasificacion)
	assert.Equal(t, consumption.DesviacionBaja, porNumero["REM-r3"].Clasificacion)

	// Reclasificar con umbral 25 sobre el mismo baseline: todo normal
	devs = consumption.ClassifyBatches(b, rems, usos, dec(25))
	for _, d := range devs {
		assert.Equal(t, consumption.DesviacionNormal, d.Clasificacion, "remisión %s", d.Number)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// DetectProblematic
// ──────────────────────────────────────────────────────────────────────────────

func TestDetectProblematic_MotivosIndependientesDelUmbral(t *testing.T) {
	rems := []entity.Remision{
		remision("r1", "rec-a", 10), // 3 materiales: ok
		remision("r2", "rec-a", 10), // 1 material: incompleta
		remision("r3", "rec-a", 10), // sin filas: sin materiales
	}
	usos := []entity.RemisionMaterial{
		uso("r1", "cem", 100, 100),
		uso("r1", "are", 500, 500),
		uso("r1", "adi", 2, 2),
		uso("r2", "cem", 100, 100),
	}

	probs := consumption.DetectProblematic(rems, usos, 3)
	require.Len(t, probs, 2)
	assert.Equal(t, "REM-r2", probs[0].Number)
	assert.Equal(t, consumption.ProblemaDatosIncompletos, probs[0].Motivo)
	assert.Equal(t, 1, probs[0].Materiales)
	assert.Equal(t, "REM-r3", probs[1].Number)
	assert.Equal(t, consumption.ProblemaSinMateriales, probs[1].Motivo)
}

func TestDetectProblematic_FilasDuplicadasCuentanUnMaterial(t *testing.T) {
	rems := []entity.Remision{remision("r1", "rec-a", 10)}
	usos := []entity.RemisionMaterial{
		uso("r1", "cem", 50, 50),
		uso("r1", "cem", 50, 50), // mismo material repetido
	}

	probs := consumption.DetectProblematic(rems, usos, 2)
	require.Len(t, probs, 1)
	assert.Equal(t, consumption.ProblemaDatosIncompletos, probs[0].Motivo)
	assert.Equal(t, 1, probs[0].Materiales, "materiales distintos, no filas")
}
