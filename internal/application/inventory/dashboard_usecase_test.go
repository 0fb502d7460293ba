package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/dcconcretos/concreto-api/internal/application/inventory"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorio
// ──────────────────────────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movimientos []entity.InventoryMovement
	creados     []*entity.InventoryMovement
	errCreate   error
}

func (f *fakeMovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	if f.errCreate != nil {
		return f.errCreate
	}
	f.creados = append(f.creados, m)
	return nil
}

func (f *fakeMovementRepo) List(_ context.Context, filtro repository.MovementFilter) ([]entity.InventoryMovement, error) {
	var out []entity.InventoryMovement
	for _, m := range f.movimientos {
		if filtro.MaterialID != "" && m.MaterialID != filtro.MaterialID {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *fakeMovementRepo) ListByPlantUpTo(_ context.Context, plantID string, hasta time.Time) ([]entity.InventoryMovement, error) {
	var out []entity.InventoryMovement
	for _, m := range f.movimientos {
		if m.PlantID == plantID && !m.Fecha.After(hasta) {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeCountRepo struct {
	conteos []entity.MaterialStockCount
	upserts []*entity.MaterialStockCount
	err     error
}

func (f *fakeCountRepo) ListByPlant(_ context.Context, _ string) ([]entity.MaterialStockCount, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.conteos, nil
}

func (f *fakeCountRepo) Upsert(_ context.Context, c *entity.MaterialStockCount) error {
	if f.err != nil {
		return f.err
	}
	f.upserts = append(f.upserts, c)
	return nil
}

type fakeMaterialRepo struct {
	materiales []entity.Material
}

func (f *fakeMaterialRepo) List(context.Context) ([]entity.Material, error) {
	return f.materiales, nil
}

func (f *fakeMaterialRepo) GetByIDs(_ context.Context, ids []string) ([]entity.Material, error) {
	var out []entity.Material
	for _, id := range ids {
		for _, m := range f.materiales {
			if m.ID == id {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta el callback sin transacción real, con los fakes.
type fakeTxRunner struct {
	movRepo   *fakeMovementRepo
	countRepo *fakeCountRepo
	errBegin  error
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.InventoryMovementRepository,
	countRepo repository.StockCountRepository,
) error) error {
	if f.errBegin != nil {
		return f.errBegin
	}
	return fn(f.movRepo, f.countRepo)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const testPlanta = "planta-norte"

var testLog = logger.New(logger.Config{Env: "test", Level: "error"})

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func dia(d int) time.Time { return time.Date(2026, 4, d, 12, 0, 0, 0, time.UTC) }

func movimiento(materialID string, d int, kind string, magnitud float64) entity.InventoryMovement {
	cantidad := dec(magnitud)
	if !entity.EsEntrada(kind) {
		cantidad = cantidad.Neg()
	}
	return entity.InventoryMovement{
		PlantID: testPlanta, MaterialID: materialID,
		Fecha: dia(d), Cantidad: cantidad, Kind: kind,
	}
}

func dashboardFixture(nMateriales int) (*fakeMovementRepo, *fakeCountRepo, *fakeMaterialRepo) {
	movRepo := &fakeMovementRepo{}
	countRepo := &fakeCountRepo{}
	matRepo := &fakeMaterialRepo{}
	for i := 0; i < nMateriales; i++ {
		id := fmt.Sprintf("mat-%03d", i)
		matRepo.materiales = append(matRepo.materiales, entity.Material{
			ID: id, Name: fmt.Sprintf("Material %03d", i), Unit: "kg",
		})
		movRepo.movimientos = append(movRepo.movimientos,
			movimiento(id, 5, entity.MovementKindEntry, 500),
			movimiento(id, 15, entity.MovementKindConsumption, 300),
		)
		countRepo.conteos = append(countRepo.conteos, entity.MaterialStockCount{
			PlantID: testPlanta, MaterialID: id, CountedStock: dec(190), CountedAt: dia(30),
		})
	}
	return movRepo, countRepo, matRepo
}

func ventanaAbril() (time.Time, time.Time) {
	return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 30, 23, 59, 59, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// DashboardUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_RollupYVarianza(t *testing.T) {
	movRepo, countRepo, matRepo := dashboardFixture(1)
	uc := appinv.NewDashboardUseCase(movRepo, countRepo, matRepo,
		appinv.Config{VarianceAttentionPct: 1, VarianceRiskPct: 5, Workers: 2}, testLog)

	desde, hasta := ventanaAbril()
	out, err := uc.Get(context.Background(), testPlanta, desde, hasta)
	require.NoError(t, err)

	require.Len(t, out.Materials, 1)
	m := out.Materials[0]
	assert.True(t, dec(500).Equal(m.Entries))
	assert.True(t, dec(300).Equal(m.Consumption))
	assert.True(t, dec(200).Equal(m.TheoreticalStock))
	require.NotNil(t, m.CountedStock)
	assert.True(t, dec(10).Equal(m.Variance), "200 teórico - 190 físico")
	assert.True(t, dec(5).Equal(m.VariancePct))

	require.Len(t, out.Attention, 1, "varianza del 5 por ciento entra al listado")
	assert.Equal(t, "riesgo", out.Attention[0].Level)
}

// TestDashboard_SalidaDeterminista corre el dashboard varias veces con muchos
// materiales: el pool de workers no puede cambiar el orden del resultado.
func TestDashboard_SalidaDeterminista(t *testing.T) {
	movRepo, countRepo, matRepo := dashboardFixture(40)
	uc := appinv.NewDashboardUseCase(movRepo, countRepo, matRepo,
		appinv.Config{VarianceAttentionPct: 1, VarianceRiskPct: 5, Workers: 8}, testLog)

	desde, hasta := ventanaAbril()
	base, err := uc.Get(context.Background(), testPlanta, desde, hasta)
	require.NoError(t, err)
	require.Len(t, base.Materials, 40)

	for i := 0; i < 5; i++ {
		otra, err := uc.Get(context.Background(), testPlanta, desde, hasta)
		require.NoError(t, err)
		require.Len(t, otra.Materials, 40)
		for j := range base.Materials {
			assert.Equal(t, base.Materials[j].MaterialID, otra.Materials[j].MaterialID,
				"ejecución %d, posición %d", i, j)
		}
	}
}

func TestDashboard_SinConteosSigueSinVarianzas(t *testing.T) {
	movRepo, countRepo, matRepo := dashboardFixture(2)
	countRepo.err = errors.New("pg down")
	uc := appinv.NewDashboardUseCase(movRepo, countRepo, matRepo,
		appinv.Config{VarianceAttentionPct: 1, VarianceRiskPct: 5, Workers: 2}, testLog)

	desde, hasta := ventanaAbril()
	out, err := uc.Get(context.Background(), testPlanta, desde, hasta)
	require.NoError(t, err, "la caída de conteos no tumba el dashboard")
	require.Len(t, out.Materials, 2)
	for _, m := range out.Materials {
		assert.Nil(t, m.CountedStock)
	}
	assert.Empty(t, out.Attention)
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterMovementUseCase
// ──────────────────────────────────────────────────────────────────────────────

func registerFixture() (*appinv.RegisterMovementUseCase, *fakeMovementRepo, *fakeCountRepo) {
	movRepo := &fakeMovementRepo{}
	countRepo := &fakeCountRepo{}
	matRepo := &fakeMaterialRepo{materiales: []entity.Material{
		{ID: "cem", Name: "CPC 40", Unit: "kg"},
	}}
	tx := &fakeTxRunner{movRepo: movRepo, countRepo: countRepo}
	return appinv.NewRegisterMovementUseCase(tx, matRepo), movRepo, countRepo
}

func TestRegister_NormalizaSignoPorTipo(t *testing.T) {
	uc, movRepo, _ := registerFixture()

	casos := []struct {
		kind     string
		esperado float64
	}{
		{entity.MovementKindEntry, 100},
		{entity.MovementKindManualAddition, 100},
		{entity.MovementKindManualWithdrawal, -100},
		{entity.MovementKindWaste, -100},
	}
	for _, tc := range casos {
		t.Run(tc.kind, func(t *testing.T) {
			mov, err := uc.Register(context.Background(), appinv.MovementInput{
				PlantID: testPlanta, MaterialID: "cem", Kind: tc.kind, Cantidad: dec(100),
			})
			require.NoError(t, err)
			assert.True(t, dec(tc.esperado).Equal(mov.Cantidad),
				"cantidad con signo normalizado, fue %s", mov.Cantidad)
		})
	}
	assert.Len(t, movRepo.creados, 4)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, movRepo, _ := registerFixture()

	// Tipo desconocido
	_, err := uc.Register(context.Background(), appinv.MovementInput{
		PlantID: testPlanta, MaterialID: "cem", Kind: "TELEPORT", Cantidad: dec(1),
	})
	assert.Error(t, err)

	// El consumo no se registra a mano
	_, err = uc.Register(context.Background(), appinv.MovementInput{
		PlantID: testPlanta, MaterialID: "cem", Kind: entity.MovementKindConsumption, Cantidad: dec(1),
	})
	assert.Error(t, err)

	// Cantidad no positiva
	_, err = uc.Register(context.Background(), appinv.MovementInput{
		PlantID: testPlanta, MaterialID: "cem", Kind: entity.MovementKindEntry, Cantidad: dec(0),
	})
	assert.Error(t, err)

	// Material inexistente
	_, err = uc.Register(context.Background(), appinv.MovementInput{
		PlantID: testPlanta, MaterialID: "no-existe", Kind: entity.MovementKindEntry, Cantidad: dec(1),
	})
	assert.Error(t, err)

	assert.Empty(t, movRepo.creados, "ninguna entrada inválida debe persistirse")
}

func TestRegister_ConteoFisicoEnLaMismaTransaccion(t *testing.T) {
	uc, movRepo, countRepo := registerFixture()

	conteo := dec(480)
	_, err := uc.Register(context.Background(), appinv.MovementInput{
		PlantID: testPlanta, MaterialID: "cem",
		Kind: entity.MovementKindManualWithdrawal, Cantidad: dec(20),
		ConteoFisico: &conteo,
	})
	require.NoError(t, err)

	require.Len(t, movRepo.creados, 1)
	require.Len(t, countRepo.upserts, 1)
	assert.True(t, dec(480).Equal(countRepo.upserts[0].CountedStock))
	assert.Equal(t, "cem", countRepo.upserts[0].MaterialID)
}
