package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	domaininv "github.com/dcconcretos/concreto-api/internal/domain/inventory"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

// Config parámetros del dashboard de inventario.
type Config struct {
	VarianceAttentionPct int
	VarianceRiskPct      int
	Workers              int // goroutines para los rollups por material
}

// DashboardUseCase arma el rollup de inventario de una planta: stock teórico
// por material en la ventana y varianza contra el último conteo físico.
//
// Los rollups por material son independientes entre sí, así que se calculan
// en un pool de workers; el resultado se ordena por nombre de material para
// que la salida sea determinista sin importar el orden de terminación.
type DashboardUseCase struct {
	movementRepo repository.InventoryMovementRepository
	countRepo    repository.StockCountRepository
	materialRepo repository.MaterialRepository
	cfg          Config
	log          *logger.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	movementRepo repository.InventoryMovementRepository,
	countRepo repository.StockCountRepository,
	materialRepo repository.MaterialRepository,
	cfg Config,
	log *logger.Logger,
) *DashboardUseCase {
	return &DashboardUseCase{
		movementRepo: movementRepo,
		countRepo:    countRepo,
		materialRepo: materialRepo,
		cfg:          cfg,
		log:          log,
	}
}

// Get construye el dashboard para la planta y la ventana [desde, hasta].
func (uc *DashboardUseCase) Get(ctx context.Context, plantID string, desde, hasta time.Time) (*dto.InventoryDashboardDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidDateRange
	}

	// Historia completa hasta el fin de la ventana: el stock inicial de cada
	// material se reconstruye desde el primer movimiento, nunca de un corte.
	movimientos, err := uc.movementRepo.ListByPlantUpTo(ctx, plantID, hasta)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}

	conteos, err := uc.countRepo.ListByPlant(ctx, plantID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("conteos físicos no disponibles, dashboard sin varianzas")
		conteos = nil
	}
	conteoPorMaterial := make(map[string]int, len(conteos))
	for i, c := range conteos {
		conteoPorMaterial[c.MaterialID] = i
	}

	materiales, err := uc.materialRepo.List(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo no disponible, dashboard sin nombres")
	}
	catalogo := make(map[string]int, len(materiales))
	for i, m := range materiales {
		catalogo[m.ID] = i
	}

	// Materiales con actividad en el libro, en orden estable
	vistos := make(map[string]struct{})
	var ids []string
	for _, m := range movimientos {
		if _, ok := vistos[m.MaterialID]; ok {
			continue
		}
		vistos[m.MaterialID] = struct{}{}
		ids = append(ids, m.MaterialID)
	}

	ventana := domaininv.Window{Desde: desde, Hasta: hasta}
	resumenes := uc.rollupConcurrente(ids, ventana, movimientos, conteos, conteoPorMaterial)

	for i := range resumenes {
		if j, ok := catalogo[resumenes[i].MaterialID]; ok {
			resumenes[i].Nombre = materiales[j].Name
			resumenes[i].Unidad = materiales[j].Unit
		} else {
			resumenes[i].Nombre = resumenes[i].MaterialID
		}
	}
	sort.Slice(resumenes, func(i, j int) bool {
		if resumenes[i].Nombre != resumenes[j].Nombre {
			return resumenes[i].Nombre < resumenes[j].Nombre
		}
		return resumenes[i].MaterialID < resumenes[j].MaterialID
	})

	atencion := domaininv.RequierenAtencion(resumenes,
		decimal.NewFromInt(int64(uc.cfg.VarianceAttentionPct)),
		decimal.NewFromInt(int64(uc.cfg.VarianceRiskPct)))

	out := &dto.InventoryDashboardDTO{PlantID: plantID, StartDate: desde, EndDate: hasta}
	for _, s := range resumenes {
		out.Materials = append(out.Materials, dto.NewMaterialFlowDTO(s))
	}
	for _, a := range atencion {
		out.Attention = append(out.Attention, dto.AttentionItemDTO{
			MaterialID:  a.MaterialID,
			Name:        a.Nombre,
			Variance:    a.Varianza,
			VariancePct: a.VarianzaPct,
			Level:       a.Nivel,
		})
	}
	return out, nil
}

// rollupConcurrente reparte los materiales entre workers y recoge los
// resúmenes. El orden de salida no está definido; el caller ordena.
func (uc *DashboardUseCase) rollupConcurrente(
	ids []string,
	ventana domaininv.Window,
	movimientos []entity.InventoryMovement,
	conteos []entity.MaterialStockCount,
	conteoPorMaterial map[string]int,
) []domaininv.MaterialFlowSummary {
	workers := uc.cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	jobs := make(chan string)
	results := make(chan domaininv.MaterialFlowSummary, len(ids))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range jobs {
				var conteo *entity.MaterialStockCount
				if i, ok := conteoPorMaterial[id]; ok {
					conteo = &conteos[i]
				}
				results <- domaininv.Rollup(id, ventana, movimientos, conteo)
			}
		}()
	}
	for _, id := range ids {
		jobs <- id
	}
	close(jobs)
	wg.Wait()
	close(results)

	out := make([]domaininv.MaterialFlowSummary, 0, len(ids))
	for s := range results {
		out = append(out, s)
	}
	return out
}
