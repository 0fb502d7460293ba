package production

import (
	"context"
	"fmt"
	"time"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/pricing"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

// Config parámetros de los reportes de producción.
type Config struct {
	ChunkSize    int // tamaño de lote para las consultas IN
	TopN         int // materiales en el ranking por costo
	MinMaterials int // mínimo de materiales por remisión para no marcarla incompleta
}

// DetailsUseCase arma el reporte de consumo de una ventana de producción:
// agregados por material, receta y categoría, más la tendencia de costo
// contra el período anterior.
//
// El reporte degrada por secciones: si los precios o el período anterior no
// cargan, esa sección sale vacía o nula y el resto se entrega igual. Solo la
// lista de remisiones es obligatoria.
type DetailsUseCase struct {
	remisionRepo repository.RemisionRepository
	materialRepo repository.MaterialRepository
	priceRepo    repository.MaterialPriceRepository
	clasificador consumption.Classifier
	cfg          Config
	log          *logger.Logger
}

// NewDetailsUseCase construye el caso de uso.
func NewDetailsUseCase(
	remisionRepo repository.RemisionRepository,
	materialRepo repository.MaterialRepository,
	priceRepo repository.MaterialPriceRepository,
	clasificador consumption.Classifier,
	cfg Config,
	log *logger.Logger,
) *DetailsUseCase {
	return &DetailsUseCase{
		remisionRepo: remisionRepo,
		materialRepo: materialRepo,
		priceRepo:    priceRepo,
		clasificador: clasificador,
		cfg:          cfg,
		log:          log,
	}
}

// Get construye el reporte para la planta y la ventana [desde, hasta].
func (uc *DetailsUseCase) Get(ctx context.Context, plantID string, desde, hasta time.Time) (*dto.ProductionDetailsDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidDateRange
	}

	remisiones, err := uc.remisionRepo.ListByWindow(ctx, plantID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("listar remisiones: %w", err)
	}

	usos, descartadas := fetchMateriales(ctx, uc.remisionRepo, remisiones, uc.cfg.ChunkSize, uc.log)

	// Período anterior (misma duración). Si falla, el reporte sale sin tendencia.
	prevDesde, prevHasta := consumption.PreviousWindow(desde, hasta)
	var prevRemisiones []entity.Remision
	var prevUsos []entity.RemisionMaterial
	prevOK := true
	prevRemisiones, err = uc.remisionRepo.ListByWindow(ctx, plantID, prevDesde, prevHasta)
	if err != nil {
		uc.log.Warn().Err(err).Msg("período anterior no disponible, reporte sin tendencia")
		prevOK = false
	} else {
		prevUsos, _ = fetchMateriales(ctx, uc.remisionRepo, prevRemisiones, uc.cfg.ChunkSize, uc.log)
	}

	ids := materialIDs(append(append([]entity.RemisionMaterial{}, usos...), prevUsos...))
	materiales := uc.cargarMateriales(ctx, ids)
	indice := uc.cargarPrecios(ctx, ids, plantID, hasta)

	resumen := consumption.Aggregate(remisiones, usos, materiales, indice, uc.clasificador, uc.cfg.TopN)

	out := &dto.ProductionDetailsDTO{
		PlantID:   plantID,
		StartDate: desde,
		EndDate:   hasta,
		Summary:   dto.NewConsumptionSummaryDTO(resumen),
	}
	if len(descartadas) > 0 {
		out.Partial = &dto.PartialResultDTO{DroppedRemisiones: descartadas}
	}

	if prevOK {
		prevResumen := consumption.Aggregate(prevRemisiones, prevUsos, materiales, indice, uc.clasificador, uc.cfg.TopN)
		trend := consumption.CompareTrend(
			consumption.PeriodCost{Desde: desde, Hasta: hasta, CostoTotal: resumen.CostoTotal, NumRemisiones: len(remisiones)},
			consumption.PeriodCost{Desde: prevDesde, Hasta: prevHasta, CostoTotal: prevResumen.CostoTotal, NumRemisiones: len(prevRemisiones)},
		)
		out.Trend = dto.NewTrendDTO(trend)
	}

	return out, nil
}

// cargarMateriales trae el catálogo de los materiales usados. Si la consulta
// falla el agregador etiqueta por ID, así que se degrada a mapa vacío.
func (uc *DetailsUseCase) cargarMateriales(ctx context.Context, ids []string) map[string]entity.Material {
	out := make(map[string]entity.Material, len(ids))
	if len(ids) == 0 {
		return out
	}
	mats, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo de materiales no disponible, reporte sin nombres")
		return out
	}
	for _, m := range mats {
		out[m.ID] = m
	}
	return out
}

// cargarPrecios resuelve el índice de precios a la fecha de corte. Si la
// consulta falla, todo material queda sin precio (costos en 0, marcados).
func (uc *DetailsUseCase) cargarPrecios(ctx context.Context, ids []string, plantID string, corte time.Time) *pricing.PriceIndex {
	if len(ids) == 0 {
		return pricing.EmptyIndex(corte)
	}
	precios, err := uc.priceRepo.ListForMaterials(ctx, ids, plantID)
	if err != nil {
		uc.log.Warn().Err(err).Msg("precios no disponibles, reporte sin costos")
		return pricing.EmptyIndex(corte)
	}
	return pricing.BuildIndex(precios, ids, corte, plantID)
}
