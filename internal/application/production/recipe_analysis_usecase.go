package production

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

// RecipeAnalysisUseCase calcula el baseline de consumo por m³ de una receta
// y clasifica cada remisión contra él. El umbral llega del caller: cambiarlo
// reclasifica sobre los mismos datos, sin volver a consultar.
type RecipeAnalysisUseCase struct {
	recipeRepo   repository.RecipeRepository
	remisionRepo repository.RemisionRepository
	materialRepo repository.MaterialRepository
	clasificador consumption.Classifier
	cfg          Config
	log          *logger.Logger
}

// NewRecipeAnalysisUseCase construye el caso de uso.
func NewRecipeAnalysisUseCase(
	recipeRepo repository.RecipeRepository,
	remisionRepo repository.RemisionRepository,
	materialRepo repository.MaterialRepository,
	clasificador consumption.Classifier,
	cfg Config,
	log *logger.Logger,
) *RecipeAnalysisUseCase {
	return &RecipeAnalysisUseCase{
		recipeRepo:   recipeRepo,
		remisionRepo: remisionRepo,
		materialRepo: materialRepo,
		clasificador: clasificador,
		cfg:          cfg,
		log:          log,
	}
}

// Analyze arma el análisis de la receta en la ventana dada.
//
// materialID vacío analiza el material cementante de mayor consumo de la
// receta (el objeto usual del control de dosificación). umbralPct es el
// umbral de clasificación en %.
func (uc *RecipeAnalysisUseCase) Analyze(
	ctx context.Context,
	recipeID, plantID string,
	desde, hasta time.Time,
	materialID string,
	umbralPct decimal.Decimal,
) (*dto.RecipeAnalysisDTO, error) {
	if hasta.Before(desde) {
		return nil, domain.ErrInvalidDateRange
	}

	receta, err := uc.recipeRepo.GetByID(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf("buscar receta: %w", err)
	}
	if receta == nil {
		return nil, domain.ErrNotFound
	}

	remisiones, err := uc.remisionRepo.ListByRecipe(ctx, recipeID, plantID, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("listar remisiones de la receta: %w", err)
	}
	usos, _ := fetchMateriales(ctx, uc.remisionRepo, remisiones, uc.cfg.ChunkSize, uc.log)

	if materialID == "" {
		materialID = uc.materialCementante(ctx, usos)
	}

	out := &dto.RecipeAnalysisDTO{
		RecipeID:     receta.ID,
		RecipeCode:   receta.Code,
		MaterialID:   materialID,
		ThresholdPct: umbralPct,
	}

	for _, p := range consumption.DetectProblematic(remisiones, usos, uc.cfg.MinMaterials) {
		out.Problematic = append(out.Problematic, dto.ProblematicRemisionDTO{
			RemisionID: p.RemisionID, Number: p.Number, Reason: p.Motivo, Materials: p.Materiales,
		})
	}

	if materialID == "" {
		// Sin material que analizar (ninguna remisión dosificó cementantes)
		return out, nil
	}

	baseline, ok := consumption.ComputeBaseline(recipeID, materialID, remisiones, usos)
	if !ok {
		return out, nil
	}
	out.BaselinePerM3 = baseline.ConsumoPromedioPorM3
	out.SampleSize = baseline.NumRemisiones

	for _, d := range consumption.ClassifyBatches(baseline, remisiones, usos, umbralPct) {
		out.Batches = append(out.Batches, dto.BatchDeviationDTO{
			RemisionID:     d.RemisionID,
			Number:         d.Number,
			ActualPerM3:    d.ConsumoPorM3,
			DeviationPct:   d.DesviacionPct,
			Classification: d.Clasificacion,
		})
	}
	return out, nil
}

// materialCementante elige el material cementante con mayor consumo real.
// Devuelve vacío si ninguno clasifica o el catálogo no está disponible.
func (uc *RecipeAnalysisUseCase) materialCementante(ctx context.Context, usos []entity.RemisionMaterial) string {
	ids := materialIDs(usos)
	if len(ids) == 0 {
		return ""
	}
	mats, err := uc.materialRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.log.Warn().Err(err).Msg("catálogo no disponible para elegir material cementante")
		return ""
	}

	consumo := make(map[string]decimal.Decimal)
	for _, u := range usos {
		consumo[u.MaterialID] = consumo[u.MaterialID].Add(u.CantidadReal)
	}

	elegido := ""
	mayor := decimal.Zero
	for _, m := range mats {
		if !uc.clasificador.EsCemento(m) {
			continue
		}
		if elegido == "" || consumo[m.ID].GreaterThan(mayor) {
			elegido = m.ID
			mayor = consumo[m.ID]
		}
	}
	return elegido
}
