package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	appproduction "github.com/dcconcretos/concreto-api/internal/application/production"
	"github.com/dcconcretos/concreto-api/internal/domain"
)

// ProductionHandler maneja los endpoints de reportes de producción.
type ProductionHandler struct {
	details  *appproduction.DetailsUseCase
	analysis *appproduction.RecipeAnalysisUseCase
	// umbral de desviación por defecto cuando threshold_pct no viene en la query
	umbralDefault decimal.Decimal
}

// NewProductionHandler construye el handler.
func NewProductionHandler(
	details *appproduction.DetailsUseCase,
	analysis *appproduction.RecipeAnalysisUseCase,
	umbralDefault decimal.Decimal,
) *ProductionHandler {
	return &ProductionHandler{details: details, analysis: analysis, umbralDefault: umbralDefault}
}

// GetDetails godoc
// @Summary      Reporte de consumo de producción
// @Description  Agrega remisiones de la ventana: consumo por material, costos
//
//	valorizados, desglose por receta y categoría, y tendencia contra
//	el período anterior de igual duración.
//
// @Tags         production
// @Produce      json
// @Param        plant_id    query  string  true   "Planta"
// @Param        start_date  query  string  false  "YYYY-MM-DD; vacío = día 1 del mes"
// @Param        end_date    query  string  false  "YYYY-MM-DD; vacío = hoy"
// @Success      200  {object}  dto.ProductionDetailsDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/production/details [get]
func (h *ProductionHandler) GetDetails(c *fiber.Ctx) error {
	plantID, desde, hasta, err := parseDateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	report, err := h.details.Get(c.Context(), plantID, desde, hasta)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return badRequest(c, "rango de fechas inválido")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(report)
}

// GetRecipeAnalysis godoc
// @Summary      Análisis de dosificación de una receta
// @Description  Calcula la línea base de consumo por m³ del material indicado
//
//	(o del cementante de mayor consumo si material_id viene vacío),
//	clasifica cada remisión contra el umbral y lista las remisiones
//	con datos incompletos.
//
// @Tags         production
// @Produce      json
// @Param        id             path   string  true   "Receta"
// @Param        plant_id       query  string  true   "Planta"
// @Param        start_date     query  string  false  "YYYY-MM-DD"
// @Param        end_date       query  string  false  "YYYY-MM-DD"
// @Param        material_id    query  string  false  "Material a analizar"
// @Param        threshold_pct  query  string  false  "Umbral de desviación en %"
// @Success      200  {object}  dto.RecipeAnalysisDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/production/recipes/{id}/analysis [get]
func (h *ProductionHandler) GetRecipeAnalysis(c *fiber.Ctx) error {
	recipeID := c.Params("id")
	plantID, desde, hasta, err := parseDateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	umbral := h.umbralDefault
	if raw := c.Query("threshold_pct"); raw != "" {
		umbral, err = decimal.NewFromString(raw)
		if err != nil || umbral.IsNegative() {
			return badRequest(c, "threshold_pct inválido")
		}
	}

	report, err := h.analysis.Analyze(c.Context(), recipeID, plantID, desde, hasta, c.Query("material_id"), umbral)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return badRequest(c, "rango de fechas inválido")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Code: "NOT_FOUND", Message: "receta no encontrada",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(report)
}
