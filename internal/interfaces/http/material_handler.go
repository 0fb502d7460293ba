package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dcconcretos/concreto-api/internal/application/catalog"
	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain"
)

// MaterialHandler maneja los endpoints del catálogo de materiales.
type MaterialHandler struct {
	uc *catalog.MaterialUseCase
}

// NewMaterialHandler construye el handler.
func NewMaterialHandler(uc *catalog.MaterialUseCase) *MaterialHandler {
	return &MaterialHandler{uc: uc}
}

// List godoc
// @Summary      Catálogo de materiales
// @Tags         materials
// @Produce      json
// @Success      200  {array}   dto.MaterialDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/materials [get]
func (h *MaterialHandler) List(c *fiber.Ctx) error {
	materiales, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(materiales)
}

// ListPrices godoc
// @Summary      Historial de precios de un material
// @Tags         materials
// @Produce      json
// @Param        id  path  string  true  "Material"
// @Success      200  {array}   dto.MaterialPriceDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/materials/{id}/prices [get]
func (h *MaterialHandler) ListPrices(c *fiber.Ctx) error {
	precios, err := h.uc.ListPrices(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(precios)
}
