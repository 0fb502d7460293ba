package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	appinventory "github.com/dcconcretos/concreto-api/internal/application/inventory"
	"github.com/dcconcretos/concreto-api/internal/domain"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

// InventoryHandler maneja los endpoints del tablero y el libro de movimientos.
type InventoryHandler struct {
	dashboard *appinventory.DashboardUseCase
	export    *appinventory.ExportUseCase
	register  *appinventory.RegisterMovementUseCase
	list      *appinventory.ListMovementsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	dashboard *appinventory.DashboardUseCase,
	export *appinventory.ExportUseCase,
	register *appinventory.RegisterMovementUseCase,
	list *appinventory.ListMovementsUseCase,
) *InventoryHandler {
	return &InventoryHandler{dashboard: dashboard, export: export, register: register, list: list}
}

// GetDashboard godoc
// @Summary      Tablero de inventario de una planta
// @Description  Stock inicial histórico, flujos de la ventana, stock teórico
//
//	final y varianza contra el último conteo físico por material,
//	con los materiales que requieren atención.
//
// @Tags         inventory
// @Produce      json
// @Param        plant_id    query  string  true   "Planta"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.InventoryDashboardDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/dashboard [get]
func (h *InventoryHandler) GetDashboard(c *fiber.Ctx) error {
	plantID, desde, hasta, err := parseDateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	report, err := h.dashboard.Get(c.Context(), plantID, desde, hasta)
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

// ExportDashboard godoc
// @Summary      Exportar el tablero de inventario a PDF
// @Tags         inventory
// @Produce      application/pdf
// @Param        plant_id    query  string  true   "Planta"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/dashboard/export [get]
func (h *InventoryHandler) ExportDashboard(c *fiber.Ctx) error {
	plantID, desde, hasta, err := parseDateRange(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	pdfBytes, err := h.export.ExportPDF(c.Context(), plantID, desde, hasta)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return badRequest(c, "rango de fechas inválido")
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventario_`+plantID+`.pdf"`)
	return c.Send(pdfBytes)
}

// RegisterMovement godoc
// @Summary      Registrar movimiento manual de inventario
// @Description  Registra una entrada, adición, retiro o desperdicio en el libro
//
//	(CONSUMPTION es exclusivo del flujo de remisiones y se rechaza).
//	counted_stock opcional registra el conteo físico en la misma
//	transacción.
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "plant_id, material_id, kind, quantity, date, counted_stock"
// @Success      201   {object}  dto.MovementDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	mov, err := h.register.RegisterFromRequest(c.Context(), c.Get("X-User-Id"), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownMovement):
			return badRequest(c, err.Error())
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "material no encontrado"})
		case errors.Is(err, domain.ErrDuplicate):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "movimiento duplicado"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MovementDTO{
		ID:         mov.ID,
		PlantID:    mov.PlantID,
		MaterialID: mov.MaterialID,
		Date:       mov.Fecha,
		Quantity:   mov.Cantidad,
		Kind:       mov.Kind,
		Reference:  mov.Reference,
		Notes:      mov.Notas,
	})
}

// ListMovements godoc
// @Summary      Consultar el libro de movimientos
// @Tags         inventory
// @Produce      json
// @Param        plant_id     query  string  true   "Planta"
// @Param        material_id  query  string  false  "Filtrar por material"
// @Param        start_date   query  string  false  "YYYY-MM-DD"
// @Param        end_date     query  string  false  "YYYY-MM-DD"
// @Param        limit        query  int     false  "Máx. filas (default 50)"
// @Param        offset       query  int     false  "Desplazamiento"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	plantID := c.Query("plant_id")
	if plantID == "" {
		return badRequest(c, "plant_id es obligatorio")
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()

	filtro := repository.MovementFilter{
		PlantID:    plantID,
		MaterialID: c.Query("material_id"),
		Limit:      page.Limit,
		Offset:     page.Offset,
	}
	if raw := c.Query("start_date"); raw != "" {
		desde, err := time.Parse(dateLayout, raw)
		if err != nil {
			return badRequest(c, "start_date inválida, use YYYY-MM-DD")
		}
		filtro.Desde = &desde
	}
	if raw := c.Query("end_date"); raw != "" {
		hasta, err := time.Parse(dateLayout, raw)
		if err != nil {
			return badRequest(c, "end_date inválida, use YYYY-MM-DD")
		}
		fin := endOfDay(hasta)
		filtro.Hasta = &fin
	}

	movs, err := h.list.List(c.Context(), filtro)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total":     len(movs),
		"movements": movs,
	})
}
