package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
)

const dateLayout = "2006-01-02"

// parseDateRange extrae plant_id, start_date y end_date de la query.
//
// plant_id es obligatorio. Fechas vacías defaultean al mes en curso
// (día 1 a hoy). end_date se extiende al final del día para que la
// ventana sea inclusiva.
func parseDateRange(c *fiber.Ctx) (plantID string, desde, hasta time.Time, err error) {
	var req dto.DateRangeRequest
	if err = c.QueryParser(&req); err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	if req.PlantID == "" {
		return "", time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "plant_id es obligatorio")
	}

	ahora := time.Now().UTC()
	desde = time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC)
	hasta = ahora

	if req.StartDate != "" {
		desde, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return "", time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "start_date inválida, use YYYY-MM-DD")
		}
	}
	if req.EndDate != "" {
		hasta, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return "", time.Time{}, time.Time{}, fiber.NewError(fiber.StatusBadRequest, "end_date inválida, use YYYY-MM-DD")
		}
		hasta = endOfDay(hasta)
	}

	return req.PlantID, desde, hasta, nil
}

// endOfDay lleva t al último instante de su día.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// badRequest respuesta 400 uniforme.
func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
