package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type parsedRange struct {
	plantID string
	desde   time.Time
	hasta   time.Time
	err     error
}

// parseVia monta una app mínima, lanza un GET con la query dada y captura lo
// que parseDateRange devolvió dentro del handler.
func parseVia(t *testing.T, query string) parsedRange {
	t.Helper()

	var got parsedRange
	app := fiber.New()
	app.Get("/r", func(c *fiber.Ctx) error {
		got.plantID, got.desde, got.hasta, got.err = parseDateRange(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/r?"+query, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	return got
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests parseDateRange
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDateRange_VentanaExplicita(t *testing.T) {
	got := parseVia(t, "plant_id=PL-01&start_date=2024-04-01&end_date=2024-04-30")
	require.NoError(t, got.err)

	assert.Equal(t, "PL-01", got.plantID)
	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), got.desde)

	// end_date se extiende al final del día para que la ventana sea inclusiva
	assert.Equal(t, 2024, got.hasta.Year())
	assert.Equal(t, time.April, got.hasta.Month())
	assert.Equal(t, 30, got.hasta.Day())
	assert.Equal(t, 23, got.hasta.Hour())
	assert.Equal(t, 59, got.hasta.Minute())
}

func TestParseDateRange_SinFechas_DefaulteaMesEnCurso(t *testing.T) {
	got := parseVia(t, "plant_id=PL-01")
	require.NoError(t, got.err)

	ahora := time.Now().UTC()
	assert.Equal(t, 1, got.desde.Day(), "el inicio por defecto es el día 1")
	assert.Equal(t, ahora.Month(), got.desde.Month())
	assert.False(t, got.hasta.Before(got.desde), "la ventana por defecto no debe estar invertida")
}

func TestParseDateRange_SinPlanta_Falla(t *testing.T) {
	got := parseVia(t, "start_date=2024-04-01&end_date=2024-04-30")
	assert.Error(t, got.err, "plant_id es obligatorio")
}

func TestParseDateRange_FechaMalformada_Falla(t *testing.T) {
	got := parseVia(t, "plant_id=PL-01&start_date=01/04/2024")
	assert.Error(t, got.err, "solo se acepta YYYY-MM-DD")

	got = parseVia(t, "plant_id=PL-01&end_date=2024-13-40")
	assert.Error(t, got.err)
}

func TestEndOfDay_UltimoInstanteDelDia(t *testing.T) {
	d := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)
	fin := endOfDay(d)

	assert.Equal(t, 15, fin.Day())
	assert.Equal(t, 23, fin.Hour())
	assert.Equal(t, 59, fin.Minute())
	assert.Equal(t, 59, fin.Second())
	assert.True(t, fin.Before(d.AddDate(0, 0, 1)), "no debe cruzar al día siguiente")
}
