// Package production orquesta los reportes de producción: detalles de
// consumo por ventana y análisis de baseline por receta.
package production

import (
	"context"

	"github.com/dcconcretos/concreto-api/internal/domain/entity"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

// fetchMateriales trae los consumos de las remisiones en lotes de chunkSize
// IDs. Cada lote que falla se reintenta una vez; si vuelve a fallar, sus
// remisiones se reportan como descartadas y el resto del reporte continúa.
func fetchMateriales(
	ctx context.Context,
	repo repository.RemisionRepository,
	remisiones []entity.Remision,
	chunkSize int,
	log *logger.Logger,
) (usos []entity.RemisionMaterial, descartadas []string) {
	if chunkSize <= 0 {
		chunkSize = 50
	}
	ids := make([]string, len(remisiones))
	for i, r := range remisiones {
		ids[i] = r.ID
	}

	for inicio := 0; inicio < len(ids); inicio += chunkSize {
		fin := inicio + chunkSize
		if fin > len(ids) {
			fin = len(ids)
		}
		lote := ids[inicio:fin]

		parte, err := repo.ListMateriales(ctx, lote)
		if err != nil {
			parte, err = repo.ListMateriales(ctx, lote)
		}
		if err != nil {
			log.Warn().Err(err).
				Int("lote_inicio", inicio).
				Int("lote_tamano", len(lote)).
				Msg("lote de materiales por remisión descartado tras reintento")
			descartadas = append(descartadas, lote...)
			continue
		}
		usos = append(usos, parte...)
	}
	return usos, descartadas
}

// materialIDs IDs distintos de material en los consumos, en orden de aparición.
func materialIDs(usos []entity.RemisionMaterial) []string {
	vistos := make(map[string]struct{})
	var out []string
	for _, u := range usos {
		if _, ok := vistos[u.MaterialID]; ok {
			continue
		}
		vistos[u.MaterialID] = struct{}{}
		out = append(out, u.MaterialID)
	}
	return out
}
