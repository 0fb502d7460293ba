// Package inventory orquesta el dashboard de inventario de materias primas,
// el registro de movimientos manuales y la exportación a PDF.
package inventory

import (
	"context"

	"github.com/dcconcretos/concreto-api/internal/application/dto"
	"github.com/dcconcretos/concreto-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el movimiento y el conteo
// físico que lo acompaña se registren juntos o no se registre ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.InventoryMovementRepository,
		countRepo repository.StockCountRepository,
	) error) error
}

// ReportGenerator puerto de exportación del dashboard. El motor entrega los
// agregados estructurados; el formato (PDF, tabla, estilos) vive del otro
// lado del puerto.
type ReportGenerator interface {
	GenerateDashboardPDF(ctx context.Context, report *dto.InventoryDashboardDTO) ([]byte, error)
}
