package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/catalog"
	appinventory "github.com/dcconcretos/concreto-api/internal/application/inventory"
	appproduction "github.com/dcconcretos/concreto-api/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductionDetails *appproduction.DetailsUseCase
	RecipeAnalysis    *appproduction.RecipeAnalysisUseCase
	Dashboard         *appinventory.DashboardUseCase
	Export            *appinventory.ExportUseCase
	RegisterMovement  *appinventory.RegisterMovementUseCase
	ListMovements     *appinventory.ListMovementsUseCase
	Materials         *catalog.MaterialUseCase
	// Umbral de desviación por defecto para el análisis de recetas (%).
	DeviationThresholdPct decimal.Decimal
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Producción: reportes de consumo y análisis de recetas
	production := api.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionDetails, deps.RecipeAnalysis, deps.DeviationThresholdPct)
	production.Get("/details", productionHandler.GetDetails)
	production.Get("/recipes/:id/analysis", productionHandler.GetRecipeAnalysis)

	// Inventario: tablero, exportación y libro de movimientos
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Dashboard, deps.Export, deps.RegisterMovement, deps.ListMovements)
	invGroup.Get("/dashboard", inventoryHandler.GetDashboard)
	invGroup.Get("/dashboard/export", inventoryHandler.ExportDashboard)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)

	// Catálogo de materiales
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.Materials)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id/prices", materialHandler.ListPrices)
}
