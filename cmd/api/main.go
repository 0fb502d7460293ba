package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/dcconcretos/concreto-api/internal/application/catalog"
	appinventory "github.com/dcconcretos/concreto-api/internal/application/inventory"
	appproduction "github.com/dcconcretos/concreto-api/internal/application/production"
	"github.com/dcconcretos/concreto-api/internal/domain/consumption"
	infrapdf "github.com/dcconcretos/concreto-api/internal/infrastructure/pdf"
	"github.com/dcconcretos/concreto-api/internal/infrastructure/postgres"
	httpRouter "github.com/dcconcretos/concreto-api/internal/interfaces/http"
	"github.com/dcconcretos/concreto-api/pkg/config"
	"github.com/dcconcretos/concreto-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	priceRepo := postgres.NewMaterialPriceRepository(pool)
	remisionRepo := postgres.NewRemisionRepository(pool)
	movementRepo := postgres.NewInventoryMovementRepository(pool)
	countRepo := postgres.NewStockCountRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clasificador := consumption.NewTokenClassifier(cfg.Engine.CementTokens)

	productionCfg := appproduction.Config{
		ChunkSize:    cfg.Engine.FetchChunkSize,
		TopN:         cfg.Engine.TopMaterials,
		MinMaterials: cfg.Engine.MinMaterialsPerBatch,
	}
	detailsUC := appproduction.NewDetailsUseCase(
		remisionRepo, materialRepo, priceRepo, clasificador, productionCfg,
		log.Module("production"),
	)
	// RemisionRepo también implementa el repositorio de recetas.
	analysisUC := appproduction.NewRecipeAnalysisUseCase(
		remisionRepo, remisionRepo, materialRepo, clasificador, productionCfg,
		log.Module("production"),
	)

	dashboardUC := appinventory.NewDashboardUseCase(
		movementRepo, countRepo, materialRepo,
		appinventory.Config{
			VarianceAttentionPct: cfg.Engine.VarianceAttentionPct,
			VarianceRiskPct:      cfg.Engine.VarianceRiskPct,
			Workers:              cfg.Engine.DashboardWorkers,
		},
		log.Module("inventory"),
	)
	registerMovementUC := appinventory.NewRegisterMovementUseCase(txRunner, materialRepo)
	listMovementsUC := appinventory.NewListMovementsUseCase(movementRepo)

	// PDF: exportación del tablero de inventario
	pdfGenerator := infrapdf.NewMarotoReportGenerator()
	exportUC := appinventory.NewExportUseCase(dashboardUC, pdfGenerator)

	materialUC := catalog.NewMaterialUseCase(materialRepo, priceRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductionDetails:     detailsUC,
		RecipeAnalysis:        analysisUC,
		Dashboard:             dashboardUC,
		Export:                exportUC,
		RegisterMovement:      registerMovementUC,
		ListMovements:         listMovementsUC,
		Materials:             materialUC,
		DeviationThresholdPct: decimal.NewFromInt(int64(cfg.Engine.DeviationThresholdPct)),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
