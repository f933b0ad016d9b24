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

	appanalytics "github.com/jhoicas/stock-inventory-api/internal/application/analytics"
	"github.com/jhoicas/stock-inventory-api/internal/application/inventory"
	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/stock-inventory-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/stock-inventory-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-inventory-api/internal/interfaces/http"
	"github.com/jhoicas/stock-inventory-api/pkg/config"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	ctx := context.Background()
	repos, closeRepos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer closeRepos()

	locker, closeLocker := storage.RunLocker(ctx, cfg.Redis, log)
	defer closeLocker()
	jobOpts := storage.JobOptions(cfg.Jobs, locker)

	productUC := usecase.NewProductUseCase(repos.Products)
	locationUC := usecase.NewLocationUseCase(repos.Locations)
	batchUC := usecase.NewBatchUseCase(repos.Batches, repos.Products, repos.Locations)
	movementUC := usecase.NewMovementUseCase(repos.Movements, repos.Batches, repos.Products, repos.Locations)
	alertUC := usecase.NewAlertUseCase(repos.Alerts, repos.Products, repos.Batches)

	// Exportación: PDF (maroto) y XLSX (excelize)
	alertExportUC := usecase.NewAlertExportUseCase(alertUC,
		infrapdf.NewAlertReportGenerator(), infraxlsx.NewAlertSheetGenerator())

	registerMovementUC := inventory.NewRegisterMovementUseCase(repos.Tx, repos.Batches, repos.Locations)
	replenishmentUC := inventory.NewReplenishmentUseCase(repos.Products)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.Products, repos.Locations, repos.Batches, repos.Alerts, cfg.Jobs.ExpiryWindow())

	stockJob := jobs.NewStockLevelRecalculator(repos.Products, repos.Batches, repos.Alerts, log, jobOpts)
	alertJob := jobs.NewAlertGenerator(repos.Products, repos.Batches, repos.Alerts, log, jobOpts)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // los jobs recorren todos los productos
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stock Inventory API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:      cfg.App.Name,
		ProductUC:        productUC,
		LocationUC:       locationUC,
		BatchUC:          batchUC,
		MovementUC:       movementUC,
		AlertUC:          alertUC,
		AlertExportUC:    alertExportUC,
		RegisterMovement: registerMovementUC,
		ReplenishmentUC:  replenishmentUC,
		DashboardUC:      dashboardUC,
		StockJob:         stockJob,
		AlertJob:         alertJob,
		Logger:           log,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
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
