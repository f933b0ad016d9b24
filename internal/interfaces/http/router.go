package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	appanalytics "github.com/jhoicas/stock-inventory-api/internal/application/analytics"
	"github.com/jhoicas/stock-inventory-api/internal/application/inventory"
	"github.com/jhoicas/stock-inventory-api/internal/application/usecase"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

// Roles del proveedor de auth con acceso a /api.
var apiRoles = []string{"authenticated", "service_role"}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName      string
	ProductUC        *usecase.ProductUseCase
	LocationUC       *usecase.LocationUseCase
	BatchUC          *usecase.BatchUseCase
	MovementUC       *usecase.MovementUseCase
	AlertUC          *usecase.AlertUseCase
	AlertExportUC    *usecase.AlertExportUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	ReplenishmentUC  *inventory.ReplenishmentUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	StockJob         StockLevelChecker
	AlertJob         AlertRunner
	Logger           *logger.Logger
	JWTSecret        string
	JWTIssuer        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Jobs: responden su propio CORS y preflight, sin middleware.
	jobHandler := NewJobHandler(deps.StockJob, deps.AlertJob, deps.Logger)
	functions := app.Group("/functions")
	functions.All("/check-stock-levels", jobHandler.CheckStockLevels)
	functions.All("/generate-alerts", jobHandler.GenerateAlerts)

	api := app.Group("/api", cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireRole(apiRoles...))

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Locations
	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Put("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)

	// Batches
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)

	// Movements
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.MovementUC, deps.ReplenishmentUC)
	movements := protected.Group("/movements")
	movements.Post("/", inventoryHandler.RegisterMovement)
	movements.Get("/", inventoryHandler.ListMovements)
	protected.Get("/inventory/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Alerts (export antes de /:id)
	alerts := protected.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC, deps.AlertExportUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/export", alertHandler.Export)
	alerts.Get("/:id", alertHandler.GetByID)
	alerts.Post("/:id/resolve", alertHandler.Resolve)
	alerts.Delete("/:id", alertHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", dashboardHandler.GetSummary)
}
