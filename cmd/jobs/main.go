// Command jobs ejecuta una vez el recálculo de stock y la generación de alertas.
// Pensado para un disparador programado (cron):
//
//	jobs                    # ambos, en orden
//	jobs -only=stock        # solo recálculo
//	jobs -only=alerts       # solo alertas
//	jobs -product=<id>      # recálculo de un producto
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/jhoicas/stock-inventory-api/internal/application/jobs"
	"github.com/jhoicas/stock-inventory-api/internal/infrastructure/storage"
	"github.com/jhoicas/stock-inventory-api/pkg/config"
	"github.com/jhoicas/stock-inventory-api/pkg/logger"
)

func main() {
	only := flag.String("only", "", "stock | alerts (vacío = ambos)")
	productID := flag.String("product", "", "recalcular solo este producto")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name + "-jobs"})

	if *only != "" && *only != "stock" && *only != "alerts" {
		log.Fatal().Str("only", *only).Msg("valor inválido para -only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer closeRepos()

	locker, closeLocker := storage.RunLocker(ctx, cfg.Redis, log)
	defer closeLocker()
	opts := storage.JobOptions(cfg.Jobs, locker)

	exit := 0
	// El recálculo va primero para que la pasada de stock bajo lea totales frescos.
	if *only == "" || *only == "stock" {
		res, err := jobs.NewStockLevelRecalculator(repos.Products, repos.Batches, repos.Alerts, log, opts).Run(ctx, *productID)
		if err != nil {
			log.Error().Err(err).Msg("check-stock-levels falló")
			exit = 1
		} else {
			log.Info().
				Int("products_checked", res.ProductsChecked).
				Int("low_stock_products", res.LowStockProducts).
				Int("skipped", res.Skipped).
				Msg("check-stock-levels terminado")
		}
	}
	if *only == "" || *only == "alerts" {
		res, err := jobs.NewAlertGenerator(repos.Products, repos.Batches, repos.Alerts, log, opts).Run(ctx)
		if err != nil {
			log.Error().Err(err).Msg("generate-alerts falló")
			exit = 1
		} else {
			log.Info().
				Int("alerts_generated", res.AlertsGenerated).
				Int("expiry_alerts", res.ExpiryAlerts).
				Int("stock_alerts", res.StockAlerts).
				Msg("generate-alerts terminado")
		}
	}

	if exit != 0 {
		closeLocker()
		closeRepos()
		os.Exit(exit)
	}
}
