package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wpo70/RateEdge/internal/adapters/cache"
	"github.com/wpo70/RateEdge/internal/adapters/postgres"
	"github.com/wpo70/RateEdge/internal/alert"
	alerthandler "github.com/wpo70/RateEdge/internal/alert/handler"
	"github.com/wpo70/RateEdge/internal/api"
	"github.com/wpo70/RateEdge/internal/config"
	"github.com/wpo70/RateEdge/internal/platform/db"
	httpserver "github.com/wpo70/RateEdge/internal/platform/http"
	"github.com/wpo70/RateEdge/internal/rate"
	ratehandler "github.com/wpo70/RateEdge/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	// Logger
	logrus.SetOutput(os.Stdout)
	if parsedLvl, parseErr := logrus.ParseLevel(appCfg.Logging.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Bounded context for startup operations (DB connect, migrations)
	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Migrations first, then the pool the repositories share
	if err = db.RunMigrations(startupCtx, appCfg.DbServer.GetConnectionStr()); err != nil {
		logrus.WithError(err).Error("Error applying migrations")
		return err
	}
	logrus.Info("✅ Migrations applied")

	pool, err := db.CreatePoolAndPing(startupCtx, appCfg.DbServer)
	if err != nil {
		logrus.WithError(err).Error("Error connecting to db")
		return err
	}
	defer pool.Close()
	logrus.Info("✅ Postgres connection successful")

	// Cache
	marketCache, err := cache.NewMarketCache(
		appCfg.Cache.MaxItems,
		time.Duration(appCfg.Cache.TTLSeconds)*time.Second,
	)
	if err != nil {
		logrus.WithError(err).Error("Error creating market cache")
		return err
	}
	defer marketCache.Close()

	// Repositories
	rateRepo := postgres.NewRateRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)

	// Services
	rateValidator := rate.NewValidator()
	rateService := rate.NewService(rateRepo, marketCache)
	alertService := alert.NewService(alertRepo, rateValidator)

	// Alert scheduler
	scheduler := alert.NewScheduler(alertRepo, rateRepo,
		time.Duration(appCfg.Scheduler.AlertCheckIntervalSec)*time.Second)
	// Ensure scheduler stops before DB pool closes
	defer func() {
		if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
		}
	}()
	if startErr := scheduler.Start(ctx); startErr != nil {
		logrus.WithError(startErr).Error("Failed to start scheduler")
		return startErr
	}
	logrus.Info("✅ Alert scheduler activation successful")

	// Handlers and router
	rateHandler := ratehandler.NewRateHandler(rateValidator, rateService)
	alertHandler := alerthandler.NewAlertHandler(alertService)
	router := api.NewRouter(rateHandler, alertHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}
