package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/ovolab/eggcost/internal/config"
	"github.com/ovolab/eggcost/internal/repository/mongodb"
	sheetsrepo "github.com/ovolab/eggcost/internal/repository/sheets"
	"github.com/ovolab/eggcost/internal/scheduler"
	"github.com/ovolab/eggcost/internal/server/handlers"
	"github.com/ovolab/eggcost/internal/server/router"
	exportsvc "github.com/ovolab/eggcost/internal/service/export"
	notifysvc "github.com/ovolab/eggcost/internal/service/notify"
	"github.com/ovolab/eggcost/internal/store"
	"github.com/ovolab/eggcost/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewDocumentRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	costStore := store.New(mongoRepo, baseLogger.Named("store"))
	if err := costStore.SetProfitMargin(cfg.Pricing.DefaultProfitMargin); err != nil {
		baseLogger.Fatal("invalid default profit margin", zap.Error(err))
	}
	if err := costStore.SetEggQuantity(cfg.Pricing.DefaultEggQuantity); err != nil {
		baseLogger.Fatal("invalid default egg quantity", zap.Error(err))
	}
	if err := costStore.Load(context.Background()); err != nil {
		baseLogger.Fatal("failed to load cost collections", zap.Error(err))
	}

	// Spreadsheet export is optional; the service runs fine without it.
	var sheetsRepo sheetsrepo.Repository
	if cfg.Sheets.Enabled() {
		sheetsRepo, err = sheetsrepo.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		baseLogger.Info("spreadsheet export enabled")
	} else {
		baseLogger.Warn("sheets credentials missing, spreadsheet export disabled")
	}

	exporter := exportsvc.NewService(costStore, sheetsRepo, baseLogger.Named("svc.export"))

	var notifier notifysvc.Notifier
	if cfg.Notify.Enabled() {
		notifier = notifysvc.NewWebhookNotifier(cfg.Notify.WebhookURL)
		baseLogger.Info("snapshot webhook enabled")
	}

	sched := scheduler.New(cfg.Snapshot.CronSchedule, costStore, mongoRepo, exporter, notifier,
		cfg.Sheets.ReportRange, cfg.Sheets.Enabled(), baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	costHandler := handlers.NewCostHandler(costStore, baseLogger.Named("handlers.cost"))
	reportHandler := handlers.NewReportHandler(exporter, cfg.Sheets.ReportRange, cfg.Sheets.Enabled(), baseLogger.Named("handlers.report"))
	engine := router.New(costHandler, reportHandler, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
