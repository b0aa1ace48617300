package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/expense-tracker/internal/bootstrap"
	"github.com/GregMSThompson/expense-tracker/internal/config"
	"github.com/GregMSThompson/expense-tracker/internal/handlers"
	"github.com/GregMSThompson/expense-tracker/internal/normalize"
	"github.com/GregMSThompson/expense-tracker/internal/response"
	"github.com/GregMSThompson/expense-tracker/internal/router"
	"github.com/GregMSThompson/expense-tracker/internal/services"
	"github.com/GregMSThompson/expense-tracker/internal/store"
)

const shutdownTimeout = 30 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	if err != nil {
		_ = bs.Close()
	}
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	estore := store.NewExpenseStore(bs.Firestore)
	sstore := store.NewSettingsStore(bs.Firestore)

	// services
	extserv := services.NewExtractionService(bs.VertexAdapter)
	inserv := services.NewInsightService(bs.VertexAdapter)
	eserv := services.NewExpenseService(estore, extserv, normalize.New())
	rserv := services.NewReportService(estore)

	sserv := services.NewSettingsService(sstore)
	if bs.Redis != nil {
		sserv = services.NewSettingsService(store.NewCachedSettingsStore(sstore, bs.Redis, cfg.SettingsCacheTTL))
	}
	xserv := services.NewExportService(eserv, sserv, inserv)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.AuthEnabled = cfg.AuthEnabled
	deps.AllowedOrigins = cfg.AllowedOrigins
	deps.StaticDir = cfg.StaticDir
	deps.ExpenseSvc = eserv
	deps.ReportSvc = rserv
	deps.SettingsSvc = sserv
	deps.ExportSvc = xserv

	// router
	r := router.NewRouter(deps, router.Options{RequestTimeout: cfg.RequestTimeout})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		bs.Log.Info("shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Error("server shutdown error", "error", err)
		}
	}()

	bs.Log.Info("server starting", "port", cfg.Port, "auth", cfg.AuthEnabled, "cache", bs.Redis != nil)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server start failed", err, bs.Log)
	}
	bs.Log.Info("server stopped")
}
