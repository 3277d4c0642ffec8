package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"garage-reconciliation/internal/api"
	"garage-reconciliation/internal/config"
	"garage-reconciliation/internal/logging"
	"garage-reconciliation/internal/matcher"
	"garage-reconciliation/internal/usecase"
)

func main() {
	cfg, err := config.LoadOrEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewComponentLogger(cfg.Logging, os.Stderr, "server")

	engineCfg, err := cfg.Matching.EngineConfig()
	if err != nil {
		logger.Error("invalid matching config", "error", err)
		os.Exit(1)
	}

	engine := matcher.NewEngine(engineCfg, logging.NewComponentLogger(cfg.Logging, os.Stderr, "matcher"))
	// The API only reconciles in-memory records, so no repository is wired.
	reconciler := usecase.NewReconciliationUseCase(nil, engine, logging.NewComponentLogger(cfg.Logging, os.Stderr, "usecase"))
	router := api.NewRouter(reconciler, logging.NewComponentLogger(cfg.Logging, os.Stderr, "api"))

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("listening", "addr", "http://localhost:"+cfg.Server.Port,
			"endpoints", "GET /health, POST /api/v1/reconcile, POST /api/v1/expected-dates")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}
