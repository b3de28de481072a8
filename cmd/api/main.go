package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-swap-service/internal/app"
	"github.com/spec-kit/shift-swap-service/internal/config"
	"github.com/spec-kit/shift-swap-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	svc, err := app.New(cfg, logger, nil)
	if err != nil {
		logger.Fatal("failed to assemble service", zap.Error(err))
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := svc.Run(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("shut down cleanly")
}
