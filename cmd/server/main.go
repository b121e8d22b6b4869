package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/app"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/config"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Optional .env; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.Debug); err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", zap.Error(err))
	}

	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	logger.Info("interview platform started", zap.String("port", cfg.AppPort))

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		10*time.Second,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("interview platform stopped cleanly")
}
