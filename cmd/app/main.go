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

	"mekina/cmd"
	"mekina/internal/logging"
)

const shutdownTimeout = 30 * time.Second

func main() {
	fallbackLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	configs, err := cmd.LoadConfig()
	if err != nil {
		fallbackLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.New(os.Stdout, configs.LogLevel, configs.LogFormat)

	ctx := context.Background()
	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		logger.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	e, err := app.NewHTTPServer(ctx)
	if err != nil {
		logger.Error("failed to initialize http server", "error", err)
		closeApp(app, logger)
		os.Exit(1)
	}

	jobManager := app.NewJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		closeApp(app, logger)
		os.Exit(1)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", configs.HTTPAddr())
		serverErr <- e.Start(configs.HTTPAddr())
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			jobManager.StopAll()
			closeApp(app, logger)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	jobManager.StopAll()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
	closeApp(app, logger)
}

func closeApp(app *cmd.CompositionRoot, logger *slog.Logger) {
	if err := app.Close(); err != nil {
		logger.Error("failed to release resources", "error", err)
	}
}
