package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"compras/internal/amqp"
	"compras/internal/backend"
	"compras/internal/config"
	applog "compras/internal/log"
	"compras/internal/worker"
)

func main() {
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	logger.Info("starting compras-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("configuration validation failed", applog.FieldError, err.Error())
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the alert worker")
		os.Exit(1)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("invalid backend configuration", applog.FieldError, err.Error())
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreateSource(context.Background(), backendCfg)
	if err != nil {
		logger.Error("failed to initialize data source", applog.FieldError, err.Error())
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		logger.Error("failed to initialize AMQP client", applog.FieldError, err.Error())
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("shutdown signal received", "signal", sig.String())
		cancel()
	}()

	w := worker.NewAlertWorker(result.Source, amqpClient, cfg.AlertThreshold, cfg.RefreshInterval, logger)

	logger.Info("worker running",
		"interval", cfg.RefreshInterval.String(),
		"threshold", cfg.AlertThreshold,
		"backend", cfg.DataBackend,
	)
	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped with error", applog.FieldError, err.Error())
		os.Exit(1)
	}

	logger.Info("worker stopped gracefully")
}
