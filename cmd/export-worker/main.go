package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alfaizmac/kcc-budget-performance/internal/amqp"
	"github.com/alfaizmac/kcc-budget-performance/internal/backend"
	"github.com/alfaizmac/kcc-budget-performance/internal/cli"
	"github.com/alfaizmac/kcc-budget-performance/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting export-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	// The worker reads snapshots from the same backend budgetd writes to.
	factory := backend.NewFactory(logger)
	be, err := factory.Create(cfg)
	if err != nil {
		logger.Error("Failed to initialize snapshot backend", "error", err, "backend", cfg.SnapshotBackend)
		os.Exit(1)
	}
	if be.Cleanup != nil {
		defer func() {
			if err := be.Cleanup(); err != nil {
				logger.Error("Snapshot backend cleanup error", "error", err)
			}
		}()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer func() { _ = amqpClient.Close() }()

	exporter := worker.NewExportWorker(be.Snapshots, cfg.ExportDir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming dataset events", "queue", cfg.AMQPQueue, "export_dir", cfg.ExportDir)
	if err := amqpClient.ConsumeDatasetLoaded(ctx, func(msg *amqp.DatasetLoadedMessage) error {
		return exporter.HandleDatasetLoaded(ctx, msg)
	}); err != nil && err != context.Canceled {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Export worker stopped gracefully")
}
