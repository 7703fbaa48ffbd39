package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alfaizmac/kcc-budget-performance/internal/amqp"
	"github.com/alfaizmac/kcc-budget-performance/internal/backend"
	"github.com/alfaizmac/kcc-budget-performance/internal/cli"
	apphttp "github.com/alfaizmac/kcc-budget-performance/internal/http"
	"github.com/alfaizmac/kcc-budget-performance/internal/ingest"
	gsheet "github.com/alfaizmac/kcc-budget-performance/internal/ingest/google"
	applog "github.com/alfaizmac/kcc-budget-performance/internal/log"
	"github.com/alfaizmac/kcc-budget-performance/internal/services"
	"github.com/alfaizmac/kcc-budget-performance/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	// Snapshot persistence backend
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

	// AMQP client for dataset-loaded events (optional)
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
			amqpClient = nil
		} else {
			logger.Info("Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	st := store.New()
	datasets := services.NewDatasetService(st, be.Snapshots, amqpClient)
	defer func() {
		if err := datasets.Close(); err != nil {
			logger.Error("Dataset service close error", "error", err)
		}
	}()

	// Bring back the last persisted dataset, if any.
	if err := datasets.Restore(context.Background()); err != nil {
		logger.Error("Snapshot restore failed, starting empty", "error", err)
	}

	// Remote spreadsheet fetch (optional)
	var fetcher ingest.Fetcher
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Warn("Failed to initialize Google Sheets client, remote fetch disabled", "error", err)
		} else {
			fetcher = sheetsClient
			logger.Info("Remote fetch enabled", applog.FieldSpreadsheetID, cfg.GoogleSpreadsheetID)
		}
	}

	srv := apphttp.NewServer(":"+cfg.Port, st, datasets, fetcher)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting budgetd server", "port", cfg.Port, "backend", cfg.SnapshotBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
