package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alfaizmac/kcc-budget-performance/internal/amqp"
	"github.com/alfaizmac/kcc-budget-performance/internal/log"
	"github.com/alfaizmac/kcc-budget-performance/internal/storage"
	"github.com/alfaizmac/kcc-budget-performance/internal/store"
)

// ErrEmptyInput rejects a load carrying no headers or no rows.
var ErrEmptyInput = errors.New("dataset has no headers or rows")

// DatasetService orchestrates dataset loads across the in-memory store,
// snapshot persistence and event publishing.
type DatasetService struct {
	store      *store.Store
	snapshots  storage.SnapshotRepository
	amqpClient *amqp.Client
}

func NewDatasetService(st *store.Store, snapshots storage.SnapshotRepository, amqpClient *amqp.Client) *DatasetService {
	return &DatasetService{
		store:      st,
		snapshots:  snapshots,
		amqpClient: amqpClient,
	}
}

// Load replaces the current dataset, persists the snapshot and
// publishes a dataset-loaded event. The snapshot write happens after
// the in-memory replace and reflects the most recent load; snapshot and
// publish failures are logged, not fatal, since the dataset itself is
// already live.
func (s *DatasetService) Load(ctx context.Context, headers []string, rows [][]string, source string) (uint64, error) {
	if len(headers) == 0 || len(rows) == 0 {
		return 0, ErrEmptyInput
	}

	version := s.store.Replace(headers, rows)

	if s.snapshots != nil {
		if err := s.snapshots.SaveSnapshot(ctx, headers, rows); err != nil {
			slog.ErrorContext(ctx, "Failed to persist snapshot",
				log.FieldDatasetVersion, version, log.FieldError, err)
		}
	}

	if err := s.publishLoaded(ctx, version, source, len(rows), len(headers)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish dataset event",
			log.FieldDatasetVersion, version, log.FieldError, err)
	}

	slog.InfoContext(ctx, "Dataset loaded",
		log.FieldDatasetVersion, version,
		log.FieldSource, source,
		log.FieldRowCount, len(rows),
		log.FieldColumnCount, len(headers),
		"ous", len(s.store.OUs()))
	return version, nil
}

// Restore pulls the persisted snapshot into the store at startup. A
// missing snapshot just means starting empty.
func (s *DatasetService) Restore(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}
	headers, rows, err := s.snapshots.LoadSnapshot(ctx)
	if errors.Is(err, storage.ErrNoSnapshot) {
		slog.InfoContext(ctx, "No snapshot to restore, starting empty")
		return nil
	}
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	version := s.store.Replace(headers, rows)
	slog.InfoContext(ctx, "Snapshot restored",
		log.FieldDatasetVersion, version,
		log.FieldRowCount, len(rows),
		log.FieldColumnCount, len(headers))
	return nil
}

func (s *DatasetService) publishLoaded(ctx context.Context, version uint64, source string, rowCount, columnCount int) error {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping dataset event")
		return nil
	}
	msg := amqp.NewDatasetLoadedMessage(version, source, rowCount, columnCount)
	return s.amqpClient.PublishDatasetLoaded(ctx, msg)
}

// Close releases the service's resources.
func (s *DatasetService) Close() error {
	var firstErr error
	if s.snapshots != nil {
		if err := s.snapshots.Close(); err != nil {
			firstErr = err
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
