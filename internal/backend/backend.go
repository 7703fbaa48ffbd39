// Package backend selects and constructs the snapshot persistence backend.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/alfaizmac/kcc-budget-performance/internal/config"
	"github.com/alfaizmac/kcc-budget-performance/internal/storage"
)

// Type identifies a snapshot backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string {
	return string(t)
}

// IsValid reports whether t names a known backend.
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Types returns every valid backend type.
func Types() []Type {
	return []Type{SQLiteBackend, MemoryBackend}
}

// Result holds a constructed repository and its cleanup function. Cleanup may
// be nil for backends without resources to release.
type Result struct {
	Snapshots storage.SnapshotRepository
	Cleanup   func() error
}

// Factory builds snapshot repositories from application config.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create constructs the backend named by cfg.SnapshotBackend.
func (f *Factory) Create(cfg *config.Config) (*Result, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app config is nil")
	}

	t := Type(cfg.SnapshotBackend)
	switch t {
	case SQLiteBackend:
		return f.createSQLite(cfg)
	case MemoryBackend:
		f.logger.Info("Initialized memory snapshot backend")
		return &Result{Snapshots: storage.NewMemoryRepository()}, nil
	default:
		return nil, fmt.Errorf("invalid snapshot backend: %s", cfg.SnapshotBackend)
	}
}

func (f *Factory) createSQLite(cfg *config.Config) (*Result, error) {
	if cfg.SQLiteDBPath == "" {
		return nil, fmt.Errorf("SQLite database path is required for sqlite backend")
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}

	f.logger.Info("Initialized SQLite snapshot backend", "db_path", cfg.SQLiteDBPath)

	return &Result{Snapshots: repo, Cleanup: repo.Close}, nil
}
