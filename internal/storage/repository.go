// Package storage persists dataset snapshots. The snapshot is the sole
// durable state: the pair (headers, rows), written as two keyed
// JSON-serialized entries in a single transaction and restored together
// at startup. Absence of either entry means "start empty".
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/alfaizmac/kcc-budget-performance/internal/log"
)

// Snapshot entry keys.
const (
	keyHeaders = "headers"
	keyRows    = "rows"
)

// ErrNoSnapshot reports that no complete snapshot is stored.
var ErrNoSnapshot = errors.New("no snapshot stored")

// SnapshotRepository is the persistence port for dataset snapshots.
type SnapshotRepository interface {
	SaveSnapshot(ctx context.Context, headers []string, rows [][]string) error
	LoadSnapshot(ctx context.Context) (headers []string, rows [][]string, err error)
	Close() error
}

type SQLiteRepository struct {
	db     *sql.DB
	logger *log.Logger
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:     db,
		logger: log.ForComponent(log.ComponentStorage),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveSnapshot writes both snapshot entries in one transaction so a
// restore never observes headers from one load and rows from another.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, headers []string, rows [][]string) error {
	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}
	rowsJSON, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("marshal rows: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	const upsert = `
		INSERT INTO snapshot_entries (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := tx.ExecContext(ctx, upsert, keyHeaders, string(headersJSON)); err != nil {
		return fmt.Errorf("save headers entry: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyRows, string(rowsJSON)); err != nil {
		return fmt.Errorf("save rows entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	r.logger.InfoContext(ctx, "Snapshot saved",
		log.FieldColumnCount, len(headers),
		log.FieldRowCount, len(rows))
	return nil
}

// LoadSnapshot restores the persisted (headers, rows) pair. A missing
// or partial snapshot yields ErrNoSnapshot, never partial data.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) ([]string, [][]string, error) {
	headersJSON, ok, err := r.entry(ctx, keyHeaders)
	if err != nil {
		return nil, nil, err
	}
	rowsJSON, ok2, err := r.entry(ctx, keyRows)
	if err != nil {
		return nil, nil, err
	}
	if !ok || !ok2 {
		return nil, nil, ErrNoSnapshot
	}

	var headers []string
	if err := json.Unmarshal([]byte(headersJSON), &headers); err != nil {
		return nil, nil, fmt.Errorf("unmarshal headers entry: %w", err)
	}
	var rows [][]string
	if err := json.Unmarshal([]byte(rowsJSON), &rows); err != nil {
		return nil, nil, fmt.Errorf("unmarshal rows entry: %w", err)
	}
	return headers, rows, nil
}

func (r *SQLiteRepository) entry(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM snapshot_entries WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read snapshot entry %q: %w", key, err)
	}
	return value, true, nil
}
