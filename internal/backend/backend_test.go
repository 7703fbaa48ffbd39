package backend

import (
	"path/filepath"
	"testing"

	"github.com/alfaizmac/kcc-budget-performance/internal/config"
)

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.Create(&config.Config{SnapshotBackend: "memory"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Snapshots == nil {
		t.Fatal("expected a repository")
	}
	if res.Cleanup != nil {
		t.Fatal("memory backend should not need cleanup")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	f := NewFactory(nil)

	res, err := f.Create(&config.Config{
		SnapshotBackend: "sqlite",
		SQLiteDBPath:    filepath.Join(t.TempDir(), "budget.db"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.Cleanup == nil {
		t.Fatal("sqlite backend should provide cleanup")
	}
	if err := res.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
}

func TestCreateRejectsUnknownBackend(t *testing.T) {
	f := NewFactory(nil)

	if _, err := f.Create(&config.Config{SnapshotBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := f.Create(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestTypeValidity(t *testing.T) {
	for _, typ := range Types() {
		if !typ.IsValid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	if Type("csv").IsValid() {
		t.Fatal("csv should not be a valid backend type")
	}
}
