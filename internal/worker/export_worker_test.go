package worker

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/alfaizmac/kcc-budget-performance/internal/amqp"
	"github.com/alfaizmac/kcc-budget-performance/internal/storage"
)

func TestHandleDatasetLoaded(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	repo := storage.NewMemoryRepository()

	headers := []string{"OU", "Center", "January_Actual"}
	rows := [][]string{{"A", "C1", "100"}}
	if err := repo.SaveSnapshot(ctx, headers, rows); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	w := NewExportWorker(repo, dir)
	msg := amqp.NewDatasetLoadedMessage(7, "test", 1, 3)

	if err := w.HandleDatasetLoaded(ctx, msg); err != nil {
		t.Fatalf("HandleDatasetLoaded: %v", err)
	}

	path := filepath.Join(dir, "budget_v7.xlsx")
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	all, err := f.GetRows("Budget")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("export rows = %d, want 2", len(all))
	}
	if !reflect.DeepEqual(all[0], headers) {
		t.Errorf("header row = %v, want %v", all[0], headers)
	}
	if !reflect.DeepEqual(all[1], rows[0]) {
		t.Errorf("data row = %v, want %v", all[1], rows[0])
	}

	t.Run("redelivery is a no-op", func(t *testing.T) {
		before, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat export: %v", err)
		}
		if err := w.HandleDatasetLoaded(ctx, msg); err != nil {
			t.Fatalf("HandleDatasetLoaded redelivery: %v", err)
		}
		after, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat export: %v", err)
		}
		if !after.ModTime().Equal(before.ModTime()) {
			t.Error("redelivered event rewrote the export")
		}
	})
}

func TestHandleDatasetLoadedWithoutSnapshot(t *testing.T) {
	w := NewExportWorker(storage.NewMemoryRepository(), t.TempDir())
	msg := amqp.NewDatasetLoadedMessage(1, "test", 0, 0)

	if err := w.HandleDatasetLoaded(context.Background(), msg); err != nil {
		t.Errorf("missing snapshot should not error: %v", err)
	}
}
