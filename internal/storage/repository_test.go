package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "budget.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()

	t.Run("empty database has no snapshot", func(t *testing.T) {
		if _, _, err := repo.LoadSnapshot(ctx); !errors.Is(err, ErrNoSnapshot) {
			t.Errorf("LoadSnapshot on empty db: err = %v, want ErrNoSnapshot", err)
		}
	})

	headers := []string{"OU", "Center", "January_Actual"}
	rows := [][]string{{"A", "C1", "100"}, {"B", "C2", "1.5"}}

	if err := repo.SaveSnapshot(ctx, headers, rows); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	gotHeaders, gotRows, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(gotHeaders, headers) {
		t.Errorf("headers = %v, want %v", gotHeaders, headers)
	}
	if !reflect.DeepEqual(gotRows, rows) {
		t.Errorf("rows = %v, want %v", gotRows, rows)
	}

	t.Run("second save wins", func(t *testing.T) {
		headers2 := []string{"OU"}
		rows2 := [][]string{{"Z"}}
		if err := repo.SaveSnapshot(ctx, headers2, rows2); err != nil {
			t.Fatalf("SaveSnapshot: %v", err)
		}
		gotHeaders, gotRows, err := repo.LoadSnapshot(ctx)
		if err != nil {
			t.Fatalf("LoadSnapshot: %v", err)
		}
		if !reflect.DeepEqual(gotHeaders, headers2) || !reflect.DeepEqual(gotRows, rows2) {
			t.Errorf("snapshot = %v %v, want %v %v", gotHeaders, gotRows, headers2, rows2)
		}
	})
}

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, _, err := repo.LoadSnapshot(ctx); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("LoadSnapshot before save: err = %v, want ErrNoSnapshot", err)
	}

	headers := []string{"OU", "Center"}
	rows := [][]string{{"A", "C1"}}
	if err := repo.SaveSnapshot(ctx, headers, rows); err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}

	gotHeaders, gotRows, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if !reflect.DeepEqual(gotHeaders, headers) || !reflect.DeepEqual(gotRows, rows) {
		t.Errorf("snapshot = %v %v, want %v %v", gotHeaders, gotRows, headers, rows)
	}

	// The repository must not share row storage with the caller.
	rows[0][0] = "mutated"
	gotHeaders, gotRows, _ = repo.LoadSnapshot(ctx)
	if gotRows[0][0] != "A" {
		t.Errorf("memory repository shares storage with caller: %q", gotRows[0][0])
	}
}
