package google

import (
	"context"
	"testing"
)

func TestToStrings(t *testing.T) {
	row := []interface{}{"OU", float64(100), 2.5, true, nil}
	got := toStrings(row)
	want := []string{"OU", "100", "2.5", "true", ""}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("toStrings[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Error("expected error without GOOGLE_SPREADSHEET_ID")
	}
}
