package store

import (
	"reflect"
	"testing"

	"github.com/alfaizmac/kcc-budget-performance/internal/core"
)

func TestNewStoreColumnsUnresolved(t *testing.T) {
	s := New()
	_, cols := s.Snapshot()
	if cols.HasGrouping() {
		t.Errorf("empty store reports grouping columns: %+v", cols)
	}
	if cols.OU != core.Unresolved || cols.Center != core.Unresolved {
		t.Errorf("empty store columns should be unresolved: %+v", cols)
	}
}

func TestReplace(t *testing.T) {
	s := New()
	if !s.Empty() {
		t.Fatal("new store should be empty")
	}

	headers := []string{"OU", "Center", "Sub-Account"}
	rows := [][]string{{"A", "C1", "Null"}, {"B", "C2", "X"}}

	v := s.Replace(headers, rows)
	if v != 1 {
		t.Errorf("version after first load = %d, want 1", v)
	}

	d, cols := s.Snapshot()
	if !reflect.DeepEqual(d.Headers, headers) {
		t.Errorf("Headers = %v, want %v", d.Headers, headers)
	}
	if !reflect.DeepEqual(d.Rows, rows) {
		t.Errorf("Rows = %v, want %v", d.Rows, rows)
	}
	if cols.OU != 0 || cols.Center != 1 {
		t.Errorf("columns not resolved on load: %+v", cols)
	}
	if got, want := s.OUs(), []string{"A", "B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("OUs = %v, want %v", got, want)
	}
}

func TestReplaceSupersedes(t *testing.T) {
	s := New()
	s.Replace([]string{"OU"}, [][]string{{"A"}})
	v := s.Replace([]string{"OU", "Center"}, [][]string{{"B", "C9"}})

	if v != 2 {
		t.Errorf("version = %d, want 2", v)
	}
	if got, want := s.OUs(), []string{"B"}; !reflect.DeepEqual(got, want) {
		t.Errorf("OUs after reload = %v, want %v", got, want)
	}
	d, cols := s.Snapshot()
	if len(d.Rows) != 1 || cols.Center != 1 {
		t.Errorf("stale dataset after reload: %+v %+v", d, cols)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	s := New()
	rows := [][]string{{"A", "C1"}}
	s.Replace([]string{"OU", "Center"}, rows)

	// Mutating the caller's slice must not reach the store.
	rows[0][0] = "mutated"
	d, _ := s.Snapshot()
	if d.Rows[0][0] != "A" {
		t.Errorf("store shares row storage with caller: %q", d.Rows[0][0])
	}
}
