// Package store holds the currently loaded dataset together with its
// resolved column lookup table and derived OU set. The dataset is
// replace-only: Replace swaps everything under one lock so no reader
// ever observes headers from one load and rows from another.
package store

import (
	"sync"

	"github.com/alfaizmac/kcc-budget-performance/internal/core"
)

type Store struct {
	mu      sync.RWMutex
	dataset core.Dataset
	columns core.Columns
	ous     []string
	version uint64
}

func New() *Store {
	// An empty store reports every column as unresolved, not index 0.
	return &Store{columns: core.ResolveColumns(nil)}
}

// Replace atomically installs a new dataset, recomputing the column
// lookup table and the unique-OU set. It returns the new dataset
// version, a counter consumers can use to key derived caches.
func (s *Store) Replace(headers []string, rows [][]string) uint64 {
	dataset := core.Dataset{
		Headers: append([]string(nil), headers...),
		Rows:    copyRows(rows),
	}
	columns := core.ResolveColumns(dataset.Headers)
	ous := core.UniqueOUs(dataset, columns)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataset = dataset
	s.columns = columns
	s.ous = ous
	s.version++
	return s.version
}

// Snapshot returns the current dataset and its column lookup table.
// The returned dataset shares no mutable state with future loads.
func (s *Store) Snapshot() (core.Dataset, core.Columns) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset, s.columns
}

// OUs returns the unique OU values of the current dataset in
// first-appearance order.
func (s *Store) OUs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ous...)
}

// Version returns the current dataset version; zero means nothing has
// been loaded.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Empty reports whether a dataset has been loaded.
func (s *Store) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset.Empty()
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
