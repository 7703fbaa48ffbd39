package storage

import (
	"context"
	"sync"
)

// MemoryRepository keeps the snapshot in process memory. It backs the
// "memory" backend and tests; contents do not survive a restart.
type MemoryRepository struct {
	mu      sync.Mutex
	headers []string
	rows    [][]string
	stored  bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) SaveSnapshot(_ context.Context, headers []string, rows [][]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.headers = append([]string(nil), headers...)
	r.rows = make([][]string, len(rows))
	for i, row := range rows {
		r.rows[i] = append([]string(nil), row...)
	}
	r.stored = true
	return nil
}

func (r *MemoryRepository) LoadSnapshot(_ context.Context) ([]string, [][]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.stored {
		return nil, nil, ErrNoSnapshot
	}
	headers := append([]string(nil), r.headers...)
	rows := make([][]string, len(r.rows))
	for i, row := range r.rows {
		rows[i] = append([]string(nil), row...)
	}
	return headers, rows, nil
}

func (r *MemoryRepository) Close() error { return nil }
