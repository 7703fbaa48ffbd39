package http

import (
	"net/http"

	"github.com/alfaizmac/kcc-budget-performance/internal/cache"
	"github.com/alfaizmac/kcc-budget-performance/internal/core"
)

// seriesResponse is the payload backing the monthly chart.
type seriesResponse struct {
	Center string            `json:"center"`
	Points []core.MonthPoint `json:"points"`
}

// handleSeries returns the twelve-month budget/actual/variance series
// for one center. An unknown center yields twelve zero points, which the
// chart renders as a flat line rather than an error.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	center := queryParam(r, "center")
	if center == "" {
		writeJSON(w, r, http.StatusBadRequest, map[string]string{"error": "center is required"})
		return
	}

	key := cache.Key(s.store.Version(), "series", center)
	points, ok := s.seriesCache.Get(key)
	if !ok {
		d, cols := s.store.Snapshot()
		points = core.MonthlySeries(d, cols, center)
		s.seriesCache.Set(key, points)
	}

	writeJSON(w, r, http.StatusOK, seriesResponse{Center: center, Points: points})
}
