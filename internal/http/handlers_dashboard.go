package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alfaizmac/kcc-budget-performance/internal/cache"
	"github.com/alfaizmac/kcc-budget-performance/internal/core"
	"github.com/alfaizmac/kcc-budget-performance/internal/log"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	d, _ := s.store.Snapshot()
	data := struct {
		HasData      bool
		RowCount     int
		OUs          []string
		FetchEnabled bool
	}{
		HasData:      !d.Empty(),
		RowCount:     len(d.Rows),
		OUs:          s.store.OUs(),
		FetchEnabled: s.fetcher != nil,
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleOUs renders the operating-unit selector partial.
func (s *Server) handleOUs(w http.ResponseWriter, r *http.Request) {
	data := struct {
		OUs      []string
		Selected string
	}{
		OUs:      s.store.OUs(),
		Selected: queryParam(r, "ou"),
	}
	s.renderPartial(w, r, "ou_pills.html", data)
}

// handleCenters renders the center summary table for one operating unit.
// q narrows rows to centers containing the term, case-insensitively.
// Requests marked changed=ou come from the unit selector; they trigger a
// client-side reset of the monthly chart and category modal, which would
// otherwise keep showing the previous unit's centers.
func (s *Server) handleCenters(w http.ResponseWriter, r *http.Request) {
	ou := queryParam(r, "ou")
	q := queryParam(r, "q")

	data := struct {
		OU          string
		Query       string
		Unavailable bool
		Centers     []core.CenterSummary
	}{OU: ou, Query: q}

	if ou != "" {
		_, cols := s.store.Snapshot()
		if !cols.HasGrouping() {
			data.Unavailable = true
		} else {
			summaries := s.centersForOU(ou)
			if q == "" {
				data.Centers = summaries
			} else {
				needle := strings.ToLower(q)
				for _, c := range summaries {
					if strings.Contains(strings.ToLower(c.Center), needle) {
						data.Centers = append(data.Centers, c)
					}
				}
			}
		}
	}

	if queryParam(r, "changed") == "ou" {
		w.Header().Set("HX-Trigger", "drilldown:reset")
	}
	s.renderPartial(w, r, "center_table.html", data)
}

// centersForOU returns the per-center summaries for ou, cached per
// dataset version.
func (s *Server) centersForOU(ou string) []core.CenterSummary {
	key := cache.Key(s.store.Version(), "centers", ou)
	if summaries, ok := s.centersCache.Get(key); ok {
		return summaries
	}

	d, cols := s.store.Snapshot()
	summaries := core.SummarizeCenters(d, cols, ou)
	s.centersCache.Set(key, summaries)
	return summaries
}

// handleCategories renders the expense category totals for one center.
// Missing filters and a dataset without category columns are empty
// states, not errors.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	ou := queryParam(r, "ou")
	center := queryParam(r, "center")

	d, cols := s.store.Snapshot()
	totals, err := core.SummarizeCategories(d, cols, ou, center)

	data := struct {
		OU        string
		Center    string
		Available bool
		Message   string
		Totals    core.CategoryTotals
	}{OU: ou, Center: center}

	switch {
	case err == nil:
		data.Available = true
		data.Totals = totals
	case errors.Is(err, core.ErrNoSelection):
		data.Message = "Select an operating unit and a center to see category totals."
	case errors.Is(err, core.ErrEmptyDataset):
		data.Message = "No budget data loaded yet."
	case errors.Is(err, core.ErrColumnsMissing):
		data.Message = "The loaded spreadsheet has no category columns."
	default:
		slog.ErrorContext(r.Context(), "Category totals error", "error", err, log.FieldOU, ou, log.FieldCenter, center)
		data.Message = "Category totals are unavailable."
	}

	s.renderPartial(w, r, "category_totals.html", data)
}
