// Package http serves the budget performance dashboard: the page shell,
// the HTMX partials that drive it, and the JSON series endpoint for the
// monthly chart.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/alfaizmac/kcc-budget-performance/internal/cache"
	"github.com/alfaizmac/kcc-budget-performance/internal/core"
	"github.com/alfaizmac/kcc-budget-performance/internal/ingest"
	"github.com/alfaizmac/kcc-budget-performance/internal/middleware/ratelimit"
	"github.com/alfaizmac/kcc-budget-performance/internal/middleware/security"
	"github.com/alfaizmac/kcc-budget-performance/internal/middleware/trace"
	"github.com/alfaizmac/kcc-budget-performance/internal/services"
	"github.com/alfaizmac/kcc-budget-performance/internal/store"
	appweb "github.com/alfaizmac/kcc-budget-performance/web"
)

// Uploads larger than this are rejected before parsing.
const maxUploadBytes = 20 << 20

type Server struct {
	http.Server

	templates *template.Template
	store     *store.Store
	datasets  *services.DatasetService
	fetcher   ingest.Fetcher

	centersCache *cache.LRU[[]core.CenterSummary]
	seriesCache  *cache.LRU[[]core.MonthPoint]
	cacheManager *cache.Manager

	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
// fetcher may be nil when no remote spreadsheet is configured; the fetch
// endpoint then reports itself unavailable.
func NewServer(addr string, st *store.Store, ds *services.DatasetService, fetcher ingest.Fetcher) *Server {
	mux := http.NewServeMux()

	s := &Server{
		store:        st,
		datasets:     ds,
		fetcher:      fetcher,
		centersCache: cache.NewLRU[[]core.CenterSummary](100, 5*time.Minute),
		seriesCache:  cache.NewLRU[[]core.MonthPoint](200, 5*time.Minute),
		cacheManager: cache.NewManager(),
		limiter:      ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:       trace.NewMiddleware(clientIP),
	}
	s.cacheManager.Register(s.centersCache)
	s.cacheManager.Register(s.seriesCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	// Only the load routes are rate limited; everything else is a pure
	// read of in-memory state.
	limited := s.limiter.Middleware(clientIP, tooManyLoads)

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.Handle("/upload", limited(http.HandlerFunc(s.handleUpload)))
	mux.Handle("/fetch", limited(http.HandlerFunc(s.handleFetch)))
	// UI partials
	mux.HandleFunc("/ui/ous", s.handleOUs)
	mux.HandleFunc("/ui/centers", s.handleCenters)
	mux.HandleFunc("/ui/categories", s.handleCategories)
	// Chart data
	mux.HandleFunc("/api/series", s.handleSeries)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(headers.Middleware(mux)),
	}

	return s
}

// Shutdown stops the background cleanup goroutines and then the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}

func tooManyLoads(w http.ResponseWriter, r *http.Request) {
	slog.WarnContext(r.Context(), "Rate limit exceeded", "client_ip", clientIP(r), "url", r.URL.Path)
	w.Header().Set("Retry-After", "60")
	http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("templates not loaded"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
