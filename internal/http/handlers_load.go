package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/alfaizmac/kcc-budget-performance/internal/ingest"
	"github.com/alfaizmac/kcc-budget-performance/internal/log"
	"github.com/alfaizmac/kcc-budget-performance/internal/services"
)

// handleUpload accepts a spreadsheet file and replaces the working
// dataset with its contents. On failure the previous dataset stays
// untouched and the user gets a single error fragment.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		slog.ErrorContext(r.Context(), "Multipart parse error", "error", err)
		writeLoadError(w, http.StatusBadRequest, "The upload could not be read. Is the file too large?")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeLoadError(w, http.StatusBadRequest, "Choose a spreadsheet file to upload.")
		return
	}
	defer func() { _ = file.Close() }()

	name := sanitizeInput(header.Filename)
	headers, rows, err := ingest.ParseFile(name, file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Spreadsheet parse error", "error", err, "filename", name)
		writeLoadError(w, http.StatusUnprocessableEntity,
			"Could not read "+name+": "+err.Error())
		return
	}

	s.finishLoad(w, r, headers, rows, "upload:"+name)
}

// handleFetch pulls the configured remote spreadsheet and replaces the
// working dataset.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if s.fetcher == nil {
		writeLoadError(w, http.StatusServiceUnavailable, "Remote fetch is not configured.")
		return
	}

	headers, rows, err := s.fetcher.Fetch(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Remote fetch error", "error", err)
		writeLoadError(w, http.StatusBadGateway, "Could not fetch the remote spreadsheet.")
		return
	}

	s.finishLoad(w, r, headers, rows, "remote")
}

func (s *Server) finishLoad(w http.ResponseWriter, r *http.Request, headers []string, rows [][]string, source string) {
	version, err := s.datasets.Load(r.Context(), headers, rows, source)
	if err != nil {
		if errors.Is(err, services.ErrEmptyInput) {
			writeLoadError(w, http.StatusUnprocessableEntity, "The spreadsheet has no data rows.")
			return
		}
		slog.ErrorContext(r.Context(), "Dataset load error", "error", err, log.FieldSource, source)
		writeLoadError(w, http.StatusInternalServerError, "Loading failed. The previous data is still available.")
		return
	}

	w.Header().Set("HX-Trigger", `{"dataset:loaded": {"version": `+strconv.FormatUint(version, 10)+`}}`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Loaded ` +
		strconv.Itoa(len(rows)) + ` rows across ` +
		strconv.Itoa(len(headers)) + ` columns</div>`))
}

func writeLoadError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}
