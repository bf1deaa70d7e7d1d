// =============================================================================
// AXON Reconciliation Toolkit - HTTP Front-End
// =============================================================================
//
// A small upload front-end over the operation pipelines. Each endpoint
// accepts a multipart form with two file parts, runs the corresponding
// pipeline and responds with the generated workbook as an attachment.
//
// ROUTES:
//   GET  /            - plain index listing the operations
//   POST /approved    - parts: axon, openinvoice -> approved_invoice_status.xlsx
//   POST /compare     - parts: axon, approved (+ optional "key" value)
//   POST /remittance  - parts: axon, remittance -> remittance_breakdown.xlsx
//
// ERROR MAPPING:
//   missing/unreadable part -> 400
//   SchemaError             -> 422 with the exact missing column names
//   anything else           -> 500
//
// =============================================================================

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/oilfieldops/axon-recon/internal/config"
	"github.com/oilfieldops/axon-recon/internal/loader"
	"github.com/oilfieldops/axon-recon/internal/pipeline"
	"github.com/oilfieldops/axon-recon/internal/report"
	"github.com/oilfieldops/axon-recon/internal/tabular"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// maxUploadBytes bounds the in-memory multipart parse. Inputs are bounded by
// realistic spreadsheet sizes.
const maxUploadBytes = 64 << 20

// Server is the HTTP upload front-end.
type Server struct {
	cfg    *config.Config
	log    zerolog.Logger
	router *mux.Router
}

// New builds the server and its routes.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	s := &Server{cfg: cfg, log: log, router: mux.NewRouter()}

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/approved", s.handleApproved).Methods(http.MethodPost)
	s.router.HandleFunc("/compare", s.handleCompare).Methods(http.MethodPost)
	s.router.HandleFunc("/remittance", s.handleRemittance).Methods(http.MethodPost)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	s.log.Info().Str("addr", s.cfg.Server.ListenAddr).Msg("listening")
	return http.ListenAndServe(s.cfg.Server.ListenAddr, s.router)
}

// =============================================================================
// HANDLERS
// =============================================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, `<!DOCTYPE html>
<html>
<head><title>AXON Reconciliation</title></head>
<body>
<h1>AXON Reconciliation</h1>
<ul>
<li>POST /approved &mdash; parts: axon, openinvoice</li>
<li>POST /compare &mdash; parts: axon, approved (optional value: key)</li>
<li>POST /remittance &mdash; parts: axon, remittance</li>
</ul>
</body>
</html>
`)
}

func (s *Server) handleApproved(w http.ResponseWriter, r *http.Request) {
	axon, ok := s.formGrid(w, r, "axon")
	if !ok {
		return
	}
	open, ok := s.formGrid(w, r, "openinvoice")
	if !ok {
		return
	}

	wb, err := pipeline.Approved(axon, open, s.cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeWorkbook(w, r, wb, "approved_invoice_status.xlsx")
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	axon, ok := s.formGrid(w, r, "axon")
	if !ok {
		return
	}
	approved, ok := s.formGrid(w, r, "approved")
	if !ok {
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		key = s.cfg.Compare.KeyColumn
	}

	wb, err := pipeline.Comparison(axon, approved, key, s.cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeWorkbook(w, r, wb, "comparison_report.xlsx")
}

func (s *Server) handleRemittance(w http.ResponseWriter, r *http.Request) {
	axon, ok := s.formGrid(w, r, "axon")
	if !ok {
		return
	}
	rem, ok := s.formGrid(w, r, "remittance")
	if !ok {
		return
	}

	wb, err := pipeline.Remittance(axon, rem, s.cfg)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeWorkbook(w, r, wb, "remittance_breakdown.xlsx")
}

// =============================================================================
// HELPERS
// =============================================================================

// formGrid reads one uploaded file part into a raw grid. On failure it
// writes the 400 response itself and returns ok == false.
func (s *Server) formGrid(w http.ResponseWriter, r *http.Request, field string) (*tabular.Grid, bool) {
	// No effect after the first call on the same request.
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.log.Warn().Err(err).Msg("bad multipart form")
		http.Error(w, "expected a multipart form upload", http.StatusBadRequest)
		return nil, false
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		s.log.Warn().Str("part", field).Err(err).Msg("missing upload part")
		http.Error(w, fmt.Sprintf("missing upload part %q", field), http.StatusBadRequest)
		return nil, false
	}
	defer file.Close()

	grid, err := tabular.Read(file, header.Filename)
	if err != nil {
		s.log.Warn().Str("part", field).Err(err).Msg("unreadable upload")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	s.log.Debug().Str("part", field).Str("file", header.Filename).Int("rows", len(grid.Rows)).Msg("upload read")
	return grid, true
}

// writeWorkbook responds with the workbook as an XLSX attachment.
func (s *Server) writeWorkbook(w http.ResponseWriter, r *http.Request, wb *report.Workbook, filename string) {
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := wb.Write(w); err != nil {
		// Headers are already out; all we can do is log.
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to stream workbook")
		return
	}

	s.log.Info().Str("path", r.URL.Path).Str("file", filename).Msg("report served")
}

// writeError maps pipeline failures onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var schemaErr *loader.SchemaError
	if errors.As(err, &schemaErr) {
		s.log.Warn().Str("path", r.URL.Path).Err(err).Msg("schema error")
		http.Error(w, schemaErr.Error(), http.StatusUnprocessableEntity)
		return
	}

	s.log.Error().Str("path", r.URL.Path).Err(err).Msg("operation failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}
