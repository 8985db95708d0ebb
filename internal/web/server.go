package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/nwgo/networth-projector/internal/calculation"
	"github.com/nwgo/networth-projector/internal/config"
	"github.com/nwgo/networth-projector/pkg/metrics"
)

const maxPlanBytes = 1 << 20

// Server exposes the projection engine over HTTP: plans in, timelines out.
// Each request gets its own engine; only the metrics collector is shared.
type Server struct {
	addr    string
	logger  calculation.Logger
	parser  *config.InputParser
	metrics *metrics.Collector

	httpServer *http.Server
}

func NewServer(addr string, logger calculation.Logger) *Server {
	if logger == nil {
		logger = &calculation.NopLogger{}
	}
	s := &Server{
		addr:    addr,
		logger:  logger,
		parser:  config.NewInputParser(),
		metrics: metrics.NewCollector(),
	}
	s.parser.SetLogger(logger)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return s
}

// Routes wires the handler table. Exposed separately so tests can drive
// the mux with httptest without binding a port.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/project", s.handleProject)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", s.metrics.Handler())
	return mux
}

// Run serves until the context is canceled, then drains connections.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", s.addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleProject accepts a YAML (or JSON) plan body and responds with the
// full projection result as JSON.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxPlanBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "reading request body: "+err.Error())
		return
	}

	plan, err := s.parser.Parse(body)
	if err != nil {
		s.metrics.ValidationFailed()
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	engine := calculation.NewProjectionEngine()
	engine.Logger = s.logger
	engine.Metrics = s.metrics
	result, err := engine.Project(r.Context(), plan)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		s.logger.Errorf("projection failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
