// Package server exposes the access queries over a small JSON HTTP API:
// POST /v1/access/check resolves one agent's modes, POST /v1/access/list
// resolves every known agent's modes, plus health and Prometheus metrics
// endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/podgraph/podgraph/pkg/acp"
	"github.com/podgraph/podgraph/pkg/logger"
	"github.com/podgraph/podgraph/pkg/rdf"
	"github.com/podgraph/podgraph/pkg/server/commands"
	"github.com/podgraph/podgraph/pkg/storage"
)

const requestIDHeader = "X-Request-Id"

// Config carries the server's settings. It is a plain value threaded in
// from the command layer; there is no process-wide default.
type Config struct {
	Addr               string
	CORSAllowedOrigins []string
	ListConcurrency    int
	ShutdownTimeout    time.Duration
}

// Server wires the query commands to HTTP.
type Server struct {
	config   Config
	logger   logger.Logger
	check    *commands.CheckQuery
	list     *commands.ListAccessQuery
	metrics  *metrics
	registry *prometheus.Registry
}

// New builds a server over the given resource store.
func New(store storage.ResourceStore, log logger.Logger, cfg Config) *Server {
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	listOpts := []commands.ListAccessOption{}
	if cfg.ListConcurrency > 0 {
		listOpts = append(listOpts, commands.WithListConcurrency(cfg.ListConcurrency))
	}

	return &Server{
		config:   cfg,
		logger:   log,
		check:    commands.NewCheckQuery(store, log),
		list:     commands.NewListAccessQuery(store, log, listOpts...),
		metrics:  newMetrics(registry),
		registry: registry,
	}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/access/check", s.handleCheck)
	mux.HandleFunc("POST /v1/access/list", s.handleList)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return s.withRequestID(c.Handler(mux))
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	s.logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = ulid.Make().String()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req commands.CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.checks.WithLabelValues(outcomeBadInput).Inc()
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := s.check.Execute(r.Context(), &req)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}

	s.metrics.checks.WithLabelValues(outcomeOK).Inc()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var req commands.ListAccessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.metrics.checks.WithLabelValues(outcomeBadInput).Inc()
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	resp, err := s.list.Execute(r.Context(), &req)
	if err != nil {
		s.writeQueryError(w, r, err)
		return
	}

	s.metrics.checks.WithLabelValues(outcomeOK).Inc()
	writeJSON(w, http.StatusOK, &listResponse{
		Resource: resp.Resource,
		Access:   stringKeyed(resp.Access),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeQueryError maps query failures onto the HTTP surface: malformed
// IRIs are the caller's fault, a missing ACR is reported as a distinct
// not-found condition, and upstream fetch trouble is a bad gateway.
func (s *Server) writeQueryError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, rdf.ErrInvalidIRI):
		s.metrics.checks.WithLabelValues(outcomeBadInput).Inc()
		writeError(w, http.StatusBadRequest, "invalid_iri", err.Error())
	case errors.Is(err, acp.ErrNoAccessControlResource):
		s.metrics.checks.WithLabelValues(outcomeNoACR).Inc()
		writeError(w, http.StatusNotFound, "no_access_control_resource", err.Error())
	case errors.Is(err, storage.ErrNotFound):
		s.metrics.checks.WithLabelValues(outcomeError).Inc()
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		s.metrics.checks.WithLabelValues(outcomeError).Inc()
		s.logger.Error("access query failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", w.Header().Get(requestIDHeader)),
			zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream_error", err.Error())
	}
}

type listResponse struct {
	Resource rdf.IRI                    `json:"resource"`
	Access   map[string]acp.AccessModes `json:"access"`
}

// stringKeyed converts the IRI-keyed map for JSON encoding.
func stringKeyed(in map[rdf.IRI]acp.AccessModes) map[string]acp.AccessModes {
	out := make(map[string]acp.AccessModes, len(in))
	for agent, modes := range in {
		out[string(agent)] = modes
	}
	return out
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
