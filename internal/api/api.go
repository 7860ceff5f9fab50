// Package api exposes the completion engine over HTTP.
//
// Routes:
//
//	GET  /healthz       liveness probe
//	GET  /v1/stats      in-memory cache entry counts
//	POST /v1/complete   resolve the cursor and return suggestions
//	POST /v1/scan       return the dependency structure of a manifest
//
// Every response carries an X-Request-ID header; a client-supplied one is
// kept, otherwise a UUID is generated.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/cratedata"
	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// RequestIDHeader carries the request ID.
const RequestIDHeader = "X-Request-ID"

// maxBodyBytes bounds request bodies; manifests are small.
const maxBodyBytes = 1 << 20

// Server handles API requests.
type Server struct {
	engine *completion.Engine
	data   *cratedata.Service
	logger *log.Logger
}

// New creates an API server. data may be nil, in which case /v1/stats
// reports zero counts.
func New(engine *completion.Engine, data *cratedata.Service, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{engine: engine, data: data, logger: logger}
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/stats", s.handleStats)
		r.Post("/complete", s.handleComplete)
		r.Post("/scan", s.handleScan)
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// =============================================================================
// Middleware
// =============================================================================

type ctxKey int

const requestIDKey ctxKey = 0

func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// RequestID returns the request ID stored in ctx.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", ww.Status(), "duration", time.Since(start).Round(time.Microsecond),
			"request_id", RequestID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	var stats cratedata.Stats
	if s.data != nil {
		stats = s.data.Stats()
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req CompleteRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Each request carries its full text, so nothing is memoized under the
	// client's URI.
	list, c := s.engine.CompleteContext(r.Context(), completion.Request{
		Document: manifest.NewTextDocument(req.Text),
		Position: manifest.Position{Line: req.Line, Character: req.Character},
	})

	s.logger.Debug("complete", "uri", req.URI, "kind", c.Kind(), "items", len(list.Items),
		"request_id", RequestID(r.Context()))
	writeJSON(w, http.StatusOK, CompleteResponse{
		RequestID:  RequestID(r.Context()),
		Context:    ContextJSON{Kind: c.Kind(), Detail: c},
		Items:      list.Items,
		Incomplete: list.Incomplete,
	})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ScanResponse{
		RequestID: RequestID(r.Context()),
		Structure: manifest.Scan(manifest.NewTextDocument(req.Text)),
	})
}

// =============================================================================
// Encoding
// =============================================================================

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidManifest:
		status = http.StatusBadRequest
	case "":
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, ErrorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(r.Context()),
	})
}
