// Package server exposes a session over a JSON HTTP API.
//
// Every response except /health is an envelope:
//
//	{"success": bool, "message": "...", "data": ..., "error": "...", "details": ...}
//
// Unknown paths answer 404 with the same envelope.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/papapumpkin/wellplan/internal/fieldopt"
	"github.com/papapumpkin/wellplan/internal/session"
	"github.com/papapumpkin/wellplan/internal/wellgeom"
	"github.com/papapumpkin/wellplan/internal/wellstore"
)

// ServiceName is reported by /health.
const ServiceName = "wellplan"

// maxBody caps request bodies.
const maxBody = 10 << 20

// WellStore persists validated well data.
type WellStore interface {
	Save(ctx context.Context, d wellgeom.WellData) (wellstore.Record, error)
	Get(ctx context.Context, id int64) (wellstore.Record, error)
	List(ctx context.Context, limit int) ([]wellstore.Record, error)
}

// Solver submits compute requests to the external optimizer.
type Solver interface {
	Submit(ctx context.Context, req fieldopt.Request) (fieldopt.Response, error)
}

// Envelope is the JSON body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
}

// Options configures a Server. Store and Solver may be nil; their routes
// then answer 503.
type Options struct {
	Session    *session.Session
	Store      WellStore
	Solver     Solver
	DatasetDir string
	Logger     *zap.Logger
}

// Server routes API requests to a session.
type Server struct {
	sess       *session.Session
	store      WellStore
	solver     Solver
	datasetDir string
	logger     *zap.Logger
	mux        *http.ServeMux
	now        func() time.Time
}

// New builds a Server and registers every route.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		sess:       opts.Session,
		store:      opts.Store,
		solver:     opts.Solver,
		datasetDir: opts.DatasetDir,
		logger:     logger,
		mux:        http.NewServeMux(),
		now:        time.Now,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /health", s.health)

	s.mux.HandleFunc("POST /api/wells/validate", s.validateWells)
	s.mux.HandleFunc("POST /api/wells/save", s.saveWells)
	s.mux.HandleFunc("GET /api/wells", s.listWells)
	s.mux.HandleFunc("GET /api/wells/{id}", s.getWells)

	s.mux.HandleFunc("GET /api/layout", s.getLayout)
	s.mux.HandleFunc("GET /api/layout/tree", s.getLayoutTree)
	s.mux.HandleFunc("PUT /api/layout/wells", s.setWellCount)
	s.mux.HandleFunc("POST /api/layout/partition", s.loadPartition)
	s.mux.HandleFunc("POST /api/layout/drop", s.drop)
	s.mux.HandleFunc("POST /api/layout/expand", s.expand)

	s.mux.HandleFunc("GET /api/views", s.getViews)
	s.mux.HandleFunc("POST /api/views/toggle", s.toggle)
	s.mux.HandleFunc("GET /api/views/visibility", s.getVisibility)

	s.mux.HandleFunc("GET /api/datasets/contours", s.getContours)
	s.mux.HandleFunc("GET /api/datasets/site-contours", s.getSiteContours)
	s.mux.HandleFunc("GET /api/datasets/curves", s.getCurves)
	s.mux.HandleFunc("GET /api/datasets/partition", s.getPartition)
	s.mux.HandleFunc("POST /api/datasets/reload", s.reloadDatasets)
	s.mux.HandleFunc("GET /api/datasets/kickoffs", s.getKickoffs)
	s.mux.HandleFunc("POST /api/datasets/kickoffs", s.updateKickoff)

	s.mux.HandleFunc("POST /api/compute", s.compute)

	s.mux.HandleFunc("/", s.notFound)
}

// ServeHTTP logs every request and dispatches it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.logger.Info("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status_code", rec.status),
		zap.Duration("elapsed", s.now().Sub(start)),
	)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": s.now().UTC().Format(time.RFC3339),
		"service":   ServiceName,
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, Envelope{
		Error:   "not found",
		Message: fmt.Sprintf("path %s not found", r.URL.Path),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, errText string, details any) {
	writeJSON(w, status, Envelope{Error: errText, Details: details})
}

// internalError logs err and answers 500 without exposing it.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("handler failed", zap.String("path", r.URL.Path), zap.Error(err))
	fail(w, http.StatusInternalServerError, "internal server error", nil)
}

// errEmptyBody reports a request without a JSON body.
var errEmptyBody = errors.New("request body is empty")

func readJSON(r *http.Request, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errEmptyBody
	}
	return json.Unmarshal(body, out)
}

// decode reads the body into out, answering 400 on failure.
func decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := readJSON(r, out); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}
