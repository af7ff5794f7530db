package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/Sanmeet007/palette-vision/internal/palette"
)

// DefaultTimeout bounds a single extraction, queueing included. Requests that
// exceed it are answered with 504 while the extraction goroutine is abandoned.
const DefaultTimeout = 30 * time.Second

// Config holds the server parameters. Zero values select the documented
// defaults.
type Config struct {
	// Addr is the listen address for ListenAndServe. Defaults to ":8000".
	Addr string

	// MaxDimension bounds the longer image side before clustering. Defaults
	// to palette.DefaultMaxDimension.
	MaxDimension int

	// MaxConcurrent caps the number of extractions running at once; further
	// requests queue. Defaults to runtime.NumCPU().
	MaxConcurrent int

	// Timeout is the per-request extraction budget. Zero selects
	// DefaultTimeout; negative disables the bound.
	Timeout time.Duration

	// Logger receives request and error logs. Defaults to a disabled logger.
	Logger hclog.Logger
}

// Server handles the palette extraction HTTP API.
type Server struct {
	cfg    Config
	logger hclog.Logger
	sem    chan struct{}
}

// New creates a server instance with defaults applied.
func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.MaxDimension < 1 {
		cfg.MaxDimension = palette.DefaultMaxDimension
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = runtime.NumCPU()
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	return &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		sem:    make(chan struct{}, cfg.MaxConcurrent),
	}
}

// Handler returns the routed HTTP handler with request logging attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleServiceInfo)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/dominant-colors", s.handleDominantColors)
	mux.HandleFunc("/dominant-colors/base64", s.handleDominantColorsBase64)
	return s.logRequests(mux)
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("listening", "addr", s.cfg.Addr,
		"max_concurrent", s.cfg.MaxConcurrent, "timeout", s.cfg.Timeout)
	return srv.ListenAndServe()
}

// errorResponse is the error body for every non-2xx answer.
type errorResponse struct {
	Detail string `json:"detail"`
}

// writeJSON encodes body as the response with the given status.
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError answers with the standard error body.
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, errorResponse{Detail: detail})
}

// logRequests logs one line per completed request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
