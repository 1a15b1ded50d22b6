// Package api serves the layout engine over HTTP.
//
// Every endpoint is stateless except /v1/state, which reads and writes
// scroll and zoom snapshots through a [state.Store]. Measure, markers and
// ticks responses for requests without a state_id are served from a
// [cache.Cache] when one is configured; the X-Cache header reports HIT or
// MISS.
//
// Routes:
//
//	POST   /v1/measure       measure a model, return the content rect and ranges
//	POST   /v1/ticks         place Y axis labels for a range
//	POST   /v1/markers       resolve marker targets under a pointer
//	POST   /v1/interpolate   interpolate between two models
//	POST   /v1/state         store a snapshot under a new ID
//	GET    /v1/state/{id}    load a snapshot
//	PUT    /v1/state/{id}    store a snapshot
//	DELETE /v1/state/{id}    delete a snapshot
//	GET    /healthz          build information
//
// Errors are JSON objects {"code", "message"}; INVALID_* codes map to 400,
// NOT_FOUND to 404, UNSUPPORTED to 501 and everything else to 500.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cartesian/pkg/cache"
	"github.com/matzehuels/cartesian/pkg/config"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/observability"
	"github.com/matzehuels/cartesian/pkg/state"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 4 << 20

// Server is the HTTP API.
type Server struct {
	store    state.Store
	cache    cache.Cache
	cacheTTL time.Duration
	cfg      *config.Config
	logger   *log.Logger
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithConfig sets the chart configuration used by the measuring endpoints.
// Requests may still override the canvas size.
func WithConfig(c *config.Config) Option { return func(s *Server) { s.cfg = c } }

// WithCache serves repeated stateless requests from c. Entries expire after
// ttl; zero keeps them until evicted.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) { s.cache, s.cacheTTL = c, ttl }
}

// New creates a server persisting snapshots in store. A nil store disables
// persistence.
func New(store state.Store, opts ...Option) *Server {
	s := &Server{store: store}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = state.NewNullStore()
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/measure", s.handleMeasure)
		r.Post("/ticks", s.handleTicks)
		r.Post("/markers", s.handleMarkers)
		r.Post("/interpolate", s.handleInterpolate)
		r.Route("/state", func(r chi.Router) {
			r.Post("/", s.handleCreateState)
			r.Get("/{id}", s.handleGetState)
			r.Put("/{id}", s.handlePutState)
			r.Delete("/{id}", s.handleDeleteState)
		})
	})
	return r
}

// observe reports requests to the HTTP hooks and logs them at debug level.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, dur)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", dur,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// errorBody is the JSON error response.
type errorBody struct {
	Code    errs.Code `json:"code"`
	Message string    `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errs.Code) int {
	switch code {
	case errs.ErrCodeInvalidConfig, errs.ErrCodeInvalidRange, errs.ErrCodeInvalidStep,
		errs.ErrCodeInvalidZoom, errs.ErrCodeInvalidModel, errs.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errs.GetCode(err)
	if code == "" {
		code = errs.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	msg := strings.TrimPrefix(err.Error(), string(code)+": ")
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respond writes the JSON response for key, computing and caching it on a
// miss. An empty key bypasses the cache.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, key string, compute func() (any, error)) {
	if key != "" {
		data, hit, err := s.cache.Get(r.Context(), key)
		if err != nil {
			s.logger.Warn("cache read failed", "key", key, "err", err)
		}
		if hit {
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
			return
		}
	}

	v, err := compute()
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if key == "" {
		writeJSON(w, http.StatusOK, v)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, r, errs.Wrap(errs.ErrCodeInternal, err, "encode response"))
		return
	}
	data = append(data, '\n')
	if err := s.cache.Set(r.Context(), key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "err", err)
	}
	w.Header().Set("X-Cache", "MISS")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode request")
	}
	return nil
}
