// Package mock serves a development /v1/histories endpoint backed by a
// SQLite history store.
package mock

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sadopc/msghist/internal/core/history"
)

// MaxPageSize caps page_size so one request cannot dump the whole table.
const MaxPageSize = 500

// Server is the mock history API.
type Server struct {
	store      *history.Store
	port       int
	latency    time.Duration
	errorRate  float64
	corsOrigin string
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithPort sets the listen port. 0 picks a free port.
func WithPort(port int) Option {
	return func(s *Server) { s.port = port }
}

// WithLatency delays every response.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithErrorRate makes a fraction of requests fail with 500. The rate is
// clamped to [0, 1].
func WithErrorRate(rate float64) Option {
	return func(s *Server) {
		switch {
		case rate < 0:
			rate = 0
		case rate > 1:
			rate = 1
		}
		s.errorRate = rate
	}
}

// WithCORSOrigin sets the allowed CORS origin.
func WithCORSOrigin(origin string) Option {
	return func(s *Server) { s.corsOrigin = origin }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a server over store.
func New(store *history.Store, opts ...Option) *Server {
	s := &Server{
		store:      store,
		port:       8888,
		corsOrigin: "*",
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Port returns the configured port.
func (s *Server) Port() int { return s.port }

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{s.corsOrigin},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(s.simulate)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Route("/v1", func(r chi.Router) {
		r.Get("/histories", s.listHistories)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error": fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path),
		})
	})
	return r
}

// Start listens until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("mock server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) listHistories(w http.ResponseWriter, r *http.Request) {
	f, err := ParseFilter(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	records, count, err := s.store.List(r.Context(), f)
	if err != nil {
		s.logger.Error("listing histories", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "query failed"})
		return
	}
	writeJSON(w, http.StatusOK, history.ListResponse{List: records, Count: count})
}

// ParseFilter maps list query parameters onto a store filter. Without a
// sort parameter records come newest id first.
func ParseFilter(v url.Values) (history.Filter, error) {
	get := v.Get
	f := history.Filter{OrderBy: history.FieldID, Desc: true}

	page, err := intParam(get("page_index"), 1)
	if err != nil {
		return f, fmt.Errorf("page_index: %w", err)
	}
	size, err := intParam(get("page_size"), history.DefaultPageSize)
	if err != nil {
		return f, fmt.Errorf("page_size: %w", err)
	}
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = history.DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	f.Offset = (page - 1) * size
	f.Limit = size

	for _, p := range []struct {
		key string
		dst **int64
	}{{"start", &f.Start}, {"end", &f.End}} {
		raw := get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return f, fmt.Errorf("%s: invalid unix time %q", p.key, raw)
		}
		*p.dst = &n
	}

	if f.Statuses, err = history.ParseStatuses(get("status")); err != nil {
		return f, err
	}
	f.Sender = get("sender")
	f.Content = get("content")

	sort, err := history.ParseSort(get("sort"))
	if err != nil {
		return f, err
	}
	if sort != nil && sort.Direction != history.Unsorted {
		f.OrderBy = sort.Field
		f.Desc = sort.Direction == history.Descend
	}
	return f, nil
}

func intParam(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", raw)
	}
	return n, nil
}

func (s *Server) simulate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}
		if s.latency > 0 {
			select {
			case <-time.After(s.latency):
			case <-r.Context().Done():
				return
			}
		}
		if s.errorRate > 0 && rand.Float64() < s.errorRate {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Simulated server error"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"query", r.URL.RawQuery,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", r.Header.Get("X-Request-Id"),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
