// Package server exposes the calculator as a stateless JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/rshade/netzero/internal/config"
	"github.com/rshade/netzero/internal/report"
)

// APIPrefix is the path prefix of the rate-limited calculator routes.
const APIPrefix = "/api/v1"

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Server serves the calculator API. Nothing is stored between requests.
type Server struct {
	cfg     *config.Config
	log     zerolog.Logger
	limiter *rate.Limiter
	metrics *Metrics
	router  *mux.Router
}

// New builds a server from cfg. cfg is read on every request and must not be
// mutated while the server runs.
func New(cfg *config.Config, log zerolog.Logger) *Server {
	limit := rate.Limit(cfg.Server.RateLimit)
	if cfg.Server.RateLimit <= 0 {
		limit = rate.Inf
	}
	s := &Server{
		cfg:     cfg,
		log:     log,
		limiter: rate.NewLimiter(limit, max(cfg.Server.Burst, 1)),
		metrics: NewMetrics(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestID, s.accessLog, s.instrument)

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	api.Use(s.rateLimit)
	api.HandleFunc("/offset", s.offset).Methods(http.MethodPost)
	api.HandleFunc("/plan", s.plan).Methods(http.MethodPost)
	api.HandleFunc("/report/{format:pdf|xlsx}", s.report).Methods(http.MethodPost)
	api.HandleFunc("/units", s.units).Methods(http.MethodGet)
	api.HandleFunc("/grid-factors", s.gridFactors).Methods(http.MethodGet)

	notFound := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "not found")
	})
	notAllowed := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
	})
	// Subrouters answer their own mismatches.
	for _, router := range []*mux.Router{r, api} {
		router.NotFoundHandler = notFound
		router.MethodNotAllowedHandler = notAllowed
	}
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadTimeout:       s.cfg.Server.ReadTimeout,
		ReadHeaderTimeout: s.cfg.Server.ReadTimeout,
		WriteTimeout:      s.cfg.Server.WriteTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", ln.Addr().String()).Msg("server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	timeout := s.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	s.log.Info().Msg("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on the configured address and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) reportMeta() report.Meta {
	return report.Meta{Title: s.cfg.Report.Title, Author: s.cfg.Report.Author}
}
