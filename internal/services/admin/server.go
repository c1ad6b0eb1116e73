package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/athletics.space/internal/platform/telemetry/metrics"
	"github.com/louisbranch/athletics.space/internal/platform/timeouts"
	"github.com/louisbranch/athletics.space/internal/services/admin/httpx"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
	"github.com/louisbranch/athletics.space/internal/services/admin/static"
	"github.com/louisbranch/athletics.space/internal/services/admin/transport/httpmux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config defines the inputs for the admin process.
type Config struct {
	HTTPAddr   string
	BackendURL string
	// BackendTimeout caps each backend call; zero uses the platform default.
	BackendTimeout time.Duration
	Disciplines    []string
	// RateLimit is the per-IP request rate; zero disables limiting.
	RateLimit float64
	RateBurst int
	// TrustProxy honors X-Forwarded-For and X-Real-IP for the client address.
	// Enable only behind a proxy that overwrites them.
	TrustProxy bool
	Logger     zerolog.Logger
	// Registry receives the admin collectors; nil uses a private registry.
	Registry *prometheus.Registry
}

// Server hosts the admin pages.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     zerolog.Logger
}

// NewServer builds a configured admin server.
func NewServer(config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	backendURL := strings.TrimSpace(config.BackendURL)
	if backendURL == "" {
		backendURL = backend.DefaultBaseURL
	}
	if config.BackendTimeout <= 0 {
		config.BackendTimeout = timeouts.BackendRequest
	}
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	client, err := backend.NewClient(backendURL,
		backend.WithTimeout(config.BackendTimeout),
		backend.WithObserver(recorder),
	)
	if err != nil {
		return nil, fmt.Errorf("backend client: %w", err)
	}

	handler := newRootHandler(rootConfig{
		backend:     client,
		logger:      config.Logger,
		disciplines: config.Disciplines,
		recorder:    recorder,
		gatherer:    registry,
		limiter:     httpx.NewIPRateLimiter(config.RateLimit, config.RateBurst),
		trustProxy:  config.TrustProxy,
	})
	httpServer := &http.Server{
		Addr:              httpAddr,
		Handler:           handler,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	return &Server{
		httpAddr:   httpAddr,
		httpServer: httpServer,
		logger:     config.Logger,
	}, nil
}

type rootConfig struct {
	backend     Backend
	logger      zerolog.Logger
	disciplines []string
	recorder    *metrics.Recorder
	gatherer    prometheus.Gatherer
	limiter     *httpx.IPRateLimiter
	trustProxy  bool
}

// newRootHandler mounts static assets, ops endpoints and the admin pages
// behind the middleware chain.
func newRootHandler(cfg rootConfig) http.Handler {
	rootMux := http.NewServeMux()
	httpmux.MountStatic(rootMux, static.FS)
	var metricsHandler http.Handler
	if cfg.gatherer != nil {
		metricsHandler = metrics.Handler(cfg.gatherer)
	}
	httpmux.MountOps(rootMux, metricsHandler)
	httpmux.MountAdminRoutes(rootMux, NewHandler(HandlerConfig{
		Backend:     cfg.backend,
		Logger:      cfg.logger,
		Disciplines: cfg.disciplines,
	}))

	chained := httpx.Chain(rootMux,
		httpx.RealIP(cfg.trustProxy),
		httpx.RequestID(cfg.logger),
		httpx.AccessLog(cfg.recorder),
		httpx.Recoverer(),
		httpx.RateLimit(cfg.limiter),
		httpx.SameOrigin(),
	)
	return otelhttp.NewHandler(chained, "admin",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + httpx.RouteLabel(r.URL.Path)
		}),
	)
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("admin server is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	serveErr := make(chan error, 1)
	s.logger.Info().Str("addr", s.httpAddr).Msg("admin listening")
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close stops the HTTP server immediately.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	if err := s.httpServer.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("close admin http server")
	}
}
