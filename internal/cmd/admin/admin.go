// Package admin parses admin UI flags and launches the server.
package admin

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	entrypoint "github.com/louisbranch/athletics.space/internal/platform/cmd"
	"github.com/louisbranch/athletics.space/internal/platform/logging"
	"github.com/louisbranch/athletics.space/internal/services/admin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Config holds the admin command configuration.
type Config struct {
	HTTPAddr       string        `env:"ATHLETICS_SPACE_ADMIN_HTTP_ADDR" envDefault:":8082"`
	BackendURL     string        `env:"ATHLETICS_SPACE_ADMIN_BACKEND_URL" envDefault:"http://localhost:8080"`
	BackendTimeout time.Duration `env:"ATHLETICS_SPACE_ADMIN_BACKEND_TIMEOUT" envDefault:"5s"`
	LogLevel       string        `env:"ATHLETICS_SPACE_ADMIN_LOG_LEVEL" envDefault:"info"`
	LogFormat      string        `env:"ATHLETICS_SPACE_ADMIN_LOG_FORMAT" envDefault:"console"`
	// Disciplines replaces the default filter catalog when set.
	Disciplines []string `env:"ATHLETICS_SPACE_ADMIN_DISCIPLINES" envSeparator:","`
	RateLimit   float64  `env:"ATHLETICS_SPACE_ADMIN_RATE_LIMIT" envDefault:"20"`
	RateBurst   int      `env:"ATHLETICS_SPACE_ADMIN_RATE_BURST" envDefault:"40"`
	TrustProxy  bool     `env:"ATHLETICS_SPACE_ADMIN_TRUST_PROXY" envDefault:"false"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	disciplines := strings.Join(cfg.Disciplines, ",")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.BackendURL, "backend-url", cfg.BackendURL, "Events backend base URL")
	fs.DurationVar(&cfg.BackendTimeout, "backend-timeout", cfg.BackendTimeout, "Per-call backend timeout")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console or json)")
	fs.StringVar(&disciplines, "disciplines", disciplines, "Comma-separated discipline filter catalog")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "Requests per second per client IP (0 disables)")
	fs.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "Request burst per client IP")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", cfg.TrustProxy, "Use X-Forwarded-For/X-Real-IP as the client address")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Disciplines = splitList(disciplines)
	return cfg, nil
}

// Run starts the admin server and blocks until ctx ends.
func Run(ctx context.Context, cfg Config, logOut io.Writer) error {
	logger, err := logging.New(logOut, logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: entrypoint.ServiceAdmin,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceAdmin, entrypoint.RunOptions{Logger: &logger}, func(ctx context.Context) error {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		server, err := admin.NewServer(admin.Config{
			HTTPAddr:       cfg.HTTPAddr,
			BackendURL:     cfg.BackendURL,
			BackendTimeout: cfg.BackendTimeout,
			Disciplines:    cfg.Disciplines,
			RateLimit:      cfg.RateLimit,
			RateBurst:      cfg.RateBurst,
			TrustProxy:     cfg.TrustProxy,
			Logger:         logger,
			Registry:       registry,
		})
		if err != nil {
			return fmt.Errorf("init admin server: %w", err)
		}
		defer server.Close()

		logger.Info().Str("backend", cfg.BackendURL).Msg("admin starting")
		if err := server.ListenAndServe(ctx); err != nil {
			return fmt.Errorf("serve admin: %w", err)
		}
		return nil
	})
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
