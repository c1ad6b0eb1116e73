// Package httpx provides the admin HTTP middleware stack.
package httpx

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/louisbranch/athletics.space/internal/platform/requestctx"
	"github.com/louisbranch/athletics.space/internal/platform/telemetry/metrics"
	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
	"github.com/rs/zerolog"
)

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = requestctx.RequestIDHeader

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP. The headers
// are client-controlled, so they are only honored when a trusted proxy sets
// them; otherwise the socket address is kept.
func RealIP(trustProxy bool) Middleware {
	if !trustProxy {
		return func(next http.Handler) http.Handler { return next }
	}
	return chimw.RealIP
}

// Recoverer turns handler panics into 500 responses.
func Recoverer() Middleware {
	return chimw.Recoverer
}

// RequestID keeps an incoming X-Request-ID or mints a uuid, echoes it on the
// response and stores a request-scoped logger in the context.
func RequestID(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" || len(requestID) > 128 {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)

			reqLogger := logger.With().Str("request_id", requestID).Logger()
			ctx := requestctx.WithRequestID(r.Context(), requestID)
			next.ServeHTTP(w, r.WithContext(reqLogger.WithContext(ctx)))
		})
	}
}

// AccessLog logs each request at info level and counts it by route.
func AccessLog(recorder *metrics.Recorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := RouteLabel(r.URL.Path)
			recorder.ObserveHTTPRequest(route, status)
			zerolog.Ctx(r.Context()).Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", time.Since(start)).
				Msg("http request")
		})
	}
}

// RouteLabel maps a request path onto a bounded set of route names.
func RouteLabel(path string) string {
	switch {
	case path == routepath.Root, path == routepath.Arenas, path == routepath.Events,
		path == routepath.EventsTable, path == routepath.EventsForm,
		path == routepath.Healthz, path == routepath.Metrics:
		return path
	case strings.HasPrefix(path, routepath.StaticPrefix):
		return routepath.StaticPrefix
	case strings.HasPrefix(path, routepath.EventsPrefix):
		if strings.HasSuffix(path, "/delete") {
			return "/events/{id}/delete"
		}
		return "/events/{id}"
	default:
		return "other"
	}
}

// RateLimit rejects clients above their per-IP budget with 429.
func RateLimit(limiter *IPRateLimiter) Middleware {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			if !limiter.GetLimiter(ip).Allow() {
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SameOrigin rejects unsafe-method requests whose Origin or Referer does not
// match the request host.
func SameOrigin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}
			source := strings.TrimSpace(r.Header.Get("Origin"))
			if source == "" {
				source = strings.TrimSpace(r.Referer())
			}
			if !sameOrigin(source, r) {
				zerolog.Ctx(r.Context()).Warn().Str("origin", source).Msg("cross-origin write rejected")
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sameOrigin(rawURL string, r *http.Request) bool {
	if rawURL == "" || rawURL == "null" {
		return false
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return false
	}
	if !strings.EqualFold(parsed.Host, r.Host) {
		return false
	}
	if parsed.Scheme != "" {
		return strings.EqualFold(parsed.Scheme, requestScheme(r))
	}
	return true
}

func requestScheme(r *http.Request) string {
	if proto := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); proto != "" {
		parts := strings.Split(proto, ",")
		return strings.ToLower(strings.TrimSpace(parts[0]))
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
