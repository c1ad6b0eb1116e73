package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/athletics.space/internal/platform/errors"
	"github.com/louisbranch/athletics.space/internal/platform/requestctx"
	"github.com/louisbranch/athletics.space/internal/platform/timeouts"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://localhost:8080"

// Operation names used for spans and metrics.
const (
	OpListArenas             = "list_arenas"
	OpListEventsByDiscipline = "list_events_by_discipline"
	OpCreateEvent            = "create_event"
	OpUpdateEvent            = "update_event"
	OpDeleteEvent            = "delete_event"
)

const (
	pathArenas             = "/arenas"
	pathEvents             = "/events"
	pathEventsByDiscipline = "/events/by-discipline"

	maxErrorBody = 4 << 10
)

// Observer receives one observation per backend call.
type Observer interface {
	ObserveBackendCall(operation string, err error, elapsed time.Duration)
}

// StatusError reports a non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: backend returned status %d", e.Method, e.Path, e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client calls the events backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	observer   Observer
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is used as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithObserver reports each call to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient returns a client for baseURL. An empty baseURL uses
// DefaultBaseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, apperrors.E(apperrors.KindInvalidInput, fmt.Sprintf("backend base URL %q must be absolute", baseURL))
	}

	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		timeout: timeouts.BackendRequest,
		tracer:  otel.Tracer("github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListArenas fetches every arena.
func (c *Client) ListArenas(ctx context.Context) ([]Arena, error) {
	var arenas []Arena
	err := c.do(ctx, OpListArenas, http.MethodGet, pathArenas, nil, &arenas)
	if err != nil {
		return nil, err
	}
	return arenas, nil
}

// ListEventsByDiscipline fetches the events of one discipline, or every
// event when discipline is AllDisciplines or blank.
func (c *Client) ListEventsByDiscipline(ctx context.Context, discipline string) ([]Event, error) {
	if strings.TrimSpace(discipline) == "" {
		discipline = AllDisciplines
	}
	path := pathEventsByDiscipline + "?discipline=" + EscapeQueryComponent(discipline)

	var events []Event
	err := c.do(ctx, OpListEventsByDiscipline, http.MethodGet, path, nil, &events, attribute.String("discipline", discipline))
	if err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent posts a new event.
func (c *Client) CreateEvent(ctx context.Context, payload EventPayload) error {
	return c.do(ctx, OpCreateEvent, http.MethodPost, pathEvents, payload, nil)
}

// UpdateEvent replaces the event with the given id.
func (c *Client) UpdateEvent(ctx context.Context, id int64, payload EventPayload) error {
	return c.do(ctx, OpUpdateEvent, http.MethodPut, eventPath(id), payload, nil, attribute.Int64("event.id", id))
}

// DeleteEvent removes the event with the given id.
func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	return c.do(ctx, OpDeleteEvent, http.MethodDelete, eventPath(id), nil, nil, attribute.Int64("event.id", id))
}

// EscapeQueryComponent escapes s for a query value the way browsers'
// encodeURIComponent does for spaces ("%20", not "+").
func EscapeQueryComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func eventPath(id int64) string {
	return pathEvents + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any, attrs ...attribute.KeyValue) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "backend."+op, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(append(attrs, attribute.String("http.method", method))...)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if c.observer != nil {
			c.observer.ObserveBackendCall(op, err, time.Since(start))
		}
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(apperrors.KindInvalidInput, err, "%s: encode body", op)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInvalidInput, err, "%s: build request", op)
	}
	req.Header.Set("Accept", "application/json")
	if requestID := requestctx.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(requestctx.RequestIDHeader, requestID)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, err, "%s", op)
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
		return apperrors.Wrap(apperrors.KindForStatus(resp.StatusCode), statusErr, "%s", op)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindDecode, err, "%s: decode response", op)
	}
	return nil
}
