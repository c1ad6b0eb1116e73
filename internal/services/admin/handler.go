package admin

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	apperrors "github.com/louisbranch/athletics.space/internal/platform/errors"
	"github.com/louisbranch/athletics.space/internal/platform/logging"
	"github.com/louisbranch/athletics.space/internal/services/admin/i18n"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
	"github.com/louisbranch/athletics.space/internal/services/admin/module/arenas"
	"github.com/louisbranch/athletics.space/internal/services/admin/module/events"
	"github.com/louisbranch/athletics.space/internal/services/admin/module/home"
	"github.com/louisbranch/athletics.space/internal/services/admin/templates"
	"github.com/louisbranch/athletics.space/internal/services/shared/htmx"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"
)

// DefaultDisciplines seeds the events filter before arena disciplines are
// merged in.
var DefaultDisciplines = []string{
	"100m Run",
	"1500m Run",
	"400m Hurdles",
	"Long Jump",
	"High Jump",
	"Shot Put",
	"50m Butterfly",
	"100m Breaststroke",
	"200m Freestyle",
}

// Backend is the REST surface the admin pages read from and write to.
type Backend interface {
	ListArenas(ctx context.Context) ([]backend.Arena, error)
	ListEventsByDiscipline(ctx context.Context, discipline string) ([]backend.Event, error)
	CreateEvent(ctx context.Context, payload backend.EventPayload) error
	UpdateEvent(ctx context.Context, id int64, payload backend.EventPayload) error
	DeleteEvent(ctx context.Context, id int64) error
}

// HandlerConfig collects the dependencies of the admin handler.
type HandlerConfig struct {
	Backend Backend
	// Logger is used when the request context carries none.
	Logger zerolog.Logger
	// Disciplines overrides DefaultDisciplines when non-empty.
	Disciplines []string
}

// Handler routes admin requests.
type Handler struct {
	backend     Backend
	logger      zerolog.Logger
	disciplines []string
}

// NewHandler builds the HTTP handler for the admin pages.
func NewHandler(cfg HandlerConfig) http.Handler {
	return newHandler(cfg).routes()
}

func newHandler(cfg HandlerConfig) *Handler {
	disciplines := make([]string, 0, len(cfg.Disciplines))
	for _, name := range cfg.Disciplines {
		if name = strings.TrimSpace(name); name != "" {
			disciplines = append(disciplines, name)
		}
	}
	if len(disciplines) == 0 {
		disciplines = append(disciplines, DefaultDisciplines...)
	}
	return &Handler{
		backend:     cfg.Backend,
		logger:      cfg.Logger,
		disciplines: disciplines,
	}
}

// routes wires the HTTP routes for the admin handler.
func (h *Handler) routes() *http.ServeMux {
	mux := http.NewServeMux()
	home.RegisterRoutes(mux, h)
	arenas.RegisterRoutes(mux, h)
	events.RegisterRoutes(mux, h)
	return mux
}

func (h *Handler) localizer(w http.ResponseWriter, r *http.Request) (*message.Printer, string) {
	tag, persist := i18n.ResolveTag(r)
	if persist {
		i18n.SetLanguageCookie(w, tag)
	}
	return i18n.Printer(tag), tag.String()
}

func (h *Handler) pageContext(w http.ResponseWriter, r *http.Request) templates.PageContext {
	loc, lang := h.localizer(w, r)
	return templates.PageContext{
		Lang:         lang,
		Loc:          loc,
		CurrentPath:  r.URL.Path,
		CurrentQuery: r.URL.RawQuery,
	}
}

// pageContextAt builds the page context for a page rendered in answer to a
// write, so its links point at the readable page URL instead of the action.
func (h *Handler) pageContextAt(w http.ResponseWriter, r *http.Request, pageURL string) templates.PageContext {
	page := h.pageContext(w, r)
	if u, err := url.Parse(pageURL); err == nil {
		page.CurrentPath = u.Path
		page.CurrentQuery = u.RawQuery
	}
	return page
}

func (h *Handler) log(r *http.Request) *zerolog.Logger {
	return logging.FromContext(r.Context(), h.logger)
}

// render writes fragment for HTMX requests and full otherwise.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, fragment, full templ.Component) {
	if err := htmx.RenderPage(w, r, fragment, full); err != nil {
		h.log(r).Error().Err(err).Msg("render page")
	}
}

// fail answers a request that cannot be served with the status its error
// kind maps to.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	h.log(r).Warn().Err(err).Int("status", status).Msg("request rejected")
	http.Error(w, http.StatusText(status), status)
}

func allowMethods(w http.ResponseWriter, r *http.Request, allowed ...string) bool {
	for _, method := range allowed {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	return false
}

// HandleHome renders the landing page.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	page := h.pageContext(w, r)
	h.render(w, r, templates.HomeContent(page), templates.HomePage(page))
}
