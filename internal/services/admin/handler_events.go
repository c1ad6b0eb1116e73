package admin

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	apperrors "github.com/louisbranch/athletics.space/internal/platform/errors"
	"github.com/louisbranch/athletics.space/internal/services/admin/eventform"
	"github.com/louisbranch/athletics.space/internal/services/admin/integration/backend"
	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
	"github.com/louisbranch/athletics.space/internal/services/admin/templates"
	"github.com/louisbranch/athletics.space/internal/services/shared/htmx"
	"golang.org/x/sync/errgroup"
)

// eventsState is the view state carried in the events page URL.
type eventsState struct {
	discipline string
	createOpen bool
	editID     int64
}

func eventsStateFrom(values url.Values) eventsState {
	state := eventsState{
		discipline: normalizeDiscipline(values.Get(routepath.ParamDiscipline)),
		createOpen: strings.TrimSpace(values.Get(routepath.ParamCreate)) != "",
	}
	if id, err := strconv.ParseInt(strings.TrimSpace(values.Get(routepath.ParamEdit)), 10, 64); err == nil && id > 0 {
		state.editID = id
		state.createOpen = false
	}
	return state
}

// query returns the create/edit parameters to carry across navigation.
func (s eventsState) query() url.Values {
	extra := url.Values{}
	switch {
	case s.editID > 0:
		extra.Set(routepath.ParamEdit, strconv.FormatInt(s.editID, 10))
	case s.createOpen:
		extra.Set(routepath.ParamCreate, "1")
	}
	return extra
}

func normalizeDiscipline(raw string) string {
	if d := strings.TrimSpace(raw); d != "" {
		return d
	}
	return backend.AllDisciplines
}

// HandleEventsPage lists events on GET and creates one on POST.
func (h *Handler) HandleEventsPage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.showEvents(w, r)
	case http.MethodPost:
		h.createEvent(w, r)
	default:
		allowMethods(w, r, http.MethodGet, http.MethodHead, http.MethodPost)
	}
}

func (h *Handler) showEvents(w http.ResponseWriter, r *http.Request) {
	state := eventsStateFrom(r.URL.Query())
	list, arenaList := h.loadEvents(r, state.discipline)

	page := h.pageContext(w, r)
	view := h.eventsView(page, state.discipline, list, arenaList)
	if state.editID > 0 {
		if ev, ok := findEvent(list, state.editID); ok {
			form := eventFormView(templates.FormModeEdit, ev.ID, state.discipline, eventform.FromEvent(ev), arenaList)
			view.Form = &form
		} else {
			h.log(r).Debug().Int64("event_id", state.editID).Msg("edit target not in current list")
		}
	} else if state.createOpen {
		form := eventFormView(templates.FormModeCreate, 0, state.discipline, eventform.Draft{}, arenaList)
		view.Form = &form
		view.CreateOpen = true
	}
	h.renderEvents(w, r, page, view)
}

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, apperrors.Wrap(apperrors.KindInvalidInput, err, "parse form"))
		return
	}
	discipline := normalizeDiscipline(r.PostForm.Get(routepath.ParamDiscipline))
	draft := eventform.FromValues(r.PostForm)

	if err := draft.Validate(); err != nil {
		h.log(r).Info().Err(err).Msg("create event rejected")
		h.renderDraft(w, r, templates.FormModeCreate, 0, discipline, draft, err)
		return
	}
	payload, err := draft.Payload()
	if err == nil {
		err = h.backend.CreateEvent(r.Context(), payload)
	}
	if err != nil {
		h.log(r).Error().Err(err).Str("kind", string(apperrors.KindOf(err))).Msg("create event")
		h.renderDraft(w, r, templates.FormModeCreate, 0, discipline, draft, nil)
		return
	}
	htmx.Redirect(w, r, routepath.EventsList(discipline))
}

// HandleEventUpdate replaces an event with the submitted draft.
func (h *Handler) HandleEventUpdate(w http.ResponseWriter, r *http.Request, eventID int64) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, apperrors.Wrap(apperrors.KindInvalidInput, err, "parse form"))
		return
	}
	discipline := normalizeDiscipline(r.PostForm.Get(routepath.ParamDiscipline))
	draft := eventform.FromValues(r.PostForm)

	if err := draft.Validate(); err != nil {
		h.log(r).Info().Err(err).Int64("event_id", eventID).Msg("update event rejected")
		h.renderDraft(w, r, templates.FormModeEdit, eventID, discipline, draft, err)
		return
	}
	payload, err := draft.Payload()
	if err == nil {
		err = h.backend.UpdateEvent(r.Context(), eventID, payload)
	}
	if err != nil {
		h.log(r).Error().Err(err).Int64("event_id", eventID).Str("kind", string(apperrors.KindOf(err))).Msg("update event")
		h.renderDraft(w, r, templates.FormModeEdit, eventID, discipline, draft, nil)
		return
	}
	htmx.Redirect(w, r, routepath.EventsList(discipline))
}

// HandleEventDelete removes an event. A failure re-renders the list as it
// stands.
func (h *Handler) HandleEventDelete(w http.ResponseWriter, r *http.Request, eventID int64) {
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, apperrors.Wrap(apperrors.KindInvalidInput, err, "parse form"))
		return
	}
	discipline := normalizeDiscipline(r.Form.Get(routepath.ParamDiscipline))

	if err := h.backend.DeleteEvent(r.Context(), eventID); err != nil {
		h.log(r).Error().Err(err).Int64("event_id", eventID).Str("kind", string(apperrors.KindOf(err))).Msg("delete event")
		list, arenaList := h.loadEvents(r, discipline)
		page := h.pageContextAt(w, r, routepath.EventsList(discipline))
		h.renderEvents(w, r, page, h.eventsView(page, discipline, list, arenaList))
		return
	}
	htmx.Redirect(w, r, routepath.EventsList(discipline))
}

// HandleEventsTable answers a filter change with the table fragment.
func (h *Handler) HandleEventsTable(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	state := eventsStateFrom(r.URL.Query())
	if !htmx.IsRequest(r) {
		http.Redirect(w, r, routepath.EventsWith(state.discipline, state.query()), http.StatusSeeOther)
		return
	}

	list, err := h.backend.ListEventsByDiscipline(r.Context(), state.discipline)
	if err != nil {
		h.log(r).Error().Err(err).Str("discipline", state.discipline).Msg("list events")
		list = nil
	}
	// An edit whose row left the list has no form to keep in sync.
	if state.editID > 0 {
		if _, ok := findEvent(list, state.editID); !ok {
			h.log(r).Debug().Int64("event_id", state.editID).Msg("edit target not in filtered list")
			state.editID = 0
		}
	}

	pageURL := routepath.EventsWith(state.discipline, state.query())
	page := h.pageContextAt(w, r, pageURL)
	view := templates.EventsView{
		Discipline: state.discipline,
		Rows:       eventRows(list),
		CreateOpen: state.createOpen,
	}
	switch {
	case state.editID > 0:
		view.Form = &templates.EventFormView{Mode: templates.FormModeEdit, EventID: state.editID, Discipline: state.discipline}
	case state.createOpen:
		view.Form = &templates.EventFormView{Mode: templates.FormModeCreate, Discipline: state.discipline}
	}
	w.Header().Set(htmx.PushURLHeader, pageURL)
	h.render(w, r, templates.EventsTableFragment(page, view), nil)
}

// HandleEventForm re-renders the create or update form from the submitted
// draft, narrowing disciplines to the chosen arena.
func (h *Handler) HandleEventForm(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	query := r.URL.Query()
	discipline := normalizeDiscipline(query.Get(routepath.ParamDiscipline))
	mode := templates.FormModeCreate
	state := eventsState{discipline: discipline, createOpen: true}
	var eventID int64
	if templates.FormMode(query.Get(routepath.ParamMode)) == templates.FormModeEdit {
		id, err := strconv.ParseInt(strings.TrimSpace(query.Get(routepath.ParamID)), 10, 64)
		if err != nil || id <= 0 {
			h.fail(w, r, apperrors.E(apperrors.KindInvalidInput, "invalid event id"))
			return
		}
		mode, eventID = templates.FormModeEdit, id
		state = eventsState{discipline: discipline, editID: id}
	}
	if !htmx.IsRequest(r) {
		http.Redirect(w, r, routepath.EventsWith(discipline, state.query()), http.StatusSeeOther)
		return
	}

	arenaList, err := h.backend.ListArenas(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list arenas")
		arenaList = nil
	}
	draft := eventform.FromValues(query).Normalize(arenaList)

	page := h.pageContext(w, r)
	h.render(w, r, templates.EventForm(page, eventFormView(mode, eventID, discipline, draft, arenaList)), nil)
}

// renderDraft re-renders the events page with a submitted form still open.
// alertErr, when it carries a localization key, becomes the blocking alert.
func (h *Handler) renderDraft(w http.ResponseWriter, r *http.Request, mode templates.FormMode, eventID int64, discipline string, draft eventform.Draft, alertErr error) {
	state := eventsState{discipline: discipline, createOpen: mode == templates.FormModeCreate}
	if mode == templates.FormModeEdit {
		state.editID = eventID
	}
	list, arenaList := h.loadEvents(r, discipline)
	page := h.pageContextAt(w, r, routepath.EventsWith(discipline, state.query()))
	view := h.eventsView(page, discipline, list, arenaList)
	form := eventFormView(mode, eventID, discipline, draft, arenaList)
	view.Form = &form
	view.CreateOpen = mode == templates.FormModeCreate
	if key := apperrors.LocalizationKey(alertErr); key != "" {
		view.Alert = templates.T(page.Loc, key)
	}
	h.renderEvents(w, r, page, view)
}

func (h *Handler) renderEvents(w http.ResponseWriter, r *http.Request, page templates.PageContext, view templates.EventsView) {
	h.render(w, r, templates.EventsContent(page, view), templates.EventsPage(page, view))
}

// loadEvents reads events and arenas concurrently. Either read may fail on
// its own; failures are logged and yield an empty list.
func (h *Handler) loadEvents(r *http.Request, discipline string) ([]backend.Event, []backend.Arena) {
	var (
		g         errgroup.Group
		list      []backend.Event
		arenaList []backend.Arena
	)
	logger := h.log(r)
	ctx := r.Context()

	g.Go(func() error {
		var err error
		list, err = h.backend.ListEventsByDiscipline(ctx, discipline)
		if err != nil {
			logger.Error().Err(err).Str("discipline", discipline).Msg("list events")
			list = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		arenaList, err = h.backend.ListArenas(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("list arenas")
			arenaList = nil
		}
		return nil
	})
	_ = g.Wait()
	return list, arenaList
}

func (h *Handler) eventsView(page templates.PageContext, discipline string, list []backend.Event, arenaList []backend.Arena) templates.EventsView {
	return templates.EventsView{
		Discipline: discipline,
		Filters:    h.filterOptions(page, discipline, arenaList),
		Rows:       eventRows(list),
	}
}

// filterOptions lists All, the configured catalog, then any discipline only
// known from arenas. The current value is kept even when unknown.
func (h *Handler) filterOptions(page templates.PageContext, current string, arenaList []backend.Arena) []templates.SelectOption {
	seen := map[string]bool{backend.AllDisciplines: true}
	opts := []templates.SelectOption{{
		Value:    backend.AllDisciplines,
		Label:    templates.T(page.Loc, "events.filter.all"),
		Selected: current == backend.AllDisciplines,
	}}
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		opts = append(opts, templates.SelectOption{Value: name, Label: name, Selected: name == current})
	}
	for _, name := range h.disciplines {
		add(name)
	}
	for _, arena := range arenaList {
		for _, d := range arena.Disciplines {
			add(d.Name)
		}
	}
	add(current)
	return opts
}

func eventRows(list []backend.Event) []templates.EventRow {
	rows := make([]templates.EventRow, 0, len(list))
	for _, ev := range list {
		rows = append(rows, templates.EventRow{
			ID:              ev.ID,
			Date:            ev.Date,
			StartTime:       ev.StartTime,
			DurationMinutes: ev.DurationMinutes,
			Arena:           ev.Arena.Name,
			Discipline:      ev.Discipline.Name,
			Gender:          string(ev.ParticipantGender),
			AgeGroup:        string(ev.ParticipantAgeGroup),
			MaxParticipants: ev.MaximumParticipants,
		})
	}
	return rows
}

func findEvent(list []backend.Event, id int64) (backend.Event, bool) {
	for _, ev := range list {
		if ev.ID == id {
			return ev, true
		}
	}
	return backend.Event{}, false
}

func eventFormView(mode templates.FormMode, eventID int64, discipline string, draft eventform.Draft, arenaList []backend.Arena) templates.EventFormView {
	form := templates.EventFormView{
		Mode:            mode,
		EventID:         eventID,
		Discipline:      discipline,
		Prompts:         mode == templates.FormModeCreate,
		MaxParticipants: draft.MaxParticipants,
		Date:            draft.Date,
		StartTime:       draft.StartTime,
		DurationMinutes: draft.DurationMinutes,
	}
	for _, arena := range arenaList {
		id := strconv.FormatInt(arena.ID, 10)
		form.Arenas = append(form.Arenas, templates.SelectOption{Value: id, Label: arena.Name, Selected: id == draft.ArenaID})
	}
	for _, d := range eventform.DisciplineOptions(arenaList, draft.ArenaID) {
		id := strconv.FormatInt(d.ID, 10)
		form.Disciplines = append(form.Disciplines, templates.SelectOption{Value: id, Label: d.Name, Selected: id == draft.DisciplineID})
	}
	for _, g := range backend.Genders {
		form.Genders = append(form.Genders, templates.SelectOption{Value: string(g), Label: string(g), Selected: string(g) == draft.ParticipantGender})
	}
	for _, ag := range backend.AgeGroups {
		form.AgeGroups = append(form.AgeGroups, templates.SelectOption{Value: string(ag), Label: string(ag), Selected: string(ag) == draft.ParticipantAgeGroup})
	}
	return form
}
