package templates

import (
	"net/url"
	"strconv"

	"github.com/a-h/templ"
	"github.com/louisbranch/athletics.space/internal/services/admin/eventform"
	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
)

// Element ids targeted by HTMX swaps on the events page.
const (
	EventsTableID    = "events-table"
	EventsToolbarID  = "events-toolbar"
	EventFormID      = "event-form"
	FormDisciplineID = "form-discipline"
)

// EventRow is one event prepared for the table.
type EventRow struct {
	ID              int64
	Date            string
	StartTime       string
	DurationMinutes int
	Arena           string
	Discipline      string
	Gender          string
	AgeGroup        string
	MaxParticipants int
}

// EventsView holds data for the events page.
type EventsView struct {
	// Discipline is the active filter value.
	Discipline string
	Filters    []SelectOption
	Rows       []EventRow
	CreateOpen bool
	// Form is the open create or update form, if any.
	Form *EventFormView
	// Alert is a blocking message shown over the page.
	Alert string
}

func (v EventsView) editID() int64 {
	if v.Form == nil || v.Form.Mode != FormModeEdit {
		return 0
	}
	return v.Form.EventID
}

var eventColumns = []string{
	"events.column.date",
	"events.column.start_time",
	"events.column.duration",
	"events.column.arena",
	"events.column.discipline",
	"events.column.gender",
	"events.column.age_group",
	"events.column.max_participants",
	"events.column.actions",
}

// EventsContent renders the events heading, filter, table and any open form.
func EventsContent(page PageContext, view EventsView) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("section", a("class", "events"))
		h.elem("h1", T(page.Loc, "events.heading"))

		h.open("form", a("class", "event-filter"), a("method", "get"), a("action", routepath.Events))
		h.elem("label", T(page.Loc, "events.filter.label"), a("for", "disciplineFilter"))
		h.open("select",
			a("id", "disciplineFilter"),
			a("name", routepath.ParamDiscipline),
			a("hx-get", routepath.EventsTable),
			a("hx-trigger", "change"),
			a("hx-target", "#"+EventsTableID),
			a("hx-include", "closest form"),
		)
		h.options(view.Filters)
		h.close("select")
		if view.CreateOpen {
			h.open("input", a("type", "hidden"), a("name", routepath.ParamCreate), a("value", "1"))
		}
		if id := view.editID(); id > 0 {
			h.open("input", a("type", "hidden"), a("name", routepath.ParamEdit), a("value", strconv.FormatInt(id, 10)))
		}
		h.open("noscript")
		h.elem("button", T(page.Loc, "events.filter.submit"), a("type", "submit"))
		h.close("noscript")
		h.close("form")

		h.open("div", a("id", EventsTableID))
		h.render(EventsTable(page, view))
		h.close("div")

		h.render(eventsToolbar(page, view, false))
		if view.Form != nil {
			h.render(EventForm(page, *view.Form))
		}
		if view.Alert != "" {
			h.render(AlertDialog(page, view.Alert))
		}
		h.close("section")
	})
}

// EventsPage renders the full events page.
func EventsPage(page PageContext, view EventsView) templ.Component {
	return Layout(page, T(page.Loc, "events.heading"), EventsContent(page, view))
}

// EventsTableFragment answers a filter change: the table plus out-of-band
// updates of the toolbar and the open form's filter field.
func EventsTableFragment(page PageContext, view EventsView) templ.Component {
	return component(func(h *htmlWriter) {
		h.render(EventsTable(page, view))
		h.render(eventsToolbar(page, view, true))
		if view.Form != nil {
			h.render(formDisciplineInput(view.Discipline, true))
		}
	})
}

// EventsTable renders the event rows.
func EventsTable(page PageContext, view EventsView) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("table", a("class", "events-table"))
		h.open("thead")
		h.open("tr")
		for _, key := range eventColumns {
			h.elem("th", T(page.Loc, key), a("scope", "col"))
		}
		h.close("tr")
		h.close("thead")
		h.open("tbody")
		for _, row := range view.Rows {
			id := strconv.FormatInt(row.ID, 10)
			h.open("tr", a("data-event-id", id))
			h.elem("td", row.Date)
			h.elem("td", row.StartTime)
			h.elem("td", T(page.Loc, "events.duration_value", row.DurationMinutes))
			h.elem("td", row.Arena)
			h.elem("td", row.Discipline)
			h.elem("td", row.Gender)
			h.elem("td", row.AgeGroup)
			h.elem("td", strconv.Itoa(row.MaxParticipants))

			h.open("td", a("class", "actions"))
			deleteURL := routepath.EventDelete(row.ID)
			h.open("form", a("class", "inline"), a("method", "post"), a("action", deleteURL),
				a("hx-post", deleteURL), a("hx-target", "#main"))
			h.open("input", a("type", "hidden"), a("name", routepath.ParamDiscipline), a("value", view.Discipline))
			h.elem("button", T(page.Loc, "events.action.delete"), a("type", "submit"), a("class", "link"))
			h.close("form")
			h.raw(" | ")
			editURL := routepath.EventsWith(view.Discipline, url.Values{routepath.ParamEdit: {id}})
			h.elem("a", T(page.Loc, "events.action.update"),
				a("href", editURL), a("hx-get", editURL), a("hx-target", "#main"), a("hx-push-url", "true"))
			h.close("td")
			h.close("tr")
		}
		h.close("tbody")
		h.close("table")
	})
}

func eventsToolbar(page PageContext, view EventsView, oob bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("p", a("id", EventsToolbarID), a("class", "events-toolbar"), when(oob, a("hx-swap-oob", "true")))
		target := routepath.EventsWith(view.Discipline, url.Values{routepath.ParamCreate: {"1"}})
		label := T(page.Loc, "events.action.create")
		if view.CreateOpen {
			target = routepath.EventsList(view.Discipline)
			label = T(page.Loc, "events.action.cancel")
		}
		h.elem("a", label, a("href", target), a("hx-get", target), a("hx-target", "#main"), a("hx-push-url", "true"))
		h.close("p")
	})
}

// AlertDialogID identifies the blocking alert.
const AlertDialogID = "form-alert"

// alertModalScript reopens the alert as a modal so the page behind it is
// inert. Without scripts the dialog stays open in place.
const alertModalScript = `(function(d){if(d&&d.showModal){d.close();d.showModal();}})(document.getElementById("` + AlertDialogID + `"));`

// AlertDialog renders a blocking alert that the user must dismiss.
func AlertDialog(page PageContext, message string) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("dialog", a("id", AlertDialogID), a("class", "alert"), a("role", "alertdialog"), a("aria-modal", "true"), flag("open", true))
		h.elem("p", message)
		h.open("form", a("method", "dialog"))
		h.elem("button", T(page.Loc, "events.alert.dismiss"), a("type", "submit"), flag("autofocus", true))
		h.close("form")
		h.close("dialog")
		h.open("script")
		h.raw(alertModalScript)
		h.close("script")
	})
}

// FormMode distinguishes the create form from the update form.
type FormMode string

const (
	FormModeCreate FormMode = "create"
	FormModeEdit   FormMode = "edit"
)

// EventFormView holds data for the create or update form.
type EventFormView struct {
	Mode    FormMode
	EventID int64
	// Discipline is the list filter to return to after submitting.
	Discipline  string
	Arenas      []SelectOption
	Disciplines []SelectOption
	Genders     []SelectOption
	AgeGroups   []SelectOption
	// Prompts adds "Select ..." placeholders to the gender and age group
	// selects; the update form preselects real values instead.
	Prompts         bool
	MaxParticipants string
	Date            string
	StartTime       string
	DurationMinutes string
}

// Action returns the URL the form posts to.
func (f EventFormView) Action() string {
	if f.Mode == FormModeEdit {
		return routepath.Event(f.EventID)
	}
	return routepath.Events
}

// EventForm renders the create or update form. Changing the arena asks the
// server for a fresh form with narrowed disciplines.
func EventForm(page PageContext, form EventFormView) templ.Component {
	return component(func(h *htmlWriter) {
		action := form.Action()
		title, submit := "events.form.create_title", "events.action.submit_create"
		if form.Mode == FormModeEdit {
			title, submit = "events.form.update_title", "events.action.submit_update"
		}

		h.open("form", a("id", EventFormID), a("class", "event-form"), a("method", "post"), a("action", action),
			a("hx-post", action), a("hx-target", "#main"), a("data-mode", string(form.Mode)))
		h.elem("h2", T(page.Loc, title))
		h.render(formDisciplineInput(form.Discipline, false))
		h.open("input", a("type", "hidden"), a("name", routepath.ParamMode), a("value", string(form.Mode)))
		if form.Mode == FormModeEdit {
			h.open("input", a("type", "hidden"), a("name", routepath.ParamID), a("value", strconv.FormatInt(form.EventID, 10)))
		}

		refresh := []attr{
			a("hx-get", routepath.EventsForm),
			a("hx-trigger", "change"),
			a("hx-target", "#"+EventFormID),
			a("hx-swap", "outerHTML"),
			a("hx-include", "closest form"),
		}
		formSelect(h, page, eventform.FieldArenaID, "events.form.arena", "events.form.select_arena", true, form.Arenas, refresh...)
		formSelect(h, page, eventform.FieldDisciplineID, "events.form.discipline", "events.form.select_discipline", true, form.Disciplines)
		formSelect(h, page, eventform.FieldParticipantGender, "events.form.gender", "events.form.select_gender", form.Prompts, form.Genders)
		formSelect(h, page, eventform.FieldParticipantAgeGroup, "events.form.age_group", "events.form.select_age_group", form.Prompts, form.AgeGroups)
		formInput(h, page, eventform.FieldMaxParticipants, "events.form.max_participants", "number", form.MaxParticipants)
		formInput(h, page, eventform.FieldDate, "events.form.date", "date", form.Date)
		formInput(h, page, eventform.FieldStartTime, "events.form.start_time", "time", form.StartTime)
		formInput(h, page, eventform.FieldDurationMinutes, "events.form.duration", "number", form.DurationMinutes)

		h.elem("button", T(page.Loc, submit), a("type", "submit"))
		h.close("form")
	})
}

func formDisciplineInput(discipline string, oob bool) templ.Component {
	return component(func(h *htmlWriter) {
		h.open("input", a("type", "hidden"), a("id", FormDisciplineID), a("name", routepath.ParamDiscipline),
			a("value", discipline), when(oob, a("hx-swap-oob", "true")))
	})
}

func formSelect(h *htmlWriter, page PageContext, name, labelKey, promptKey string, prompt bool, opts []SelectOption, extra ...attr) {
	id := "event-" + name
	h.open("div", a("class", "field"))
	h.elem("label", T(page.Loc, labelKey), a("for", id))
	h.open("select", append([]attr{a("id", id), a("name", name)}, extra...)...)
	if prompt {
		h.elem("option", T(page.Loc, promptKey), a("value", ""))
	}
	h.options(opts)
	h.close("select")
	h.close("div")
}

func formInput(h *htmlWriter, page PageContext, name, labelKey, inputType, value string) {
	id := "event-" + name
	h.open("div", a("class", "field"))
	h.elem("label", T(page.Loc, labelKey), a("for", id))
	attrs := []attr{a("id", id), a("type", inputType), a("name", name), a("value", value)}
	if inputType == "number" {
		attrs = append(attrs, a("min", "1"), a("step", "1"))
	}
	h.open("input", attrs...)
	h.close("div")
}
