// Package routepath names the admin URL space.
package routepath

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	Root         = "/"
	StaticPrefix = "/static/"
	Healthz      = "/healthz"
	Metrics      = "/metrics"
)

const (
	Arenas = "/arenas"
)

const (
	Events       = "/events"
	EventsTable  = "/events/table"
	EventsForm   = "/events/form"
	EventsPrefix = "/events/"
)

// Query parameters of the events page.
const (
	ParamDiscipline = "discipline"
	ParamCreate     = "create"
	ParamEdit       = "edit"
	ParamMode       = "mode"
	ParamID         = "id"
)

// Event addresses one event for update.
func Event(id int64) string {
	return EventsPrefix + strconv.FormatInt(id, 10)
}

// EventDelete is the form-friendly delete action for one event.
func EventDelete(id int64) string {
	return Event(id) + "/delete"
}

// EventsList returns the events page scoped to a discipline filter. The
// "all" filter and a blank one both yield the bare page.
func EventsList(discipline string) string {
	return EventsWith(discipline, nil)
}

// EventsWith returns the events page with the discipline filter and extra
// query parameters.
func EventsWith(discipline string, extra url.Values) string {
	query := url.Values{}
	for key, values := range extra {
		query[key] = append([]string(nil), values...)
	}
	if d := strings.TrimSpace(discipline); d != "" && d != "all" {
		query.Set(ParamDiscipline, d)
	}
	return withQuery(Events, query)
}

func withQuery(path string, query url.Values) string {
	encoded := query.Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}
