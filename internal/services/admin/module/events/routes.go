package events

import (
	"net/http"
	"strconv"
	"strings"

	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
	sharedroute "github.com/louisbranch/athletics.space/internal/services/shared/route"
)

// Service defines event route handlers consumed by this route module.
type Service interface {
	HandleEventsPage(w http.ResponseWriter, r *http.Request)
	HandleEventsTable(w http.ResponseWriter, r *http.Request)
	HandleEventForm(w http.ResponseWriter, r *http.Request)
	HandleEventUpdate(w http.ResponseWriter, r *http.Request, eventID int64)
	HandleEventDelete(w http.ResponseWriter, r *http.Request, eventID int64)
}

// RegisterRoutes wires event routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Events, service.HandleEventsPage)
	mux.HandleFunc(routepath.EventsTable, service.HandleEventsTable)
	mux.HandleFunc(routepath.EventsForm, service.HandleEventForm)
	mux.HandleFunc(routepath.EventsPrefix, func(w http.ResponseWriter, r *http.Request) {
		HandleEventPath(w, r, service)
	})
}

// HandleEventPath parses /events/{id} and /events/{id}/delete and dispatches
// by method.
func HandleEventPath(w http.ResponseWriter, r *http.Request, service Service) {
	if service == nil {
		http.NotFound(w, r)
		return
	}
	if sharedroute.RedirectTrailingSlash(w, r) {
		return
	}

	parts := sharedroute.SplitPathParts(strings.TrimPrefix(r.URL.Path, routepath.EventsPrefix))
	if len(parts) == 0 || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	eventID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || eventID <= 0 {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 2 {
		if parts[1] != "delete" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w, http.MethodPost)
			return
		}
		service.HandleEventDelete(w, r, eventID)
		return
	}

	switch r.Method {
	case http.MethodPost, http.MethodPut:
		service.HandleEventUpdate(w, r, eventID)
	case http.MethodDelete:
		service.HandleEventDelete(w, r, eventID)
	default:
		methodNotAllowed(w, http.MethodPost, http.MethodPut, http.MethodDelete)
	}
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}
