package home

import (
	"net/http"

	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
	sharedroute "github.com/louisbranch/athletics.space/internal/services/shared/route"
)

// Service defines home route handlers consumed by this route module.
type Service interface {
	HandleHome(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires the root route. The root pattern is the mux
// catch-all, so anything else that lands here is a 404.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Root, func(w http.ResponseWriter, r *http.Request) {
		if sharedroute.RedirectTrailingSlash(w, r) {
			return
		}
		if r.URL.Path != routepath.Root {
			http.NotFound(w, r)
			return
		}
		service.HandleHome(w, r)
	})
}
