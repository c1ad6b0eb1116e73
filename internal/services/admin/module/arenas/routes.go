package arenas

import (
	"net/http"

	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
)

// Service defines arena route handlers consumed by this route module.
type Service interface {
	HandleArenasPage(w http.ResponseWriter, r *http.Request)
}

// RegisterRoutes wires arena routes into the provided mux.
func RegisterRoutes(mux *http.ServeMux, service Service) {
	if mux == nil || service == nil {
		return
	}
	mux.HandleFunc(routepath.Arenas, service.HandleArenasPage)
}
