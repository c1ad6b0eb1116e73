// Package httpmux assembles the admin root mux from its parts.
package httpmux

import (
	"io/fs"
	"net/http"

	routepath "github.com/louisbranch/athletics.space/internal/services/admin/routepath"
)

// MountStatic wires static asset serving into the root mux with a long
// cache lifetime for embedded assets.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS) {
	if rootMux == nil || staticFS == nil {
		return
	}
	fileServer := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	rootMux.Handle(routepath.StaticPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		fileServer.ServeHTTP(w, r)
	}))
}

// MountOps wires the health and metrics endpoints. A nil metrics handler
// leaves /metrics unmounted.
func MountOps(rootMux *http.ServeMux, metrics http.Handler) {
	if rootMux == nil {
		return
	}
	rootMux.HandleFunc(routepath.Healthz, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		rootMux.Handle(routepath.Metrics, metrics)
	}
}

// MountAdminRoutes mounts admin application routes under root path.
func MountAdminRoutes(rootMux *http.ServeMux, adminHandler http.Handler) {
	if rootMux == nil || adminHandler == nil {
		return
	}
	rootMux.Handle(routepath.Root, adminHandler)
}
