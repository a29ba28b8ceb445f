package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/season-dashboard-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. admin may be nil, in which case the
// refresh endpoint is not mounted.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /season", handler.Season)
	mux.HandleFunc("GET /season/{activity}", handler.SeasonByActivity)
	mux.HandleFunc("GET /activities", handler.Activities)
	mux.HandleFunc("GET /activities/{activity}", handler.ActivityByName)
	mux.HandleFunc("GET /calendar.ics", handler.Calendar)
	if admin != nil {
		mux.HandleFunc("POST /admin/snapshots/refresh", admin.RefreshSnapshots)
	}
	return mux
}
