// Package api exposes the menu planner as a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"menu-planner/internal/planner"
)

// UserHeader selects whose menu a request works on. Requests without it use
// the default menu shared with the CLI.
const UserHeader = "X-User-ID"

// NewRouter creates a chi router with the menu routes. Mount it under /api.
func NewRouter(planners *planner.Registry, token string) chi.Router {
	h := NewHandler(planners)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(token))

	r.Get("/menu", h.GetMenu)
	r.Delete("/menu", h.ClearMenu)
	r.Post("/menu/example", h.FillExample)
	r.Post("/menu/suggest", h.Suggest)
	r.Put("/menu/{day}/{field}", h.SetField)
	r.Post("/menu/{day}/swap", h.SwapDay)
	r.Delete("/menu/{day}", h.ClearDay)

	r.Get("/share", h.Share)
	r.Get("/days", h.Days)

	return r
}

// NewServerRouter builds the root router: request middleware, health checks
// and the API under /api. mount, when non-nil, adds further routes such as
// the Telegram webhook.
func NewServerRouter(planners *planner.Registry, token, dataDir string, mount func(chi.Router)) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", Ready(dataDir))

	r.Mount("/api", NewRouter(planners, token))

	if mount != nil {
		mount(r)
	}
	return r
}
