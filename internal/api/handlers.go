package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"menu-planner/internal/menu"
	"menu-planner/internal/planner"
	"menu-planner/internal/share"
	"menu-planner/internal/week"
)

// Handler holds API route handlers.
type Handler struct {
	planners *planner.Registry
}

// NewHandler creates a new Handler.
func NewHandler(planners *planner.Registry) *Handler {
	return &Handler{planners: planners}
}

// DayMenu is one day of the menu in display order.
type DayMenu struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Lunch  string `json:"almoco"`
	Dinner string `json:"jantar"`
}

// MenuResponse is the body of GET /api/menu and of every mutation.
type MenuResponse struct {
	Title    string    `json:"title"`
	StartDay string    `json:"start"`
	Days     []DayMenu `json:"days"`
	Menu     menu.Data `json:"menu"`
}

// ShareResponse is the body of GET /api/share.
type ShareResponse struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

func menuResponse(p *planner.Planner) MenuResponse {
	m := p.Menu()
	resp := MenuResponse{
		Title:    p.Title(),
		StartDay: p.StartDay(),
		Menu:     m,
	}
	for _, d := range p.Days() {
		e := m[d.Key]
		resp.Days = append(resp.Days, DayMenu{Key: d.Key, Label: d.Label, Lunch: e.Lunch, Dinner: e.Dinner})
	}
	return resp
}

// withPlanner runs fn on the requesting user's planner and writes the
// resulting menu, or the error fn returned.
func (h *Handler) withPlanner(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, p *planner.Planner) error) {
	var resp MenuResponse
	err := h.planners.With(r.Context(), r.Header.Get(UserHeader), func(p *planner.Planner) error {
		if err := fn(r.Context(), p); err != nil {
			return err
		}
		resp = menuResponse(p)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, menu.ErrUnknownDayKey), errors.Is(err, week.ErrInvalidDayKey):
		writeJSON(w, http.StatusBadRequest, errorBody("unknown day"))
	case errors.Is(err, menu.ErrUnknownField):
		writeJSON(w, http.StatusBadRequest, errorBody("unknown field"))
	case errors.Is(err, planner.ErrNoChef):
		writeJSON(w, http.StatusServiceUnavailable, errorBody("suggestions are not configured"))
	default:
		slog.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// GetMenu handles GET /api/menu.
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	h.withPlanner(w, r, func(context.Context, *planner.Planner) error { return nil })
}

// SetField handles PUT /api/menu/{day}/{field}.
func (h *Handler) SetField(w http.ResponseWriter, r *http.Request) {
	field, err := menu.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	day := chi.URLParam(r, "day")
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		return p.SetField(ctx, day, field, req.Value)
	})
}

// SwapDay handles POST /api/menu/{day}/swap.
func (h *Handler) SwapDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		return p.SwapDay(ctx, day)
	})
}

// ClearDay handles DELETE /api/menu/{day}.
func (h *Handler) ClearDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		return p.ClearDay(ctx, day)
	})
}

// ClearMenu handles DELETE /api/menu.
func (h *Handler) ClearMenu(w http.ResponseWriter, r *http.Request) {
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		p.ClearAll(ctx)
		return nil
	})
}

// FillExample handles POST /api/menu/example.
func (h *Handler) FillExample(w http.ResponseWriter, r *http.Request) {
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		p.FillExample(ctx)
		return nil
	})
}

// Suggest handles POST /api/menu/suggest.
func (h *Handler) Suggest(w http.ResponseWriter, r *http.Request) {
	h.withPlanner(w, r, func(ctx context.Context, p *planner.Planner) error {
		_, err := p.Suggest(ctx)
		return err
	})
}

// Share handles GET /api/share. The title and start query parameters apply
// to this response only.
func (h *Handler) Share(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var resp ShareResponse
	err := h.planners.With(r.Context(), r.Header.Get(UserHeader), func(p *planner.Planner) error {
		title := p.Title()
		if q.Has("title") {
			title = q.Get("title")
		}
		days, err := rotatedDays(p, q.Get("start"))
		if err != nil {
			return err
		}
		resp.Text = share.Format(title, days, p.Menu())
		resp.URL = share.WhatsAppURL(resp.Text)
		return nil
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Days handles GET /api/days.
func (h *Handler) Days(w http.ResponseWriter, r *http.Request) {
	var days []week.Day
	err := h.planners.With(r.Context(), r.Header.Get(UserHeader), func(p *planner.Planner) error {
		var err error
		days, err = rotatedDays(p, r.URL.Query().Get("start"))
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func rotatedDays(p *planner.Planner, start string) ([]week.Day, error) {
	if start == "" {
		return p.Days(), nil
	}
	return week.Rotate(p.Catalog(), start)
}
