// Package admin provides the bearer-protected /api/admin/* control plane
// for inspecting and replacing the portal's in-memory state.
package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kenzie-cloud/portal/internal/portal"
	"github.com/kenzie-cloud/portal/internal/store"
)

const maxStateBody = 16 << 20

// StateStore is the state the admin endpoints manage.
type StateStore interface {
	// Snapshot returns the full state as a JSON-serializable value.
	Snapshot() any
	// LoadState replaces the full state from a JSON body.
	LoadState(data []byte) error
	// Reset clears all state and reloads seed data, if any.
	Reset()
}

// Handler provides the admin endpoints.
type Handler struct {
	state StateStore
	mw    *portal.Middleware
	clock *store.Clock
	token string
}

// NewHandler creates a new admin handler. Every endpoint requires
// "Authorization: Bearer <token>".
func NewHandler(state StateStore, mw *portal.Middleware, clock *store.Clock, token string) *Handler {
	return &Handler{
		state: state,
		mw:    mw,
		clock: clock,
		token: token,
	}
}

// Routes mounts the admin endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(portal.BearerAuth(h.token))
		r.Post("/reset", h.handleReset)
		r.Get("/state", h.handleGetState)
		r.Post("/state", h.handleLoadState)
		r.Get("/requests", h.handleGetRequests)
		r.Post("/time/advance", h.handleTimeAdvance)
		r.Get("/time", h.handleGetTime)
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.state.Reset()
	h.mw.ReqLog.Clear()
	if h.clock != nil {
		h.clock.Reset()
	}
	portal.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	portal.JSON(w, http.StatusOK, h.state.Snapshot())
}

func (h *Handler) handleLoadState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxStateBody))
	if err != nil {
		portal.Error(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}
	if err := h.state.LoadState(body); err != nil {
		portal.Error(w, http.StatusBadRequest, "failed to load state: "+err.Error())
		return
	}
	portal.JSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

func (h *Handler) handleGetRequests(w http.ResponseWriter, r *http.Request) {
	portal.JSON(w, http.StatusOK, h.mw.ReqLog.Entries())
}

func (h *Handler) handleTimeAdvance(w http.ResponseWriter, r *http.Request) {
	if h.clock == nil {
		portal.Error(w, http.StatusBadRequest, "simulated clock not configured")
		return
	}

	var req struct {
		Duration string `json:"duration"` // Go duration string, e.g. "24h", "30m"
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		portal.Error(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}

	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		portal.Error(w, http.StatusBadRequest, "invalid duration: "+err.Error())
		return
	}
	if d < 0 {
		portal.Error(w, http.StatusBadRequest, "duration must not be negative")
		return
	}

	h.clock.Advance(d)
	portal.JSON(w, http.StatusOK, map[string]any{
		"status":    "advanced",
		"duration":  d.String(),
		"offset":    h.clock.Offset().String(),
		"simulated": store.Timestamp(h.clock.Now()),
	})
}

func (h *Handler) handleGetTime(w http.ResponseWriter, r *http.Request) {
	if h.clock == nil {
		portal.JSON(w, http.StatusOK, map[string]any{
			"real": store.Timestamp(time.Now()),
		})
		return
	}
	portal.JSON(w, http.StatusOK, map[string]any{
		"real":      store.Timestamp(time.Now()),
		"simulated": store.Timestamp(h.clock.Now()),
		"offset":    h.clock.Offset().String(),
	})
}
