package api

import (
	_ "embed"
	"net/http"

	"github.com/kenzie-cloud/portal/internal/loyalty"
	"github.com/kenzie-cloud/portal/internal/portal"
	"github.com/kenzie-cloud/portal/internal/store"
)

//go:embed static/index.html
var portalPage []byte

// ListRewards handles GET /api/rewards.
func (h *Handler) ListRewards(w http.ResponseWriter, r *http.Request) {
	portal.JSON(w, http.StatusOK, loyalty.Levels())
}

// Health handles GET /api/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	portal.JSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": store.Timestamp(h.clock.Now()),
	})
}

// PortalPage handles GET / with the customer portal page.
func (h *Handler) PortalPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(portalPage)
}
