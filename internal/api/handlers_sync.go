package api

import (
	"net/http"

	"github.com/kenzie-cloud/portal/internal/loyalty"
	"github.com/kenzie-cloud/portal/internal/portal"
)

// Sync handles POST /api/sync. The admin tool pushes customers, XP records
// and orders; each collection present in the body replaces the stored one.
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	if !portal.CheckBearer(r, h.token) {
		h.metrics.sync("unauthorized")
		h.logger.Warn("sync rejected", "remote_addr", r.RemoteAddr)
		portal.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, ok := readBody(w, r, maxSyncBody)
	if !ok {
		h.metrics.sync("invalid")
		return
	}
	req, err := loyalty.ParseSync(body)
	if err != nil {
		h.metrics.sync("invalid")
		writeError(w, err)
		return
	}

	h.store.ApplySync(req)
	h.metrics.sync("ok")
	h.logger.Info("data synced",
		"customers", req.Customers != nil,
		"customer_xp", req.CustomerXP != nil,
		"orders", req.Orders != nil,
	)
	portal.JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Data synced",
	})
}
