package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kenzie-cloud/portal/internal/loyalty"
	"github.com/kenzie-cloud/portal/internal/portal"
	"github.com/kenzie-cloud/portal/internal/store"
)

type loginResponse struct {
	Success bool `json:"success"`
	store.LoginResult
}

// Login handles POST /api/login. An unknown phone number registers a new
// customer when a name is supplied and is a 404 otherwise.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r, maxLoginBody)
	if !ok {
		h.metrics.login("invalid")
		return
	}
	req, err := loyalty.ParseLogin(body)
	if err != nil {
		h.metrics.login("invalid")
		writeError(w, err)
		return
	}

	res, err := h.store.Login(req.Phone, req.Name)
	if err != nil {
		if errors.Is(err, loyalty.ErrCustomerNotFound) {
			h.metrics.login("not_found")
		}
		writeError(w, err)
		return
	}

	if res.Created {
		h.metrics.login("created")
		h.logger.Info("customer registered", "customer_id", res.Customer.ID)
	} else {
		h.metrics.login("found")
	}
	portal.JSON(w, http.StatusOK, loginResponse{Success: true, LoginResult: res})
}

// GetCustomer handles GET /api/customer/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := loyalty.ID(chi.URLParam(r, "id"))

	detail, err := h.store.CustomerDetail(id)
	if err != nil {
		writeError(w, err)
		return
	}
	portal.JSON(w, http.StatusOK, detail)
}
