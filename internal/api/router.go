package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kenzie-cloud/portal/internal/loyalty"
	"github.com/kenzie-cloud/portal/internal/portal"
	"github.com/kenzie-cloud/portal/internal/store"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	maxLoginBody = 64 << 10
	maxSyncBody  = 16 << 20
)

// Store is the state the customer-facing API reads and mutates.
type Store interface {
	// Login finds a customer by phone, registering one when name is set.
	Login(phone, name string) (store.LoginResult, error)
	// ApplySync wholesale-replaces the collections present in req.
	ApplySync(req loyalty.SyncRequest)
	// CustomerDetail returns loyalty.ErrCustomerNotFound for unknown ids.
	CustomerDetail(id loyalty.ID) (loyalty.CustomerDetail, error)
	// Counts reports collection sizes for metrics.
	Counts() (customers, orders int)
}

// Options configures a Handler.
type Options struct {
	// AdminToken guards POST /api/sync.
	AdminToken string
	Clock      *store.Clock
	Logger     *slog.Logger
	// Registerer receives the loyalty metrics; nil disables them.
	Registerer prometheus.Registerer
}

// Handler holds all API handler state.
type Handler struct {
	store   Store
	token   string
	clock   *store.Clock
	logger  *slog.Logger
	metrics *metrics
}

// NewHandler creates a new API handler.
func NewHandler(s Store, opts Options) *Handler {
	clock := opts.Clock
	if clock == nil {
		clock = store.NewClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Handler{
		store:   s,
		token:   opts.AdminToken,
		clock:   clock,
		logger:  logger,
		metrics: newMetrics(opts.Registerer, s),
	}
}

// Routes mounts the API endpoints and the portal page.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.PortalPage)

	r.Post("/api/sync", h.Sync)
	r.Post("/api/login", h.Login)
	r.Get("/api/customer/{id}", h.GetCustomer)
	r.Get("/api/rewards", h.ListRewards)
	r.Get("/api/health", h.Health)
}

// readBody reads at most limit bytes of the request body, writing an error
// response and returning false on failure.
func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			portal.Error(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		portal.Error(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return nil, false
	}
	return body, true
}

// writeError maps domain errors onto HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	var verr *loyalty.ValidationError
	switch {
	case errors.As(err, &verr):
		portal.Error(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, loyalty.ErrCustomerNotFound):
		portal.Error(w, http.StatusNotFound, "Customer not found")
	default:
		portal.Error(w, http.StatusInternalServerError, "internal error")
	}
}
