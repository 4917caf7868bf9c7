package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"

	"golfcart-dashboard/internal/security"
	"golfcart-dashboard/internal/service"
)

const maxBodyBytes = 1 << 20

// Options tune the HTTP layer.
type Options struct {
	AllowedOrigins []string
	PingInterval   time.Duration
	Now            func() time.Time
}

type Handler struct {
	svc  service.DashboardService
	opts Options
}

// NewRouter wires every dashboard route behind the standard middleware chain.
func NewRouter(svc service.DashboardService, tokens security.TokenManager, opts Options) http.Handler {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 15 * time.Second
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	h := &Handler{svc: svc, opts: opts}

	r := mux.NewRouter()
	r.Use(authMiddleware(tokens))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.HandleFunc("/health", h.health).Methods(http.MethodGet).Name("health")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/calendar/{year:[0-9]{1,4}}/{month:[0-9]{1,2}}", h.monthView).Methods(http.MethodGet).Name("calendar.month")
	api.HandleFunc("/calendar/{year:[0-9]{1,4}}/{month:[0-9]{1,2}}/days/{day:[0-9]{1,2}}", h.dayView).Methods(http.MethodGet).Name("calendar.day")
	api.HandleFunc("/calendar/{year:[0-9]{1,4}}/{month:[0-9]{1,2}}/export.ics", h.exportMonth).Methods(http.MethodGet).Name("calendar.export")
	api.HandleFunc("/dashboard", h.dashboard).Methods(http.MethodGet).Name("dashboard")

	api.HandleFunc("/rentals/remaining", h.remaining).Methods(http.MethodGet).Name("rentals.remaining")
	api.HandleFunc("/rentals/pending", h.pending).Methods(http.MethodGet).Name("rentals.pending")
	api.HandleFunc("/rentals/stream", h.stream).Methods(http.MethodGet).Name("rentals.stream")
	api.HandleFunc("/rentals", h.createRental).Methods(http.MethodPost).Name("rentals.create")
	api.HandleFunc("/rentals/{id:[0-9]+}", h.deleteRental).Methods(http.MethodDelete).Name("rentals.delete")

	api.HandleFunc("/carts", h.listCarts).Methods(http.MethodGet).Name("carts.list")
	api.HandleFunc("/carts/{id:[0-9]+}", h.updateCart).Methods(http.MethodPut).Name("carts.update")
	api.HandleFunc("/carts/{id:[0-9]+}", h.deleteCart).Methods(http.MethodDelete).Name("carts.delete")

	api.HandleFunc("/clients", h.listClients).Methods(http.MethodGet).Name("clients.list")
	api.HandleFunc("/clients", h.createClient).Methods(http.MethodPost).Name("clients.create")
	api.HandleFunc("/vendors", h.listVendors).Methods(http.MethodGet).Name("vendors.list")

	api.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost).Name("refresh")

	chain := alice.New(recoverPanic, requestID, logRequest, corsMiddleware(opts.AllowedOrigins))
	return chain.Then(r)
}
