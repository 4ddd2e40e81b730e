package httpapi

import (
	"net/http"
	"time"

	"topup-admin-go/internal/api"
	"topup-admin-go/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every console endpoint. Everything except health, metrics and
// registration requires a bearer token.
func NewRouter(console *api.ConsoleService, verifier *TokenVerifier) *mux.Router {
	h := NewHandler(console)

	r := mux.NewRouter()
	r.Use(Recoverer)
	r.Use(Instrument)

	r.HandleFunc("/health", h.HealthCheckHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/register", h.RegisterUserHandler).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(Auth(verifier))

	authed.HandleFunc("/users", h.ListUsersHandler).Methods(http.MethodGet)
	authed.HandleFunc("/users/{user}/balance", h.GetBalanceHandler).Methods(http.MethodGet)
	authed.HandleFunc("/users/{user}/balance", h.AdjustBalanceHandler).Methods(http.MethodPost)

	authed.HandleFunc("/requests/{kind}", h.ListPendingHandler).Methods(http.MethodGet)
	authed.HandleFunc("/requests/{kind}", h.SubmitRequestHandler).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{kind}/{id}/approve", h.ApproveHandler).Methods(http.MethodPost)
	authed.HandleFunc("/requests/{kind}/{id}/reject", h.RejectHandler).Methods(http.MethodPost)

	authed.HandleFunc("/notifications", h.SendNotificationHandler).Methods(http.MethodPost)
	authed.HandleFunc("/settings/payment", h.GetPaymentSettingsHandler).Methods(http.MethodGet)
	authed.HandleFunc("/settings/payment", h.SavePaymentSettingsHandler).Methods(http.MethodPut)

	return r
}

// NewServer builds the HTTP server for cfg around handler.
func NewServer(cfg models.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
