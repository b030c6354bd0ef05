package handlers

import (
	"net/http"

	"storefront-orders/internal/logger"
	"storefront-orders/internal/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. limiter may be nil.
func NewRouter(h *Handler, limiter *middleware.RateLimiter, log *logger.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log), middleware.RequestMetrics)

	api := r.PathPrefix("/api").Subrouter()
	if limiter != nil {
		api.Use(limiter.Middleware)
	}
	api.HandleFunc("/orders", h.SubmitOrderHandler).Methods(http.MethodPost)
	api.HandleFunc("/orders/retry", h.RetrySubmissionHandler).Methods(http.MethodPost)
	api.HandleFunc("/validate/{field}", h.ValidateFieldHandler).Methods(http.MethodPost)

	r.HandleFunc("/order/{id}", h.OrderHandler).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}
