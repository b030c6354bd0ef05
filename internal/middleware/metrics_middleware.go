package middleware

import (
	"net/http"
	"strconv"
	"time"

	"storefront-orders/internal/metrics"

	"github.com/gorilla/mux"
)

const unmatchedRoute = "unmatched"

// RequestMetrics counts requests by route template and numeric status code and
// tracks latency and in-flight requests. Raw paths are never used as labels.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPInFlight.Inc()
		defer metrics.HTTPInFlight.Dec()

		start := time.Now()
		rec := recorderFor(w)
		next.ServeHTTP(rec, r)

		route := routeLabel(r)
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPResponseTime.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func routeLabel(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil && tpl != "" {
			return tpl
		}
	}
	return unmatchedRoute
}
