package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/and161185/pedidos/internal/metrics"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware records request counts and latency by chi route pattern.
func MetricsMiddleware(m *metrics.ServerMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			data := &responseData{status: http.StatusOK}

			next.ServeHTTP(&loggingResponseWriter{ResponseWriter: w, responseData: data}, r)

			handler := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				handler = r.Method + " " + rctx.RoutePattern()
			}

			m.Requests.WithLabelValues(handler, strconv.Itoa(data.status)).Inc()
			m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
		})
	}
}
