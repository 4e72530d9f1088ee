package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/shoppu-io/shoppu-backend/pkg/metrics"
)

// Metrics observes every completed request under its chi route pattern.
func Metrics(httpMetrics *metrics.HTTPMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if httpMetrics == nil {
				next.ServeHTTP(w, r)
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)

			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			httpMetrics.ObserveRequest(r.Method, routePattern(r), strconv.Itoa(status), time.Since(start))
		})
	}
}
