package middleware

import (
	"log/slog"
	"net/http"

	"github.com/lshmam/neucler-square-sub000/internal/api/httputil"
	"github.com/lshmam/neucler-square-sub000/internal/config"
	"golang.org/x/time/rate"
)

// RateLimit returns middleware applying a token bucket to all requests it
// wraps. The payment event source falls back to redelivery on 429, so
// shedding load here is safe.
func RateLimit(rps, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	slog.Debug("rate limiter created", "rps", rps, "burst", burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("request rate limited",
					"path", r.URL.Path,
					"remoteAddr", r.RemoteAddr,
				)
				httputil.Error(w, http.StatusTooManyRequests, config.ErrorCodeRateLimit, "Too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
