package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	commonhttp "github.com/sngm3741/secucheck/api/internal/interfaces/http/common"
)

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self' data: https:"

func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", contentSecurityPolicy)
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		next.ServeHTTP(w, r)
	})
}

// rateLimiter caps requests per client IP over window.
func rateLimiter(logger *log.Logger, requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			logger.Printf("rate limit exceeded: %s %s", r.Method, r.URL.Path)
			commonhttp.WriteFailure(logger, w, http.StatusTooManyRequests, "too many requests from this IP, try again later")
		}),
	)
}
