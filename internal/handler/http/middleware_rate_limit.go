package http

import (
	"net/http"

	"github.com/MKhiriev/user-directory/internal/logger"
)

// withAuthRateLimit rejects credential submissions beyond the configured rate
// with 429 Too Many Requests.
func (h *Handler) withAuthRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.authLimiter.Allow() {
			logger.FromRequest(r).Warn().Str("func", "Handler.withAuthRateLimit").Str("uri", r.RequestURI).Msg("credential submission throttled")
			w.Header().Set("Retry-After", "1")
			writeError(w, r, ErrTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
