package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
)

// withLogging writes one access-log entry per request.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		event := logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size)
		if id, ok := lw.currentUser(); ok {
			event = event.Int64("user_id", id)
		}
		event.Send()
	})
}

// currentUser returns the signed-in user recorded by withSession, if any.
func (w *responseWriter) currentUser() (int64, bool) {
	return w.session.CurrentUserID()
}

// recordSession lets withSession report the resolved context back to the
// access log, which runs outside it.
func recordSession(w http.ResponseWriter, sc session.Context) {
	if lw, ok := w.(*responseWriter); ok {
		lw.session = sc
	}
}
