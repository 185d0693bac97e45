package http

import (
	"net/http"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/utils"
)

const sessionCookieName = "session_token"

// withSession resolves the caller's session token into a [session.Context]
// stored in the request context. Requests without a usable token proceed
// anonymously; only registry and store faults abort the request.
func (h *Handler) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sc, err := h.services.Sessions.Resolve(ctx, sessionTokenFromRequest(r))
		if err != nil {
			logger.FromRequest(r).Err(err).Str("func", "Handler.withSession").Msg("error resolving session")
			writeError(w, r, err)
			return
		}

		recordSession(w, sc)
		next.ServeHTTP(w, r.WithContext(session.NewContext(ctx, sc)))
	})
}

// sessionTokenFromRequest prefers the session cookie over an
// "Authorization: Bearer" header. It returns "" when neither is present.
func sessionTokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	if header := r.Header.Get("Authorization"); header != "" {
		if token, err := utils.ParseBearerToken(header); err == nil {
			return token
		}
	}

	return ""
}
