package http

import (
	"net/http"

	"github.com/MKhiriev/user-directory/internal/session"
)

func (h *Handler) newSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.services.Sessions.New(ctx, session.FromContext(ctx))
	h.respond(w, r, out, err)
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	form, err := decodeSignInForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.services.Sessions.SignIn(r.Context(), form)
	h.respond(w, r, out, err)
}

func (h *Handler) destroySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.services.Sessions.SignOut(ctx, session.FromContext(ctx))
	h.respond(w, r, out, err)
}
