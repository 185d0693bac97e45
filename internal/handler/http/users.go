package http

import (
	"net/http"

	"github.com/MKhiriev/user-directory/internal/guard"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/models"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.services.Accounts.Index(ctx, session.FromContext(ctx), pageParam(r))
	h.respond(w, r, out, err)
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userIDParam(r)
	if !ok {
		h.renderOutcome(w, r, models.Outcome{Kind: models.OutcomeNotFound})
		return
	}

	out, err := h.services.Accounts.Show(ctx, session.FromContext(ctx), id)
	h.respond(w, r, out, err)
}

func (h *Handler) newUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.services.Accounts.New(ctx, session.FromContext(ctx))
	h.respond(w, r, out, err)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	form, err := decodeSignupForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.services.Accounts.Create(ctx, session.FromContext(ctx), form)
	h.respond(w, r, out, err)
}

func (h *Handler) editUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userIDParam(r)
	if !ok {
		h.renderOutcome(w, r, models.Outcome{Kind: models.OutcomeNotFound})
		return
	}

	out, err := h.services.Accounts.Edit(ctx, session.FromContext(ctx), id)
	h.respond(w, r, out, err)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := userIDParam(r)
	if !ok {
		h.renderOutcome(w, r, models.Outcome{Kind: models.OutcomeNotFound})
		return
	}

	sc := session.FromContext(ctx)

	// denied callers are redirected before the body is read
	if guard.CanMutate(sc, id) != guard.Permit {
		out, err := h.services.Accounts.Update(ctx, sc, id, models.EditForm{})
		h.respond(w, r, out, err)
		return
	}

	form, err := decodeEditForm(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out, err := h.services.Accounts.Update(ctx, sc, id, form)
	h.respond(w, r, out, err)
}

// respond renders out, or the mapped error status when the operation failed.
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, out models.Outcome, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.renderOutcome(w, r, out)
}
