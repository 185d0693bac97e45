package http

import (
	"net/http"

	"github.com/MKhiriev/user-directory/internal/session"
)

type homeView struct {
	View          string `json:"view"`
	Title         string `json:"title"`
	Version       string `json:"version"`
	CurrentUserID *int64 `json:"current_user_id,omitempty"`
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body := homeView{
		View:    "home",
		Title:   titleHome,
		Version: h.services.AppInfo.GetAppVersion(ctx),
	}
	if id, ok := session.FromContext(ctx).CurrentUserID(); ok {
		body.CurrentUserID = &id
	}

	writeJSON(w, r, body, http.StatusOK)
}

// notFound answers unknown paths and, to avoid advertising which methods a
// path accepts, unsupported methods too.
func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, errorResponse{Error: ErrRouteNotFound.Error()}, http.StatusNotFound)
}
