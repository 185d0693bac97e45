package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/utils"
	"github.com/MKhiriev/user-directory/models"
)

// Paths that outcomes redirect to.
const (
	rootPath   = "/"
	signInPath = "/signin"
	usersPath  = "/users"
)

// Page titles of the rendered views.
const (
	titleSignUp   = "Sign up"
	titleEditUser = "Edit user"
	titleAllUsers = "All users"
	titleSignIn   = "Sign in"
	titleHome     = "Home"
)

var flashHeaders = map[models.FlashKind]string{
	models.FlashSuccess: "X-Flash-Success",
	models.FlashNotice:  "X-Flash-Notice",
	models.FlashError:   "X-Flash-Error",
}

// view is the JSON body of every rendered or redirected outcome.
type view struct {
	View          string              `json:"view"`
	Title         string              `json:"title,omitempty"`
	User          *models.User        `json:"user,omitempty"`
	Page          *pageView           `json:"page,omitempty"`
	Errors        map[string][]string `json:"errors,omitempty"`
	Flash         *models.Flash       `json:"flash,omitempty"`
	Location      string              `json:"location,omitempty"`
	Token         string              `json:"token,omitempty"`
	CurrentUserID *int64              `json:"current_user_id,omitempty"`
}

// pageView adds navigation links to a listing page.
type pageView struct {
	models.Page

	PreviousURL string `json:"previous_url,omitempty"`
	NextURL     string `json:"next_url,omitempty"`
}

func newPageView(p models.Page) *pageView {
	pv := &pageView{Page: p}
	if p.HasPrevious {
		pv.PreviousURL = pageURL(p.Index - 1)
	}
	if p.HasNext {
		pv.NextURL = pageURL(p.Index + 1)
	}
	return pv
}

func pageURL(index int) string {
	return fmt.Sprintf("%s?page=%d", usersPath, index)
}

func profilePath(id int64) string {
	return fmt.Sprintf("%s/%d", usersPath, id)
}

func writeJSON(w http.ResponseWriter, r *http.Request, data any, status int) {
	if _, err := utils.WriteJSON(w, data, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("error writing response")
	}
}

// location returns the redirect target of a redirect outcome.
func location(out models.Outcome) string {
	switch out.Kind {
	case models.OutcomeRequireSignIn:
		return signInPath
	case models.OutcomeRedirectToShow:
		return profilePath(out.RedirectUserID)
	default:
		return rootPath
	}
}

func title(out models.Outcome) string {
	switch out.Kind {
	case models.OutcomeRenderNew:
		return titleSignUp
	case models.OutcomeRenderEdit:
		return titleEditUser
	case models.OutcomeRenderIndex:
		return titleAllUsers
	case models.OutcomeRenderSignIn:
		return titleSignIn
	case models.OutcomeRenderShow:
		if out.User != nil {
			return out.User.Name
		}
	}
	return ""
}

// renderOutcome translates a service outcome into the HTTP response.
func (h *Handler) renderOutcome(w http.ResponseWriter, r *http.Request, out models.Outcome) {
	body := view{
		View:   out.Kind.String(),
		Title:  title(out),
		User:   out.User,
		Errors: out.Errors,
		Flash:  out.Flash,
	}
	if out.Page != nil {
		body.Page = newPageView(*out.Page)
	}

	sc := session.FromContext(r.Context())
	if id, ok := sc.CurrentUserID(); ok && !out.SignedOut {
		body.CurrentUserID = &id
	}

	if out.Token != nil {
		setSessionCookie(w, *out.Token)
		body.Token = out.Token.SignedString
		body.CurrentUserID = &out.Token.UserID
	}
	if out.SignedOut {
		clearSessionCookie(w)
	}

	if out.Flash != nil {
		if header, ok := flashHeaders[out.Flash.Kind]; ok {
			w.Header().Set(header, out.Flash.Message)
		}
	}

	switch {
	case out.Kind.IsRedirect():
		body.Location = location(out)
		w.Header().Set("Location", body.Location)
		writeJSON(w, r, body, http.StatusFound)
	case out.Kind == models.OutcomeNotFound:
		writeJSON(w, r, body, http.StatusNotFound)
	default:
		writeJSON(w, r, body, http.StatusOK)
	}
}

func setSessionCookie(w http.ResponseWriter, token models.SessionToken) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token.SignedString,
		Path:     rootPath,
		Expires:  token.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     rootPath,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
