package models

// OutcomeKind is the determinate result code of an account operation.
type OutcomeKind int

const (
	// OutcomeRenderIndex shows a page of the user listing.
	OutcomeRenderIndex OutcomeKind = iota + 1
	// OutcomeRenderShow shows a single profile.
	OutcomeRenderShow
	// OutcomeRenderNew shows the signup form, possibly with validation errors.
	OutcomeRenderNew
	// OutcomeRenderEdit shows the edit form, possibly with validation errors.
	OutcomeRenderEdit
	// OutcomeRenderSignIn shows the sign-in form, possibly with an error.
	OutcomeRenderSignIn
	// OutcomeRequireSignIn redirects to the sign-in entry point.
	OutcomeRequireSignIn
	// OutcomeRedirectToRoot redirects to the home page.
	OutcomeRedirectToRoot
	// OutcomeRedirectToShow redirects to a user's profile.
	OutcomeRedirectToShow
	// OutcomeNotFound reports that the target user does not exist.
	OutcomeNotFound
)

var outcomeKindNames = map[OutcomeKind]string{
	OutcomeRenderIndex:    "render_index",
	OutcomeRenderShow:     "render_show",
	OutcomeRenderNew:      "render_new",
	OutcomeRenderEdit:     "render_edit",
	OutcomeRenderSignIn:   "render_signin",
	OutcomeRequireSignIn:  "require_signin",
	OutcomeRedirectToRoot: "redirect_to_root",
	OutcomeRedirectToShow: "redirect_to_show",
	OutcomeNotFound:       "not_found",
}

// String implements [fmt.Stringer].
func (k OutcomeKind) String() string {
	if name, ok := outcomeKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsRedirect reports whether the outcome sends the caller elsewhere.
func (k OutcomeKind) IsRedirect() bool {
	return k == OutcomeRequireSignIn || k == OutcomeRedirectToRoot || k == OutcomeRedirectToShow
}

// FlashKind classifies a one-shot notification.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashNotice  FlashKind = "notice"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot notification attached to an outcome.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// Outcome is what an account or session operation hands to the transport.
type Outcome struct {
	Kind OutcomeKind

	// User is the subject of show/edit views, or the submitted values echoed
	// back into a re-rendered form.
	User *User

	// Page is set for OutcomeRenderIndex.
	Page *Page

	// Errors maps a form field to its validation messages.
	Errors map[string][]string

	// Flash is an optional notification.
	Flash *Flash

	// RedirectUserID is the target of OutcomeRedirectToShow.
	RedirectUserID int64

	// Token is set when the operation signed the caller in.
	Token *SessionToken

	// SignedOut is set when the operation ended the caller's session.
	SignedOut bool
}
