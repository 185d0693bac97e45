package http

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/user-directory/models"
)

// Form scopes: fields are submitted as "user[name]" or nested under "user" in
// a JSON body.
const (
	userScope    = "user"
	sessionScope = "session"
)

const maxBodyBytes = 1 << 20

type signupEnvelope struct {
	User models.SignupForm `json:"user"`
}

type editEnvelope struct {
	User models.EditForm `json:"user"`
}

type signInEnvelope struct {
	Session models.SignInForm `json:"session"`
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return nil
}

func parseForm(w http.ResponseWriter, r *http.Request) (url.Values, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return r.PostForm, nil
}

func scoped(scope, field string) string {
	return scope + "[" + field + "]"
}

// optional returns a pointer to the submitted value of key, or nil when the
// key was not submitted at all.
func optional(values url.Values, key string) *string {
	v, ok := values[key]
	if !ok {
		return nil
	}
	if len(v) == 0 {
		empty := ""
		return &empty
	}
	return &v[0]
}

func decodeSignupForm(w http.ResponseWriter, r *http.Request) (models.SignupForm, error) {
	if isJSON(r) {
		var env signupEnvelope
		err := decodeJSON(w, r, &env)
		return env.User, err
	}

	values, err := parseForm(w, r)
	if err != nil {
		return models.SignupForm{}, err
	}
	return models.SignupForm{
		Name:                 values.Get(scoped(userScope, "name")),
		Email:                values.Get(scoped(userScope, "email")),
		Password:             values.Get(scoped(userScope, "password")),
		PasswordConfirmation: values.Get(scoped(userScope, "password_confirmation")),
	}, nil
}

func decodeEditForm(w http.ResponseWriter, r *http.Request) (models.EditForm, error) {
	if isJSON(r) {
		var env editEnvelope
		err := decodeJSON(w, r, &env)
		return env.User, err
	}

	values, err := parseForm(w, r)
	if err != nil {
		return models.EditForm{}, err
	}
	return models.EditForm{
		Name:                 optional(values, scoped(userScope, "name")),
		Email:                optional(values, scoped(userScope, "email")),
		Password:             optional(values, scoped(userScope, "password")),
		PasswordConfirmation: optional(values, scoped(userScope, "password_confirmation")),
	}, nil
}

func decodeSignInForm(w http.ResponseWriter, r *http.Request) (models.SignInForm, error) {
	if isJSON(r) {
		var env signInEnvelope
		err := decodeJSON(w, r, &env)
		return env.Session, err
	}

	values, err := parseForm(w, r)
	if err != nil {
		return models.SignInForm{}, err
	}
	return models.SignInForm{
		Email:    values.Get(scoped(sessionScope, "email")),
		Password: values.Get(scoped(sessionScope, "password")),
	}, nil
}

// userIDParam parses the {id} path segment. ok is false for anything that is
// not a positive integer.
func userIDParam(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// pageParam parses ?page=N. A missing or malformed value selects page 1.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}
