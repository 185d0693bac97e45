package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/service"
	"github.com/MKhiriev/user-directory/internal/store"
)

const testPassword = "foobar"

// testApp is a directory server backed by memory stores.
type testApp struct {
	storages *store.Storages
	services *service.Services
	server   *httptest.Server
}

func newTestConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{Version: "test-version", PageSize: 30},
		Auth: config.Auth{
			PasswordCost:  bcrypt.MinCost,
			TokenSignKey:  "test-sign-key",
			TokenIssuer:   "user-directory-test",
			TokenDuration: time.Hour,
		},
		Storage: config.Storage{DB: config.DB{Driver: config.DriverMemory}},
	}
}

func newTestServices(t *testing.T) (*store.Storages, *service.Services) {
	t.Helper()
	cfg := newTestConfig()

	storages, err := store.NewStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	services, err := service.NewServices(storages, cfg, logger.Nop())
	require.NoError(t, err)

	return storages, services
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	storages, services := newTestServices(t)
	h := NewHandler(services, config.Server{RequestTimeout: 5 * time.Second}, logger.Nop())

	server := httptest.NewServer(h.Init())
	t.Cleanup(server.Close)

	return &testApp{storages: storages, services: services, server: server}
}

// client returns a fresh client with its own cookie jar. Redirects are not
// followed so tests see the 302 responses themselves.
func (a *testApp) client() *resty.Client {
	return resty.New().
		SetBaseURL(a.server.URL).
		SetHeader("Accept", "application/json").
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
}

// signUp registers a user through POST /users with c, leaving c signed in.
func (a *testApp) signUp(t *testing.T, c *resty.Client, name, email string) *resty.Response {
	t.Helper()

	resp, err := c.R().SetBody(map[string]any{
		"user": map[string]string{
			"name":                  name,
			"email":                 email,
			"password":              testPassword,
			"password_confirmation": testPassword,
		},
	}).Post("/users")
	require.NoError(t, err)
	require.Equal(t, 302, resp.StatusCode(), string(resp.Body()))
	return resp
}

// testView mirrors the JSON view model.
type testView struct {
	View          string              `json:"view"`
	Title         string              `json:"title"`
	Errors        map[string][]string `json:"errors"`
	Location      string              `json:"location"`
	Token         string              `json:"token"`
	CurrentUserID *int64              `json:"current_user_id"`
	Flash         *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"flash"`
	User *struct {
		ID           int64  `json:"id"`
		Name         string `json:"name"`
		Email        string `json:"email"`
		PasswordHash string `json:"password_hash"`
	} `json:"user"`
	Page *struct {
		Users []struct {
			ID int64 `json:"id"`
		} `json:"users"`
		Page        int    `json:"page"`
		PerPage     int    `json:"per_page"`
		TotalPages  int    `json:"total_pages"`
		HasPrevious bool   `json:"has_previous"`
		HasNext     bool   `json:"has_next"`
		PreviousURL string `json:"previous_url"`
		NextURL     string `json:"next_url"`
	} `json:"page"`
}

func decodeView(t *testing.T, body []byte) testView {
	t.Helper()
	var v testView
	require.NoError(t, json.Unmarshal(body, &v), string(body))
	return v
}
