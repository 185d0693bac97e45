package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/mock"
	"github.com/MKhiriev/user-directory/internal/service"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/models"
)

// newMockedHandler wires mocked services; every request resolves to sc.
func newMockedHandler(t *testing.T, sc session.Context) (*Handler, *mock.MockAccountService) {
	t.Helper()
	ctrl := gomock.NewController(t)

	accounts := mock.NewMockAccountService(ctrl)
	sessions := mock.NewMockSessionService(ctrl)
	sessions.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(sc, nil).AnyTimes()

	h := NewHandler(&service.Services{Accounts: accounts, Sessions: sessions}, config.Server{}, logger.Nop())
	return h, accounts
}

func TestStoreFaultsBecomeServerErrors(t *testing.T) {
	fault := fmt.Errorf("%w: connection reset", store.ErrExecutingQuery)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		expect func(a *mock.MockAccountService)
	}{
		{
			name: "index", method: http.MethodGet, path: "/users?page=3",
			expect: func(a *mock.MockAccountService) {
				a.EXPECT().Index(gomock.Any(), gomock.Any(), 3).Return(models.Outcome{}, fault)
			},
		},
		{
			name: "show", method: http.MethodGet, path: "/users/7",
			expect: func(a *mock.MockAccountService) {
				a.EXPECT().Show(gomock.Any(), gomock.Any(), int64(7)).Return(models.Outcome{}, fault)
			},
		},
		{
			name: "create", method: http.MethodPost, path: "/users", body: `{"user":{"name":"A"}}`,
			expect: func(a *mock.MockAccountService) {
				a.EXPECT().Create(gomock.Any(), gomock.Any(), models.SignupForm{Name: "A"}).Return(models.Outcome{}, fault)
			},
		},
		{
			name: "update", method: http.MethodPatch, path: "/users/7", body: `{"user":{"name":"A"}}`,
			expect: func(a *mock.MockAccountService) {
				a.EXPECT().Update(gomock.Any(), gomock.Any(), int64(7), gomock.Any()).Return(models.Outcome{}, fault)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, accounts := newMockedHandler(t, session.SignedIn(7))
			tt.expect(accounts)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.Init().ServeHTTP(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.NotContains(t, rr.Body.String(), "connection reset")
		})
	}
}

func TestUpdate_PassesOnlySubmittedFields(t *testing.T) {
	h, accounts := newMockedHandler(t, session.SignedIn(7))

	var got models.EditForm
	accounts.EXPECT().Update(gomock.Any(), gomock.Any(), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ session.Context, _ int64, form models.EditForm) (models.Outcome, error) {
			got = form
			return models.Outcome{Kind: models.OutcomeRedirectToShow, RedirectUserID: 7}, nil
		})

	req := httptest.NewRequest(http.MethodPatch, "/users/7", strings.NewReader("user%5Bemail%5D=new%40example.com&user%5Bpassword%5D="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.PasswordConfirmation)
	require.NotNil(t, got.Email)
	assert.Equal(t, "new@example.com", *got.Email)
	require.NotNil(t, got.Password)
	assert.Empty(t, *got.Password)
}

func TestRenderOutcome(t *testing.T) {
	token := models.SessionToken{SignedString: "signed", UserID: 9, ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name         string
		outcome      models.Outcome
		wantStatus   int
		wantLocation string
		wantHeader   string
		wantBody     string
		wantCookie   bool
	}{
		{
			name:         "require sign in",
			outcome:      models.Outcome{Kind: models.OutcomeRequireSignIn, Flash: &models.Flash{Kind: models.FlashNotice, Message: "n"}},
			wantStatus:   http.StatusFound,
			wantLocation: "/signin",
			wantHeader:   "X-Flash-Notice",
		},
		{
			name:         "redirect home",
			outcome:      models.Outcome{Kind: models.OutcomeRedirectToRoot},
			wantStatus:   http.StatusFound,
			wantLocation: "/",
		},
		{
			name:         "redirect to profile with token",
			outcome:      models.Outcome{Kind: models.OutcomeRedirectToShow, RedirectUserID: 9, Token: &token, Flash: &models.Flash{Kind: models.FlashSuccess, Message: "s"}},
			wantStatus:   http.StatusFound,
			wantLocation: "/users/9",
			wantHeader:   "X-Flash-Success",
			wantBody:     `"token":"signed"`,
			wantCookie:   true,
		},
		{
			name:       "render show uses name as title",
			outcome:    models.Outcome{Kind: models.OutcomeRenderShow, User: &models.User{ID: 2, Name: "Jane", PasswordHash: "secret-hash"}},
			wantStatus: http.StatusOK,
			wantBody:   `"title":"Jane"`,
		},
		{
			name:       "not found",
			outcome:    models.Outcome{Kind: models.OutcomeNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)

			h.renderOutcome(rr, req, tt.outcome)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
			if tt.wantHeader != "" {
				assert.Equal(t, tt.outcome.Flash.Message, rr.Header().Get(tt.wantHeader))
			}
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			assert.NotContains(t, rr.Body.String(), "secret-hash")
			assert.Equal(t, tt.wantCookie, strings.Contains(rr.Header().Get("Set-Cookie"), sessionCookieName+"=signed"))
		})
	}
}
