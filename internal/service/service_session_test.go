// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/mock"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/models"
)

func TestSessionService_New(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.sessions.New(context.Background(), session.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRenderSignIn, out.Kind)
}

func TestSessionService_SignIn(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.signUp(t, "Das Tan", "das@tan.com", "dastanko")
	ctx := context.Background()

	out, err := env.sessions.SignIn(ctx, models.SignInForm{Email: " DAS@tan.com ", Password: "dastanko"})
	require.NoError(t, err)

	require.Equal(t, models.OutcomeRedirectToShow, out.Kind)
	assert.Equal(t, user.ID, out.RedirectUserID)
	require.NotNil(t, out.Token)

	sc, err := env.sessions.Resolve(ctx, out.Token.String())
	require.NoError(t, err)
	id, ok := sc.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, user.ID, id)
	assert.Equal(t, out.Token.TokenID, sc.TokenID())
}

func TestSessionService_SignIn_Failures(t *testing.T) {
	env := newTestEnv(t)
	env.signUp(t, "Das Tan", "das@tan.com", "dastanko")

	tests := []struct {
		name string
		form models.SignInForm
	}{
		{name: "wrong password", form: models.SignInForm{Email: "das@tan.com", Password: "wrong-password"}},
		{name: "unknown email", form: models.SignInForm{Email: "nobody@tan.com", Password: "dastanko"}},
		{name: "blank", form: models.SignInForm{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.sessions.SignIn(context.Background(), tt.form)
			require.NoError(t, err)

			assert.Equal(t, models.OutcomeRenderSignIn, out.Kind)
			require.NotNil(t, out.Flash)
			assert.Equal(t, NoticeInvalidCredentials, out.Flash.Message, "all failures look alike")
			assert.Nil(t, out.Token)
		})
	}
}

func TestSessionService_SignOut_RevokesToken(t *testing.T) {
	env := newTestEnv(t)
	_, sc := env.signUp(t, "Das Tan", "das@tan.com", "dastanko")
	ctx := context.Background()

	signIn, err := env.sessions.SignIn(ctx, models.SignInForm{Email: "das@tan.com", Password: "dastanko"})
	require.NoError(t, err)
	token := signIn.Token.String()

	resolved, err := env.sessions.Resolve(ctx, token)
	require.NoError(t, err)

	out, err := env.sessions.SignOut(ctx, resolved)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRedirectToRoot, out.Kind)
	assert.True(t, out.SignedOut)

	after, err := env.sessions.Resolve(ctx, token)
	require.NoError(t, err)
	assert.False(t, after.IsSignedIn(), "a revoked token never resolves")

	other, err := env.sessions.Resolve(ctx, "")
	require.NoError(t, err)
	assert.False(t, other.IsSignedIn())

	// the signup session is independent of the revoked one
	assert.True(t, sc.IsSignedIn())
}

func TestSessionService_SignOut_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewSessionService(mock.NewMockUserStore(ctrl), mock.NewMockCredentialService(ctrl), logger.Nop())

	out, err := svc.SignOut(context.Background(), session.Anonymous())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRedirectToRoot, out.Kind)
}

func TestSessionService_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserStore(ctrl)
	credentials := mock.NewMockCredentialService(ctrl)
	svc := NewSessionService(users, credentials, logger.Nop())
	ctx := context.Background()

	token := models.SessionToken{SignedString: "signed", TokenID: "jti", UserID: 7}
	fault := errors.New("store down")

	tests := []struct {
		name       string
		setup      func()
		wantSigned bool
		wantErr    error
	}{
		{
			name: "valid",
			setup: func() {
				credentials.EXPECT().ResolveSession(ctx, "signed").Return(token, nil)
				users.EXPECT().Fetch(ctx, int64(7)).Return(models.User{ID: 7}, nil)
			},
			wantSigned: true,
		},
		{
			name: "invalid token",
			setup: func() {
				credentials.EXPECT().ResolveSession(ctx, "signed").Return(models.SessionToken{}, ErrTokenIsExpiredOrInvalid)
			},
		},
		{
			name: "vanished user",
			setup: func() {
				credentials.EXPECT().ResolveSession(ctx, "signed").Return(token, nil)
				users.EXPECT().Fetch(ctx, int64(7)).Return(models.User{}, store.ErrNotFound)
			},
		},
		{
			name: "registry fault",
			setup: func() {
				credentials.EXPECT().ResolveSession(ctx, "signed").Return(models.SessionToken{}, fault)
			},
			wantErr: fault,
		},
		{
			name: "store fault",
			setup: func() {
				credentials.EXPECT().ResolveSession(ctx, "signed").Return(token, nil)
				users.EXPECT().Fetch(ctx, int64(7)).Return(models.User{}, fault)
			},
			wantErr: fault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			sc, err := svc.Resolve(ctx, "signed")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantSigned, sc.IsSignedIn())
			if tt.wantSigned {
				assert.Equal(t, "jti", sc.TokenID())
			}
		})
	}
}

func TestSessionService_SignIn_StoreFaultPropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mock.NewMockUserStore(ctrl)
	svc := NewSessionService(users, mock.NewMockCredentialService(ctrl), logger.Nop())

	fault := errors.New("store down")
	users.EXPECT().FetchByEmail(gomock.Any(), "das@tan.com").Return(models.User{}, fault)

	_, err := svc.SignIn(context.Background(), models.SignInForm{Email: "das@tan.com", Password: "dastanko"})
	assert.Same(t, fault, err)
}
