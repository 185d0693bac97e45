package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/models"
)

var testAuthConfig = config.Auth{
	PasswordCost:  bcrypt.MinCost,
	TokenSignKey:  "test-sign-key",
	TokenIssuer:   "user-directory-test",
	TokenDuration: time.Hour,
}

type testEnv struct {
	users       store.UserStore
	registry    store.SessionRegistry
	credentials CredentialService
	accounts    AccountService
	sessions    SessionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := store.NewMemoryUserStore(logger.Nop())
	registry := store.NewMemorySessionRegistry()
	credentials, err := NewCredentialService(registry, testAuthConfig, logger.Nop())
	require.NoError(t, err)

	return &testEnv{
		users:       users,
		registry:    registry,
		credentials: credentials,
		accounts:    NewAccountService(users, credentials, models.DefaultPageSize, logger.Nop()),
		sessions:    NewSessionService(users, credentials, logger.Nop()),
	}
}

// signUp creates a user through the account service and returns it together
// with the session context its token resolves to.
func (e *testEnv) signUp(t *testing.T, name, email, password string) (models.User, session.Context) {
	t.Helper()
	ctx := context.Background()

	out, err := e.accounts.Create(ctx, session.Anonymous(), models.SignupForm{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: password,
	})
	require.NoError(t, err)
	require.Equal(t, models.OutcomeRedirectToShow, out.Kind, "errors: %v", out.Errors)
	require.NotNil(t, out.Token)

	sc, err := e.sessions.Resolve(ctx, out.Token.String())
	require.NoError(t, err)
	require.True(t, sc.IsSignedIn())

	return *out.User, sc
}

func (e *testEnv) seed(t *testing.T, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, err := e.users.Create(context.Background(), fmt.Sprintf("User %d", i), fmt.Sprintf("user-%d@example.com", i), "h")
		require.NoError(t, err)
	}
}

func (e *testEnv) count(t *testing.T) int {
	t.Helper()
	n, err := e.users.Count(context.Background())
	require.NoError(t, err)
	return n
}

func strPtr(s string) *string { return &s }
