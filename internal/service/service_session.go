package service

import (
	"context"
	"errors"
	"strings"

	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/session"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/internal/validators"
	"github.com/MKhiriev/user-directory/models"
)

// NoticeInvalidCredentials is shown for every failed sign-in, whether the
// email is unknown or the password is wrong.
const NoticeInvalidCredentials = "Invalid email/password combination."

type sessionService struct {
	users       store.UserStore
	credentials CredentialService
	validator   validators.Validator

	logger *logger.Logger
}

// NewSessionService constructs the [SessionService].
func NewSessionService(users store.UserStore, credentials CredentialService, logger *logger.Logger) SessionService {
	return &sessionService{
		users:       users,
		credentials: credentials,
		validator:   validators.NewUserValidator(),
		logger:      logger,
	}
}

func (s *sessionService) New(ctx context.Context, sc session.Context) (models.Outcome, error) {
	return models.Outcome{Kind: models.OutcomeRenderSignIn, User: &models.User{}}, nil
}

func invalidSignIn(email string) models.Outcome {
	return models.Outcome{
		Kind:  models.OutcomeRenderSignIn,
		User:  &models.User{Email: email},
		Flash: &models.Flash{Kind: models.FlashError, Message: NoticeInvalidCredentials},
	}
}

func (s *sessionService) SignIn(ctx context.Context, form models.SignInForm) (models.Outcome, error) {
	log := logger.FromContext(ctx)

	form.Email = strings.TrimSpace(form.Email)
	if err := s.validator.Validate(ctx, form); err != nil {
		return invalidSignIn(form.Email), nil
	}

	user, err := s.users.FetchByEmail(ctx, form.Email)
	if errors.Is(err, store.ErrNotFound) {
		return invalidSignIn(form.Email), nil
	}
	if err != nil {
		log.Err(err).Str("func", "sessionService.SignIn").Msg("error fetching user by email")
		return models.Outcome{}, err
	}

	if !s.credentials.Verify(ctx, form.Password, user.PasswordHash) {
		log.Debug().Str("func", "sessionService.SignIn").Int64("id", user.ID).Msg("wrong password")
		return invalidSignIn(form.Email), nil
	}

	token, err := s.credentials.IssueSession(ctx, user.ID)
	if err != nil {
		return models.Outcome{}, err
	}

	log.Info().Str("func", "sessionService.SignIn").Int64("id", user.ID).Msg("user signed in")

	return models.Outcome{
		Kind:           models.OutcomeRedirectToShow,
		User:           &user,
		RedirectUserID: user.ID,
		Token:          &token,
	}, nil
}

// SignOut revokes the caller's token, if any, and sends them home.
func (s *sessionService) SignOut(ctx context.Context, sc session.Context) (models.Outcome, error) {
	if tokenID := sc.TokenID(); tokenID != "" {
		if err := s.credentials.RevokeSession(ctx, tokenID); err != nil {
			return models.Outcome{}, err
		}
	}

	return models.Outcome{Kind: models.OutcomeRedirectToRoot, SignedOut: true}, nil
}

func (s *sessionService) Resolve(ctx context.Context, signedToken string) (session.Context, error) {
	if signedToken == "" {
		return session.Anonymous(), nil
	}

	token, err := s.credentials.ResolveSession(ctx, signedToken)
	if errors.Is(err, ErrTokenIsExpiredOrInvalid) {
		return session.Anonymous(), nil
	}
	if err != nil {
		return session.Anonymous(), err
	}

	// the token only references the user; it must still exist
	user, err := s.users.Fetch(ctx, token.UserID)
	if errors.Is(err, store.ErrNotFound) {
		logger.FromContext(ctx).Warn().Str("func", "sessionService.Resolve").Int64("id", token.UserID).Msg("session for a vanished user")
		return session.Anonymous(), nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Resolve").Msg("error re-validating session user")
		return session.Anonymous(), err
	}

	return session.SignedIn(user.ID).WithTokenID(token.TokenID), nil
}
