package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/user-directory/internal/config"
	"github.com/MKhiriev/user-directory/internal/logger"
	"github.com/MKhiriev/user-directory/internal/store"
	"github.com/MKhiriev/user-directory/internal/utils"
	"github.com/MKhiriev/user-directory/models"
)

// credentialService hashes secrets with bcrypt and issues HS256 session
// tokens whose ids are tracked in a SessionRegistry. A token resolves only
// while its id is registered for the same user.
type credentialService struct {
	sessions    store.SessionRegistry
	idGenerator utils.IDGenerator

	// passwordCost is the bcrypt work factor.
	passwordCost int

	tokenSignKey  string
	tokenIssuer   string
	tokenDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewCredentialService constructs a [CredentialService] from the auth config.
func NewCredentialService(sessions store.SessionRegistry, cfg config.Auth, logger *logger.Logger) (CredentialService, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrMissingTokenSignKey
	}

	cost := cfg.PasswordCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	return &credentialService{
		sessions:      sessions,
		idGenerator:   utils.NewUUIDGenerator(),
		passwordCost:  cost,
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		now:           time.Now,
		logger:        logger,
	}, nil
}

func (c *credentialService) Hash(ctx context.Context, secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), c.passwordCost)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "credentialService.Hash").Msg("error hashing password")
		return "", fmt.Errorf("%w: %w", ErrHashingPassword, err)
	}
	return string(hash), nil
}

func (c *credentialService) Verify(ctx context.Context, secret, credentialHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(credentialHash), []byte(secret)) == nil
}

func (c *credentialService) IssueSession(ctx context.Context, userID int64) (models.SessionToken, error) {
	log := logger.FromContext(ctx)

	token, err := utils.GenerateSessionToken(c.tokenIssuer, userID, c.idGenerator.Generate(), c.tokenDuration, c.tokenSignKey, c.now())
	if err != nil {
		log.Err(err).Str("func", "credentialService.IssueSession").Msg("error generating session token")
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = c.sessions.Register(ctx, token.Session()); err != nil {
		log.Err(err).Str("func", "credentialService.IssueSession").Msg("error registering session")
		return models.SessionToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

func (c *credentialService) ResolveSession(ctx context.Context, signedToken string) (models.SessionToken, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ParseSessionToken(signedToken, c.tokenSignKey, c.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Str("func", "credentialService.ResolveSession").Msg("session token rejected")
		return models.SessionToken{}, ErrTokenIsExpiredOrInvalid
	}

	session, err := c.sessions.Lookup(ctx, token.TokenID)
	if errors.Is(err, store.ErrNotFound) {
		log.Debug().Str("func", "credentialService.ResolveSession").Msg("session is revoked or expired")
		return models.SessionToken{}, ErrTokenIsExpiredOrInvalid
	}
	if err != nil {
		log.Err(err).Str("func", "credentialService.ResolveSession").Msg("error looking up session")
		return models.SessionToken{}, err
	}

	if session.UserID != token.UserID {
		log.Warn().Str("func", "credentialService.ResolveSession").Msg("session registered for another user")
		return models.SessionToken{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

func (c *credentialService) RevokeSession(ctx context.Context, tokenID string) error {
	if err := c.sessions.Revoke(ctx, tokenID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "credentialService.RevokeSession").Msg("error revoking session")
		return err
	}
	return nil
}
