package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/user-directory/models"
)

// ErrInvalidTokenParams is returned by GenerateSessionToken for missing inputs.
var ErrInvalidTokenParams = errors.New("invalid params for generating session token")

// GenerateSessionToken creates a signed HMAC-SHA256 session token.
//
// The token carries the standard claims:
//   - Issuer    (iss): the service that issued the token
//   - Subject   (sub): the user id encoded as a decimal string
//   - ID        (jti): tokenID, the session registry key
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// Example usage:
//
//	token, err := utils.GenerateSessionToken("user-directory", 42, id, time.Hour, "secret", time.Now())
func GenerateSessionToken(issuer string, userID int64, tokenID string, tokenDuration time.Duration, signKey string, now time.Time) (models.SessionToken, error) {
	if issuer == "" || tokenID == "" || tokenDuration <= 0 || signKey == "" {
		return models.SessionToken{}, ErrInvalidTokenParams
	}

	expiresAt := now.Add(tokenDuration)
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        tokenID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during signing session token: %w", err)
	}

	return models.SessionToken{
		SignedString: tokenString,
		TokenID:      tokenID,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseSessionToken validates tokenString and extracts its identity.
//
// Validation covers the HS256 signature, the issuer, the expiry and the
// presence of a numeric subject and a token id.
func ParseSessionToken(tokenString, signKey, issuer string) (models.SessionToken, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.SessionToken{}, errors.New("empty subject error")
	}
	if claims.ID == "" {
		return models.SessionToken{}, errors.New("empty token id error")
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return models.SessionToken{}, fmt.Errorf("error occurred during converting subject to user id: %w", err)
	}

	return models.SessionToken{
		SignedString: tokenString,
		TokenID:      claims.ID,
		UserID:       userID,
		ExpiresAt:    claims.ExpiresAt.Time,
	}, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
