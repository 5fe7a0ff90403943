// Package auth implements the three trust primitives of the API: bearer
// token issue/verify, password hashing, and the ownership/role authorization
// gate. Nothing in here touches the database.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/globetrotter/backend/internal/domain"
)

// Identity is the verified claim a token carries: who is calling and with
// what role. It is trusted as-is for the lifetime of the token — a role
// change after issuance is not visible until the user logs in again.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   domain.Role
}

// claims is the JWT payload. RegisteredClaims supplies exp/iat handling;
// jwt.ParseWithClaims rejects expired tokens automatically.
type claims struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 bearer tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager with the given signing secret and
// token lifetime.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a new token for the user, valid for the configured TTL.
func (m *TokenManager) Issue(user domain.User) (string, error) {
	now := time.Now()
	c := claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.TokenManager.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string and returns the identity it
// carries. Any failure — bad signature, wrong algorithm, expiry, garbage
// input — is reported as domain.ErrUnauthenticated.
func (m *TokenManager) Verify(tokenStr string) (Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, fmt.Errorf("auth.TokenManager.Verify: %w", domain.ErrUnauthenticated)
	}

	userID, err := uuid.Parse(c.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("auth.TokenManager.Verify: bad subject: %w", domain.ErrUnauthenticated)
	}

	return Identity{UserID: userID, Email: c.Email, Role: c.Role}, nil
}
