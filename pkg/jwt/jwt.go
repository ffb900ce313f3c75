package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ScopeMeetings grants access to the meeting API
const ScopeMeetings = "meetings"

// Manager issues and validates HS256 API tokens
type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewManager creates a new JWT manager. A zero expiry issues tokens that
// never expire.
func NewManager(secret, issuer string, expiry time.Duration) *Manager {
	if issuer == "" {
		issuer = "meeting-summarizer"
	}
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: issuer,
		now:    time.Now,
	}
}

// GenerateToken issues a token for subject
func (m *Manager) GenerateToken(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("subject is required")
	}
	if len(m.secret) == 0 {
		return "", errors.New("signing secret is not configured")
	}

	now := m.now()
	claims := &Claims{
		TokenID: uuid.New(),
		Scope:   ScopeMeetings,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   subject,
		},
	}
	if m.expiry > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(m.expiry))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken validates and parses a token
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != ScopeMeetings {
		return nil, fmt.Errorf("token scope %q not accepted", claims.Scope)
	}

	return claims, nil
}

// GetExpiry returns the token lifetime
func (m *Manager) GetExpiry() time.Duration {
	return m.expiry
}
