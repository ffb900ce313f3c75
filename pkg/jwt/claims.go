package jwt

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents API token claims
type Claims struct {
	TokenID uuid.UUID `json:"tid"`
	Scope   string    `json:"scope,omitempty"`
	jwt.RegisteredClaims
}
