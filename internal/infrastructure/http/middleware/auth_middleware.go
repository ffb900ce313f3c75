package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-summarizer/errors"
	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

const (
	// ClaimsContextKey holds the validated *jwt.Claims in the echo context
	ClaimsContextKey = "claims"
	// SubjectContextKey holds the token subject in the echo context
	SubjectContextKey = "subject"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// EchoAuth returns an Echo middleware that requires a valid bearer token
// and sets "claims" and "subject" into the echo context
func EchoAuth(validator TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return writeAuthError(c, errors.ErrUnauthenticated())
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				appErr := errors.ErrInvalidToken()
				appErr.Raw = err
				return writeAuthError(c, appErr)
			}

			c.Set(ClaimsContextKey, claims)
			c.Set(SubjectContextKey, claims.Subject)

			return next(c)
		}
	}
}

// GetSubject returns the authenticated subject, if any
func GetSubject(c echo.Context) (string, bool) {
	subject, ok := c.Get(SubjectContextKey).(string)
	return subject, ok
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

func writeAuthError(c echo.Context, appErr errors.AppError) error {
	return c.JSON(appErr.HTTPCode, map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
	})
}
