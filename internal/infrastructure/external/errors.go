package external

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const maxErrorBody = 512

// authStatusPattern finds a 401/403 status quoted in an SDK error message
var authStatusPattern = regexp.MustCompile(`(?:status|code|error)[\s:=]*(?:code[\s:=]*)?(?:401|403)\b`)

// MissingKey reports an engine that has no credential configured
func MissingKey(engine string) error {
	return fmt.Errorf("%w: %s API key is not configured", entities.ErrAuthentication, engine)
}

// StatusError maps a non-2xx engine response onto the pipeline taxonomy.
// Rejected credentials become ErrAuthentication, everything else
// ErrEngineUnavailable.
func StatusError(engine string, status int, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s returned status %d: %s", entities.ErrAuthentication, engine, status, msg)
	default:
		return fmt.Errorf("%w: %s returned status %d: %s", entities.ErrEngineUnavailable, engine, status, msg)
	}
}

// Unavailable wraps a transport or decoding failure
func Unavailable(engine string, err error) error {
	return fmt.Errorf("%w: %s: %v", entities.ErrEngineUnavailable, engine, err)
}

// ClassifySDKError maps an SDK error that carried no typed HTTP status by
// inspecting the message
func ClassifySDKError(engine string, err error) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	if authStatusPattern.MatchString(errStr) ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "unauthenticated") ||
		strings.Contains(errStr, "permission_denied") ||
		strings.Contains(errStr, "api key not valid") ||
		strings.Contains(errStr, "invalid api key") ||
		strings.Contains(errStr, "authentication") {
		return fmt.Errorf("%w: %s: %v", entities.ErrAuthentication, engine, err)
	}
	return Unavailable(engine, err)
}
