package external

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func TestStatusError(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, entities.ErrAuthentication},
		{http.StatusForbidden, entities.ErrAuthentication},
		{http.StatusTooManyRequests, entities.ErrEngineUnavailable},
		{http.StatusInternalServerError, entities.ErrEngineUnavailable},
		{http.StatusBadRequest, entities.ErrEngineUnavailable},
	}

	for _, tt := range tests {
		err := StatusError("groq", tt.status, []byte("nope"))
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: err = %v, want %v", tt.status, err, tt.want)
		}
	}
}

func TestStatusErrorTruncatesBody(t *testing.T) {
	err := StatusError("groq", 500, []byte(strings.Repeat("x", 2000)))
	if len(err.Error()) > maxErrorBody+100 {
		t.Errorf("error message not truncated: %d chars", len(err.Error()))
	}
}

func TestClassifySDKError(t *testing.T) {
	if ClassifySDKError("gemini", nil) != nil {
		t.Error("nil error should stay nil")
	}
	if err := ClassifySDKError("gemini", errors.New("Error 403, PERMISSION_DENIED")); !errors.Is(err, entities.ErrAuthentication) {
		t.Errorf("err = %v, want ErrAuthentication", err)
	}
	if err := ClassifySDKError("gemini", errors.New("connection reset")); !errors.Is(err, entities.ErrEngineUnavailable) {
		t.Errorf("err = %v, want ErrEngineUnavailable", err)
	}
	if err := ClassifySDKError("assemblyai", errors.New("status code: 401")); !errors.Is(err, entities.ErrAuthentication) {
		t.Errorf("err = %v, want ErrAuthentication", err)
	}
	if err := ClassifySDKError("assemblyai", errors.New("upload truncated after 4013 bytes")); !errors.Is(err, entities.ErrEngineUnavailable) {
		t.Errorf("err = %v, want ErrEngineUnavailable", err)
	}
	if err := ClassifySDKError("gemini", errors.New("request 14031 failed with status 500")); !errors.Is(err, entities.ErrEngineUnavailable) {
		t.Errorf("err = %v, want ErrEngineUnavailable", err)
	}
	if err := MissingKey("groq"); !errors.Is(err, entities.ErrAuthentication) {
		t.Errorf("MissingKey = %v", err)
	}
}
