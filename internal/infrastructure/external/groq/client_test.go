package groq

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func newTestClient(url, key string) *Client {
	return NewClient(&config.GroqConfig{
		APIKey:      key,
		BaseURL:     url + "/",
		Model:       "test-model",
		Temperature: 0.3,
		MaxTokens:   100,
	}, nil)
}

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer k" {
			t.Errorf("auth header = %q", r.Header.Get("Authorization"))
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Error(err)
			return
		}
		if req.Model != "test-model" || len(req.Messages) != 1 || req.Messages[0].Content != "prompt" {
			t.Errorf("request = %+v", req)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"SUMMARY: ok"}}]}`))
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL, "k").Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "SUMMARY: ok" {
		t.Errorf("answer = %q", got)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"rejected key", http.StatusUnauthorized, `{"error":"bad key"}`, entities.ErrAuthentication},
		{"server error", http.StatusBadGateway, `oops`, entities.ErrEngineUnavailable},
		{"no choices", http.StatusOK, `{"choices":[]}`, entities.ErrEngineUnavailable},
		{"garbage", http.StatusOK, `not json`, entities.ErrEngineUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, "k").Generate(context.Background(), "p")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateWithoutKey(t *testing.T) {
	_, err := newTestClient("http://127.0.0.1:1", "").Generate(context.Background(), "p")
	if !errors.Is(err, entities.ErrAuthentication) {
		t.Errorf("err = %v, want ErrAuthentication", err)
	}
}

func TestGenerateUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, "k").Generate(context.Background(), "p")
	if !errors.Is(err, entities.ErrEngineUnavailable) {
		t.Errorf("err = %v, want ErrEngineUnavailable", err)
	}
}
