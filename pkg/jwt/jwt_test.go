package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	m := NewManager("secret", "issuer-a", time.Hour)

	token, err := m.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Subject != "ops" {
		t.Errorf("subject = %q, want ops", claims.Subject)
	}
	if claims.Issuer != "issuer-a" {
		t.Errorf("issuer = %q, want issuer-a", claims.Issuer)
	}
	if claims.ExpiresAt == nil {
		t.Error("expected expiry to be set")
	}
}

func TestValidateRejects(t *testing.T) {
	m := NewManager("secret", "issuer-a", time.Hour)
	token, err := m.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	expired := NewManager("secret", "issuer-a", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-time.Hour) }
	oldToken, err := expired.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	tests := []struct {
		name    string
		manager *Manager
		token   string
	}{
		{"wrong secret", NewManager("other", "issuer-a", time.Hour), token},
		{"wrong issuer", NewManager("secret", "issuer-b", time.Hour), token},
		{"expired", m, oldToken},
		{"garbage", m, "not-a-token"},
		{"tampered", m, token[:len(token)-2] + "xx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.manager.ValidateToken(tt.token); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestGenerateTokenRequiresSubjectAndSecret(t *testing.T) {
	if _, err := NewManager("secret", "", 0).GenerateToken(""); err == nil {
		t.Error("expected error for empty subject")
	}
	_, err := NewManager("", "", 0).GenerateToken("ops")
	if err == nil || !strings.Contains(err.Error(), "secret") {
		t.Errorf("expected secret error, got %v", err)
	}
}

func TestZeroExpiryNeverExpires(t *testing.T) {
	m := NewManager("secret", "", 0)
	token, err := m.GenerateToken("ops")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Errorf("expected no expiry, got %v", claims.ExpiresAt)
	}
}
