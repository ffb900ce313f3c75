package app

import (
	"path/filepath"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StoreBackend:        config.StoreFile,
		AudioBackend:        config.AudioLocal,
		TranscriptionEngine: config.EngineAssemblyAI,
		SummaryEngine:       config.EngineGemini,
		Pipeline: config.PipelineConfig{
			UploadDir:         filepath.Join(dir, "uploads"),
			DataDir:           filepath.Join(dir, "data"),
			MaxUploadBytes:    1024,
			AllowedExtensions: []string{"wav"},
		},
		Gemini: config.GeminiConfig{Model: "gemini-2.0-flash"},
		Groq:   config.GroqConfig{BaseURL: "http://localhost", Model: "m", MaxTokens: 10},
	}
}

func TestNewWithLocalBackends(t *testing.T) {
	cfg := testConfig(t)

	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Service == nil {
		t.Fatal("expected service")
	}
	if a.Tokens != nil {
		t.Error("expected auth to be disabled without a secret")
	}
}

func TestNewEnablesTokens(t *testing.T) {
	cfg := testConfig(t)
	cfg.StoreBackend = config.StoreMemory
	cfg.Auth = config.AuthConfig{JWTSecret: "secret", Issuer: "test"}

	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Tokens == nil {
		t.Fatal("expected token manager")
	}
}

func TestEngineSelection(t *testing.T) {
	cfg := testConfig(t)

	tests := []struct {
		transcription string
		summary       string
		wantT         string
		wantS         string
	}{
		{config.EngineAssemblyAI, config.EngineGemini, "assemblyai", "gemini"},
		{config.EngineWhisper, config.EngineGroq, "whisper", "groq"},
	}

	for _, tt := range tests {
		t.Run(tt.wantT+"+"+tt.wantS, func(t *testing.T) {
			cfg.TranscriptionEngine = tt.transcription
			cfg.SummaryEngine = tt.summary

			tr, err := NewTranscriber(cfg, nil)
			if err != nil {
				t.Fatalf("NewTranscriber: %v", err)
			}
			if tr.Name() != tt.wantT {
				t.Errorf("transcriber = %q, want %q", tr.Name(), tt.wantT)
			}

			sm, err := NewSummarizer(cfg, nil)
			if err != nil {
				t.Fatalf("NewSummarizer: %v", err)
			}
			if sm.Name() != tt.wantS {
				t.Errorf("summarizer = %q, want %q", sm.Name(), tt.wantS)
			}
		})
	}

	cfg.TranscriptionEngine = "nope"
	if _, err := NewTranscriber(cfg, nil); err == nil {
		t.Error("expected error for unknown transcription engine")
	}
	cfg.SummaryEngine = "nope"
	if _, err := NewSummarizer(cfg, nil); err == nil {
		t.Error("expected error for unknown summary engine")
	}
}
