package gateways

import (
	"context"
	"io"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// TranscriptionGateway turns an audio stream into text, time-stamped
// segments and a language code. Implementations never retry.
type TranscriptionGateway interface {
	// Transcribe fails with entities.ErrEngineUnavailable when the engine
	// cannot run, entities.ErrSourceNotFound when the audio is missing and
	// entities.ErrAuthentication when no credential is configured.
	Transcribe(ctx context.Context, audio io.Reader, filename, languageHint string) (*entities.Transcription, error)
	Name() string
}

// SummaryGateway sends a prompt to a generative-text engine and returns its
// raw answer
type SummaryGateway interface {
	// Generate fails with entities.ErrAuthentication when no credential is
	// configured or it is rejected, entities.ErrEngineUnavailable otherwise.
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// StageNotifier announces that a pipeline stage has been persisted
type StageNotifier interface {
	Notify(ctx context.Context, meetingID string, stage entities.MeetingStage) error
}

// NopNotifier discards every stage event
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, string, entities.MeetingStage) error { return nil }
