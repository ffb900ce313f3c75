package meeting

import (
	"context"
	"io"
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// Service drives a meeting through upload, transcription and summarization.
// Every call runs synchronously; each stage persists its result before
// returning.
type Service interface {
	CreateMeeting(ctx context.Context, in UploadInput) (*entities.MeetingRecord, error)
	Transcribe(ctx context.Context, meetingID string, opts TranscribeOptions) (*TranscribeResult, error)
	Summarize(ctx context.Context, meetingID string) (*SummarizeResult, error)
	// Process runs both stages. When summarization fails the returned result
	// still carries the persisted transcription alongside the error.
	Process(ctx context.Context, meetingID string, opts TranscribeOptions) (*ProcessResult, error)
	CustomSummary(ctx context.Context, meetingID, instructions string) (string, error)
	GetMeeting(ctx context.Context, meetingID string) (*entities.MeetingRecord, error)
	ListMeetings(ctx context.Context) ([]entities.MeetingListItem, error)
}

// UploadInput is an audio file handed to CreateMeeting
type UploadInput struct {
	Filename    string
	Size        int64
	ContentType string
	Reader      io.Reader
}

// TranscribeOptions tunes a transcription run
type TranscribeOptions struct {
	// Language is an optional language hint; empty lets the engine detect it
	Language string
}

// TranscribeResult is returned by the transcription stage
type TranscribeResult struct {
	MeetingID  string             `json:"meeting_id"`
	Transcript string             `json:"transcript"`
	Language   string             `json:"language"`
	Segments   []entities.Segment `json:"segments"`
	AudioFile  string             `json:"audio_file"`
}

// SummarizeResult is returned by the summarization stage
type SummarizeResult struct {
	MeetingID        string    `json:"meeting_id"`
	Summary          string    `json:"summary"`
	KeyDecisions     []string  `json:"key_decisions"`
	ActionItems      []string  `json:"action_items"`
	RawResponse      string    `json:"raw_response"`
	SummaryTimestamp time.Time `json:"summary_timestamp"`
}

// ProcessResult combines both stage results
type ProcessResult struct {
	Transcription *TranscribeResult `json:"transcription"`
	Summary       *SummarizeResult  `json:"summary"`
}

// Options configures upload validation and defaults
type Options struct {
	AllowedExtensions []string
	MaxUploadBytes    int64
	// DefaultLanguage is used when a transcription request carries no hint
	DefaultLanguage string
}

// DefaultAllowedExtensions are the audio containers accepted for upload
var DefaultAllowedExtensions = []string{"wav", "mp3", "m4a", "flac", "ogg", "webm"}

// DefaultMaxUploadBytes is the largest accepted audio file (100 MiB)
const DefaultMaxUploadBytes int64 = 100 * 1024 * 1024
