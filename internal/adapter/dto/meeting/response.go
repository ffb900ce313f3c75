package meeting

import "time"

// SegmentResponse is one timed piece of transcript
type SegmentResponse struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// MeetingResponse mirrors the persisted meeting document. Fields that were
// never produced are null.
type MeetingResponse struct {
	MeetingID        string            `json:"meeting_id"`
	Status           string            `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	Transcript       *string           `json:"transcript"`
	Segments         []SegmentResponse `json:"segments"`
	Language         *string           `json:"language"`
	Summary          *string           `json:"summary"`
	KeyDecisions     []string          `json:"key_decisions"`
	ActionItems      []string          `json:"action_items"`
	SummaryTimestamp *time.Time        `json:"summary_timestamp"`
}

// CreateMeetingResponse is returned after an upload
type CreateMeetingResponse struct {
	MeetingID string    `json:"meeting_id"`
	Filename  string    `json:"filename"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MeetingListItemResponse is one row of the meeting list
type MeetingListItemResponse struct {
	MeetingID     string    `json:"meeting_id"`
	CreatedAt     time.Time `json:"created_at"`
	HasTranscript bool      `json:"has_transcript"`
	HasSummary    bool      `json:"has_summary"`
}

// MeetingListResponse wraps the meeting list
type MeetingListResponse struct {
	Meetings []MeetingListItemResponse `json:"meetings"`
	Total    int                       `json:"total"`
}

// TranscriptionResponse is returned by the transcription stage
type TranscriptionResponse struct {
	MeetingID  string            `json:"meeting_id"`
	Transcript string            `json:"transcript"`
	Language   string            `json:"language"`
	Segments   []SegmentResponse `json:"segments"`
	AudioFile  string            `json:"audio_file"`
}

// SummaryResponse is returned by the summarization stage
type SummaryResponse struct {
	MeetingID        string    `json:"meeting_id"`
	Summary          string    `json:"summary"`
	KeyDecisions     []string  `json:"key_decisions"`
	ActionItems      []string  `json:"action_items"`
	RawResponse      string    `json:"raw_response"`
	SummaryTimestamp time.Time `json:"summary_timestamp"`
}

// ProcessResponse combines both stages. Summary is null when the second
// stage failed.
type ProcessResponse struct {
	MeetingID     string                 `json:"meeting_id"`
	Transcription *TranscriptionResponse `json:"transcription"`
	Summary       *SummaryResponse       `json:"summary"`
}

// TranscriptResponse is a rendered transcript
type TranscriptResponse struct {
	MeetingID  string `json:"meeting_id"`
	Format     string `json:"format"`
	Language   string `json:"language"`
	Transcript string `json:"transcript"`
}

// CustomSummaryResponse is the raw answer to custom instructions
type CustomSummaryResponse struct {
	MeetingID string `json:"meeting_id"`
	Summary   string `json:"summary"`
}

// HealthResponse is returned by the health endpoint
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
}
