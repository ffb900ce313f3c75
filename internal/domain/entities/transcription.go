package entities

// UnknownLanguage is stored when the engine does not report a language
const UnknownLanguage = "unknown"

// Transcription is what a transcription engine returns for one audio file
type Transcription struct {
	Text     string    `json:"transcript"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// ParsedSummary is the structured form of a generative-engine response.
// RawResponse keeps the original text so a parse can be audited or redone
// without calling the engine again.
type ParsedSummary struct {
	Summary      string   `json:"summary"`
	KeyDecisions []string `json:"key_decisions"`
	ActionItems  []string `json:"action_items"`
	RawResponse  string   `json:"raw_response"`
}

// AudioObject describes a stored audio file
type AudioObject struct {
	Name        string
	Size        int64
	ContentType string
}

// MeetingStage names a pipeline stage in events and logs
type MeetingStage string

const (
	MeetingStageUpload        MeetingStage = "uploaded"
	MeetingStageTranscription MeetingStage = "transcribed"
	MeetingStageSummarization MeetingStage = "summarized"
)
