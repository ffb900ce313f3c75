package meeting

// TranscribeRequest is the optional body of the transcribe and process endpoints
type TranscribeRequest struct {
	// Language is an ISO-639-1 hint such as "en"; empty enables detection
	Language string `json:"language" validate:"omitempty,min=2,max=16"`
}

// CustomSummaryRequest carries free-form instructions for a one-off summary
type CustomSummaryRequest struct {
	Prompt string `json:"prompt" validate:"required,max=8000"`
}

// TranscriptQuery selects the rendering of a transcript
type TranscriptQuery struct {
	Format string `query:"format" validate:"omitempty,oneof=text timestamped"`
}
