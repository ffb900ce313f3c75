package entities

import (
	"fmt"
	"time"
)

// MeetingState is the pipeline position of a meeting, derived from which
// fields of its record are present
type MeetingState string

const (
	MeetingStateUploaded    MeetingState = "uploaded"
	MeetingStateTranscribed MeetingState = "transcribed"
	MeetingStateSummarized  MeetingState = "summarized"
)

// Segment is a time-stamped slice of the transcript, in seconds
type Segment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

// MeetingRecord is the persisted document for one meeting. Optional fields
// stay null until the stage that owns them has run.
type MeetingRecord struct {
	MeetingID        string     `json:"meeting_id" yaml:"meeting_id"`
	CreatedAt        time.Time  `json:"created_at" yaml:"created_at"`
	Transcript       *string    `json:"transcript" yaml:"transcript"`
	Segments         []Segment  `json:"segments" yaml:"segments"`
	Language         *string    `json:"language" yaml:"language"`
	Summary          *string    `json:"summary" yaml:"summary"`
	KeyDecisions     []string   `json:"key_decisions" yaml:"key_decisions"`
	ActionItems      []string   `json:"action_items" yaml:"action_items"`
	SummaryTimestamp *time.Time `json:"summary_timestamp" yaml:"summary_timestamp"`
}

// NewMeetingRecord creates an empty record for a freshly uploaded meeting
func NewMeetingRecord(meetingID string) *MeetingRecord {
	return &MeetingRecord{
		MeetingID: meetingID,
		CreatedAt: time.Now().UTC(),
	}
}

// HasTranscript reports whether the transcription stage has been persisted
func (m *MeetingRecord) HasTranscript() bool {
	return m.Transcript != nil
}

// HasSummary reports whether the summarization stage has been persisted
func (m *MeetingRecord) HasSummary() bool {
	return m.Summary != nil
}

// State returns the furthest stage reached by the meeting
func (m *MeetingRecord) State() MeetingState {
	switch {
	case m.HasSummary():
		return MeetingStateSummarized
	case m.HasTranscript():
		return MeetingStateTranscribed
	default:
		return MeetingStateUploaded
	}
}

// Clone returns a deep copy of the record
func (m *MeetingRecord) Clone() *MeetingRecord {
	if m == nil {
		return nil
	}
	out := &MeetingRecord{MeetingID: m.MeetingID, CreatedAt: m.CreatedAt}
	if m.Transcript != nil {
		v := *m.Transcript
		out.Transcript = &v
	}
	if m.Segments != nil {
		out.Segments = append(make([]Segment, 0, len(m.Segments)), m.Segments...)
	}
	if m.Language != nil {
		v := *m.Language
		out.Language = &v
	}
	if m.Summary != nil {
		v := *m.Summary
		out.Summary = &v
	}
	if m.KeyDecisions != nil {
		out.KeyDecisions = append(make([]string, 0, len(m.KeyDecisions)), m.KeyDecisions...)
	}
	if m.ActionItems != nil {
		out.ActionItems = append(make([]string, 0, len(m.ActionItems)), m.ActionItems...)
	}
	if m.SummaryTimestamp != nil {
		v := *m.SummaryTimestamp
		out.SummaryTimestamp = &v
	}
	return out
}

// ListItem returns the listing view of the record
func (m *MeetingRecord) ListItem() MeetingListItem {
	return MeetingListItem{
		MeetingID:     m.MeetingID,
		CreatedAt:     m.CreatedAt,
		HasTranscript: m.HasTranscript(),
		HasSummary:    m.HasSummary(),
	}
}

// MeetingListItem is the listing view of a meeting
type MeetingListItem struct {
	MeetingID     string    `json:"meeting_id" yaml:"meeting_id"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	HasTranscript bool      `json:"has_transcript" yaml:"has_transcript"`
	HasSummary    bool      `json:"has_summary" yaml:"has_summary"`
}

// MeetingPatch is a partial update merged into a stored record. Nil fields
// leave the stored value untouched.
type MeetingPatch struct {
	CreatedAt        *time.Time
	Transcript       *string
	Segments         *[]Segment
	Language         *string
	Summary          *string
	KeyDecisions     *[]string
	ActionItems      *[]string
	SummaryTimestamp *time.Time
}

// TranscriptionPatch carries the fields written by the transcription stage
func TranscriptionPatch(t *Transcription) MeetingPatch {
	text := t.Text
	language := t.Language
	segments := make([]Segment, len(t.Segments))
	copy(segments, t.Segments)
	return MeetingPatch{
		Transcript: &text,
		Segments:   &segments,
		Language:   &language,
	}
}

// SummaryPatch carries the fields written by the summarization stage
func SummaryPatch(s *ParsedSummary, at time.Time) MeetingPatch {
	summary := s.Summary
	decisions := append([]string{}, s.KeyDecisions...)
	actions := append([]string{}, s.ActionItems...)
	at = at.UTC()
	return MeetingPatch{
		Summary:          &summary,
		KeyDecisions:     &decisions,
		ActionItems:      &actions,
		SummaryTimestamp: &at,
	}
}

// touchesSummary reports whether the patch writes any summarization field
func (p MeetingPatch) touchesSummary() bool {
	return p.Summary != nil || p.KeyDecisions != nil || p.ActionItems != nil || p.SummaryTimestamp != nil
}

// Apply merges the patch into rec. Summary fields are refused unless a
// transcript is already stored or arrives in the same patch.
func (p MeetingPatch) Apply(rec *MeetingRecord) error {
	if rec == nil {
		return fmt.Errorf("meeting record cannot be nil")
	}
	if p.touchesSummary() && rec.Transcript == nil && p.Transcript == nil {
		return fmt.Errorf("meeting %s: %w", rec.MeetingID, ErrPreconditionFailed)
	}

	if p.CreatedAt != nil {
		rec.CreatedAt = p.CreatedAt.UTC()
	}
	if p.Transcript != nil {
		v := *p.Transcript
		rec.Transcript = &v
	}
	if p.Segments != nil {
		rec.Segments = append(make([]Segment, 0, len(*p.Segments)), *p.Segments...)
	}
	if p.Language != nil {
		v := *p.Language
		rec.Language = &v
	}
	if p.Summary != nil {
		v := *p.Summary
		rec.Summary = &v
	}
	if p.KeyDecisions != nil {
		rec.KeyDecisions = append(make([]string, 0, len(*p.KeyDecisions)), *p.KeyDecisions...)
	}
	if p.ActionItems != nil {
		rec.ActionItems = append(make([]string, 0, len(*p.ActionItems)), *p.ActionItems...)
	}
	if p.SummaryTimestamp != nil {
		v := p.SummaryTimestamp.UTC()
		rec.SummaryTimestamp = &v
	}
	return nil
}
