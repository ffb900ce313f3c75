package presenter

import (
	dto "github.com/johnquangdev/meeting-summarizer/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

// ToMeetingResponse converts a MeetingRecord to MeetingResponse DTO
func ToMeetingResponse(rec *entities.MeetingRecord) *dto.MeetingResponse {
	if rec == nil {
		return nil
	}

	return &dto.MeetingResponse{
		MeetingID:        rec.MeetingID,
		Status:           string(rec.State()),
		CreatedAt:        rec.CreatedAt,
		Transcript:       rec.Transcript,
		Segments:         toSegments(rec.Segments),
		Language:         rec.Language,
		Summary:          rec.Summary,
		KeyDecisions:     rec.KeyDecisions,
		ActionItems:      rec.ActionItems,
		SummaryTimestamp: rec.SummaryTimestamp,
	}
}

// ToCreateMeetingResponse converts a freshly created record
func ToCreateMeetingResponse(rec *entities.MeetingRecord, filename string) *dto.CreateMeetingResponse {
	return &dto.CreateMeetingResponse{
		MeetingID: rec.MeetingID,
		Filename:  filename,
		Status:    string(rec.State()),
		CreatedAt: rec.CreatedAt,
	}
}

// ToMeetingListResponse converts list items
func ToMeetingListResponse(items []entities.MeetingListItem) *dto.MeetingListResponse {
	meetings := make([]dto.MeetingListItemResponse, len(items))
	for i, item := range items {
		meetings[i] = dto.MeetingListItemResponse{
			MeetingID:     item.MeetingID,
			CreatedAt:     item.CreatedAt,
			HasTranscript: item.HasTranscript,
			HasSummary:    item.HasSummary,
		}
	}
	return &dto.MeetingListResponse{Meetings: meetings, Total: len(meetings)}
}

// ToTranscriptionResponse converts a transcription stage result
func ToTranscriptionResponse(r *meeting.TranscribeResult) *dto.TranscriptionResponse {
	if r == nil {
		return nil
	}
	segments := toSegments(r.Segments)
	if segments == nil {
		segments = []dto.SegmentResponse{}
	}
	return &dto.TranscriptionResponse{
		MeetingID:  r.MeetingID,
		Transcript: r.Transcript,
		Language:   r.Language,
		Segments:   segments,
		AudioFile:  r.AudioFile,
	}
}

// ToSummaryResponse converts a summarization stage result
func ToSummaryResponse(r *meeting.SummarizeResult) *dto.SummaryResponse {
	if r == nil {
		return nil
	}
	return &dto.SummaryResponse{
		MeetingID:        r.MeetingID,
		Summary:          r.Summary,
		KeyDecisions:     nonNil(r.KeyDecisions),
		ActionItems:      nonNil(r.ActionItems),
		RawResponse:      r.RawResponse,
		SummaryTimestamp: r.SummaryTimestamp,
	}
}

// ToProcessResponse converts a full pipeline result, possibly partial
func ToProcessResponse(meetingID string, r *meeting.ProcessResult) *dto.ProcessResponse {
	resp := &dto.ProcessResponse{MeetingID: meetingID}
	if r == nil {
		return resp
	}
	resp.Transcription = ToTranscriptionResponse(r.Transcription)
	resp.Summary = ToSummaryResponse(r.Summary)
	return resp
}

func toSegments(segments []entities.Segment) []dto.SegmentResponse {
	if segments == nil {
		return nil
	}
	out := make([]dto.SegmentResponse, len(segments))
	for i, s := range segments {
		out[i] = dto.SegmentResponse{Start: s.Start, End: s.End, Text: s.Text}
	}
	return out
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
