package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MeetingRepository persists one merged document per meeting.
//
// Put merges the patch into the stored record (creating it when absent) and
// returns the record as persisted. Merges to the same meeting id are
// serialized; a reader never observes a half-applied patch.
type MeetingRepository interface {
	Put(ctx context.Context, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error)
	// Get returns (nil, nil) when the meeting does not exist
	Get(ctx context.Context, meetingID string) (*entities.MeetingRecord, error)
	List(ctx context.Context) ([]*entities.MeetingRecord, error)
}
