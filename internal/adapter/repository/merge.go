package repository

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// mergeRecord applies patch on a copy of current, creating the record when
// current is nil. current itself is never modified.
func mergeRecord(current *entities.MeetingRecord, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error) {
	var rec *entities.MeetingRecord
	if current == nil {
		rec = entities.NewMeetingRecord(meetingID)
	} else {
		rec = current.Clone()
	}
	if err := patch.Apply(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// validateKey rejects ids that would escape a key namespace or directory
func validateKey(meetingID string) error {
	if meetingID == "" ||
		meetingID != filepath.Base(meetingID) ||
		strings.HasPrefix(meetingID, ".") ||
		strings.ContainsAny(meetingID, `/\:`) {
		return fmt.Errorf("invalid meeting id %q", meetingID)
	}
	return nil
}
