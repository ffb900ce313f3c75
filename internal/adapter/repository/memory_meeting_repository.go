package repository

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MemoryMeetingRepository is a mutex-guarded in-process store. Records are
// copied on the way in and out so callers never share memory with it.
type MemoryMeetingRepository struct {
	mu    sync.RWMutex
	items map[string]*entities.MeetingRecord
	order []string
}

// NewMemoryMeetingRepository creates an empty store
func NewMemoryMeetingRepository() *MemoryMeetingRepository {
	return &MemoryMeetingRepository{
		items: make(map[string]*entities.MeetingRecord),
	}
}

// Put merges patch into the stored record
func (r *MemoryMeetingRepository) Put(_ context.Context, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[meetingID]
	rec, err := mergeRecord(current, meetingID, patch)
	if err != nil {
		return nil, err
	}

	r.items[meetingID] = rec
	if !exists {
		r.order = append(r.order, meetingID)
	}
	return rec.Clone(), nil
}

// Get returns (nil, nil) when the meeting does not exist
func (r *MemoryMeetingRepository) Get(_ context.Context, meetingID string) (*entities.MeetingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.items[meetingID]
	if !ok {
		return nil, nil
	}
	return rec.Clone(), nil
}

// List returns meetings in insertion order
func (r *MemoryMeetingRepository) List(_ context.Context) ([]*entities.MeetingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]*entities.MeetingRecord, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, r.items[id].Clone())
	}
	return records, nil
}
