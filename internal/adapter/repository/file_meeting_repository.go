package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

const recordExt = ".json"

// FileMeetingRepository stores one JSON document per meeting in a
// directory. Writes go through a temp file and a rename, so readers see
// either the old or the new document.
type FileMeetingRepository struct {
	dir   string
	locks *keyLock
}

// NewFileMeetingRepository creates the data directory if needed
func NewFileMeetingRepository(dir string) (*FileMeetingRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir %s: %w", dir, err)
	}
	return &FileMeetingRepository{dir: dir, locks: newKeyLock()}, nil
}

// Put merges patch into the stored document
func (r *FileMeetingRepository) Put(ctx context.Context, meetingID string, patch entities.MeetingPatch) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}

	unlock := r.locks.Lock(meetingID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	current, err := r.read(meetingID)
	if err != nil {
		return nil, err
	}

	rec, err := mergeRecord(current, meetingID, patch)
	if err != nil {
		return nil, err
	}

	if err := r.write(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get loads a meeting, returning (nil, nil) when it does not exist
func (r *FileMeetingRepository) Get(_ context.Context, meetingID string) (*entities.MeetingRecord, error) {
	if err := validateKey(meetingID); err != nil {
		return nil, err
	}
	return r.read(meetingID)
}

// List returns every meeting in directory (lexical) order
func (r *FileMeetingRepository) List(_ context.Context) ([]*entities.MeetingRecord, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*entities.MeetingRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read data dir: %w", err)
	}

	records := make([]*entities.MeetingRecord, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || !strings.HasSuffix(name, recordExt) {
			continue
		}

		rec, err := r.read(strings.TrimSuffix(name, recordExt))
		if err != nil {
			return nil, err
		}
		if rec != nil {
			records = append(records, rec)
		}
	}
	return records, nil
}

func (r *FileMeetingRepository) path(meetingID string) string {
	return filepath.Join(r.dir, meetingID+recordExt)
}

func (r *FileMeetingRepository) read(meetingID string) (*entities.MeetingRecord, error) {
	data, err := os.ReadFile(r.path(meetingID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read meeting %s: %w", meetingID, err)
	}

	var rec entities.MeetingRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode meeting %s: %w", meetingID, err)
	}
	if rec.MeetingID == "" {
		rec.MeetingID = meetingID
	}
	return &rec, nil
}

func (r *FileMeetingRepository) write(rec *entities.MeetingRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode meeting %s: %w", rec.MeetingID, err)
	}

	tmp, err := os.CreateTemp(r.dir, "."+rec.MeetingID+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write meeting %s: %w", rec.MeetingID, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync meeting %s: %w", rec.MeetingID, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write meeting %s: %w", rec.MeetingID, err)
	}

	if err := os.Rename(tmp.Name(), r.path(rec.MeetingID)); err != nil {
		return fmt.Errorf("failed to store meeting %s: %w", rec.MeetingID, err)
	}
	return nil
}
