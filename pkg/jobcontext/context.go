package jobcontext

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyRunID     KeyContext = "run_id"
	keyMeetingID KeyContext = "meeting_id"
	keyStage     KeyContext = "stage"
	keyStartTime KeyContext = "stage_start_time"
	keyParentRun KeyContext = "parent_run_id"
)

// StageMetadata holds metadata for one pipeline stage execution
type StageMetadata struct {
	RunID       uuid.UUID
	ParentRunID uuid.UUID
	MeetingID   string
	Stage       string
	StartTime   time.Time
}

// PanicError is returned by Run when the stage function panicked
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic recovered: %v", e.Value)
}

// Begin attaches stage metadata to ctx. A stage begun inside another stage
// records the outer run as its parent. No deadline is added: the caller
// owns timeouts.
func Begin(parentCtx context.Context, meetingID, stage string) context.Context {
	ctx := parentCtx
	if outer, ok := GetRunID(parentCtx); ok {
		ctx = context.WithValue(ctx, keyParentRun, outer)
	}
	ctx = context.WithValue(ctx, keyRunID, uuid.New())
	ctx = context.WithValue(ctx, keyMeetingID, meetingID)
	ctx = context.WithValue(ctx, keyStage, stage)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())
	return ctx
}

// Run executes fn exactly once, converting a panic into a *PanicError.
// Failures are returned unchanged so callers can match them with errors.Is.
func Run(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p}
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before stage execution: %w", ctx.Err())
	}
	return fn(ctx)
}

// GetRunID extracts the stage run id from context
func GetRunID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(keyRunID).(uuid.UUID)
	return id, ok
}

// GetMeetingID extracts the meeting id from context
func GetMeetingID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(keyMeetingID).(string)
	return id, ok
}

// GetStage extracts the stage name from context
func GetStage(ctx context.Context) (string, bool) {
	stage, ok := ctx.Value(keyStage).(string)
	return stage, ok
}

// GetStartTime extracts the stage start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(keyStartTime).(time.Time)
	return t, ok
}

// Elapsed returns the time since Begin, or zero outside a stage
func Elapsed(ctx context.Context) time.Duration {
	start, ok := GetStartTime(ctx)
	if !ok {
		return 0
	}
	return time.Since(start)
}

// GetStageMetadata extracts all stage metadata from context
func GetStageMetadata(ctx context.Context) *StageMetadata {
	runID, _ := GetRunID(ctx)
	parent, _ := ctx.Value(keyParentRun).(uuid.UUID)
	meetingID, _ := GetMeetingID(ctx)
	stage, _ := GetStage(ctx)
	start, _ := GetStartTime(ctx)

	return &StageMetadata{
		RunID:       runID,
		ParentRunID: parent,
		MeetingID:   meetingID,
		Stage:       stage,
		StartTime:   start,
	}
}
