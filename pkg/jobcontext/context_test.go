package jobcontext

import (
	"context"
	"errors"
	"testing"
)

func TestBeginAttachesMetadata(t *testing.T) {
	ctx := Begin(context.Background(), "m1", "transcription")

	meta := GetStageMetadata(ctx)
	if meta.MeetingID != "m1" || meta.Stage != "transcription" {
		t.Errorf("metadata = %+v", meta)
	}
	if _, ok := GetRunID(ctx); !ok {
		t.Error("run id missing")
	}
	if meta.StartTime.IsZero() || Elapsed(ctx) < 0 {
		t.Error("start time missing")
	}

	inner := Begin(ctx, "m1", "summarization")
	innerMeta := GetStageMetadata(inner)
	if innerMeta.ParentRunID != meta.RunID || innerMeta.RunID == meta.RunID {
		t.Errorf("nested run ids: outer=%s inner=%+v", meta.RunID, innerMeta)
	}
}

func TestElapsedOutsideStage(t *testing.T) {
	if Elapsed(context.Background()) != 0 {
		t.Error("elapsed should be zero outside a stage")
	}
}

func TestRun(t *testing.T) {
	sentinel := errors.New("engine down")

	if err := Run(context.Background(), func(context.Context) error { return sentinel }); !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want sentinel", err)
	}

	err := Run(context.Background(), func(context.Context) error { panic("boom") })
	var pe *PanicError
	if !errors.As(err, &pe) || pe.Value != "boom" {
		t.Errorf("err = %v, want PanicError", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err = Run(ctx, func(context.Context) error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("cancelled run: err=%v called=%v", err, called)
	}
}
