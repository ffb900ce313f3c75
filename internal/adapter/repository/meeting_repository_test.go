package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

func strPtr(s string) *string { return &s }

func stores(t *testing.T) map[string]repositories.MeetingRepository {
	t.Helper()
	fileRepo, err := NewFileMeetingRepository(filepath.Join(t.TempDir(), "meetings"))
	if err != nil {
		t.Fatal(err)
	}
	return map[string]repositories.MeetingRepository{
		"memory": NewMemoryMeetingRepository(),
		"file":   fileRepo,
	}
}

func TestMeetingRepositoryMerge(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

			if _, err := repo.Put(ctx, "m1", entities.MeetingPatch{CreatedAt: &created}); err != nil {
				t.Fatal(err)
			}
			if _, err := repo.Put(ctx, "m1", entities.TranscriptionPatch(&entities.Transcription{
				Text:     "hi",
				Segments: []entities.Segment{{Start: 0, End: 1, Text: "hi"}},
				Language: "en",
			})); err != nil {
				t.Fatal(err)
			}
			at := created.Add(time.Minute)
			if _, err := repo.Put(ctx, "m1", entities.SummaryPatch(&entities.ParsedSummary{
				Summary:      "s",
				KeyDecisions: []string{},
				ActionItems:  []string{"a"},
			}, at)); err != nil {
				t.Fatal(err)
			}

			got, err := repo.Get(ctx, "m1")
			if err != nil || got == nil {
				t.Fatalf("Get: %v %v", got, err)
			}
			if !got.CreatedAt.Equal(created) {
				t.Errorf("created_at = %v", got.CreatedAt)
			}
			if got.Transcript == nil || *got.Transcript != "hi" || got.Language == nil || len(got.Segments) != 1 {
				t.Errorf("transcription fields lost: %+v", got)
			}
			if got.KeyDecisions == nil || len(got.KeyDecisions) != 0 {
				t.Errorf("key decisions = %#v, want empty non-nil", got.KeyDecisions)
			}
			if !reflect.DeepEqual(got.ActionItems, []string{"a"}) {
				t.Errorf("action items = %v", got.ActionItems)
			}
			if got.SummaryTimestamp == nil || !got.SummaryTimestamp.Equal(at) {
				t.Errorf("summary timestamp = %v", got.SummaryTimestamp)
			}
		})
	}
}

func TestMeetingRepositoryGetMissing(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := repo.Get(context.Background(), "absent")
			if rec != nil || err != nil {
				t.Errorf("Get(absent) = %v, %v", rec, err)
			}
		})
	}
}

func TestMeetingRepositoryRejectsPreconditionAndKeepsRecord(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := repo.Put(ctx, "m1", entities.MeetingPatch{}); err != nil {
				t.Fatal(err)
			}
			_, err := repo.Put(ctx, "m1", entities.MeetingPatch{Summary: strPtr("s")})
			if !errors.Is(err, entities.ErrPreconditionFailed) {
				t.Fatalf("err = %v", err)
			}
			rec, _ := repo.Get(ctx, "m1")
			if rec == nil || rec.Summary != nil {
				t.Errorf("record after refused patch = %+v", rec)
			}
		})
	}
}

func TestMeetingRepositoryInvalidKeys(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			for _, id := range []string{"", "..", "../x", "a/b", `a\b`, ".hidden", "a:b"} {
				if _, err := repo.Put(context.Background(), id, entities.MeetingPatch{}); err == nil {
					t.Errorf("Put(%q) succeeded", id)
				}
			}
		})
	}
}

func TestMeetingRepositoryConcurrentPatches(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			if _, err := repo.Put(ctx, "m1", entities.MeetingPatch{Transcript: strPtr("t")}); err != nil {
				t.Fatal(err)
			}

			var wg sync.WaitGroup
			errs := make(chan error, 2)
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, err := repo.Put(ctx, "m1", entities.MeetingPatch{Language: strPtr("fr")})
				errs <- err
			}()
			go func() {
				defer wg.Done()
				_, err := repo.Put(ctx, "m1", entities.MeetingPatch{Summary: strPtr("s")})
				errs <- err
			}()
			wg.Wait()
			close(errs)
			for err := range errs {
				if err != nil {
					t.Fatal(err)
				}
			}

			rec, _ := repo.Get(ctx, "m1")
			if rec.Language == nil || *rec.Language != "fr" || rec.Summary == nil || *rec.Summary != "s" {
				t.Errorf("lost update: %+v", rec)
			}
		})
	}
}

func TestMeetingRepositoryList(t *testing.T) {
	for name, repo := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			empty, err := repo.List(ctx)
			if err != nil || empty == nil || len(empty) != 0 {
				t.Fatalf("empty List = %v, %v", empty, err)
			}

			for i := 1; i <= 3; i++ {
				id := fmt.Sprintf("20240101_00000%d_aaaaaaaa", i)
				if _, err := repo.Put(ctx, id, entities.MeetingPatch{}); err != nil {
					t.Fatal(err)
				}
			}
			items, err := repo.List(ctx)
			if err != nil {
				t.Fatal(err)
			}
			if len(items) != 3 || items[0].MeetingID != "20240101_000001_aaaaaaaa" || items[2].MeetingID != "20240101_000003_aaaaaaaa" {
				t.Errorf("items = %+v", items)
			}
		})
	}
}

func TestMemoryRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryMeetingRepository()
	ctx := context.Background()
	rec, _ := repo.Put(ctx, "m1", entities.MeetingPatch{Transcript: strPtr("t")})
	*rec.Transcript = "changed"

	got, _ := repo.Get(ctx, "m1")
	if *got.Transcript != "t" {
		t.Error("store shares memory with callers")
	}
}

func TestFileRepositorySkipsStrayFiles(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileMeetingRepository(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Put(context.Background(), "m1", entities.MeetingPatch{}); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644)
	os.WriteFile(filepath.Join(dir, ".m2-123"), []byte("{"), 0o644)

	items, err := repo.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].MeetingID != "m1" {
		t.Errorf("items = %+v", items)
	}
}

func TestFileRepositoryDocumentIsReadableJSON(t *testing.T) {
	dir := t.TempDir()
	repo, _ := NewFileMeetingRepository(dir)
	if _, err := repo.Put(context.Background(), "m1", entities.MeetingPatch{Transcript: strPtr("t")}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "m1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(data[:1], []byte("{")) {
		t.Errorf("unexpected document: %s", data)
	}
}

func TestKeyLockSerializesSameKey(t *testing.T) {
	locks := newKeyLock()
	unlock := locks.Lock("a")

	acquired := make(chan struct{})
	go func() {
		release := locks.Lock("a")
		close(acquired)
		release()
	}()

	otherDone := make(chan struct{})
	go func() {
		locks.Lock("b")()
		close(otherDone)
	}()
	<-otherDone

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held key")
	case <-time.After(20 * time.Millisecond):
	}

	unlock()
	<-acquired

	locks.mu.Lock()
	defer locks.mu.Unlock()
	if len(locks.locks) != 0 {
		t.Errorf("lock entries leaked: %d", len(locks.locks))
	}
}

func TestMeetingRowRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 7200))
	rec := &entities.MeetingRecord{
		MeetingID:    "m1",
		CreatedAt:    created,
		Transcript:   strPtr("t"),
		KeyDecisions: []string{},
	}

	got := newMeetingRow(rec).toRecord()
	if got.CreatedAt.Location() != time.UTC || !got.CreatedAt.Equal(created) {
		t.Errorf("created_at = %v", got.CreatedAt)
	}
	if got.Segments != nil || got.ActionItems != nil {
		t.Error("unset lists should stay nil")
	}
	if got.KeyDecisions == nil {
		t.Error("empty list became nil")
	}
}
