package entities

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"
)

func TestApplyMergesWithoutClearing(t *testing.T) {
	rec := NewMeetingRecord("m1")

	err := TranscriptionPatch(&Transcription{
		Text:     "hello",
		Segments: []Segment{{Start: 0, End: 1, Text: "hello"}},
		Language: "en",
	}).Apply(rec)
	if err != nil {
		t.Fatalf("transcription patch: %v", err)
	}

	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600))
	err = SummaryPatch(&ParsedSummary{
		Summary:      "s",
		KeyDecisions: []string{"d"},
		ActionItems:  []string{},
	}, at).Apply(rec)
	if err != nil {
		t.Fatalf("summary patch: %v", err)
	}

	if rec.Transcript == nil || *rec.Transcript != "hello" {
		t.Error("transcript lost after summary patch")
	}
	if rec.Language == nil || *rec.Language != "en" {
		t.Error("language lost after summary patch")
	}
	if len(rec.Segments) != 1 {
		t.Error("segments lost after summary patch")
	}
	if rec.SummaryTimestamp == nil || rec.SummaryTimestamp.Location() != time.UTC {
		t.Errorf("summary timestamp = %v, want UTC", rec.SummaryTimestamp)
	}
	if rec.State() != MeetingStateSummarized {
		t.Errorf("state = %s", rec.State())
	}
}

func TestApplyRefusesSummaryWithoutTranscript(t *testing.T) {
	rec := NewMeetingRecord("m1")
	err := SummaryPatch(&ParsedSummary{Summary: "s"}, time.Now()).Apply(rec)
	if !errors.Is(err, ErrPreconditionFailed) {
		t.Fatalf("err = %v, want ErrPreconditionFailed", err)
	}
	if rec.Summary != nil {
		t.Error("record modified by refused patch")
	}

	text := "t"
	combined := MeetingPatch{Transcript: &text, Summary: &text}
	if err := combined.Apply(rec); err != nil {
		t.Errorf("patch carrying its own transcript refused: %v", err)
	}
}

func TestPatchesCopyInputs(t *testing.T) {
	segments := []Segment{{Start: 1, End: 2, Text: "a"}}
	patch := TranscriptionPatch(&Transcription{Text: "a", Segments: segments})
	segments[0].Text = "changed"

	rec := NewMeetingRecord("m1")
	if err := patch.Apply(rec); err != nil {
		t.Fatal(err)
	}
	if rec.Segments[0].Text != "a" {
		t.Error("patch aliases caller slice")
	}
}

func TestCloneIsDeep(t *testing.T) {
	text := "t"
	rec := &MeetingRecord{
		MeetingID:    "m1",
		Transcript:   &text,
		Segments:     []Segment{{Text: "x"}},
		KeyDecisions: []string{"d"},
	}
	clone := rec.Clone()
	*clone.Transcript = "changed"
	clone.Segments[0].Text = "changed"
	clone.KeyDecisions[0] = "changed"

	if *rec.Transcript != "t" || rec.Segments[0].Text != "x" || rec.KeyDecisions[0] != "d" {
		t.Error("clone shares memory with the original")
	}
	if (*MeetingRecord)(nil).Clone() != nil {
		t.Error("nil clone should be nil")
	}
}

func TestRecordJSONKeepsUnsetFieldsNull(t *testing.T) {
	rec := NewMeetingRecord("m1")
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}

	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}

	wantKeys := []string{
		"meeting_id", "created_at", "transcript", "segments", "language",
		"summary", "key_decisions", "action_items", "summary_timestamp",
	}
	for _, k := range wantKeys {
		if _, ok := doc[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}
	if len(doc) != len(wantKeys) {
		t.Errorf("document has %d keys, want %d", len(doc), len(wantKeys))
	}
	if doc["transcript"] != nil || doc["key_decisions"] != nil {
		t.Error("unset fields should be null")
	}
}

func TestListItem(t *testing.T) {
	text := "t"
	rec := &MeetingRecord{MeetingID: "m1", Transcript: &text}
	got := rec.ListItem()
	want := MeetingListItem{MeetingID: "m1", HasTranscript: true}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListItem = %+v, want %+v", got, want)
	}
}
