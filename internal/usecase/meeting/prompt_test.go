package meeting

import (
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func TestBuildSummaryPrompt(t *testing.T) {
	prompt := BuildSummaryPrompt("Alice: hi\nBob: hello")

	for _, want := range []string{
		"Meeting Transcript:\nAlice: hi\nBob: hello",
		"SUMMARY:",
		"KEY DECISIONS:",
		"ACTION ITEMS:",
		`"None identified."`,
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if strings.Index(prompt, "SUMMARY:") > strings.Index(prompt, "KEY DECISIONS:") ||
		strings.Index(prompt, "KEY DECISIONS:") > strings.Index(prompt, "ACTION ITEMS:") {
		t.Error("sections out of order")
	}
}

func TestBuildCustomPrompt(t *testing.T) {
	got := BuildCustomPrompt("  List risks.  ", "text")
	want := "List risks.\n\nTranscript:\ntext"
	if got != want {
		t.Errorf("BuildCustomPrompt = %q, want %q", got, want)
	}
}

func TestFormatTimestamped(t *testing.T) {
	segments := []entities.Segment{
		{Start: 0, End: 4, Text: " Welcome everyone."},
		{Start: 59.9, End: 61, Text: "Next item."},
		{Start: 3725, End: 3730, Text: "Wrap up."},
	}

	got := FormatTimestamped(segments)
	want := "[00:00] Welcome everyone.\n[00:59] Next item.\n[62:05] Wrap up."
	if got != want {
		t.Errorf("FormatTimestamped = %q, want %q", got, want)
	}

	if FormatTimestamped(nil) != "" {
		t.Error("expected empty output for no segments")
	}
}
