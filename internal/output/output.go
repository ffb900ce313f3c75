package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

// Output formats accepted by Meeting
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// PreviewChars is how much transcript the process summary shows
const PreviewChars = 500

const rule = "------------------------------------------------------------"
const banner = "============================================================"

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Banner() {
	fmt.Fprintln(f.w, banner)
	fmt.Fprintln(f.w, "🎙️  Meeting Summarizer")
	fmt.Fprintln(f.w, banner)
	fmt.Fprintln(f.w)
}

func (f *Formatter) Uploaded(meetingID, filename string) {
	fmt.Fprintf(f.w, "📥 Uploaded %s as meeting %s\n", filename, meetingID)
}

func (f *Formatter) Transcribing() {
	fmt.Fprintf(f.w, "📝 Transcribing audio...\n")
}

func (f *Formatter) TranscribeDone(r *meeting.TranscribeResult) {
	fmt.Fprintf(f.w, "✅ Transcription complete\n")
	fmt.Fprintf(f.w, "   Language detected: %s\n", r.Language)
	fmt.Fprintf(f.w, "   Transcript length: %d characters\n", len(r.Transcript))
}

func (f *Formatter) Summarizing() {
	fmt.Fprintf(f.w, "🤖 Generating summary...\n")
}

func (f *Formatter) SummarizeDone() {
	fmt.Fprintf(f.w, "✅ Summary generated\n")
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) MeetingListHeader() {
	fmt.Fprintf(f.w, "📁 Meetings:\n\n")
}

func (f *Formatter) MeetingListItem(item entities.MeetingListItem) {
	status := ""
	if item.HasTranscript && item.HasSummary {
		status = " ✅"
	} else if item.HasTranscript {
		status = " 📝"
	}
	fmt.Fprintf(f.w, "  %s  %s%s\n", item.MeetingID, item.CreatedAt.Format("2006-01-02 15:04:05"), status)
}

// Results prints a processed meeting the way a person reads it: transcript
// preview, summary and numbered lists
func (f *Formatter) Results(transcript string, s *meeting.SummarizeResult) {
	fmt.Fprintln(f.w, banner)
	fmt.Fprintln(f.w, "RESULTS")
	fmt.Fprintln(f.w, banner)
	fmt.Fprintln(f.w)

	f.section("📝 TRANSCRIPT")
	fmt.Fprintln(f.w, Preview(transcript, PreviewChars))
	fmt.Fprintln(f.w)

	if s == nil {
		return
	}

	f.section("📋 SUMMARY")
	fmt.Fprintln(f.w, s.Summary)
	fmt.Fprintln(f.w)

	f.section("🎯 KEY DECISIONS")
	f.numbered(s.KeyDecisions, "No key decisions identified.")
	fmt.Fprintln(f.w)

	f.section("✅ ACTION ITEMS")
	f.numbered(s.ActionItems, "No action items identified.")
	fmt.Fprintln(f.w)
}

// Meeting renders a full record as text, JSON or YAML. With timestamps the
// text form prints [MM:SS] segment lines instead of the plain transcript.
func (f *Formatter) Meeting(rec *entities.MeetingRecord, format string, timestamps bool) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(f.w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case FormatYAML:
		enc := yaml.NewEncoder(f.w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		f.meetingText(rec, timestamps)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func (f *Formatter) meetingText(rec *entities.MeetingRecord, timestamps bool) {
	fmt.Fprintf(f.w, "Meeting:  %s\n", rec.MeetingID)
	fmt.Fprintf(f.w, "Created:  %s\n", rec.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(f.w, "Status:   %s\n", rec.State())
	if rec.Language != nil {
		fmt.Fprintf(f.w, "Language: %s\n", *rec.Language)
	}
	fmt.Fprintln(f.w)

	if rec.HasTranscript() {
		f.section("📝 TRANSCRIPT")
		if timestamps {
			fmt.Fprintln(f.w, meeting.FormatTimestamped(rec.Segments))
		} else {
			fmt.Fprintln(f.w, *rec.Transcript)
		}
		fmt.Fprintln(f.w)
	}

	if rec.HasSummary() {
		f.section("📋 SUMMARY")
		fmt.Fprintln(f.w, *rec.Summary)
		fmt.Fprintln(f.w)

		f.section("🎯 KEY DECISIONS")
		f.numbered(rec.KeyDecisions, "None identified.")
		fmt.Fprintln(f.w)

		f.section("✅ ACTION ITEMS")
		f.numbered(rec.ActionItems, "None identified.")
	}
}

func (f *Formatter) section(title string) {
	fmt.Fprintln(f.w, title)
	fmt.Fprintln(f.w, rule)
}

func (f *Formatter) numbered(items []string, empty string) {
	if len(items) == 0 {
		fmt.Fprintln(f.w, empty)
		return
	}
	for i, item := range items {
		fmt.Fprintf(f.w, "%d. %s\n", i+1, item)
	}
}

// WriteReport writes the plain-text report saved next to a processed file
func WriteReport(w io.Writer, transcript string, s *meeting.SummarizeResult) error {
	var b strings.Builder
	b.WriteString("MEETING SUMMARY\n")
	b.WriteString(banner + "\n\n")

	b.WriteString("TRANSCRIPT\n")
	b.WriteString(rule + "\n")
	b.WriteString(transcript + "\n\n")

	b.WriteString("SUMMARY\n")
	b.WriteString(rule + "\n")
	b.WriteString(s.Summary + "\n\n")

	writeList(&b, "KEY DECISIONS", s.KeyDecisions)
	b.WriteString("\n")
	writeList(&b, "ACTION ITEMS", s.ActionItems)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, items []string) {
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
	if len(items) == 0 {
		b.WriteString("None identified.\n")
		return
	}
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

// Preview cuts s to at most n runes, marking the cut with "..."
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
