package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/internal/output"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

func NewProcessCmd(deps *Dependencies) *cobra.Command {
	var language string
	var save bool

	cmd := &cobra.Command{
		Use:   "process <audio-file>",
		Short: "Upload an audio file, transcribe it and summarize it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(cmd.OutOrStdout())
			formatter.Banner()

			_, err = processFile(cmd.Context(), a.Service, formatter, args[0], language, save)
			return err
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language hint such as en (detected when empty)")
	cmd.Flags().BoolVar(&save, "save", true, "write <audio>_summary.txt next to the audio file")

	return cmd
}

// processFile runs the whole pipeline for a local file and returns the
// meeting id. A summarization failure still leaves the transcript stored.
func processFile(ctx context.Context, svc meeting.Service, formatter *output.Formatter, path, language string, save bool) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("file not found: %s", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory", path)
	}

	rec, err := svc.CreateMeeting(ctx, meeting.UploadInput{
		Filename: filepath.Base(path),
		Size:     info.Size(),
		Reader:   f,
	})
	if err != nil {
		return "", err
	}
	formatter.Uploaded(rec.MeetingID, filepath.Base(path))

	formatter.Transcribing()
	transcription, err := svc.Transcribe(ctx, rec.MeetingID, meeting.TranscribeOptions{Language: language})
	if err != nil {
		return rec.MeetingID, fmt.Errorf("transcription failed: %w", err)
	}
	formatter.TranscribeDone(transcription)

	formatter.Summarizing()
	summary, err := svc.Summarize(ctx, rec.MeetingID)
	if err != nil {
		formatter.Warning(fmt.Sprintf("Transcript kept for meeting %s; rerun `meetingctl summarize %s`", rec.MeetingID, rec.MeetingID))
		return rec.MeetingID, fmt.Errorf("summarization failed: %w", err)
	}
	formatter.SummarizeDone()

	formatter.Results(transcription.Transcript, summary)

	if save {
		reportPath := strings.TrimSuffix(path, filepath.Ext(path)) + "_summary.txt"
		if err := saveReport(reportPath, transcription.Transcript, summary); err != nil {
			return rec.MeetingID, err
		}
		formatter.Success(fmt.Sprintf("Results saved to: %s", reportPath))
	}

	formatter.Success(fmt.Sprintf("Meeting %s processed", rec.MeetingID))
	return rec.MeetingID, nil
}

func saveReport(path, transcript string, summary *meeting.SummarizeResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save results: %w", err)
	}
	if err := output.WriteReport(f, transcript, summary); err != nil {
		f.Close()
		return fmt.Errorf("failed to save results: %w", err)
	}
	return f.Close()
}
