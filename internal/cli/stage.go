package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/internal/output"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/meeting"
)

func NewTranscribeCmd(deps *Dependencies) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "transcribe <meeting-id>",
		Short: "Transcribe the stored audio of a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(cmd.OutOrStdout())
			formatter.Transcribing()

			result, err := a.Service.Transcribe(cmd.Context(), args[0], meeting.TranscribeOptions{Language: language})
			if err != nil {
				return err
			}
			formatter.TranscribeDone(result)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), output.Preview(result.Transcript, output.PreviewChars))
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language hint such as en (detected when empty)")

	return cmd
}

func NewSummarizeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <meeting-id>",
		Short: "Summarize a transcribed meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}

			formatter := output.NewFormatter(cmd.OutOrStdout())
			formatter.Summarizing()

			summary, err := a.Service.Summarize(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			formatter.SummarizeDone()

			rec, err := a.Service.GetMeeting(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			transcript := ""
			if rec.Transcript != nil {
				transcript = *rec.Transcript
			}
			formatter.Results(transcript, summary)
			return nil
		},
	}
}

func NewAskCmd(deps *Dependencies) *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "ask <meeting-id>",
		Short: "Run custom instructions against a meeting transcript",
		Long:  "Runs free-form instructions (for example \"list every risk mentioned\") against the stored transcript. The answer is printed, not stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}

			answer, err := a.Service.CustomSummary(cmd.Context(), args[0], prompt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "instructions for the summary engine")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}
