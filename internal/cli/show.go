package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/internal/output"
)

func NewShowCmd(deps *Dependencies) *cobra.Command {
	var format string
	var timestamps bool

	cmd := &cobra.Command{
		Use:   "show <meeting-id>",
		Short: "Show the stored record of a meeting",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case output.FormatText, output.FormatJSON, output.FormatYAML:
				return nil
			default:
				return fmt.Errorf("--output must be one of text, json, yaml")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}

			rec, err := a.Service.GetMeeting(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return output.NewFormatter(cmd.OutOrStdout()).Meeting(rec, format, timestamps)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", output.FormatText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&timestamps, "timestamps", false, "print the transcript as [MM:SS] segment lines")

	return cmd
}
