package cli

import (
	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/internal/output"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List meetings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}
			formatter := output.NewFormatter(cmd.OutOrStdout())

			items, err := a.Service.ListMeetings(cmd.Context())
			if err != nil {
				return err
			}

			if len(items) == 0 {
				formatter.Info("No meetings found")
				return nil
			}

			formatter.MeetingListHeader()
			for _, item := range items {
				formatter.MeetingListItem(item)
			}

			return nil
		},
	}

	return cmd
}
