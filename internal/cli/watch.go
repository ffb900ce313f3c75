package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/watcher"
	"github.com/johnquangdev/meeting-summarizer/internal/output"
)

func NewWatchCmd(deps *Dependencies) *cobra.Command {
	var language string
	var concurrency int
	var settle time.Duration
	var save bool

	cmd := &cobra.Command{
		Use:   "watch <dir>",
		Short: "Process every audio file dropped into a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := deps.app()
			if err != nil {
				return err
			}
			dir := args[0]

			info, err := os.Stat(dir)
			if err != nil || !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}

			formatter := output.NewFormatter(cmd.OutOrStdout())
			handler := func(ctx context.Context, path string) error {
				meetingID, err := processFile(ctx, a.Service, formatter, path, language, save)
				if err != nil {
					return err
				}
				deps.Logger.Info("Inbox file processed", zap.String("path", path), zap.String("meeting_id", meetingID))
				return nil
			}

			w, err := watcher.New(dir, handler, watcher.Options{
				Extensions:    deps.Config.Pipeline.AllowedExtensions,
				MaxConcurrent: concurrency,
				SettleDelay:   settle,
			}, deps.Logger)
			if err != nil {
				return err
			}
			defer w.Stop()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			formatter.Info(fmt.Sprintf("Watching %s (Ctrl+C to stop)", dir))
			if err := w.Start(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			formatter.Info("Watcher stopped")
			return nil
		},
	}

	cmd.Flags().StringVarP(&language, "language", "l", "", "language hint such as en (detected when empty)")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 1, "files processed at the same time")
	cmd.Flags().DurationVar(&settle, "settle", 2*time.Second, "wait after a file appears before reading it")
	cmd.Flags().BoolVar(&save, "save", false, "write <audio>_summary.txt next to each processed file")

	return cmd
}
