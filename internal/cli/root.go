package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/app"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	"github.com/johnquangdev/meeting-summarizer/pkg/logger"
)

// Dependencies are resolved on first use so that commands which only need
// configuration never dial a backend. Tests preset Config and App.
type Dependencies struct {
	EnvFiles []string
	Version  string

	Config *config.Config
	Logger *zap.Logger
	App    *app.App
}

func (d *Dependencies) loadConfig() error {
	if d.Config == nil {
		cfg, err := config.Load(d.EnvFiles...)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		d.Config = cfg
	}
	if d.Logger == nil {
		// The CLI talks to people on stdout; keep library logs quiet unless asked.
		level := d.Config.Log.Level
		if level == "info" {
			level = "warn"
		}
		l, err := logger.New("development", level)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		d.Logger = l
	}
	return nil
}

func (d *Dependencies) app() (*app.App, error) {
	if d.App != nil {
		return d.App, nil
	}
	a, err := app.New(d.Config, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	d.App = a
	return a, nil
}

// Close releases the app if one was opened
func (d *Dependencies) Close() error {
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
	if d.App != nil {
		return d.App.Close()
	}
	return nil
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meetingctl",
		Short:         "Transcribe and summarize meeting recordings",
		Long:          "A CLI for the meeting summarizer: upload audio, transcribe it, and generate a summary with key decisions and action items.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return deps.loadConfig()
		},
	}

	if deps.Version != "" {
		rootCmd.Version = deps.Version
	}

	rootCmd.PersistentFlags().StringSliceVar(&deps.EnvFiles, "env-file", deps.EnvFiles, "dotenv file(s) to load before reading the environment")

	rootCmd.AddCommand(NewProcessCmd(deps))
	rootCmd.AddCommand(NewTranscribeCmd(deps))
	rootCmd.AddCommand(NewSummarizeCmd(deps))
	rootCmd.AddCommand(NewAskCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewShowCmd(deps))
	rootCmd.AddCommand(NewWatchCmd(deps))
	rootCmd.AddCommand(NewTokenCmd(deps))
	rootCmd.AddCommand(NewMigrateCmd(deps))

	return rootCmd
}
