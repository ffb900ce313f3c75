package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/database"
	"github.com/johnquangdev/meeting-summarizer/internal/output"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func NewMigrateCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply PostgreSQL schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			if cfg.StoreBackend != config.StorePostgres {
				return fmt.Errorf("migrations apply to STORE_BACKEND=postgres, current backend is %q", cfg.StoreBackend)
			}

			db, err := database.NewPostgresDB(cfg)
			if err != nil {
				return err
			}
			defer database.CloseDB(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			output.NewFormatter(cmd.OutOrStdout()).Success("Migrations applied")
			return nil
		},
	}

	return cmd
}
