package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/johnquangdev/meeting-summarizer/pkg/jwt"
)

func NewTokenCmd(deps *Dependencies) *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API token signed with AUTH_JWT_SECRET",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := deps.Config
			if !cfg.AuthEnabled() {
				return fmt.Errorf("AUTH_JWT_SECRET is not set, the API runs without authentication")
			}

			manager := jwt.NewManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenExpiry)
			token, err := manager.GenerateToken(subject)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&subject, "subject", "s", "", "who the token is issued to")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}
