package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/firetemplate/items-api/internal/config"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/internal/tokens"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		uid   string
		email string
		name  string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token",
		Long: `Token signs an HS256 token with DEV_JWT_SECRET. The API accepts it only
outside production. Pass it as "Authorization: Bearer <token>".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if !cfg.DevTokensEnabled() {
				return errors.New("development tokens are disabled: set DEV_JWT_SECRET and use a non-production ENVIRONMENT")
			}
			tok, err := tokens.GenerateDevToken(cfg.DevAuth.Secret, &models.Caller{UID: uid, Email: email, Name: name}, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&uid, "uid", "", "subject of the token (required)")
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().StringVar(&name, "name", "", "display name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("uid")
	return cmd
}
