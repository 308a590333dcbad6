package main

import (
	"context"
	"fmt"
	"time"

	"github.com/firetemplate/items-api/internal/config"
	"github.com/firetemplate/items-api/internal/database"
	"github.com/firetemplate/items-api/internal/firebase"
	"github.com/firetemplate/items-api/internal/oidc"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check connectivity to the configured services",
		Long: `Status initialises each configured dependency the way the server does
and reports whether it is usable. Unconfigured dependencies are listed as skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			out := cmd.OutOrStdout()
			report := func(name string, configured bool, err error) {
				switch {
				case !configured:
					fmt.Fprintf(out, "%-9s skipped\n", name)
				case err != nil:
					fmt.Fprintf(out, "%-9s error: %v\n", name, err)
				default:
					fmt.Fprintf(out, "%-9s ok\n", name)
				}
			}

			fb := firebase.New(ctx, cfg.Firebase)
			defer func() { _ = fb.Close() }()
			var fbErr error
			if !fb.Ready() {
				fbErr = firebase.ErrNotInitialized
			}
			report("firebase", cfg.Firebase.CredentialsPath != "", fbErr)

			var mongoErr error
			if cfg.MongoDB.URI != "" {
				client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
				if err == nil {
					_ = client.Disconnect(context.Background())
				}
				mongoErr = err
			}
			report("mongo", cfg.MongoDB.URI != "", mongoErr)

			var redisErr error
			if addr := cfg.RedisAddr(); addr != "" {
				rc := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
				redisErr = rc.Ping(ctx).Err()
				_ = rc.Close()
			}
			report("redis", cfg.RedisAddr() != "", redisErr)

			var oidcErr error
			if cfg.OIDC.Issuer != "" {
				_, oidcErr = oidc.NewVerifier(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID)
			}
			report("oidc", cfg.OIDC.Issuer != "", oidcErr)

			report("devtoken", cfg.DevAuth.Secret != "", devTokenErr(cfg))
			fmt.Fprintf(out, "store     %s\n", cfg.Store.Backend)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "overall time limit for the checks")
	return cmd
}

func devTokenErr(cfg *config.Config) error {
	if cfg.DevAuth.Secret != "" && !cfg.DevTokensEnabled() {
		return fmt.Errorf("ignored in %s", cfg.Server.Environment)
	}
	return nil
}
