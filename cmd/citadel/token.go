package main

import (
	"fmt"
	"time"

	"github.com/boddenberg/citadel-bfa-go/internal/config"
	"github.com/boddenberg/citadel-bfa-go/internal/domain"
	"github.com/boddenberg/citadel-bfa-go/internal/handler"

	"github.com/spf13/cobra"
)

// newTokenCmd signs a session token with the configured secret. Only
// useful against a development setup; real tokens come from the
// identity provider.
func newTokenCmd() *cobra.Command {
	var (
		sess domain.Session
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sess.UserID == "" {
				return fmt.Errorf("--user is required")
			}
			cfg := config.Load()
			token, err := handler.NewSessionVerifier(cfg.SessionSecret, cfg.SessionIssuer).Sign(sess, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&sess.UserID, "user", "", "CRM user id (token subject)")
	cmd.Flags().StringVar(&sess.Email, "email", "", "email claim")
	cmd.Flags().StringVar(&sess.Name, "name", "", "name claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
