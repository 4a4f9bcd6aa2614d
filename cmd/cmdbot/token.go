package main

import (
	"fmt"
	"time"

	"github.com/aretw0/cmdbot/internal/config"
	httpadapter "github.com/aretw0/cmdbot/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token [subject]",
	Short: "Issue a bearer token for the dashboard write endpoints",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := globalFlags(cmd)
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		v, err := httpadapter.NewVerifier(cfg.HTTP.AuthSecret)
		if err != nil {
			return fmt.Errorf("http.auth_secret: %w", err)
		}
		subject := "operator"
		if len(args) > 0 {
			subject = args[0]
		}
		token, err := v.Issue(subject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().Duration("ttl", 8*time.Hour, "Token lifetime")
}
