package main

import (
	"fmt"
	"time"

	"github.com/localnerve/basetrack/internal/services"
	"github.com/spf13/cobra"
)

var (
	flagTokenOwner string
	flagTokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed access token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireOwner(flagTokenOwner); err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		verifier, err := services.NewTokenVerifier(cfg.AuthSecret, cfg.AuthIssuer)
		if err != nil {
			return err
		}
		token, err := verifier.Sign(flagTokenOwner, flagTokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&flagTokenOwner, "owner", "", "Owner id placed in the sub claim (required)")
	tokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", time.Hour, "Token lifetime")
}
