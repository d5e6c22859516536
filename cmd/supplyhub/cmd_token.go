package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/supplyhub/supplyhub/config"
	"github.com/supplyhub/supplyhub/pkg/auth"
)

var tokenTTL time.Duration

// supplyhub token <subject> — mint a bearer token for the sync trigger.
var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Generate a bearer token for the protected API",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		t, err := auth.GenerateToken(args[0], "operator", tokenTTL)
		if err != nil {
			return err
		}
		fmt.Println(t)
		return nil
	},
}

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
