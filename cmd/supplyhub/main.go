package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/supplyhub/supplyhub/database/migrations"
	_ "github.com/supplyhub/supplyhub/database/seeders"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "supplyhub",
	Short: "SupplyHub — supplier feed reconciliation",
	Long:  "SupplyHub ingests supplier flat-file feeds over FTP and reconciles them into a product catalog served over HTTP.",
}

func init() {
	// Server
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)

	// Feeds
	rootCmd.AddCommand(syncRunCmd)
	rootCmd.AddCommand(vendorListCmd)

	// Auth
	rootCmd.AddCommand(tokenCmd)
}
