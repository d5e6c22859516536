package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/supplyhub/supplyhub/internal/server"
	"github.com/supplyhub/supplyhub/internal/vendor"
)

// supplyhub sync:run <vendor> — run a full feed sync for one vendor.
var syncRunCmd = &cobra.Command{
	Use:   "sync:run <vendor>",
	Short: "Fetch and reconcile one vendor's feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}

		report, err := server.NewRunner().Run(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

// supplyhub vendor:list — print registered vendors.
var vendorListCmd = &cobra.Command{
	Use:   "vendor:list",
	Short: "List configured feed vendors",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range vendor.Codes() {
			p, err := vendor.Lookup(code)
			if err != nil {
				return err
			}
			mode := "ftp"
			if p.ExplicitTLS {
				mode = "ftps"
			}
			fmt.Printf("%-10s %-5s %s\n", p.Code, mode, p.Host)
		}
		return nil
	},
}
