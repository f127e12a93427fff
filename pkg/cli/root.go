// Package cli implements the fleetd command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Persistent flags available to all subcommands
	adminURL   string
	jsonOutput bool

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fleetd",
	Short: "fleetd manages fleet API endpoint configuration",
	Long: `fleetd runs the endpoint configuration service for the fleet operations
console: API environments, endpoint definitions, live endpoint tests, and
client configuration management.

The serve command starts the admin API; the remaining commands talk to a
running instance over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true, // errors are handled in Execute()
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&adminURL, "admin-url", "http://127.0.0.1:4780", "Admin API base URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}
