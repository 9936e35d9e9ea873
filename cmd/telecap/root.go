package main

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "telecap",
	Short: "telecap - telemetry capture directory maintenance",
	Long: `telecap cleans the output directory where captured OpenTelemetry data is
written as NDJSON files. It can clear the directory once or keep it clean on a
schedule while exporting prometheus metrics.`,
	Version: Version,
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(serveCmd)
}
