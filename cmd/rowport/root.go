package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"helios-data/rowport/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "rowport",
	Short: "Rowport - streaming exporter for SQL result sets",
	Long: `Rowport exports tabular result sets as CSV, JSON, XML, or Parquet.

Rows stream from the database through the encoder into the output one at
a time, so memory use stays flat no matter how large the result set is.
A failed export never leaves a finalized document behind.

Configuration comes from a YAML file, ROWPORT_* environment variables,
and command-line flags, in increasing order of precedence.

For more information, visit: https://github.com/helios-data/rowport`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return cli.ExitCode(err)
	}
	return cli.ExitOK
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "rowport.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress summaries")

	// Disable default completion command (we'll add our own)
	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
