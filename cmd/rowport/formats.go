package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"helios-data/rowport/pkg/cli"
)

var formatsFlags struct {
	output string
}

// formatInfo describes one output format for the listing.
type formatInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Framing string `json:"framing"`
}

func formatCatalog() []formatInfo {
	return []formatInfo{
		{
			Name:    "csv",
			Kind:    "delimited text",
			Framing: "header line, one fully quoted line per row, no footer",
		},
		{
			Name:    "json",
			Kind:    "single document",
			Framing: "array of objects with native value types",
		},
		{
			Name:    "xml",
			Kind:    "markup",
			Framing: "declaration and <records> root, one <record> per row",
		},
		{
			Name:    "parquet",
			Kind:    "columnar binary",
			Framing: "optional string columns, footer written at finish",
		},
	}
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported output formats",
	Long: `List the supported output formats and how each frames its document.

Examples:
  rowport formats
  rowport formats --output json`,
	RunE: runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)

	formatsCmd.Flags().StringVar(&formatsFlags.output, "output", "text", "listing format: text, json")
}

func runFormats(cmd *cobra.Command, args []string) error {
	catalog := formatCatalog()

	if formatsFlags.output == "json" {
		formatter := cli.NewFormatter(cli.FormatJSON)
		return formatter.FormatTo(os.Stdout, catalog)
	}

	for _, f := range catalog {
		fmt.Printf("%-8s  %-16s  %s\n", f.Name, f.Kind, f.Framing)
	}
	return nil
}
