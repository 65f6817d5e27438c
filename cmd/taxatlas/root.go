package main

import (
	"github.com/spf13/cobra"

	"taxatlas/internal/version"
)

var (
	// rootFlag is the project root holding .taxatlas/ and the data files
	rootFlag string
)

var rootCmd = &cobra.Command{
	Use:   "taxatlas",
	Short: "taxatlas - Jurisdiction tax dataset toolkit",
	Long: `taxatlas builds, stores, and queries a flat-file dataset of corporate
tax jurisdictions. It enriches raw statutory rate CSVs into full jurisdiction
profiles, partitions them into per-region JSON files, and serves filter,
summary, and ranking queries over the CLI or an HTTP API.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("taxatlas version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", ".",
		"Project root containing .taxatlas/ and the dataset")
}
