package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taxatlas/internal/query"
)

var summaryFormat string

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show per-region averages across the dataset",
	Long: `Summary aggregates the dataset by region: jurisdiction count, average
corporate tax rate, average operating cost index, and average foundation
friendly score. Regions are listed alphabetically.

Examples:
  taxatlas summary
  taxatlas summary --format json`,
	Run: runSummary,
}

func init() {
	summaryCmd.Flags().StringVar(&summaryFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	records, err := newStore(cfg, logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	stats := query.SummarizeByRegion(records)

	printFormatted(summaryFormat, map[string]interface{}{
		"regions": stats,
	}, func() {
		if len(stats) == 0 {
			fmt.Println("Dataset is empty.")
			return
		}
		fmt.Printf("  %-16s %6s %10s %10s %12s\n",
			"REGION", "COUNT", "AVG TAX %", "AVG COST", "AVG FNDN")
		fmt.Printf("  %-16s %6s %10s %10s %12s\n",
			strings.Repeat("-", 16), strings.Repeat("-", 6), strings.Repeat("-", 10),
			strings.Repeat("-", 10), strings.Repeat("-", 12))
		for _, s := range stats {
			fmt.Printf("  %-16s %6d %10.1f %10.1f %12.1f\n",
				s.Region, s.Count, s.AvgTaxRate, s.AvgCostIndex, s.AvgFoundationScore)
		}
	})
}
