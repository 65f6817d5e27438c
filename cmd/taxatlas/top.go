package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxatlas/internal/query"
)

var (
	topFormat string
	topBy     string
	topN      int
)

var topCmd = &cobra.Command{
	Use:   "top",
	Short: "Rank jurisdictions by a single metric",
	Long: `Top sorts the dataset ascending by one metric and prints the leading
entries, the way the dashboard charts them. Lower is better for every key.

Sort keys:
  tax         corporate tax rate (default)
  cost        operating cost index
  social      employer social security rate
  fees        incorporation fees
  foundation  foundation friendly score

Examples:
  taxatlas top
  taxatlas top --by fees --limit 5
  taxatlas top --by foundation --format yaml`,
	Run: runTop,
}

func init() {
	topCmd.Flags().StringVar(&topFormat, "format", "human", "Output format (human, json, yaml)")
	topCmd.Flags().StringVar(&topBy, "by", "tax", "Sort key (tax, cost, social, fees, foundation)")
	topCmd.Flags().IntVarP(&topN, "limit", "n", query.DefaultTopN, "Number of entries")
	rootCmd.AddCommand(topCmd)
}

func runTop(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	records, err := newStore(cfg, logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	key := query.ParseSortKey(topBy)
	ranked := query.TopN(records, topN, key)

	printFormatted(topFormat, map[string]interface{}{
		"by":      key,
		"records": ranked,
	}, func() {
		if len(ranked) == 0 {
			fmt.Println("Dataset is empty.")
			return
		}
		fmt.Printf("Top %d by %s:\n\n", len(ranked), key)
		printRecordTable(ranked)
	})
}
