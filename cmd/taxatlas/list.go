package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taxatlas/internal/query"
	"taxatlas/internal/schema"
)

var (
	listFormat        string
	listRegion        string
	listKeyword       string
	listMaxTax        float64
	listMaxCost       int
	listMaxSocial     float64
	listMaxIncorp     int
	listMinFoundation int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List jurisdictions matching filter criteria",
	Long: `List jurisdictions from the dataset, optionally narrowed by region,
keyword, or numeric ceilings. All criteria are combined with AND.

Examples:
  taxatlas list
  taxatlas list --region Europe --max-tax 15
  taxatlas list --query foundation --format json`,
	Run: runList,
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "human", "Output format (human, json, yaml)")
	listCmd.Flags().StringVar(&listRegion, "region", "", "Region filter (\"all\" or empty matches everything)")
	listCmd.Flags().StringVar(&listKeyword, "query", "", "Case-insensitive keyword over names, incentives, and notes")
	listCmd.Flags().Float64Var(&listMaxTax, "max-tax", -1, "Maximum corporate tax rate")
	listCmd.Flags().IntVar(&listMaxCost, "max-cost", -1, "Maximum operating cost index")
	listCmd.Flags().Float64Var(&listMaxSocial, "max-social", -1, "Maximum employer social security rate")
	listCmd.Flags().IntVar(&listMaxIncorp, "max-incorporation", -1, "Maximum incorporation fees (USD)")
	listCmd.Flags().IntVar(&listMinFoundation, "min-foundation", -1, "Minimum foundation friendly score")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	records, err := newStore(cfg, logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	c := query.Criteria{Region: listRegion, Keyword: listKeyword}
	if cmd.Flags().Changed("max-tax") {
		c.MaxTaxRate = &listMaxTax
	}
	if cmd.Flags().Changed("max-cost") {
		c.MaxCostIndex = &listMaxCost
	}
	if cmd.Flags().Changed("max-social") {
		c.MaxSocialRate = &listMaxSocial
	}
	if cmd.Flags().Changed("max-incorporation") {
		c.MaxIncorporationFee = &listMaxIncorp
	}
	if cmd.Flags().Changed("min-foundation") {
		c.MinFoundationScore = &listMinFoundation
	}

	filtered := query.Filter(records, c)

	printFormatted(listFormat, map[string]interface{}{
		"count":   len(filtered),
		"records": filtered,
	}, func() {
		printRecordTable(filtered)
	})
}

// printRecordTable renders the dashboard-style jurisdiction table
func printRecordTable(records []schema.JurisdictionRecord) {
	if len(records) == 0 {
		fmt.Println("No jurisdictions match.")
		return
	}

	fmt.Printf("  %-24s %-14s %8s %6s %8s %9s %-10s %-9s\n",
		"COUNTRY", "REGION", "TAX %", "COST", "SOCIAL %", "FEES USD", "COMPLIANCE", "RISK")
	fmt.Printf("  %-24s %-14s %8s %6s %8s %9s %-10s %-9s\n",
		strings.Repeat("-", 24), strings.Repeat("-", 14), strings.Repeat("-", 8),
		strings.Repeat("-", 6), strings.Repeat("-", 8), strings.Repeat("-", 9),
		strings.Repeat("-", 10), strings.Repeat("-", 9))

	for i := range records {
		r := &records[i]
		name := r.Country
		if len(name) > 24 {
			name = name[:21] + "..."
		}
		fmt.Printf("  %-24s %-14s %8.1f %6d %8.1f %9d %-10s %-9s\n",
			name, r.Region, r.CorporateTaxRate, r.OperatingCostIndex,
			r.EmployerSocialSecurityRate, r.IncorporationFeesUsd,
			r.ComplianceBurden, r.ReputationRisk)
	}
	fmt.Printf("\n  %d jurisdictions\n", len(records))
}
