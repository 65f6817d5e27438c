package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"taxatlas/internal/schema"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <country>",
	Short: "Show the full profile of one jurisdiction",
	Long: `Show prints every field of a single jurisdiction record, including
incentives, analyst notes, and private foundation terms. Country matching
is case-insensitive.

Examples:
  taxatlas show Ireland
  taxatlas show "Cayman Islands" --format yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "human", "Output format (human, json, yaml)")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	records, err := newStore(cfg, logger).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	i := schema.FindCountry(records, args[0])
	if i < 0 {
		fmt.Fprintf(os.Stderr, "Error: no jurisdiction named '%s'\n", args[0])
		os.Exit(1)
	}
	rec := records[i]

	printFormatted(showFormat, rec, func() {
		printRecordDetail(&rec)
	})
}

func printRecordDetail(r *schema.JurisdictionRecord) {
	fmt.Printf("%s (%s)\n", r.Country, r.Region)
	fmt.Println()
	fmt.Printf("  Corporate tax rate:     %.1f%%\n", r.CorporateTaxRate)
	fmt.Printf("  Operating cost index:   %d\n", r.OperatingCostIndex)
	fmt.Printf("  Employer social rate:   %.1f%%\n", r.EmployerSocialSecurityRate)
	fmt.Printf("  Incorporation fees:     USD %d\n", r.IncorporationFeesUsd)
	fmt.Printf("  Annual filing cost:     USD %d\n", r.AnnualFilingCostUsd)
	fmt.Printf("  Treaty network:         %s\n", r.TreatyNetworkStrength)
	fmt.Printf("  Compliance burden:      %s\n", r.ComplianceBurden)
	fmt.Printf("  Reputation risk:        %s\n", r.ReputationRisk)

	if len(r.Incentives) > 0 {
		fmt.Println()
		fmt.Println("  Incentives:")
		for _, item := range r.Incentives {
			fmt.Printf("    - %s\n", item)
		}
	}
	if len(r.Notes) > 0 {
		fmt.Println()
		fmt.Println("  Notes:")
		for _, item := range r.Notes {
			fmt.Printf("    - %s\n", item)
		}
	}

	fmt.Println()
	fmt.Println("  Foundation terms:")
	fmt.Printf("    Availability:  %s\n", r.FoundationTerms.Availability)
	fmt.Printf("    Control:       %s\n", r.FoundationTerms.ControlRequirements)
	fmt.Printf("    Reporting:     %s\n", r.FoundationTerms.Reporting)
	fmt.Printf("    Substance:     %s\n", r.FoundationTerms.SubstanceRequirements)
	fmt.Printf("    Score:         %d/5\n", r.FoundationTerms.FriendlyScore)
	if len(r.FoundationTerms.Notes) > 0 {
		fmt.Printf("    Notes:         %s\n", strings.Join(r.FoundationTerms.Notes, "; "))
	}
}
