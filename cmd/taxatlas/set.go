package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taxatlas/internal/schema"
	"taxatlas/internal/store"
)

var (
	setToken      string
	setOriginal   string
	setRegion     string
	setTaxRate    float64
	setCostIndex  int
	setSocialRate float64
	setIncorpFees int
	setFilingCost int
	setTreaty     string
	setCompliance string
	setReputation string
	setIncentive  []string
	setNote       []string
	setFndnAvail  string
	setFndnScore  int
)

var setCmd = &cobra.Command{
	Use:   "set <country>",
	Short: "Create or update a jurisdiction record",
	Long: `Set writes one jurisdiction record into the dataset, replacing any
existing record for the same country. The write token configured in
.taxatlas/config.json is required; pass it with --token or the
TAXATLAS_TOKEN environment variable.

When renaming a country, pass the old name with --original so the
existing record is replaced instead of duplicated.

Examples:
  taxatlas set Ireland --region Europe --tax-rate 12.5 --token ta_wt_...
  taxatlas set "State of Qatar" --original Qatar --region Asia --tax-rate 10`,
	Args: cobra.ExactArgs(1),
	Run:  runSet,
}

func init() {
	setCmd.Flags().StringVar(&setToken, "token", "", "Write token (or TAXATLAS_TOKEN env var)")
	setCmd.Flags().StringVar(&setOriginal, "original", "", "Previous country name when renaming")
	setCmd.Flags().StringVar(&setRegion, "region", "", "Region (required for new records)")
	setCmd.Flags().Float64Var(&setTaxRate, "tax-rate", 0, "Corporate tax rate percent")
	setCmd.Flags().IntVar(&setCostIndex, "cost-index", 0, "Operating cost index (0-100)")
	setCmd.Flags().Float64Var(&setSocialRate, "social-rate", 0, "Employer social security rate percent")
	setCmd.Flags().IntVar(&setIncorpFees, "incorporation-fees", 0, "Incorporation fees in USD")
	setCmd.Flags().IntVar(&setFilingCost, "filing-cost", 0, "Annual filing cost in USD")
	setCmd.Flags().StringVar(&setTreaty, "treaty", "", "Treaty network strength description")
	setCmd.Flags().StringVar(&setCompliance, "compliance", "Moderate", "Compliance burden (Low, Moderate, High)")
	setCmd.Flags().StringVar(&setReputation, "reputation", "Low", "Reputation risk (Very Low, Low, Moderate, Elevated, High)")
	setCmd.Flags().StringArrayVar(&setIncentive, "incentive", nil, "Incentive line (repeatable)")
	setCmd.Flags().StringArrayVar(&setNote, "note", nil, "Analyst note line (repeatable)")
	setCmd.Flags().StringVar(&setFndnAvail, "foundation", "", "Foundation availability description")
	setCmd.Flags().IntVar(&setFndnScore, "foundation-score", 3, "Foundation friendly score (1-5)")
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	logger := newLogger(cfg)

	token := setToken
	if token == "" {
		token = os.Getenv("TAXATLAS_TOKEN")
	}
	if err := newVerifier(cfg).Verify(token); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	st := newStore(cfg, logger)
	records, err := st.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}

	rec := recordFromFlags(cmd, records, args[0])
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	records = store.Upsert(records, rec, setOriginal)
	if err := st.Save(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving dataset: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Saved %s (%d jurisdictions total)\n", rec.Country, len(records))
}

// recordFromFlags merges the set flags over the existing record, so an
// update only needs to pass the fields that change
func recordFromFlags(cmd *cobra.Command, records []schema.JurisdictionRecord, country string) schema.JurisdictionRecord {
	var rec schema.JurisdictionRecord

	base := setOriginal
	if base == "" {
		base = country
	}
	if i := schema.FindCountry(records, base); i >= 0 {
		rec = records[i]
	}
	rec.Country = country

	if cmd.Flags().Changed("region") {
		rec.Region = setRegion
	}
	if cmd.Flags().Changed("tax-rate") {
		rec.CorporateTaxRate = setTaxRate
	}
	if cmd.Flags().Changed("cost-index") {
		rec.OperatingCostIndex = setCostIndex
	}
	if cmd.Flags().Changed("social-rate") {
		rec.EmployerSocialSecurityRate = setSocialRate
	}
	if cmd.Flags().Changed("incorporation-fees") {
		rec.IncorporationFeesUsd = setIncorpFees
	}
	if cmd.Flags().Changed("filing-cost") {
		rec.AnnualFilingCostUsd = setFilingCost
	}
	if cmd.Flags().Changed("treaty") {
		rec.TreatyNetworkStrength = setTreaty
	}
	if cmd.Flags().Changed("compliance") || rec.ComplianceBurden == "" {
		rec.ComplianceBurden = schema.ComplianceBurden(setCompliance)
	}
	if cmd.Flags().Changed("reputation") || rec.ReputationRisk == "" {
		rec.ReputationRisk = schema.ReputationRisk(setReputation)
	}
	if cmd.Flags().Changed("incentive") {
		rec.Incentives = setIncentive
	}
	if cmd.Flags().Changed("note") {
		rec.Notes = setNote
	}
	if cmd.Flags().Changed("foundation") {
		rec.FoundationTerms.Availability = setFndnAvail
	}
	if cmd.Flags().Changed("foundation-score") || rec.FoundationTerms.FriendlyScore == 0 {
		rec.FoundationTerms.FriendlyScore = setFndnScore
	}

	return rec
}
