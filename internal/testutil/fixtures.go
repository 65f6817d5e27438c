// Package testutil provides shared dataset fixtures for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"taxatlas/internal/logging"
	"taxatlas/internal/schema"
	"taxatlas/internal/store"
)

// SampleRecords returns a small normalized dataset spanning three regions.
// Tests depend on the exact countries, regions, and tax rates here.
func SampleRecords() []schema.JurisdictionRecord {
	records := []schema.JurisdictionRecord{
		{
			Country:                    "Austria",
			Region:                     "Europe",
			CorporateTaxRate:           24,
			OperatingCostIndex:         66,
			EmployerSocialSecurityRate: 20.9,
			IncorporationFeesUsd:       1800,
			AnnualFilingCostUsd:        2400,
			TreatyNetworkStrength:      "Broad EU treaty network",
			ComplianceBurden:           schema.ComplianceHigh,
			ReputationRisk:             schema.ReputationVeryLow,
			Incentives:                 []string{"Research premium of 14%"},
			FoundationTerms: schema.FoundationTerms{
				Availability:  "Private foundations available",
				FriendlyScore: 4,
			},
		},
		{
			Country:                    "Cayman Islands",
			Region:                     "Caribbean",
			CorporateTaxRate:           0,
			OperatingCostIndex:         44,
			EmployerSocialSecurityRate: 3.1,
			IncorporationFeesUsd:       600,
			AnnualFilingCostUsd:        260,
			TreatyNetworkStrength:      "Minimal treaty network",
			ComplianceBurden:           schema.ComplianceLow,
			ReputationRisk:             schema.ReputationHigh,
			Incentives:                 []string{"No direct corporate taxation"},
			FoundationTerms: schema.FoundationTerms{
				Availability:  "Foundation companies available",
				FriendlyScore: 4,
			},
		},
		{
			Country:                    "Qatar",
			Region:                     "Asia",
			CorporateTaxRate:           10,
			OperatingCostIndex:         55,
			EmployerSocialSecurityRate: 10,
			IncorporationFeesUsd:       700,
			AnnualFilingCostUsd:        1100,
			TreatyNetworkStrength:      "Growing treaty network",
			ComplianceBurden:           schema.ComplianceModerate,
			ReputationRisk:             schema.ReputationModerate,
			Incentives:                 []string{"QFC foundations regime"},
			FoundationTerms: schema.FoundationTerms{
				Availability:  "Foundations available in the QFC",
				FriendlyScore: 3,
			},
		},
	}
	for i := range records {
		records[i].Normalize()
	}
	return records
}

// SeedStore creates a store over a temp directory pre-populated with
// SampleRecords. The legacy snapshot lives inside the same directory.
func SeedStore(t *testing.T) *store.Store {
	t.Helper()

	dir := t.TempDir()
	st := store.New(dir, filepath.Join(dir, "jurisdictions.json"), store.BackupConfig{}, logging.Silent())
	if err := st.Save(SampleRecords()); err != nil {
		t.Fatalf("seeding dataset: %v", err)
	}
	return st
}
