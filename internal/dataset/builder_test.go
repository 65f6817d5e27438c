package dataset

import (
	"strings"
	"testing"

	"taxatlas/internal/schema"
)

func TestBuildOneRecordPerRow(t *testing.T) {
	rows := []RawRow{
		{Country: "Austria", Continent: "EU", Rate: 24, Gdp: 480, Oecd: true, Eu27: true},
		{Country: "Cayman Islands", Continent: "CB", Rate: 0, Gdp: 6},
		{Country: "Singapore", Continent: "AS", Rate: 17, Gdp: 500},
		{Country: "", Continent: "EU", Rate: 20},   // dropped: no country
		{Country: "Atlantis", Continent: "", Rate: 20}, // dropped: no continent
	}

	b := NewBuilder(nil, nil, nil)
	records, err := b.Build(rows)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	// Sorted by country, case-insensitively
	want := []string{"Austria", "Cayman Islands", "Singapore"}
	for i, w := range want {
		if records[i].Country != w {
			t.Errorf("records[%d] = %q, want %q", i, records[i].Country, w)
		}
	}

	for _, r := range records {
		if r.OperatingCostIndex < 25 || r.OperatingCostIndex > 95 {
			t.Errorf("%s: cost index %d out of [25,95]", r.Country, r.OperatingCostIndex)
		}
		if r.EmployerSocialSecurityRate < 0 || r.EmployerSocialSecurityRate > 35 {
			t.Errorf("%s: social rate %v out of [0,35]", r.Country, r.EmployerSocialSecurityRate)
		}
		if s := r.FoundationTerms.FriendlyScore; s < 0 || s > 5 {
			t.Errorf("%s: friendly score %d out of [0,5]", r.Country, s)
		}
		if r.IncorporationFeesUsd%10 != 0 || r.AnnualFilingCostUsd%10 != 0 {
			t.Errorf("%s: fee fields not rounded to 10", r.Country)
		}
		if len(r.Incentives) != 3 || len(r.Notes) != 3 {
			t.Errorf("%s: want 3 incentives and 3 notes", r.Country)
		}
		if err := r.Validate(); err != nil {
			t.Errorf("%s: built record invalid: %v", r.Country, err)
		}
	}
}

func TestBuildRegionMapping(t *testing.T) {
	b := NewBuilder(nil, nil, nil)
	records, err := b.Build([]RawRow{
		{Country: "Austria", Continent: "EU", Rate: 24},
		{Country: "Kenya", Continent: "AF", Rate: 30},
		{Country: "Nowhere", Continent: "XX", Rate: 20},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	regions := map[string]string{}
	for _, r := range records {
		regions[r.Country] = r.Region
	}
	if regions["Austria"] != "Europe" {
		t.Errorf("Austria region = %q, want Europe", regions["Austria"])
	}
	if regions["Kenya"] != "Africa" {
		t.Errorf("Kenya region = %q, want Africa", regions["Kenya"])
	}
	if regions["Nowhere"] != "Global" {
		t.Errorf("unknown continent should map to Global, got %q", regions["Nowhere"])
	}
}

func TestBuildCanonicalNames(t *testing.T) {
	b := NewBuilder(nil, nil, nil)
	records, err := b.Build([]RawRow{
		{Country: "Russian Federation", Continent: "EU", Rate: 20},
		{Country: "Freedonia", Continent: "EU", Rate: 20},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if schema.FindCountry(records, "Russia") == -1 {
		t.Error("Russian Federation should canonicalize to Russia")
	}
	if schema.FindCountry(records, "Freedonia") == -1 {
		t.Error("unmapped names should pass through unchanged")
	}
}

func TestBuildCaymanDerivation(t *testing.T) {
	// Full derivation chain for a zero-rate offshore jurisdiction,
	// pinned against the default Caribbean parameters.
	b := NewBuilder(nil, nil, nil)
	records, err := b.Build([]RawRow{{Country: "Cayman Islands", Continent: "CB", Rate: 0}})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	r := records[0]

	if r.OperatingCostIndex != 44 {
		t.Errorf("cost index = %d, want 44", r.OperatingCostIndex)
	}
	if r.EmployerSocialSecurityRate != 3.1 {
		t.Errorf("social rate = %v, want 3.1", r.EmployerSocialSecurityRate)
	}
	if r.IncorporationFeesUsd != 600 {
		t.Errorf("incorporation fees = %d, want 600", r.IncorporationFeesUsd)
	}
	if r.AnnualFilingCostUsd != 260 {
		t.Errorf("filing cost = %d, want 260", r.AnnualFilingCostUsd)
	}
	if r.ComplianceBurden != schema.ComplianceLow {
		t.Errorf("compliance = %q, want Low", r.ComplianceBurden)
	}
	if r.ReputationRisk != schema.ReputationHigh {
		t.Errorf("reputation = %q, want High", r.ReputationRisk)
	}
	if r.FoundationTerms.FriendlyScore != 4 {
		t.Errorf("friendly score = %d, want 4", r.FoundationTerms.FriendlyScore)
	}
}

func TestBuildNoUsableRows(t *testing.T) {
	b := NewBuilder(nil, nil, nil)
	_, err := b.Build([]RawRow{{Country: "", Continent: "", Rate: 0}})
	if err == nil || !strings.Contains(err.Error(), "BUILD_FAILED") {
		t.Errorf("want BUILD_FAILED, got %v", err)
	}
}
