package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"taxatlas/internal/schema"
)

// End-to-end over the checked-in fixture CSV: parse, enrich, verify.
func TestPipelineFromFixtureCSV(t *testing.T) {
	f, err := os.Open(filepath.Join("testdata", "rates.csv"))
	if err != nil {
		t.Fatalf("opening fixture: %v", err)
	}
	defer f.Close()

	rows, dropped, err := ReadCSV(f)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2 (missing continent, missing rate)", dropped)
	}
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}

	b := NewBuilder(nil, nil, nil)
	records, err := b.Build(rows)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("got %d records, want 10", len(records))
	}

	// Canonical names from the default mapping table
	if schema.FindCountry(records, "United States") == -1 {
		t.Error("United States of America should canonicalize to United States")
	}
	if schema.FindCountry(records, "Russia") == -1 {
		t.Error("Russian Federation should canonicalize to Russia")
	}

	// Region assignment from continent codes
	wantRegions := map[string]string{
		"Ireland":        "Europe",
		"United States":  "North America",
		"Brazil":         "South America",
		"Singapore":      "Asia",
		"Cayman Islands": "Caribbean",
		"Nigeria":        "Africa",
		"Australia":      "Oceania",
	}
	for country, region := range wantRegions {
		i := schema.FindCountry(records, country)
		if i < 0 {
			t.Errorf("%s missing from built dataset", country)
			continue
		}
		if records[i].Region != region {
			t.Errorf("%s region = %q, want %q", country, records[i].Region, region)
		}
	}

	// Treaty tiers from membership flags
	checks := []struct {
		country string
		want    string
	}{
		{"Ireland", "EU"},
		{"Brazil", "G20"},
		{"Cayman Islands", "offshore"},
	}
	for _, c := range checks {
		i := schema.FindCountry(records, c.country)
		if i < 0 {
			t.Fatalf("%s missing", c.country)
		}
		if !strings.Contains(records[i].TreatyNetworkStrength, c.want) {
			t.Errorf("%s treaty = %q, want mention of %q", c.country, records[i].TreatyNetworkStrength, c.want)
		}
	}

	for _, r := range records {
		if err := r.Validate(); err != nil {
			t.Errorf("%s: built record invalid: %v", r.Country, err)
		}
	}
}
