package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuning(t *testing.T) {
	tuning := DefaultTuning()

	if !tuning.ParamsFor("Caribbean").Offshore {
		t.Error("Caribbean should be the offshore-leaning region by default")
	}
	if tuning.ParamsFor("Europe").Offshore {
		t.Error("Europe should not be offshore by default")
	}

	// Unknown regions fall back to Global
	got := tuning.ParamsFor("Middle Earth")
	if got.CostBase != tuning.Regions["Global"].CostBase {
		t.Error("unknown region should use Global parameters")
	}

	for name, p := range tuning.Regions {
		if p.CostBase <= 0 || p.FeeBase <= 0 {
			t.Errorf("%s: parameter bases must be positive", name)
		}
		if p.IncentivePhrase == "" {
			t.Errorf("%s: incentive phrase missing", name)
		}
		if len(p.FoundationNotes) == 0 {
			t.Errorf("%s: foundation notes missing", name)
		}
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), TuningFile)
	content := `
[regions.Europe]
cost_base = 70
social_base = 18
fee_base = 700
incentive_phrase = "custom phrase"
foundation_notes = ["custom note"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	tuning, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning failed: %v", err)
	}

	europe := tuning.ParamsFor("Europe")
	if europe.CostBase != 70 || europe.IncentivePhrase != "custom phrase" {
		t.Errorf("Europe override not applied: %+v", europe)
	}
	// Regions not named keep defaults
	if tuning.ParamsFor("Asia").CostBase != 50 {
		t.Error("Asia defaults should survive a Europe-only override")
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), TuningFile))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if tuning.ParamsFor("Europe").CostBase != 62 {
		t.Error("defaults expected when file missing")
	}
}
