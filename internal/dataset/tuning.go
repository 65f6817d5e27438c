package dataset

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// TuningFile is the default filename for heuristic tuning overrides
const TuningFile = "tuning.toml"

// RegionParams are the per-region bases feeding the derivation heuristics
type RegionParams struct {
	// CostBase seeds the operating cost index
	CostBase float64 `toml:"cost_base"`

	// SocialBase seeds the employer social security rate
	SocialBase float64 `toml:"social_base"`

	// FeeBase seeds the incorporation fee estimate, in USD
	FeeBase float64 `toml:"fee_base"`

	// Offshore marks the offshore-leaning region for reputation tiering
	Offshore bool `toml:"offshore"`

	// IncentivePhrase is interpolated into the incentives templates
	IncentivePhrase string `toml:"incentive_phrase"`

	// FoundationNotes are appended to every record's foundation terms
	FoundationNotes []string `toml:"foundation_notes"`
}

// Tuning is the full heuristic parameter table, keyed by region name
type Tuning struct {
	Regions map[string]RegionParams `toml:"regions"`
}

// DefaultTuning returns the built-in parameter table. Values are heuristic
// and deterministic, not sourced from real data.
func DefaultTuning() *Tuning {
	return &Tuning{
		Regions: map[string]RegionParams{
			"Europe": {
				CostBase: 62, SocialBase: 16, FeeBase: 620,
				IncentivePhrase: "EU-aligned R&D and holding regimes",
				FoundationNotes: []string{
					"Civil-law foundations widely recognized across the region",
					"EU anti-avoidance directives apply to cross-border structures",
				},
			},
			"North America": {
				CostBase: 60, SocialBase: 10, FeeBase: 640,
				IncentivePhrase: "state and federal investment credits",
				FoundationNotes: []string{
					"Common-law trusts more usual than foundations",
					"Beneficial ownership registers in force",
				},
			},
			"South America": {
				CostBase: 52, SocialBase: 13, FeeBase: 540,
				IncentivePhrase: "free trade zone and export regimes",
				FoundationNotes: []string{
					"Private interest foundations available in several jurisdictions",
					"Currency controls can affect funding flows",
				},
			},
			"Asia": {
				CostBase: 50, SocialBase: 11, FeeBase: 520,
				IncentivePhrase: "regional headquarters and pioneer incentives",
				FoundationNotes: []string{
					"Foundation regimes concentrated in financial centres",
					"Substance requirements tightening across the region",
				},
			},
			"Africa": {
				CostBase: 42, SocialBase: 9, FeeBase: 460,
				IncentivePhrase: "special economic zone programs",
				FoundationNotes: []string{
					"Foundation law patchy; trusts often used instead",
					"Exchange control approvals may be required",
				},
			},
			"Oceania": {
				CostBase: 58, SocialBase: 8, FeeBase: 600,
				IncentivePhrase: "early-stage investor and innovation offsets",
				FoundationNotes: []string{
					"Foundations uncommon; charitable trusts dominate",
					"Strong regulator engagement expected",
				},
			},
			"Caribbean": {
				CostBase: 48, SocialBase: 6, FeeBase: 430, Offshore: true,
				IncentivePhrase: "international business company regimes",
				FoundationNotes: []string{
					"Purpose foundations available with flexible governance",
					"Economic substance rules apply to relevant activities",
				},
			},
			"Global": {
				CostBase: 50, SocialBase: 10, FeeBase: 500,
				IncentivePhrase: "general investment promotion programs",
				FoundationNotes: []string{
					"Local advice needed on foundation recognition",
				},
			},
		},
	}
}

// LoadTuning reads tuning overrides from path and merges them over the
// defaults, region by region. A missing file yields the defaults unchanged.
func LoadTuning(path string) (*Tuning, error) {
	t := DefaultTuning()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides Tuning
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for region, params := range overrides.Regions {
		t.Regions[region] = params
	}
	return t, nil
}

// ParamsFor returns the parameters for a region, falling back to Global
func (t *Tuning) ParamsFor(region string) RegionParams {
	if p, ok := t.Regions[region]; ok {
		return p
	}
	return t.Regions["Global"]
}
