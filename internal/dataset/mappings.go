package dataset

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// MappingsFile is the default filename for name and region mapping overrides
const MappingsFile = "mappings.toml"

// Mappings holds the country-name canonicalization table and the
// continent-code to region table. Both ship with built-in defaults and can
// be extended or overridden by a mappings.toml next to the source CSV.
type Mappings struct {
	// Countries maps raw CSV country names to display names
	Countries map[string]string `toml:"countries"`

	// Regions maps continent codes to region names
	Regions map[string]string `toml:"regions"`
}

// DefaultMappings returns the built-in mapping tables
func DefaultMappings() *Mappings {
	return &Mappings{
		Countries: map[string]string{
			"Russian Federation":                           "Russia",
			"Korea, Republic of":                           "South Korea",
			"Korea, Dem. People's Rep. of":                 "North Korea",
			"Viet Nam":                                     "Vietnam",
			"Syrian Arab Republic":                         "Syria",
			"Lao People's Democratic Republic":             "Laos",
			"Iran (Islamic Republic of)":                   "Iran",
			"Venezuela (Bolivarian Republic of)":           "Venezuela",
			"Bolivia (Plurinational State of)":             "Bolivia",
			"Tanzania, United Republic of":                 "Tanzania",
			"Moldova, Republic of":                         "Moldova",
			"Brunei Darussalam":                            "Brunei",
			"Cabo Verde":                                   "Cape Verde",
			"Congo, Democratic Republic of the":            "DR Congo",
			"United States of America":                     "United States",
			"United Kingdom of Great Britain and Northern Ireland": "United Kingdom",
		},
		Regions: map[string]string{
			"EU": "Europe",
			"AS": "Asia",
			"AF": "Africa",
			"NA": "North America",
			"SA": "South America",
			"OC": "Oceania",
			"CB": "Caribbean",
		},
	}
}

// LoadMappings reads mapping overrides from path and merges them over the
// defaults. A missing file yields the defaults unchanged.
func LoadMappings(path string) (*Mappings, error) {
	m := DefaultMappings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return m, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var overrides Mappings
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	for raw, display := range overrides.Countries {
		m.Countries[raw] = display
	}
	for code, region := range overrides.Regions {
		m.Regions[strings.ToUpper(code)] = region
	}
	return m, nil
}

// CanonicalCountry maps a raw CSV country name to its display name.
// Unmapped names pass through unchanged.
func (m *Mappings) CanonicalCountry(raw string) string {
	raw = strings.TrimSpace(raw)
	if display, ok := m.Countries[raw]; ok {
		return display
	}
	return raw
}

// RegionFor maps a continent code to a region name. Unknown codes map to
// the default region.
func (m *Mappings) RegionFor(code string) string {
	if region, ok := m.Regions[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return region
	}
	return "Global"
}
