// Package schema defines the jurisdiction record shape shared by the builder,
// store, and query engine, plus the coercion and validation rules applied to
// user-submitted data.
package schema

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"taxatlas/internal/taxerr"
)

// ComplianceBurden is the qualitative tier of ongoing regulatory effort
type ComplianceBurden string

const (
	ComplianceLow      ComplianceBurden = "Low"
	ComplianceModerate ComplianceBurden = "Moderate"
	ComplianceHigh     ComplianceBurden = "High"
)

// ReputationRisk is the qualitative tier of jurisdiction reputation exposure
type ReputationRisk string

const (
	ReputationVeryLow  ReputationRisk = "Very Low"
	ReputationLow      ReputationRisk = "Low"
	ReputationModerate ReputationRisk = "Moderate"
	ReputationElevated ReputationRisk = "Elevated"
	ReputationHigh     ReputationRisk = "High"
)

// DefaultRegion is used when a record carries no region
const DefaultRegion = "Global"

// FoundationTerms describes foundation-ownership conditions for a jurisdiction
type FoundationTerms struct {
	Availability          string   `json:"availability"`
	ControlRequirements   string   `json:"controlRequirements"`
	Reporting             string   `json:"reporting"`
	SubstanceRequirements string   `json:"substanceRequirements"`
	Notes                 []string `json:"notes"`
	FriendlyScore         int      `json:"friendlyScore"`
}

// JurisdictionRecord is one country/territory in the dataset.
// JSON key order matches the on-disk schema.
type JurisdictionRecord struct {
	Country                    string           `json:"country"`
	Region                     string           `json:"region"`
	CorporateTaxRate           float64          `json:"corporateTaxRate"`
	OperatingCostIndex         int              `json:"operatingCostIndex"`
	EmployerSocialSecurityRate float64          `json:"employerSocialSecurityRate"`
	IncorporationFeesUsd       int              `json:"incorporationFeesUsd"`
	AnnualFilingCostUsd        int              `json:"annualFilingCostUsd"`
	TreatyNetworkStrength      string           `json:"treatyNetworkStrength"`
	ComplianceBurden           ComplianceBurden `json:"complianceBurden"`
	ReputationRisk             ReputationRisk   `json:"reputationRisk"`
	Incentives                 []string         `json:"incentives"`
	Notes                      []string         `json:"notes"`
	FoundationTerms            FoundationTerms  `json:"foundationTerms"`
}

// Key returns the case-insensitive identity key for the record
func (r *JurisdictionRecord) Key() string {
	return strings.ToLower(strings.TrimSpace(r.Country))
}

// SameCountry reports whether the record identifies the given country name,
// compared case-insensitively
func (r *JurisdictionRecord) SameCountry(name string) bool {
	return r.Key() == strings.ToLower(strings.TrimSpace(name))
}

// Normalize coerces a record into canonical shape: trimmed strings, default
// region, non-negative numerics, fee fields rounded to the nearest 10, and
// friendlyScore clamped to [0,5]. It never fails; Validate reports what
// cannot be silently repaired.
func (r *JurisdictionRecord) Normalize() {
	r.Country = strings.TrimSpace(r.Country)
	r.Region = strings.TrimSpace(r.Region)
	if r.Region == "" {
		r.Region = DefaultRegion
	}
	r.TreatyNetworkStrength = strings.TrimSpace(r.TreatyNetworkStrength)

	if r.CorporateTaxRate < 0 {
		r.CorporateTaxRate = 0
	}
	if r.OperatingCostIndex < 0 {
		r.OperatingCostIndex = 0
	}
	if r.EmployerSocialSecurityRate < 0 {
		r.EmployerSocialSecurityRate = 0
	}
	r.IncorporationFeesUsd = RoundToTen(math.Max(0, float64(r.IncorporationFeesUsd)))
	r.AnnualFilingCostUsd = RoundToTen(math.Max(0, float64(r.AnnualFilingCostUsd)))

	r.Incentives = trimAll(r.Incentives)
	r.Notes = trimAll(r.Notes)
	r.FoundationTerms.Notes = trimAll(r.FoundationTerms.Notes)

	if r.FoundationTerms.FriendlyScore < 0 {
		r.FoundationTerms.FriendlyScore = 0
	}
	if r.FoundationTerms.FriendlyScore > 5 {
		r.FoundationTerms.FriendlyScore = 5
	}
}

// Validate checks the record invariants. Callers normalize first.
func (r *JurisdictionRecord) Validate() error {
	if r.Country == "" {
		return taxerr.Validation("country", "country is required")
	}
	if r.Region == "" {
		return taxerr.Validation("region", "region is required")
	}
	if r.CorporateTaxRate < 0 {
		return taxerr.Validation("corporateTaxRate", "must be non-negative")
	}
	if r.EmployerSocialSecurityRate < 0 {
		return taxerr.Validation("employerSocialSecurityRate", "must be non-negative")
	}
	if r.IncorporationFeesUsd < 0 {
		return taxerr.Validation("incorporationFeesUsd", "must be non-negative")
	}
	if r.AnnualFilingCostUsd < 0 {
		return taxerr.Validation("annualFilingCostUsd", "must be non-negative")
	}
	switch r.ComplianceBurden {
	case ComplianceLow, ComplianceModerate, ComplianceHigh:
	default:
		return taxerr.Validation("complianceBurden", "unknown compliance tier")
	}
	switch r.ReputationRisk {
	case ReputationVeryLow, ReputationLow, ReputationModerate, ReputationElevated, ReputationHigh:
	default:
		return taxerr.Validation("reputationRisk", "unknown reputation tier")
	}
	if s := r.FoundationTerms.FriendlyScore; s < 0 || s > 5 {
		return taxerr.Validation("foundationTerms.friendlyScore", "must be between 0 and 5")
	}
	return nil
}

// SortByCountry orders records by country name, case-insensitively, in place
func SortByCountry(records []JurisdictionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Country) < strings.ToLower(records[j].Country)
	})
}

// FindCountry returns the index of the record for the given country name,
// or -1 if absent
func FindCountry(records []JurisdictionRecord, name string) int {
	for i := range records {
		if records[i].SameCountry(name) {
			return i
		}
	}
	return -1
}

// DuplicateCountry returns the first country name appearing more than once
// (case-insensitively), or empty if all keys are unique
func DuplicateCountry(records []JurisdictionRecord) string {
	seen := make(map[string]struct{}, len(records))
	for i := range records {
		k := records[i].Key()
		if _, ok := seen[k]; ok {
			return records[i].Country
		}
		seen[k] = struct{}{}
	}
	return ""
}

// RoundToTen rounds v to the nearest multiple of 10
func RoundToTen(v float64) int {
	return int(math.Round(v/10) * 10)
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseFloatField coerces a form value into a float, producing a
// ValidationFailed error naming the field
func ParseFloatField(field, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, taxerr.Validation(field, "must be numeric")
	}
	return v, nil
}

// ParseIntField coerces a form value into an int, producing a
// ValidationFailed error naming the field
func ParseIntField(field, value string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		// Accept decimal input for integer fields, truncating
		f, ferr := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if ferr != nil {
			return 0, taxerr.Validation(field, "must be numeric")
		}
		return int(f), nil
	}
	return v, nil
}

// SplitLines turns a textarea-style submission into an ordered list,
// dropping blank lines
func SplitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func trimAll(items []string) []string {
	out := items[:0]
	for _, s := range items {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
