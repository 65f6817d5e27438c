// Package query implements the filter, rollup, and ranking operations the
// presentation layer runs over the in-memory record collection.
package query

import (
	"math"
	"sort"
	"strings"

	"taxatlas/internal/schema"
)

// Criteria is a conjunctive filter. Nil bounds and empty strings are no-ops.
type Criteria struct {
	// Region matches records by region, case-insensitively.
	// Empty or "all" disables the region filter.
	Region string

	// Keyword is matched as a case-insensitive substring across country,
	// region, incentives, notes, and foundation availability.
	Keyword string

	// Upper bounds, each applied independently
	MaxTaxRate          *float64
	MaxCostIndex        *int
	MaxSocialRate       *float64
	MaxIncorporationFee *int

	// Lower bound on the foundation friendliness score
	MinFoundationScore *int
}

// Filter returns the records matching every set criterion, preserving the
// input's relative order. Filtering is idempotent.
func Filter(records []schema.JurisdictionRecord, c Criteria) []schema.JurisdictionRecord {
	region := strings.ToLower(strings.TrimSpace(c.Region))
	keyword := strings.ToLower(strings.TrimSpace(c.Keyword))

	out := make([]schema.JurisdictionRecord, 0, len(records))
	for _, r := range records {
		if region != "" && region != "all" && !strings.EqualFold(strings.TrimSpace(r.Region), region) {
			continue
		}
		if keyword != "" && !keywordMatch(&r, keyword) {
			continue
		}
		if c.MaxTaxRate != nil && r.CorporateTaxRate > *c.MaxTaxRate {
			continue
		}
		if c.MaxCostIndex != nil && r.OperatingCostIndex > *c.MaxCostIndex {
			continue
		}
		if c.MaxSocialRate != nil && r.EmployerSocialSecurityRate > *c.MaxSocialRate {
			continue
		}
		if c.MaxIncorporationFee != nil && r.IncorporationFeesUsd > *c.MaxIncorporationFee {
			continue
		}
		if c.MinFoundationScore != nil && r.FoundationTerms.FriendlyScore < *c.MinFoundationScore {
			continue
		}
		out = append(out, r)
	}
	return out
}

func keywordMatch(r *schema.JurisdictionRecord, keyword string) bool {
	haystack := strings.ToLower(strings.Join([]string{
		r.Country,
		r.Region,
		strings.Join(r.Incentives, " "),
		strings.Join(r.Notes, " "),
		r.FoundationTerms.Availability,
	}, " "))
	return strings.Contains(haystack, keyword)
}

// RegionStats are the rollup figures for one region
type RegionStats struct {
	Region             string  `json:"region"`
	Count              int     `json:"count"`
	AvgTaxRate         float64 `json:"avgTaxRate"`
	AvgCostIndex       float64 `json:"avgCostIndex"`
	AvgFoundationScore float64 `json:"avgFoundationScore"`
}

// SummarizeByRegion groups records by region and computes count plus
// arithmetic means of tax rate, cost index, and foundation score. Results
// are ordered by region name.
func SummarizeByRegion(records []schema.JurisdictionRecord) []RegionStats {
	grouped := make(map[string][]schema.JurisdictionRecord)
	for _, r := range records {
		region := r.Region
		if strings.TrimSpace(region) == "" {
			region = schema.DefaultRegion
		}
		grouped[region] = append(grouped[region], r)
	}

	regions := make([]string, 0, len(grouped))
	for region := range grouped {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	stats := make([]RegionStats, 0, len(regions))
	for _, region := range regions {
		chunk := grouped[region]
		var taxSum, costSum, scoreSum float64
		for _, r := range chunk {
			taxSum += r.CorporateTaxRate
			costSum += float64(r.OperatingCostIndex)
			scoreSum += float64(r.FoundationTerms.FriendlyScore)
		}
		// Denominator floored at 1 so an impossible empty group cannot divide by zero
		n := math.Max(1, float64(len(chunk)))
		stats = append(stats, RegionStats{
			Region:             region,
			Count:              len(chunk),
			AvgTaxRate:         round1(taxSum / n),
			AvgCostIndex:       round1(costSum / n),
			AvgFoundationScore: round1(scoreSum / n),
		})
	}
	return stats
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// SortKey selects the numeric field TopN ranks by
type SortKey string

const (
	ByTaxRate          SortKey = "tax"
	ByCostIndex        SortKey = "cost"
	BySocialRate       SortKey = "social"
	ByIncorporationFee SortKey = "fees"
	ByFoundationScore  SortKey = "foundation"
)

// DefaultTopN is the chart size when no limit is given
const DefaultTopN = 12

// ParseSortKey maps a query parameter to a SortKey, defaulting to tax rate
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case ByCostIndex, BySocialRate, ByIncorporationFee, ByFoundationScore:
		return SortKey(strings.ToLower(strings.TrimSpace(s)))
	}
	return ByTaxRate
}

// TopN returns the first n records sorted ascending by the given key, ties
// broken by original order. n <= 0 means DefaultTopN.
func TopN(records []schema.JurisdictionRecord, n int, key SortKey) []schema.JurisdictionRecord {
	if n <= 0 {
		n = DefaultTopN
	}

	out := make([]schema.JurisdictionRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return sortValue(&out[i], key) < sortValue(&out[j], key)
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

func sortValue(r *schema.JurisdictionRecord, key SortKey) float64 {
	switch key {
	case ByCostIndex:
		return float64(r.OperatingCostIndex)
	case BySocialRate:
		return r.EmployerSocialSecurityRate
	case ByIncorporationFee:
		return float64(r.IncorporationFeesUsd)
	case ByFoundationScore:
		return float64(r.FoundationTerms.FriendlyScore)
	default:
		return r.CorporateTaxRate
	}
}
