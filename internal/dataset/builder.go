// Package dataset builds enriched jurisdiction records from the raw source
// CSV: it canonicalizes names, maps continents to regions, and derives the
// heuristic cost, fee, compliance, and foundation fields.
package dataset

import (
	"taxatlas/internal/logging"
	"taxatlas/internal/schema"
	"taxatlas/internal/taxerr"
)

// Builder turns raw CSV rows into fully populated jurisdiction records.
// It is pure given its inputs: no file or store access during Build.
type Builder struct {
	mappings *Mappings
	tuning   *Tuning
	logger   *logging.Logger
}

// NewBuilder creates a builder over the given mapping and tuning tables.
// Nil tables fall back to the built-in defaults.
func NewBuilder(mappings *Mappings, tuning *Tuning, logger *logging.Logger) *Builder {
	if mappings == nil {
		mappings = DefaultMappings()
	}
	if tuning == nil {
		tuning = DefaultTuning()
	}
	if logger == nil {
		logger = logging.Silent()
	}
	return &Builder{mappings: mappings, tuning: tuning, logger: logger}
}

// Build derives one record per usable row, sorted by country name.
// Rows with an empty country or continent are dropped with a debug log.
// Returns BuildFailed if no rows survive.
func (b *Builder) Build(rows []RawRow) ([]schema.JurisdictionRecord, error) {
	records := make([]schema.JurisdictionRecord, 0, len(rows))

	for _, row := range rows {
		if row.Country == "" || row.Continent == "" || row.Rate < 0 {
			b.logger.Debug("dropping unusable row", map[string]interface{}{
				"country":   row.Country,
				"continent": row.Continent,
				"rate":      row.Rate,
			})
			continue
		}
		records = append(records, b.buildOne(row))
	}

	if len(records) == 0 {
		return nil, taxerr.Build("no usable rows in source data", nil)
	}

	schema.SortByCountry(records)
	return records, nil
}

func (b *Builder) buildOne(row RawRow) schema.JurisdictionRecord {
	region := b.mappings.RegionFor(row.Continent)
	params := b.tuning.ParamsFor(region)

	cost := OperatingCostIndex(params, row.Rate, row.Gdp)
	social := SocialSecurityRate(params, row.Rate, cost)
	fees := IncorporationFees(params, cost, row.Rate)
	filing := AnnualFilingCost(cost, social, row.Gdp)
	compliance := ComplianceFor(cost, row.Rate)
	reputation := ReputationFor(row.Rate, params.Offshore)
	score := FriendlyScore(row.Rate, compliance, reputation)

	rec := schema.JurisdictionRecord{
		Country:                    b.mappings.CanonicalCountry(row.Country),
		Region:                     region,
		CorporateTaxRate:           row.Rate,
		OperatingCostIndex:         cost,
		EmployerSocialSecurityRate: social,
		IncorporationFeesUsd:       fees,
		AnnualFilingCostUsd:        filing,
		TreatyNetworkStrength:      TreatyStrength(row, params.Offshore),
		ComplianceBurden:           compliance,
		ReputationRisk:             reputation,
		Incentives:                 IncentivesFor(params, row.Rate, fees),
		Notes:                      NotesFor(cost, social, filing),
		FoundationTerms:            FoundationTermsFor(params, score, filing),
	}
	rec.Normalize()
	return rec
}
