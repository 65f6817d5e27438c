package dataset

import (
	"fmt"
	"math"

	"taxatlas/internal/schema"
)

// The derivation heuristics below are deterministic functions of a row's raw
// inputs and the region parameter table. They produce plausible planning
// figures, not measurements of real jurisdictions.

// OperatingCostIndex estimates relative operating cost on a 25..95 scale
func OperatingCostIndex(p RegionParams, rate, gdp float64) int {
	gdpComponent := 0.0
	if gdp > 0 {
		gdpComponent = schema.Clamp((math.Log10(gdp+1)-2)*14, -12, 20)
	}
	taxComponent := (rate - 20) * 0.18
	return int(math.Round(schema.Clamp(p.CostBase+gdpComponent+taxComponent, 25, 95)))
}

// SocialSecurityRate estimates the employer-side social security rate in percent
func SocialSecurityRate(p RegionParams, rate float64, cost int) float64 {
	v := p.SocialBase + (rate-20)*0.12 + (float64(cost)-55)*0.05
	return math.Round(schema.Clamp(v, 0, 35)*10) / 10
}

// IncorporationFees estimates one-off incorporation fees in USD,
// rounded to the nearest 10
func IncorporationFees(p RegionParams, cost int, rate float64) int {
	v := p.FeeBase + (float64(cost)-45)*12
	if rate <= 10 {
		// Low-tax jurisdictions price the regime into registration fees
		v += 180
	}
	return schema.RoundToTen(schema.Clamp(v, 90, 2500))
}

// AnnualFilingCost estimates yearly filing and accounting cost in USD,
// rounded to the nearest 10
func AnnualFilingCost(cost int, social, gdp float64) int {
	gdpSignal := 0.0
	if gdp > 0 {
		gdpSignal = schema.Clamp((math.Log10(gdp+1)-2)*200, -200, 600)
	}
	v := 320 + (float64(cost)-50)*18 + social*14 + gdpSignal
	return schema.RoundToTen(schema.Clamp(v, 200, 6000))
}

// ComplianceFor tiers the ongoing regulatory burden
func ComplianceFor(cost int, rate float64) schema.ComplianceBurden {
	switch {
	case cost >= 75 || rate >= 30:
		return schema.ComplianceHigh
	case cost >= 60 || rate >= 22:
		return schema.ComplianceModerate
	default:
		return schema.ComplianceLow
	}
}

// ReputationFor tiers reputation exposure by headline rate. Zero-rate
// jurisdictions score worst; offshore-leaning regions stay Elevated up to
// (but not including) 10%.
func ReputationFor(rate float64, offshore bool) schema.ReputationRisk {
	switch {
	case rate <= 0:
		return schema.ReputationHigh
	case rate <= 5:
		return schema.ReputationElevated
	case rate <= 10:
		if offshore && rate < 10 {
			return schema.ReputationElevated
		}
		return schema.ReputationModerate
	case rate <= 20:
		return schema.ReputationModerate
	case rate <= 28:
		return schema.ReputationLow
	default:
		return schema.ReputationVeryLow
	}
}

// TreatyStrength describes the treaty network from membership flags and
// rate/region. First matching rule wins.
func TreatyStrength(row RawRow, offshore bool) string {
	switch {
	case row.Eu27:
		return "Extensive EU treaty network with directive access"
	case row.Gseven:
		return "Very broad treaty network spanning all major economies"
	case row.Oecd:
		return "Broad OECD-aligned treaty network"
	case row.Gtwenty:
		return "Substantial treaty network across G20 partners"
	case row.Brics:
		return "Growing treaty network focused on emerging markets"
	case offshore && row.Rate <= 10:
		return "Narrow treaty network; offshore-oriented agreements only"
	default:
		return "Developing treaty program with selective agreements"
	}
}

// FriendlyScore rates foundation-ownership favorability on 1..5
func FriendlyScore(rate float64, compliance schema.ComplianceBurden, reputation schema.ReputationRisk) int {
	score := 3
	switch {
	case rate <= 5:
		score += 2
	case rate <= 10:
		score++
	}
	if compliance == schema.ComplianceHigh {
		score--
	}
	if reputation == schema.ReputationElevated || reputation == schema.ReputationHigh {
		score--
	}
	return int(schema.Clamp(float64(score), 1, 5))
}

// FoundationTermsFor selects governance text by friendliness tier and
// appends the region note set plus a budget note derived from filing cost
func FoundationTermsFor(p RegionParams, score, annualFiling int) schema.FoundationTerms {
	var ft schema.FoundationTerms
	ft.FriendlyScore = score

	switch {
	case score >= 4:
		ft.Availability = "Private foundations available with minimal restrictions on foreign founders"
		ft.ControlRequirements = "Founder may retain broad reserved powers; no local council majority required"
		ft.Reporting = "Light-touch reporting; accounts kept internally, filed only on request"
		ft.SubstanceRequirements = "Registered agent and office suffice for most purposes"
	case score == 3:
		ft.Availability = "Foundations available subject to standard registration and vetting"
		ft.ControlRequirements = "At least one local councillor or administrator typically required"
		ft.Reporting = "Annual accounts prepared; summary filings with the registry"
		ft.SubstanceRequirements = "Registered office plus demonstrable local administration"
	default:
		ft.Availability = "Foundation regime restrictive or untested for foreign founders"
		ft.ControlRequirements = "Local board control and regulator pre-approval expected"
		ft.Reporting = "Full audited accounts filed annually with the authorities"
		ft.SubstanceRequirements = "Meaningful local presence and staffed administration required"
	}

	budget := int(math.Max(5000, float64(annualFiling)*2.5))
	ft.Notes = append(append([]string{}, p.FoundationNotes...),
		fmt.Sprintf("Plan a governance budget of roughly USD %d per year", budget))
	return ft
}

// IncentivesFor renders the three incentive lines for a record
func IncentivesFor(p RegionParams, rate float64, fees int) []string {
	return []string{
		fmt.Sprintf("Headline corporate rate of %.1f%% with access to %s", rate, p.IncentivePhrase),
		fmt.Sprintf("One-off incorporation package from USD %d through licensed agents", fees),
		"Reduced rates may apply to qualifying IP and holding income",
	}
}

// NotesFor renders the three advisory notes for a record
func NotesFor(cost int, social float64, filing int) []string {
	return []string{
		fmt.Sprintf("Operating cost index %d on a 25-95 scale; staffing is the dominant driver", cost),
		fmt.Sprintf("Employer social contributions around %.1f%% of payroll", social),
		fmt.Sprintf("Budget roughly USD %d per year for filings and local accounting", filing),
	}
}
