// Package risk synthesizes the integrated analysis into an overall risk
// assessment and scores prediction confidence per domain model.
package risk

import (
	"fmt"
	"math"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

// Risk category keys. Infrastructure risk is carried in the category map for
// schema stability but is always scored through the systemic channel.
const (
	CategoryMilitary       = "military_risk"
	CategoryEconomic       = "economic_risk"
	CategorySocial         = "social_risk"
	CategoryInfrastructure = "infrastructure_risk"
	CategorySystemic       = "systemic_risk"
)

// categoryOrder fixes the order category scores are summed in. Float addition
// is order-sensitive, so summing in map order would let identical inputs
// produce bit-different overall scores.
var categoryOrder = []string{
	CategoryMilitary,
	CategoryEconomic,
	CategorySocial,
	CategoryInfrastructure,
	CategorySystemic,
}

// Assess scores the five risk categories from compound effects and system
// vulnerabilities, and derives the overall score, critical vulnerabilities,
// and mitigation priorities.
func Assess(ia *api.IntegratedAnalysis) *api.RiskAssessment {
	compound := ia.CompoundEffects

	categories := map[string]float64{
		CategoryMilitary:       math.Min(1.0, compound.TotalCasualtyBurden.TotalCasualties/100000),
		CategoryEconomic:       math.Min(1.0, compound.TotalEconomicImpact.GDPImpactPercent/20),
		CategorySocial:         compound.SocialDisruption.TotalDisruptionScore,
		CategoryInfrastructure: 0,
		CategorySystemic:       ia.SystemVulnerabilities.CascadeVulnerability,
	}

	var sum float64
	for _, name := range categoryOrder {
		sum += categories[name]
	}
	overall := sum / float64(len(categoryOrder))

	var critical []string
	for _, c := range sortedByScore(categories) {
		if categories[c] > 0.7 {
			critical = append(critical, c)
		}
	}

	return &api.RiskAssessment{
		OverallRiskScore:         overall,
		RiskCategories:           categories,
		CriticalVulnerabilities:  critical,
		RiskMitigationPriorities: mitigationPriorities(categories),
		UncertaintyFactors: []api.UncertaintyFactor{
			{Factor: "Model complexity", Impact: 0.3},
			{Factor: "Data limitations", Impact: 0.4},
			{Factor: "Human behavior unpredictability", Impact: 0.5},
			{Factor: "External intervention probability", Impact: 0.3},
			{Factor: "Technological factors", Impact: 0.2},
		},
	}
}

// sortedByScore orders category names by descending score, breaking ties by
// name so identical inputs always produce identical output.
func sortedByScore(categories map[string]float64) []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if categories[names[i]] != categories[names[j]] {
			return categories[names[i]] > categories[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

func mitigationPriorities(categories map[string]float64) []string {
	var priorities []string
	for _, name := range sortedByScore(categories) {
		score := categories[name]
		switch {
		case score > 0.7:
			priorities = append(priorities, fmt.Sprintf("Critical: Address %s (score: %.2f)", name, score))
		case score > 0.5:
			priorities = append(priorities, fmt.Sprintf("High: Mitigate %s (score: %.2f)", name, score))
		case score > 0.3:
			priorities = append(priorities, fmt.Sprintf("Medium: Monitor %s (score: %.2f)", name, score))
		}
	}
	return priorities
}

// Confidence scores how much to trust each domain model's output for this
// run. Scores reflect model maturity, not run-specific data, except for the
// military model which earns a bump when both trajectory and casualty
// analyses are present.
func Confidence(rs *api.ResultSet) *api.ConfidenceAnalysis {
	// Domains() yields canonical order, which also fixes the summation order.
	modelConfidence := make(map[string]float64)
	var sum float64
	for _, domain := range rs.Domains() {
		var c float64
		switch domain {
		case "military":
			c = 0.8
			if rs.Military.Trajectory != nil && rs.Military.CasualtyAnalysis != nil {
				c = math.Min(0.9, c+0.1)
			}
		case "economic":
			c = 0.7
		case "population":
			c = 0.8
		case "infrastructure":
			c = 0.6
		default:
			c = 0.6
		}
		modelConfidence[domain] = c
		sum += c
	}

	overall := 0.5
	if len(modelConfidence) > 0 {
		overall = sum / float64(len(modelConfidence))
	}

	return &api.ConfidenceAnalysis{
		OverallConfidence: overall,
		ModelConfidence:   modelConfidence,
		DataQualityScores: dataQuality(rs),
		UncertaintySources: []string{
			"Model parameter uncertainty",
			"Scenario complexity",
			"Data limitations",
			"Model interaction effects",
		},
	}
}

func dataQuality(rs *api.ResultSet) map[string]float64 {
	quality := make(map[string]float64)
	for _, domain := range rs.Domains() {
		switch domain {
		case "military", "nuclear":
			quality[domain] = 0.8
		case "economic", "supply_chain":
			quality[domain] = 0.7
		default:
			quality[domain] = 0.6
		}
	}
	return quality
}
