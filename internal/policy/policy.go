// Package policy turns a risk assessment into actionable recommendations and
// a proportional resource allocation.
package policy

import (
	"sort"

	"github.com/polystrat/geosim/internal/api"
	"github.com/polystrat/geosim/internal/risk"
)

// totalBudgetUSD is the reference response budget split across risk
// categories in proportion to their scores.
const totalBudgetUSD = 1_000_000_000

// Generate builds the recommendation set for a risk assessment. Immediate
// actions scale with the overall risk level and with which categories crossed
// the critical threshold; long-term policies are scenario-independent.
func Generate(ra *api.RiskAssessment) *api.PolicyRecommendations {
	rec := &api.PolicyRecommendations{}

	overall := ra.OverallRiskScore
	if overall > 0.8 {
		rec.ImmediateActions = append(rec.ImmediateActions,
			"Activate emergency response protocols",
			"Establish crisis command center",
			"Initiate evacuation procedures for high-risk areas",
			"Deploy emergency medical resources",
		)
	} else if overall > 0.6 {
		rec.ImmediateActions = append(rec.ImmediateActions,
			"Heighten alert status for relevant agencies",
			"Pre-position emergency resources",
			"Increase intelligence gathering",
		)
	}

	critical := make(map[string]bool, len(ra.CriticalVulnerabilities))
	for _, c := range ra.CriticalVulnerabilities {
		critical[c] = true
	}
	if critical[risk.CategoryMilitary] {
		rec.ImmediateActions = append(rec.ImmediateActions, "Activate missile defense systems")
		rec.ShortTermStrategies = append(rec.ShortTermStrategies, "Strengthen defense capabilities")
	}
	if critical[risk.CategoryEconomic] {
		rec.ImmediateActions = append(rec.ImmediateActions, "Implement economic stabilization measures")
		rec.ShortTermStrategies = append(rec.ShortTermStrategies, "Diversify supply chains")
	}
	if critical[risk.CategorySocial] {
		rec.ImmediateActions = append(rec.ImmediateActions, "Enhance social support systems")
		rec.ShortTermStrategies = append(rec.ShortTermStrategies, "Strengthen community resilience programs")
	}

	rec.LongTermPolicies = []string{
		"Develop comprehensive national resilience strategy",
		"Invest in critical infrastructure hardening",
		"Establish international cooperation frameworks",
		"Create adaptive governance mechanisms",
	}

	if overall > 0.6 {
		rec.InternationalCoordination = []string{
			"Engage multilateral organizations",
			"Coordinate with regional allies",
			"Establish information sharing protocols",
			"Develop joint response capabilities",
		}
	}

	rec.ResourceAllocation = allocateResources(ra.RiskCategories)
	return rec
}

// allocateResources splits the reference budget across categories in
// proportion to risk score. A zero total risk splits nothing rather than
// dividing by zero.
func allocateResources(categories map[string]float64) map[string]api.ResourceAllocation {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	// Summing in sorted order keeps the shares bit-identical across runs;
	// the integer truncation below is sensitive to the last ulp of total.
	var total float64
	for _, name := range names {
		total += categories[name]
	}
	if total == 0 {
		total = 1
	}

	out := make(map[string]api.ResourceAllocation, len(categories))
	for _, name := range names {
		score := categories[name]
		priority := "Low"
		switch {
		case score > 0.7:
			priority = "High"
		case score > 0.4:
			priority = "Medium"
		}
		out[name] = api.ResourceAllocation{
			BudgetAllocation: float64(int(totalBudgetUSD * (score / total))),
			PriorityLevel:    priority,
		}
	}
	return out
}
