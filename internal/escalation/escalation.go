// Package escalation models the probability that a scenario escalates beyond
// its initial scope. Trigger thresholds are grouped by category; each tripped
// threshold adds a fixed risk increment, and the combined base probability is
// shaped by time-dependent and scenario-specific modifiers.
package escalation

import (
	"math"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

// escalationTriggers maps category -> threshold name -> trip value. State
// readings above the trip value activate the threshold.
var escalationTriggers = map[string]map[string]float64{
	"military": {
		"casualty_threshold":              1000,
		"infrastructure_damage_threshold": 0.3,
		"territory_loss_threshold":        0.1,
		"civilian_casualties_threshold":   500,
	},
	"economic": {
		"gdp_impact_threshold":           0.05,
		"unemployment_threshold":         0.08,
		"inflation_threshold":            0.15,
		"currency_devaluation_threshold": 0.25,
	},
	"political": {
		"regime_stability_threshold":        0.6,
		"public_support_threshold":          0.4,
		"international_isolation_threshold": 0.7,
		"internal_cohesion_threshold":       0.5,
	},
	"social": {
		"displacement_threshold":            0.2,
		"social_unrest_threshold":           0.3,
		"institutional_breakdown_threshold": 0.4,
		"ethnic_tension_threshold":          0.6,
	},
}

var intensityModifiers = map[string]float64{
	"low": 0.7, "medium": 1.0, "high": 1.3, "extreme": 1.6,
}

// riskPerTrigger is the risk added per tripped threshold within a category.
const riskPerTrigger = 0.25

// Analyze computes escalation probability for the scenario given a state
// reading keyed by threshold name.
func Analyze(state map[string]float64, cfg *api.ScenarioConfig, timePeriodDays int) *api.EscalationAnalysis {
	factors := make(map[string]api.CategoryRisk, len(escalationTriggers))
	var riskSum float64
	for _, category := range sortedCategories() {
		risk := categoryRisk(category, state)
		factors[category] = risk
		riskSum += risk.RiskLevel
	}
	baseProb := riskSum / float64(len(escalationTriggers))

	timeFactor := timeEscalationFactor(timePeriodDays)
	modifier := scenarioModifier(cfg)

	var activated []string
	for _, category := range sortedCategories() {
		if factors[category].RiskLevel > 0.7 {
			activated = append(activated, category)
		}
	}

	return &api.EscalationAnalysis{
		EscalationProbability:       math.Min(0.95, baseProb*timeFactor*modifier),
		EscalationFactors:           factors,
		TimeFactor:                  timeFactor,
		ScenarioModifier:            modifier,
		EscalationTriggersActivated: activated,
		DeEscalationOpportunities:   deEscalationOpportunities(baseProb),
	}
}

// DeriveState reads the escalation-relevant signals out of a result set so
// the trigger thresholds can be evaluated against actual model output.
func DeriveState(rs *api.ResultSet, ia *api.IntegratedAnalysis) map[string]float64 {
	state := make(map[string]float64)
	if rs == nil {
		return state
	}

	if rs.Military != nil && rs.Military.CasualtyAnalysis != nil {
		state["casualty_threshold"] = rs.Military.CasualtyAnalysis.ImmediateCasualties
		state["civilian_casualties_threshold"] = rs.Military.CasualtyAnalysis.ImmediateCasualties
	}
	if rs.Infrastructure != nil {
		state["infrastructure_damage_threshold"] = rs.Infrastructure.MeanServiceDisruption()
	}
	if rs.Economic != nil {
		state["gdp_impact_threshold"] = rs.Economic.EconomicDamage.GDPImpactPercent / 100
		state["unemployment_threshold"] = rs.Economic.MacroeconomicEffects.UnemploymentIncreasePercent / 100
		state["inflation_threshold"] = rs.Economic.MacroeconomicEffects.InflationIncreasePercent / 100
		state["currency_devaluation_threshold"] = rs.Economic.MacroeconomicEffects.CurrencyDevaluationPercent / 100
	}
	if rs.Population != nil {
		state["displacement_threshold"] = rs.Population.DisplacementAnalysis.DisplacementRatePercent / 100
	}
	if ia != nil && ia.CrossModelInteractions.EconomicSocial != nil {
		state["social_unrest_threshold"] = ia.CrossModelInteractions.EconomicSocial.SocialUnrestProbability
	}
	return state
}

func sortedCategories() []string {
	names := make([]string, 0, len(escalationTriggers))
	for name := range escalationTriggers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func categoryRisk(category string, state map[string]float64) api.CategoryRisk {
	thresholds := escalationTriggers[category]

	names := make([]string, 0, len(thresholds))
	for name := range thresholds {
		names = append(names, name)
	}
	sort.Strings(names)

	var level float64
	var triggered []string
	for _, name := range names {
		if state[name] > thresholds[name] {
			level += riskPerTrigger
			triggered = append(triggered, name)
		}
	}
	return api.CategoryRisk{
		Category:            category,
		RiskLevel:           math.Min(1.0, level),
		TriggeredThresholds: triggered,
	}
}

// timeEscalationFactor rises as a conflict drags on, then eases once
// positions stabilize.
func timeEscalationFactor(days int) float64 {
	switch {
	case days <= 7:
		return 0.8
	case days <= 30:
		return 1.0
	case days <= 90:
		return 1.2
	default:
		return 1.1
	}
}

func scenarioModifier(cfg *api.ScenarioConfig) float64 {
	modifier := 1.0
	switch cfg.TypeOrDefault() {
	case "nuclear":
		modifier *= 1.5
	case "conflict":
		modifier *= 1.2
	case "economic":
		modifier *= 0.8
	}

	if m, ok := intensityModifiers[cfg.IntensityOrDefault()]; ok {
		modifier *= m
	}
	if cfg.NuclearEscalation {
		modifier *= 1.4
	}
	return modifier
}

func deEscalationOpportunities(baseProb float64) []string {
	switch {
	case baseProb < 0.5:
		return []string{
			"Diplomatic engagement window available",
			"Economic incentives could be effective",
			"Civil society pressure could influence decision-makers",
		}
	case baseProb < 0.7:
		return []string{
			"International mediation recommended",
			"Alliance pressure could be effective",
			"Economic costs argument could work",
		}
	default:
		return []string{
			"Urgent international intervention needed",
			"Military deterrence may be only option",
			"Humanitarian concerns could provide leverage",
		}
	}
}
