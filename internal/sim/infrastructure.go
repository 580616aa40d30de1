package sim

import (
	"math"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

// infrastructureSectors lists modeled sectors in a stable order.
var infrastructureSectors = []string{"transportation", "energy", "telecommunications", "water_systems"}

// infrastructureDamageMatrices gives per-sector direct damage rates by
// scenario type and intensity.
var infrastructureDamageMatrices = map[string]map[string]map[string]float64{
	"conflict": {
		"transportation":     {"low": 0.15, "medium": 0.35, "high": 0.65, "extreme": 0.85},
		"energy":             {"low": 0.25, "medium": 0.50, "high": 0.75, "extreme": 0.90},
		"telecommunications": {"low": 0.30, "medium": 0.55, "high": 0.80, "extreme": 0.95},
		"water_systems":      {"low": 0.10, "medium": 0.25, "high": 0.50, "extreme": 0.75},
	},
	"natural_disaster": {
		"transportation":     {"low": 0.20, "medium": 0.45, "high": 0.70, "extreme": 0.90},
		"energy":             {"low": 0.30, "medium": 0.60, "high": 0.80, "extreme": 0.95},
		"telecommunications": {"low": 0.25, "medium": 0.50, "high": 0.75, "extreme": 0.90},
		"water_systems":      {"low": 0.35, "medium": 0.65, "high": 0.85, "extreme": 0.95},
	},
}

// sectorReplacementCostUSD is the summed replacement cost of a sector's
// constituent systems, applied proportionally to the damage rate.
var sectorReplacementCostUSD = map[string]float64{
	"transportation":     7017500000, // roads, railways, airports, ports
	"energy":             3950000,    // generation, transmission, distribution per unit
	"telecommunications": 100550000,  // towers, fiber, data centers
	"water_systems":      75400000,   // treatment, distribution, storage
}

// infrastructureInterdeps maps a damaged sector to the sectors that depend
// on it.
var infrastructureInterdeps = map[string][]string{
	"energy":             {"telecommunications", "water_systems", "transportation"},
	"telecommunications": {"energy"},
	"water_systems":      {"energy", "telecommunications"},
	"transportation":     {"energy", "telecommunications"},
}

var sectorServices = map[string][]string{
	"energy":             {"electricity", "heating", "industrial_power"},
	"water_systems":      {"potable_water", "sanitation", "industrial_water"},
	"telecommunications": {"internet", "mobile_phone", "emergency_communications"},
	"transportation":     {"public_transit", "freight", "emergency_services"},
}

var sectorDailyLossUSD = map[string]float64{
	"transportation":     100000000,
	"energy":             200000000,
	"water_systems":      50000000,
	"telecommunications": 150000000,
}

// InfrastructureParams describes the infrastructure exposure of the scenario.
// Profile optionally restricts analysis to named sectors; an empty profile
// analyzes all modeled sectors.
type InfrastructureParams struct {
	Profile      map[string]float64
	ScenarioType string
	Intensity    string
	DurationDays int
	Geographic   *api.GeographicResult
}

// Infrastructure models direct sector damage, cascade failures through
// interdependencies, service disruptions, and the combined economic impact.
func Infrastructure(p InfrastructureParams) (*api.InfrastructureResult, error) {
	matrices, ok := infrastructureDamageMatrices[p.ScenarioType]
	if !ok {
		matrices = infrastructureDamageMatrices["conflict"]
	}
	intensity := normalizeIntensity(p.Intensity)
	duration := float64(p.DurationDays)

	// Remote terrain slows rebuilding and raises recovery cost.
	recoveryCostFactor := 1.5
	if p.Geographic != nil && p.Geographic.LogisticsFactors.AccessibilityFactor > 0 {
		recoveryCostFactor = 1.0 + 0.5/p.Geographic.LogisticsFactors.AccessibilityFactor
	}

	sectors := selectedSectors(p.Profile)

	directDamage := make(map[string]api.DirectDamage, len(sectors))
	for _, sector := range sectors {
		rates, ok := matrices[sector]
		if !ok {
			continue
		}
		rate := rates[intensity]
		directDamage[sector] = api.DirectDamage{
			DamageRate:         rate,
			ReplacementCostUSD: sectorReplacementCostUSD[sector] * rate,
		}
	}

	// Accumulate cascades in stable sector order; the running Min cap makes
	// the reduction order-sensitive otherwise.
	cascades := make(map[string]api.CascadeFailure)
	for _, sector := range sectors {
		damage, ok := directDamage[sector]
		if !ok {
			continue
		}
		for _, dependent := range infrastructureInterdeps[sector] {
			cf := cascades[dependent]
			cf.FunctionalityReduction = math.Min(1.0, cf.FunctionalityReduction+damage.DamageRate*0.6*0.5)
			cascades[dependent] = cf
		}
	}

	disruptions := make(map[string]api.ServiceDisruption)
	for sector, services := range sectorServices {
		rate := 0.0
		if d, ok := directDamage[sector]; ok {
			rate = d.DamageRate
		}
		if c, ok := cascades[sector]; ok {
			rate += c.FunctionalityReduction
		}
		rate = math.Min(1.0, rate)
		if rate <= 0.05 {
			continue
		}
		disruptions[sector] = api.ServiceDisruption{
			DisruptionRate:          rate,
			ServicesAffected:        append([]string(nil), services...),
			PopulationImpactPercent: rate * 100,
			EstimatedDurationDays:   duration * rate,
		}
	}

	var directCosts float64
	for _, sector := range sectors {
		if damage, ok := directDamage[sector]; ok {
			directCosts += damage.ReplacementCostUSD * recoveryCostFactor
		}
	}
	indirectCosts := make(map[string]float64, len(disruptions))
	var totalIndirect float64
	for _, sector := range infrastructureSectors {
		disruption, ok := disruptions[sector]
		if !ok {
			continue
		}
		loss := sectorDailyLossUSD[sector] * disruption.DisruptionRate * disruption.EstimatedDurationDays
		indirectCosts[sector] = loss
		totalIndirect += loss
	}

	return &api.InfrastructureResult{
		DirectDamage:       directDamage,
		CascadeFailures:    cascades,
		ServiceDisruptions: disruptions,
		EconomicImpact: api.InfrastructureEconomicImpact{
			TotalDamageUSD:   directCosts + totalIndirect,
			DirectCostsUSD:   directCosts,
			IndirectCostsUSD: indirectCosts,
		},
	}, nil
}

func selectedSectors(profile map[string]float64) []string {
	if len(profile) == 0 {
		return infrastructureSectors
	}
	out := make([]string, 0, len(profile))
	for _, sector := range infrastructureSectors {
		if _, ok := profile[sector]; ok {
			out = append(out, sector)
		}
	}
	sort.Strings(out)
	return out
}
