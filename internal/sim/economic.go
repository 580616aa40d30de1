package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

type countryEconomy struct {
	gdpTrillionUSD          float64
	population              float64
	debtToGDPRatio          float64
	tradeDependence         float64
	currencyStability       float64
	financialSystemStrength float64
}

var countryEconomies = map[string]countryEconomy{
	"USA":      {gdpTrillionUSD: 26.9, population: 331900000, debtToGDPRatio: 106.7, tradeDependence: 0.27, currencyStability: 0.95, financialSystemStrength: 0.98},
	"China":    {gdpTrillionUSD: 17.9, population: 1425671352, debtToGDPRatio: 77.1, tradeDependence: 0.36, currencyStability: 0.82, financialSystemStrength: 0.75},
	"Germany":  {gdpTrillionUSD: 4.26, population: 83240525, debtToGDPRatio: 69.7, tradeDependence: 0.84, currencyStability: 0.92, financialSystemStrength: 0.89},
	"Japan":    {gdpTrillionUSD: 4.94, population: 125584838, debtToGDPRatio: 261.3, tradeDependence: 0.35, currencyStability: 0.87, financialSystemStrength: 0.93},
	"India":    {gdpTrillionUSD: 3.74, population: 1428627663, debtToGDPRatio: 89.6, tradeDependence: 0.42, currencyStability: 0.73, financialSystemStrength: 0.68},
	"Pakistan": {gdpTrillionUSD: 0.35, population: 231402117, debtToGDPRatio: 87.2, tradeDependence: 0.32, currencyStability: 0.45, financialSystemStrength: 0.38},
	"Russia":   {gdpTrillionUSD: 1.83, population: 144713314, debtToGDPRatio: 18.9, tradeDependence: 0.46, currencyStability: 0.52, financialSystemStrength: 0.48},
	"Iran":     {gdpTrillionUSD: 0.23, population: 85028759, debtToGDPRatio: 48.1, tradeDependence: 0.25, currencyStability: 0.28, financialSystemStrength: 0.31},
}

// warfareDamageFactors is the fraction of target GDP destroyed per warfare
// type and intensity, before vulnerability and duration adjustments.
var warfareDamageFactors = map[string]map[string]float64{
	"sanctions":               {"low": 0.02, "medium": 0.08, "high": 0.18, "extreme": 0.35},
	"supply_chain_disruption": {"low": 0.03, "medium": 0.12, "high": 0.25, "extreme": 0.45},
	"financial_system_attack": {"low": 0.05, "medium": 0.15, "high": 0.35, "extreme": 0.60},
	"infrastructure_targeting": {"low": 0.04, "medium": 0.14, "high": 0.28, "extreme": 0.50},
	"cyber_warfare":           {"low": 0.01, "medium": 0.06, "high": 0.18, "extreme": 0.40},
}

// durationMultipliers maps warfare type to stepped duration multipliers keyed
// by days. Durations beyond the last step extrapolate with a 0.3 exponent.
var durationMultipliers = map[string]map[int]float64{
	"sanctions":               {30: 1.0, 90: 1.4, 180: 1.8, 365: 2.3, 730: 2.8},
	"supply_chain_disruption": {30: 1.2, 90: 1.6, 180: 2.0, 365: 2.5, 730: 3.0},
	"financial_system_attack": {30: 1.3, 90: 1.7, 180: 2.1, 365: 2.6, 730: 3.1},
	"infrastructure_targeting": {30: 1.1, 90: 1.5, 180: 1.9, 365: 2.4, 730: 2.9},
	"cyber_warfare":           {30: 1.0, 90: 1.3, 180: 1.6, 365: 2.0, 730: 2.4},
}

var sectorVulnerabilities = map[string]map[string]float64{
	"sanctions":               {"export_industries": 0.8, "finance": 0.6, "technology": 0.7, "energy": 0.5, "agriculture": 0.3},
	"supply_chain_disruption": {"manufacturing": 0.9, "technology": 0.85, "automotive": 0.8, "pharmaceuticals": 0.7, "agriculture": 0.4},
	"financial_system_attack": {"finance": 0.95, "real_estate": 0.7, "retail": 0.6, "manufacturing": 0.5, "services": 0.4},
	"infrastructure_targeting": {"energy": 0.9, "transportation": 0.85, "telecommunications": 0.8, "water_utilities": 0.75, "manufacturing": 0.6},
}

var sectorGDPShares = map[string]map[string]float64{
	"USA":     {"finance": 0.21, "technology": 0.18, "healthcare": 0.12, "manufacturing": 0.12, "energy": 0.08, "agriculture": 0.01},
	"China":   {"manufacturing": 0.28, "construction": 0.14, "finance": 0.08, "technology": 0.06, "agriculture": 0.07, "energy": 0.06},
	"Germany": {"manufacturing": 0.23, "finance": 0.15, "automotive": 0.12, "technology": 0.08, "energy": 0.06, "agriculture": 0.01},
}

var sectorEmploymentShares = map[string]float64{
	"manufacturing": 0.15,
	"services":      0.45,
	"agriculture":   0.08,
	"finance":       0.06,
	"technology":    0.04,
	"energy":        0.02,
	"healthcare":    0.12,
}

// sectorDependencies feeds the cascade estimate: damage to a sector spills
// 30% upstream to suppliers and 25% downstream to customers that were not
// directly hit.
var sectorDependencies = map[string]struct {
	dependsOn []string
	supports  []string
}{
	"agriculture":    {dependsOn: []string{"energy", "transportation", "manufacturing", "water"}, supports: []string{"food_processing", "retail", "export"}},
	"energy":         {dependsOn: []string{"mining", "transportation", "technology", "finance"}, supports: []string{"manufacturing", "transportation", "residential", "commercial"}},
	"manufacturing":  {dependsOn: []string{"energy", "raw_materials", "transportation", "labor"}, supports: []string{"retail", "export", "construction", "technology"}},
	"finance":        {dependsOn: []string{"technology", "energy", "legal_framework"}, supports: []string{"all_sectors"}},
	"healthcare":     {dependsOn: []string{"energy", "pharmaceuticals", "technology", "transportation"}, supports: []string{"workforce", "population_stability"}},
	"technology":     {dependsOn: []string{"energy", "semiconductors", "rare_earth_materials"}, supports: []string{"all_sectors"}},
	"transportation": {dependsOn: []string{"energy", "infrastructure", "technology"}, supports: []string{"all_sectors"}},
}

var warfareRecoveryFactors = map[string]float64{
	"sanctions":               0.8,
	"supply_chain_disruption": 0.9,
	"financial_system_attack": 1.2,
	"infrastructure_targeting": 1.1,
	"cyber_warfare":           0.7,
}

var baseInflationIncrease = map[string]float64{
	"sanctions":               2.0,
	"supply_chain_disruption": 4.0,
	"financial_system_attack": 3.0,
	"infrastructure_targeting": 3.5,
	"cyber_warfare":           1.5,
}

// EconomicParams describes an economic warfare campaign against a target
// economy.
type EconomicParams struct {
	Attacker     string
	Target       string
	WarfareType  string
	Intensity    string
	DurationDays int
}

// Economic models GDP damage from an economic warfare campaign, including
// sector cascades, macroeconomic knock-on effects, and the recovery timeline.
func Economic(p EconomicParams) (*api.EconomicResult, error) {
	target, ok := countryEconomies[p.Target]
	if !ok {
		return nil, fmt.Errorf("economic: no data for target country %q", p.Target)
	}
	warfareType := p.WarfareType
	if _, ok := warfareDamageFactors[warfareType]; !ok {
		warfareType = "sanctions"
	}
	intensity := normalizeIntensity(p.Intensity)

	gdpUSD := target.gdpTrillionUSD * 1e12
	damageFactor := warfareDamageFactors[warfareType][intensity]

	vulnerability := 1.0
	if target.tradeDependence > 0.5 {
		vulnerability += 0.3
	}
	if target.financialSystemStrength < 0.7 {
		vulnerability += 0.2
	}
	if target.currencyStability < 0.6 {
		vulnerability += 0.4
	}
	baseDamage := gdpUSD * damageFactor * vulnerability

	durationMult := economicDurationMultiplier(p.DurationDays, warfareType)
	sectorDamage := sectoralDamage(p.Target, target, warfareType, intensity)
	cascade := sectorCascadeDamage(sectorDamage)

	totalDamage := baseDamage*durationMult + cascade
	gdpImpactPercent := math.Min(50, totalDamage/gdpUSD*100)

	return &api.EconomicResult{
		TargetCountry:  p.Target,
		WarfareType:    warfareType,
		IntensityLevel: intensity,
		DurationDays:   float64(p.DurationDays),
		EconomicDamage: api.EconomicDamage{
			TotalDamageUSD:    totalDamage,
			BaseDamageUSD:     baseDamage,
			CascadeEffectsUSD: cascade,
			GDPImpactPercent:  gdpImpactPercent,
			PerCapitaLossUSD:  totalDamage / target.population,
		},
		MacroeconomicEffects: api.MacroeconomicEffects{
			UnemploymentIncreasePercent: unemploymentIncrease(gdpImpactPercent, p.Target, target, sectorDamage),
			InflationIncreasePercent:    inflationIncrease(warfareType, intensity, sectorDamage),
			CurrencyDevaluationPercent:  currencyDevaluation(gdpImpactPercent, target),
		},
		RecoveryAnalysis: recoveryTimeline(gdpImpactPercent, target, warfareType),
	}, nil
}

func economicDurationMultiplier(durationDays int, warfareType string) float64 {
	steps := durationMultipliers[warfareType]
	keys := make([]int, 0, len(steps))
	for k := range steps {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if durationDays <= k {
			return steps[k]
		}
	}
	last := keys[len(keys)-1]
	return steps[last] * math.Pow(float64(durationDays)/float64(last), 0.3)
}

type sectorImpact struct {
	damageUSD     float64
	damagePercent float64
	jobsAtRisk    float64
}

func sectoralDamage(country string, economy countryEconomy, warfareType, intensity string) map[string]sectorImpact {
	vulns := sectorVulnerabilities[warfareType]
	if vulns == nil {
		vulns = sectorVulnerabilities["sanctions"]
	}
	intensityMult := map[string]float64{"low": 0.3, "medium": 0.6, "high": 0.8, "extreme": 1.0}[intensity]

	out := make(map[string]sectorImpact, len(vulns))
	for sector, vulnerability := range vulns {
		share := 0.05
		if cs, ok := sectorGDPShares[country]; ok {
			if s, ok := cs[sector]; ok {
				share = s
			}
		}
		employmentShare := 0.03
		if s, ok := sectorEmploymentShares[sector]; ok {
			employmentShare = s
		}
		sectorGDP := economy.gdpTrillionUSD * 1e12 * share
		out[sector] = sectorImpact{
			damageUSD:     sectorGDP * vulnerability * intensityMult,
			damagePercent: vulnerability * intensityMult * 100,
			jobsAtRisk:    math.Floor(economy.population * 0.6 * employmentShare * vulnerability * intensityMult),
		}
	}
	return out
}

func sectorCascadeDamage(impacts map[string]sectorImpact) float64 {
	// Sorted iteration keeps the total bit-identical across runs.
	sectors := make([]string, 0, len(impacts))
	for sector := range impacts {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	var total float64
	for _, sector := range sectors {
		impact := impacts[sector]
		deps, ok := sectorDependencies[sector]
		if !ok {
			continue
		}
		for _, upstream := range deps.dependsOn {
			if _, hit := impacts[upstream]; hit {
				continue
			}
			total += impact.damageUSD * 0.3
		}
		for _, downstream := range deps.supports {
			if _, hit := impacts[downstream]; hit {
				continue
			}
			total += impact.damageUSD * 0.25
		}
	}
	return total
}

func unemploymentIncrease(gdpImpactPercent float64, country string, economy countryEconomy, impacts map[string]sectorImpact) float64 {
	// Okun's law: 1% GDP decline costs about 2% employment.
	base := gdpImpactPercent * 2
	var jobs float64
	for _, impact := range impacts {
		jobs += impact.jobsAtRisk
	}
	return math.Min(25, base+jobs/1e7)
}

func inflationIncrease(warfareType, intensity string, impacts map[string]sectorImpact) float64 {
	intensityMult := map[string]float64{"low": 0.5, "medium": 1.0, "high": 1.8, "extreme": 3.0}[intensity]
	base := baseInflationIncrease[warfareType]
	if base == 0 {
		base = 2.0
	}

	var sectorInflation float64
	if e, ok := impacts["energy"]; ok {
		sectorInflation += e.damagePercent * 0.3
	}
	if a, ok := impacts["agriculture"]; ok {
		sectorInflation += a.damagePercent * 0.2
	}
	return math.Min(50, base*intensityMult+sectorInflation/100*10)
}

func currencyDevaluation(gdpImpactPercent float64, economy countryEconomy) float64 {
	base := gdpImpactPercent * 1.5
	vulnerability := 1.0 - economy.currencyStability
	debtFactor := math.Max(0, economy.debtToGDPRatio-60) / 100
	tradeFactor := economy.tradeDependence * 0.5
	return math.Min(80, base*(1+vulnerability+debtFactor+tradeFactor))
}

func recoveryTimeline(gdpImpactPercent float64, economy countryEconomy, warfareType string) api.RecoveryAnalysis {
	months := 120.0
	switch {
	case gdpImpactPercent < 5:
		months = 6
	case gdpImpactPercent < 15:
		months = 18
	case gdpImpactPercent < 30:
		months = 36
	case gdpImpactPercent < 50:
		months = 60
	}

	resilience := economy.financialSystemStrength*0.4 +
		economy.currencyStability*0.3 +
		(1-economy.debtToGDPRatio/150)*0.3

	factor, ok := warfareRecoveryFactors[warfareType]
	if !ok {
		factor = 1.0
	}
	adjusted := months * factor / math.Max(0.3, resilience)

	shape := "U-shaped"
	if adjusted <= 12 {
		shape = "V-shaped"
	} else if adjusted > 48 {
		shape = "L-shaped"
	}
	return api.RecoveryAnalysis{
		EstimatedRecoveryMonths: math.Floor(adjusted),
		RecoveryShape:           shape,
	}
}
