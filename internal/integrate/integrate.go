// Package integrate fuses per-domain simulator results into cross-model
// interactions, compound effects, feedback loops, and system-level
// vulnerability and resilience scores. Every record is pairwise-gated: it is
// produced only when all of its source domains are present, so an empty
// ResultSet yields a neutral analysis rather than an error.
package integrate

import (
	"math"

	"github.com/polystrat/geosim/internal/api"
)

// globalGDPUSD is the rough world product used to express compound damage as
// a share of global output.
const globalGDPUSD = 25e12

// Analyze builds the integrated view of a result set.
func Analyze(rs *api.ResultSet) *api.IntegratedAnalysis {
	return &api.IntegratedAnalysis{
		CrossModelInteractions: interactions(rs),
		CompoundEffects:        compoundEffects(rs),
		FeedbackLoops:          feedbackLoops(rs),
		SystemVulnerabilities:  systemVulnerabilities(rs),
		ResilienceFactors:      resilienceFactors(rs),
	}
}

func interactions(rs *api.ResultSet) api.CrossModelInteractions {
	var out api.CrossModelInteractions

	if rs.Military != nil && rs.Economic != nil {
		casualties := militaryCasualties(rs.Military)
		damage := rs.Economic.EconomicDamage.TotalDamageUSD

		// Active fighting amplifies economic damage and erodes trust in
		// economic institutions.
		amplification := 1 + (casualties/100000)*0.5
		out.MilitaryEconomic = &api.MilitaryEconomicInteraction{
			CasualtyEconomicMultiplier:  amplification,
			AdjustedEconomicDamage:      damage * amplification,
			ConfidenceInEconomicSystems: math.Max(0.1, 1.0-casualties/1000000),
		}
	}

	if rs.Population != nil && rs.Infrastructure != nil {
		displaced := rs.Population.DisplacementAnalysis.TotalDisplaced
		out.PopulationInfrastructure = &api.PopulationInfrastructureInteraction{
			DisplacementRecoveryDelay:         1 + (displaced/100000)*0.3,
			WorkforceAvailability:             math.Max(0.2, 1.0-displaced/500000),
			InfrastructureMaintenanceCapacity: math.Max(0.1, 1.0-displaced/200000),
		}
	}

	if rs.Economic != nil && (rs.Population != nil || rs.Psychological != nil) {
		gdpImpact := rs.Economic.EconomicDamage.GDPImpactPercent
		out.EconomicSocial = &api.EconomicSocialInteraction{
			EconomicSocialStressMultiplier: 1 + (gdpImpact/10)*0.8,
			UnemploymentSocialImpact:       gdpImpact * 2.5,
			SocialUnrestProbability:        math.Min(0.8, gdpImpact/20),
		}
	}

	if rs.Geographic != nil {
		accessibility := rs.Geographic.LogisticsFactors.AccessibilityFactor
		out.GeographicAmplifiers = &api.GeographicAmplifiers{
			TerrainDifficultyMultiplier: 2.0 - accessibility,
			LogisticsConstraintFactor:   accessibility,
			EvacuationDifficulty:        2.0 - accessibility,
			RecoveryAccessFactor:        accessibility,
		}
	}

	return out
}

func compoundEffects(rs *api.ResultSet) api.CompoundEffects {
	return api.CompoundEffects{
		TotalCasualtyBurden: casualtyBurden(rs),
		TotalEconomicImpact: economicImpact(rs),
		SocialDisruption:    socialDisruption(rs),
	}
}

func casualtyBurden(rs *api.ResultSet) api.CasualtyBurden {
	var total float64
	var sources []api.CasualtySource

	add := func(source string, casualties float64) {
		total += casualties
		sources = append(sources, api.CasualtySource{Source: source, Casualties: casualties})
	}

	if rs.Military != nil {
		add("military", militaryCasualties(rs.Military))
	}
	if rs.Infrastructure != nil {
		add("infrastructure", infrastructureCasualties(rs.Infrastructure))
	}
	if rs.Psychological != nil {
		add("psychological", psychologicalMortality(rs.Psychological))
	}

	// The multiplier expresses indirect burden relative to the first
	// (direct) source.
	first := 1.0
	if len(sources) > 0 {
		first = math.Max(1, sources[0].Casualties)
	}
	return api.CasualtyBurden{
		TotalCasualties:    total,
		CasualtySources:    sources,
		CasualtyMultiplier: total / first,
	}
}

func militaryCasualties(m *api.MilitaryResult) float64 {
	if m.CasualtyAnalysis == nil {
		return 0
	}
	return m.CasualtyAnalysis.ImmediateCasualties
}

// infrastructureCasualties estimates indirect deaths from degraded critical
// services.
func infrastructureCasualties(infra *api.InfrastructureResult) float64 {
	perService := []struct {
		sector string
		weight float64
	}{
		{"healthcare", 10000},
		{"water_systems", 5000},
		{"energy", 3000},
	}
	var total float64
	for _, s := range perService {
		if d, ok := infra.ServiceDisruptions[s.sector]; ok {
			total += math.Floor(d.DisruptionRate * s.weight)
		}
	}
	return total
}

// psychologicalMortality estimates excess mortality from severe mental health
// impacts.
func psychologicalMortality(p *api.PsychologicalResult) float64 {
	out := math.Floor(p.MentalHealthOutcomes.PTSD.PrevalenceRate * 1000)
	out += math.Floor(p.MentalHealthOutcomes.Depression.SeverityScore * 500)
	return out
}

func economicImpact(rs *api.ResultSet) api.EconomicImpact {
	var total float64
	var sources []api.EconomicSource

	add := func(source string, damage float64) {
		total += damage
		sources = append(sources, api.EconomicSource{Source: source, Damage: damage})
	}

	if rs.Economic != nil {
		add("direct_economic_warfare", rs.Economic.EconomicDamage.TotalDamageUSD)
	}
	if rs.SupplyChain != nil {
		add("supply_chain", rs.SupplyChain.GlobalImpactSummary.TotalEconomicImpactBillion*1e9)
	}
	if rs.Infrastructure != nil {
		add("infrastructure", rs.Infrastructure.EconomicImpact.TotalDamageUSD)
	}

	return api.EconomicImpact{
		TotalDamageUSD:   total,
		EconomicSources:  sources,
		GDPImpactPercent: total / globalGDPUSD * 100,
	}
}

func socialDisruption(rs *api.ResultSet) api.SocialDisruption {
	var score float64
	var factors []api.DisruptionFactor

	if rs.Population != nil {
		displacement := rs.Population.DisplacementAnalysis.DisplacementRatePercent / 100
		score += displacement * 0.4
		factors = append(factors, api.DisruptionFactor{Factor: "displacement", Score: displacement})
	}
	if rs.Psychological != nil {
		mentalHealth := rs.Psychological.MentalHealthOutcomes.PTSD.PrevalenceRate
		score += mentalHealth * 0.3
		factors = append(factors, api.DisruptionFactor{Factor: "mental_health", Score: mentalHealth})
	}
	if rs.Cultural != nil {
		cultural := math.Abs(rs.Cultural.SocialStructureChanges.SocialCohesionChange) / 10
		score += cultural * 0.3
		factors = append(factors, api.DisruptionFactor{Factor: "cultural_disruption", Score: cultural})
	}

	return api.SocialDisruption{
		TotalDisruptionScore:    math.Min(1.0, score),
		DisruptionFactors:       factors,
		SocialCohesionRemaining: math.Max(0, 1.0-score),
	}
}

func feedbackLoops(rs *api.ResultSet) api.FeedbackLoops {
	var out api.FeedbackLoops

	if rs.Economic != nil && rs.Population != nil {
		gdpImpact := rs.Economic.EconomicDamage.GDPImpactPercent
		displacement := rs.Population.DisplacementAnalysis.DisplacementRatePercent

		// Economic damage displaces people, which damages the economy
		// further.
		strength := math.Min(1.0, (gdpImpact+displacement)/50)
		out.EconomicSocial = &api.EconomicSocialLoop{
			InitialEconomicImpact:     gdpImpact,
			InducedSocialDisplacement: displacement,
			FeedbackEconomicDamage:    displacement * 0.5,
			LoopStrength:              strength,
			StabilizationTimeMonths:   int(12 * strength),
		}
	}

	if rs.Infrastructure != nil && rs.Economic != nil {
		disruption := rs.Infrastructure.MeanServiceDisruption()
		out.InfrastructureEconomic = &api.InfrastructureEconomicLoop{
			InfrastructureDisruption:         disruption,
			EconomicRecoveryDelay:            disruption * 0.8,
			InfrastructureInvestmentShortage: disruption * 0.6,
			LoopStrength:                     disruption,
		}
	}

	if rs.Population != nil && rs.Military != nil {
		stress := rs.Population.StressIndicators.OverallStress
		out.PopulationSecurity = &api.PopulationSecurityLoop{
			PopulationStress:          stress,
			SecurityDeterioration:     stress * 0.4,
			IncreasedMilitaryResponse: stress * 0.3,
			CivilianMilitaryTension:   stress * 0.5,
		}
	}

	return out
}

func systemVulnerabilities(rs *api.ResultSet) api.SystemVulnerabilities {
	var factors []float64
	if rs.Infrastructure != nil {
		factors = append(factors, 0.8) // dense interconnection
	}
	if rs.Economic != nil {
		factors = append(factors, 0.7) // trade interdependence
	}
	if rs.SupplyChain != nil {
		factors = append(factors, 0.9) // supplier concentration
	}

	var cascade float64
	if len(factors) > 0 {
		cascade = mean(factors)
	}

	return api.SystemVulnerabilities{
		CascadeVulnerability: cascade,
		SinglePointFailures: []string{
			"Critical infrastructure nodes",
			"Key transportation hubs",
			"Essential supply chain links",
			"Financial system components",
		},
		CriticalDependencies: []string{
			"Energy supply systems",
			"Communication networks",
			"Water distribution systems",
			"Food supply chains",
		},
		ResilienceGaps: []string{
			"Insufficient backup systems",
			"Limited alternative supply routes",
			"Inadequate emergency reserves",
			"Weak coordination mechanisms",
		},
	}
}

func resilienceFactors(rs *api.ResultSet) api.ResilienceFactors {
	out := api.ResilienceFactors{
		// Institutional capacity, learning capability, innovation
		// capacity, flexibility.
		AdaptiveCapacity: mean([]float64{0.8, 0.6, 0.7, 0.5}),
	}
	if rs.Infrastructure != nil {
		out.StructuralResilience = 0.6
	}
	if rs.Population != nil {
		out.SocialResilience = rs.Population.SocialCohesion.CohesionIndex
	}
	if rs.Economic != nil {
		out.EconomicResilience = 0.7
	}
	out.OverallResilienceScore = mean([]float64{
		out.StructuralResilience,
		out.SocialResilience,
		out.EconomicResilience,
		out.AdaptiveCapacity,
	})
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
