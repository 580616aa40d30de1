package integrate

import (
	"math"
	"testing"

	"github.com/polystrat/geosim/internal/api"
)

func TestAnalyzeEmptySet(t *testing.T) {
	ia := Analyze(&api.ResultSet{})

	x := ia.CrossModelInteractions
	if x.MilitaryEconomic != nil || x.PopulationInfrastructure != nil ||
		x.EconomicSocial != nil || x.GeographicAmplifiers != nil {
		t.Error("empty set produced interaction records")
	}
	if ia.CompoundEffects.TotalCasualtyBurden.TotalCasualties != 0 {
		t.Error("empty set produced casualties")
	}
	if ia.CompoundEffects.SocialDisruption.SocialCohesionRemaining != 1.0 {
		t.Errorf("cohesion remaining = %v, want 1.0",
			ia.CompoundEffects.SocialDisruption.SocialCohesionRemaining)
	}
	if ia.SystemVulnerabilities.CascadeVulnerability != 0 {
		t.Error("empty set produced cascade vulnerability")
	}
	// Adaptive capacity is scenario-independent.
	if ia.ResilienceFactors.AdaptiveCapacity != 0.65 {
		t.Errorf("adaptive capacity = %v, want 0.65", ia.ResilienceFactors.AdaptiveCapacity)
	}
}

func militaryWithCasualties(n float64) *api.MilitaryResult {
	return &api.MilitaryResult{CasualtyAnalysis: &api.CasualtyAnalysis{ImmediateCasualties: n}}
}

func economicWithDamage(usd, gdpPercent float64) *api.EconomicResult {
	return &api.EconomicResult{EconomicDamage: api.EconomicDamage{
		TotalDamageUSD:   usd,
		GDPImpactPercent: gdpPercent,
	}}
}

func TestMilitaryEconomicAmplification(t *testing.T) {
	rs := &api.ResultSet{
		Military: militaryWithCasualties(200000),
		Economic: economicWithDamage(1e12, 8),
	}
	ia := Analyze(rs)

	me := ia.CrossModelInteractions.MilitaryEconomic
	if me == nil {
		t.Fatal("missing military-economic interaction")
	}
	if me.CasualtyEconomicMultiplier != 2.0 { // 1 + (200000/100000)*0.5
		t.Errorf("multiplier = %v, want 2.0", me.CasualtyEconomicMultiplier)
	}
	if me.AdjustedEconomicDamage != 2e12 {
		t.Errorf("adjusted damage = %v, want 2e12", me.AdjustedEconomicDamage)
	}
	if math.Abs(me.ConfidenceInEconomicSystems-0.8) > 1e-9 {
		t.Errorf("confidence = %v, want 0.8", me.ConfidenceInEconomicSystems)
	}
}

func TestEconomicSocialRequiresSocialDomain(t *testing.T) {
	rs := &api.ResultSet{Economic: economicWithDamage(1e11, 4)}
	if Analyze(rs).CrossModelInteractions.EconomicSocial != nil {
		t.Error("economic-social interaction without a social domain")
	}

	rs.Psychological = &api.PsychologicalResult{}
	es := Analyze(rs).CrossModelInteractions.EconomicSocial
	if es == nil {
		t.Fatal("missing economic-social interaction")
	}
	if math.Abs(es.SocialUnrestProbability-0.2) > 1e-9 { // 4/20
		t.Errorf("unrest probability = %v, want 0.2", es.SocialUnrestProbability)
	}
	if es.UnemploymentSocialImpact != 10 { // 4 * 2.5
		t.Errorf("unemployment impact = %v, want 10", es.UnemploymentSocialImpact)
	}
}

func TestGeographicAmplifiersComplement(t *testing.T) {
	rs := &api.ResultSet{Geographic: &api.GeographicResult{
		LogisticsFactors: api.LogisticsFactors{AccessibilityFactor: 0.8},
	}}
	ga := Analyze(rs).CrossModelInteractions.GeographicAmplifiers
	if ga == nil {
		t.Fatal("missing geographic amplifiers")
	}
	if math.Abs(ga.TerrainDifficultyMultiplier-1.2) > 1e-9 {
		t.Errorf("terrain difficulty = %v, want 1.2", ga.TerrainDifficultyMultiplier)
	}
	if ga.RecoveryAccessFactor != 0.8 {
		t.Errorf("recovery access = %v, want 0.8", ga.RecoveryAccessFactor)
	}
}

func TestCasualtyBurdenMultiplier(t *testing.T) {
	rs := &api.ResultSet{
		Military: militaryWithCasualties(10000),
		Psychological: &api.PsychologicalResult{
			MentalHealthOutcomes: api.MentalHealthOutcomes{
				PTSD:       api.PrevalenceOutcome{PrevalenceRate: 0.2},
				Depression: api.DepressionOutcome{SeverityScore: 0.6},
			},
		},
	}
	burden := Analyze(rs).CompoundEffects.TotalCasualtyBurden

	// Psychological mortality: floor(0.2*1000) + floor(0.6*500) = 500.
	if burden.TotalCasualties != 10500 {
		t.Errorf("total casualties = %v, want 10500", burden.TotalCasualties)
	}
	if len(burden.CasualtySources) != 2 {
		t.Fatalf("sources = %d, want 2", len(burden.CasualtySources))
	}
	if burden.CasualtyMultiplier != 1.05 {
		t.Errorf("multiplier = %v, want 1.05", burden.CasualtyMultiplier)
	}
}

func TestCompoundEconomicSources(t *testing.T) {
	rs := &api.ResultSet{
		Economic: economicWithDamage(2e12, 10),
		SupplyChain: &api.SupplyChainResult{GlobalImpactSummary: api.GlobalImpactSummary{
			TotalEconomicImpactBillion: 500,
		}},
		Infrastructure: &api.InfrastructureResult{EconomicImpact: api.InfrastructureEconomicImpact{
			TotalDamageUSD: 5e11,
		}},
	}
	impact := Analyze(rs).CompoundEffects.TotalEconomicImpact
	if impact.TotalDamageUSD != 3e12 {
		t.Errorf("total damage = %v, want 3e12", impact.TotalDamageUSD)
	}
	if math.Abs(impact.GDPImpactPercent-12) > 1e-9 { // 3e12 of 25e12
		t.Errorf("GDP impact = %v, want 12", impact.GDPImpactPercent)
	}
}

func TestSocialDisruptionInvariants(t *testing.T) {
	rs := &api.ResultSet{
		Population: &api.PopulationResult{
			DisplacementAnalysis: api.DisplacementAnalysis{DisplacementRatePercent: 80},
			SocialCohesion:       api.SocialCohesion{CohesionIndex: 0.3},
			StressIndicators:     api.StressIndicators{OverallStress: 0.7},
		},
		Psychological: &api.PsychologicalResult{
			MentalHealthOutcomes: api.MentalHealthOutcomes{
				PTSD: api.PrevalenceOutcome{PrevalenceRate: 0.25},
			},
		},
		Cultural: &api.CulturalResult{
			SocialStructureChanges: api.SocialStructureChanges{SocialCohesionChange: -6.8},
		},
	}
	sd := Analyze(rs).CompoundEffects.SocialDisruption

	want := 0.8*0.4 + 0.25*0.3 + 0.68*0.3
	if math.Abs(sd.TotalDisruptionScore-want) > 1e-9 {
		t.Errorf("disruption score = %v, want %v", sd.TotalDisruptionScore, want)
	}
	if sd.TotalDisruptionScore > 1 {
		t.Error("disruption score above 1")
	}
	if math.Abs(sd.SocialCohesionRemaining-(1-want)) > 1e-9 {
		t.Errorf("cohesion remaining = %v, want %v", sd.SocialCohesionRemaining, 1-want)
	}
	if len(sd.DisruptionFactors) != 3 {
		t.Errorf("factors = %d, want 3", len(sd.DisruptionFactors))
	}
}

func TestFeedbackLoops(t *testing.T) {
	rs := &api.ResultSet{
		Economic: economicWithDamage(1e12, 15),
		Population: &api.PopulationResult{
			DisplacementAnalysis: api.DisplacementAnalysis{DisplacementRatePercent: 35},
			StressIndicators:     api.StressIndicators{OverallStress: 0.5},
		},
		Military: militaryWithCasualties(1000),
	}
	loops := Analyze(rs).FeedbackLoops

	es := loops.EconomicSocial
	if es == nil {
		t.Fatal("missing economic-social loop")
	}
	if es.LoopStrength != 1.0 { // (15+35)/50 capped
		t.Errorf("loop strength = %v, want 1.0", es.LoopStrength)
	}
	if es.StabilizationTimeMonths != 12 {
		t.Errorf("stabilization = %d months, want 12", es.StabilizationTimeMonths)
	}

	ps := loops.PopulationSecurity
	if ps == nil {
		t.Fatal("missing population-security loop")
	}
	if ps.CivilianMilitaryTension != 0.25 {
		t.Errorf("tension = %v, want 0.25", ps.CivilianMilitaryTension)
	}

	if loops.InfrastructureEconomic != nil {
		t.Error("infrastructure-economic loop without infrastructure results")
	}
}

func TestCascadeVulnerabilityMean(t *testing.T) {
	rs := &api.ResultSet{
		Infrastructure: &api.InfrastructureResult{},
		SupplyChain:    &api.SupplyChainResult{},
	}
	v := Analyze(rs).SystemVulnerabilities
	if math.Abs(v.CascadeVulnerability-0.85) > 1e-9 { // mean(0.8, 0.9)
		t.Errorf("cascade vulnerability = %v, want 0.85", v.CascadeVulnerability)
	}
}

func TestResilienceFactors(t *testing.T) {
	rs := &api.ResultSet{
		Infrastructure: &api.InfrastructureResult{},
		Economic:       economicWithDamage(1e11, 2),
		Population: &api.PopulationResult{
			SocialCohesion: api.SocialCohesion{CohesionIndex: 0.9},
		},
	}
	rf := Analyze(rs).ResilienceFactors
	if rf.StructuralResilience != 0.6 || rf.EconomicResilience != 0.7 {
		t.Errorf("structural/economic = %v/%v, want 0.6/0.7", rf.StructuralResilience, rf.EconomicResilience)
	}
	if rf.SocialResilience != 0.9 {
		t.Errorf("social = %v, want 0.9", rf.SocialResilience)
	}
	want := (0.6 + 0.9 + 0.7 + 0.65) / 4
	if math.Abs(rf.OverallResilienceScore-want) > 1e-9 {
		t.Errorf("overall = %v, want %v", rf.OverallResilienceScore, want)
	}
}
