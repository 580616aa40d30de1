package risk

import (
	"math"
	"strings"
	"testing"

	"github.com/polystrat/geosim/internal/api"
)

func analysisWith(casualties, gdpPercent, social, cascade float64) *api.IntegratedAnalysis {
	return &api.IntegratedAnalysis{
		CompoundEffects: api.CompoundEffects{
			TotalCasualtyBurden: api.CasualtyBurden{TotalCasualties: casualties},
			TotalEconomicImpact: api.EconomicImpact{GDPImpactPercent: gdpPercent},
			SocialDisruption:    api.SocialDisruption{TotalDisruptionScore: social},
		},
		SystemVulnerabilities: api.SystemVulnerabilities{CascadeVulnerability: cascade},
	}
}

func TestAssessCategoryScores(t *testing.T) {
	ra := Assess(analysisWith(50000, 10, 0.6, 0.8))

	wants := map[string]float64{
		CategoryMilitary:       0.5,
		CategoryEconomic:       0.5,
		CategorySocial:         0.6,
		CategoryInfrastructure: 0,
		CategorySystemic:       0.8,
	}
	for name, want := range wants {
		if got := ra.RiskCategories[name]; math.Abs(got-want) > 1e-9 {
			t.Errorf("%s = %v, want %v", name, got, want)
		}
	}
	if want := (0.5 + 0.5 + 0.6 + 0 + 0.8) / 5; math.Abs(ra.OverallRiskScore-want) > 1e-9 {
		t.Errorf("overall = %v, want %v", ra.OverallRiskScore, want)
	}
}

func TestAssessCapsAndCriticals(t *testing.T) {
	ra := Assess(analysisWith(5e6, 200, 0.9, 0.85))

	if ra.RiskCategories[CategoryMilitary] != 1.0 || ra.RiskCategories[CategoryEconomic] != 1.0 {
		t.Errorf("military/economic = %v/%v, want capped at 1.0",
			ra.RiskCategories[CategoryMilitary], ra.RiskCategories[CategoryEconomic])
	}
	if ra.OverallRiskScore < 0 || ra.OverallRiskScore > 1 {
		t.Errorf("overall %v outside [0,1]", ra.OverallRiskScore)
	}

	// Everything above 0.7 except infrastructure is critical.
	want := []string{CategoryMilitary, CategoryEconomic, CategorySocial, CategorySystemic}
	if len(ra.CriticalVulnerabilities) != len(want) {
		t.Fatalf("criticals = %v, want %d entries", ra.CriticalVulnerabilities, len(want))
	}
	seen := make(map[string]bool)
	for _, c := range ra.CriticalVulnerabilities {
		seen[c] = true
	}
	for _, c := range want {
		if !seen[c] {
			t.Errorf("missing critical vulnerability %s", c)
		}
	}
}

func TestMitigationPriorityBands(t *testing.T) {
	ra := Assess(analysisWith(80000, 12, 0.35, 0.2))

	// military 0.8 critical, economic 0.6 high, social 0.35 medium;
	// infrastructure 0 and systemic 0.2 drop out.
	if len(ra.RiskMitigationPriorities) != 3 {
		t.Fatalf("priorities = %v, want 3", ra.RiskMitigationPriorities)
	}
	if !strings.HasPrefix(ra.RiskMitigationPriorities[0], "Critical: Address military_risk") {
		t.Errorf("priorities[0] = %q", ra.RiskMitigationPriorities[0])
	}
	if !strings.HasPrefix(ra.RiskMitigationPriorities[1], "High: Mitigate economic_risk") {
		t.Errorf("priorities[1] = %q", ra.RiskMitigationPriorities[1])
	}
	if !strings.HasPrefix(ra.RiskMitigationPriorities[2], "Medium: Monitor social_risk") {
		t.Errorf("priorities[2] = %q", ra.RiskMitigationPriorities[2])
	}
}

func TestAssessEmptyAnalysis(t *testing.T) {
	ra := Assess(&api.IntegratedAnalysis{})
	if ra.OverallRiskScore != 0 {
		t.Errorf("overall = %v, want 0 for empty analysis", ra.OverallRiskScore)
	}
	if len(ra.CriticalVulnerabilities) != 0 {
		t.Errorf("criticals = %v, want none", ra.CriticalVulnerabilities)
	}
	if len(ra.RiskCategories) != 5 {
		t.Errorf("categories = %d, want all 5 present", len(ra.RiskCategories))
	}
}

func TestAssessOverallScoreBitStable(t *testing.T) {
	// 0.1 + 0.2 + 0.3 sums to different bits depending on addition order, so
	// this catches any regression to summing in map-iteration order.
	first := Assess(analysisWith(10000, 4, 0.3, 0)).OverallRiskScore
	for i := 0; i < 1000; i++ {
		if got := Assess(analysisWith(10000, 4, 0.3, 0)).OverallRiskScore; got != first {
			t.Fatalf("run %d: overall = %v, want exactly %v", i, got, first)
		}
	}
}

func TestConfidenceOverallBitStable(t *testing.T) {
	rs := &api.ResultSet{
		Military:   &api.MilitaryResult{},
		Economic:   &api.EconomicResult{},
		Population: &api.PopulationResult{},
		Cultural:   &api.CulturalResult{},
	}
	first := Confidence(rs).OverallConfidence
	for i := 0; i < 1000; i++ {
		if got := Confidence(rs).OverallConfidence; got != first {
			t.Fatalf("run %d: overall = %v, want exactly %v", i, got, first)
		}
	}
}

func TestConfidenceScores(t *testing.T) {
	rs := &api.ResultSet{
		Military: &api.MilitaryResult{
			Trajectory:       &api.Trajectory{},
			CasualtyAnalysis: &api.CasualtyAnalysis{},
		},
		Economic:   &api.EconomicResult{},
		Population: &api.PopulationResult{},
		Cultural:   &api.CulturalResult{},
	}
	ca := Confidence(rs)

	wants := map[string]float64{
		"military":   0.9,
		"economic":   0.7,
		"population": 0.8,
		"cultural":   0.6,
	}
	for domain, want := range wants {
		if got := ca.ModelConfidence[domain]; got != want {
			t.Errorf("%s confidence = %v, want %v", domain, got, want)
		}
	}
	if want := (0.9 + 0.7 + 0.8 + 0.6) / 4; math.Abs(ca.OverallConfidence-want) > 1e-9 {
		t.Errorf("overall = %v, want %v", ca.OverallConfidence, want)
	}
}

func TestConfidenceMilitaryWithoutTrajectory(t *testing.T) {
	rs := &api.ResultSet{Military: &api.MilitaryResult{}}
	if got := Confidence(rs).ModelConfidence["military"]; got != 0.8 {
		t.Errorf("military confidence = %v, want 0.8 without trajectory", got)
	}
}

func TestConfidenceEmptySet(t *testing.T) {
	ca := Confidence(&api.ResultSet{})
	if ca.OverallConfidence != 0.5 {
		t.Errorf("overall = %v, want 0.5 neutral", ca.OverallConfidence)
	}
	if len(ca.ModelConfidence) != 0 {
		t.Errorf("model confidence = %v, want empty", ca.ModelConfidence)
	}
}

func TestDataQualityTiers(t *testing.T) {
	rs := &api.ResultSet{
		Nuclear:     &api.NuclearResult{},
		SupplyChain: &api.SupplyChainResult{},
		Climate:     &api.ClimateResult{},
	}
	dq := Confidence(rs).DataQualityScores
	if dq["nuclear"] != 0.8 || dq["supply_chain"] != 0.7 || dq["climate"] != 0.6 {
		t.Errorf("data quality = %v", dq)
	}
}
