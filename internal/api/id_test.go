package api

import "testing"

func TestComputeScenarioIDDeterministic(t *testing.T) {
	days := 30
	cfg := &ScenarioConfig{
		Name:              "border clash",
		Type:              "conflict",
		Intensity:         "high",
		DurationDays:      &days,
		CountriesInvolved: []string{"India", "Pakistan"},
	}

	first, err := ComputeScenarioID(cfg)
	if err != nil {
		t.Fatalf("ComputeScenarioID() error = %v", err)
	}
	second, err := ComputeScenarioID(cfg.Clone())
	if err != nil {
		t.Fatalf("ComputeScenarioID() error = %v", err)
	}

	if first != second {
		t.Errorf("ids differ for equal configs: %s != %s", first, second)
	}
}

func TestComputeScenarioIDDistinguishesConfigs(t *testing.T) {
	a := &ScenarioConfig{Type: "conflict", Intensity: "high"}
	b := &ScenarioConfig{Type: "conflict", Intensity: "low"}

	idA, err := ComputeScenarioID(a)
	if err != nil {
		t.Fatalf("ComputeScenarioID(a) error = %v", err)
	}
	idB, err := ComputeScenarioID(b)
	if err != nil {
		t.Fatalf("ComputeScenarioID(b) error = %v", err)
	}

	if idA == idB {
		t.Errorf("distinct configs produced the same id %s", idA)
	}
}

func TestCloneIsDeep(t *testing.T) {
	days := 14
	cfg := &ScenarioConfig{
		Type:              "economic",
		DurationDays:      &days,
		CountriesInvolved: []string{"USA"},
		SupplyChainDisruption: &SupplyChainDisruption{
			AffectedNodes:       []string{"china_manufacturing"},
			AffectedMaterials:   []string{"semiconductors"},
			DisruptionIntensity: 0.8,
		},
		InfrastructureImpact: &InfrastructureImpact{
			Profile: map[string]float64{"power_grid": 0.4},
		},
	}

	cp := cfg.Clone()
	cp.CountriesInvolved[0] = "EU"
	*cp.DurationDays = 90
	cp.SupplyChainDisruption.AffectedNodes[0] = "taiwan_semiconductors"
	cp.InfrastructureImpact.Profile["power_grid"] = 0.9

	if cfg.CountriesInvolved[0] != "USA" {
		t.Errorf("CountriesInvolved leaked through clone: %v", cfg.CountriesInvolved)
	}
	if *cfg.DurationDays != 14 {
		t.Errorf("DurationDays leaked through clone: %d", *cfg.DurationDays)
	}
	if cfg.SupplyChainDisruption.AffectedNodes[0] != "china_manufacturing" {
		t.Errorf("AffectedNodes leaked through clone: %v", cfg.SupplyChainDisruption.AffectedNodes)
	}
	if cfg.InfrastructureImpact.Profile["power_grid"] != 0.4 {
		t.Errorf("infrastructure profile leaked through clone: %v", cfg.InfrastructureImpact.Profile)
	}

	if (*ScenarioConfig)(nil).Clone() != nil {
		t.Error("Clone() of nil config should be nil")
	}
}
