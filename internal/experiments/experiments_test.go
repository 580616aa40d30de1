package experiments

import (
	"reflect"
	"testing"
)

func TestNames(t *testing.T) {
	want := []string{
		"china_taiwan_scenario",
		"climate_refugee_crisis",
		"cyber_warfare_escalation",
		"india_pakistan_conflict",
		"middle_east_oil_crisis",
		"pandemic_economic_collapse",
	}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nope"); err == nil {
		t.Fatal("expected error for unknown experiment")
	}
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	a, err := Get("india_pakistan_conflict")
	if err != nil {
		t.Fatal(err)
	}
	a.CountriesInvolved[0] = "mutated"
	a.InfrastructureImpact.Profile["energy"] = 0.0

	b, err := Get("india_pakistan_conflict")
	if err != nil {
		t.Fatal(err)
	}
	if b.CountriesInvolved[0] != "India" {
		t.Error("catalog countries mutated through a returned config")
	}
	if b.InfrastructureImpact.Profile["energy"] != 0.8 {
		t.Error("catalog infrastructure profile mutated through a returned config")
	}
}

func TestIndiaPakistanConfig(t *testing.T) {
	cfg, err := Get("india_pakistan_conflict")
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.IsConflict() || !cfg.NuclearEscalation {
		t.Errorf("type = %q nuclear = %v", cfg.Type, cfg.NuclearEscalation)
	}
	if cfg.MissileThreat == nil || cfg.MissileThreat.MissileSubtype != "IRBM" {
		t.Errorf("missile threat = %+v", cfg.MissileThreat)
	}
	if cfg.DurationOrDefault(0) != 45 {
		t.Errorf("duration = %d, want 45", cfg.DurationOrDefault(0))
	}
	if cfg.SupplyChainDisruption.DisruptionIntensity != 0.8 {
		t.Errorf("disruption intensity = %v", cfg.SupplyChainDisruption.DisruptionIntensity)
	}
}

func TestClimateRefugeeCrisisDrivesClimateAnalyzer(t *testing.T) {
	cfg, err := Get("climate_refugee_crisis")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TimeHorizonYears != 30 {
		t.Errorf("time horizon = %d, want 30", cfg.TimeHorizonYears)
	}
	if cfg.IsConflict() {
		t.Error("climate scenario should not select the military analyzer")
	}
}
