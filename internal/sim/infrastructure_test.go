package sim

import (
	"math"
	"testing"

	"github.com/polystrat/geosim/internal/api"
)

func TestInfrastructureCascades(t *testing.T) {
	res, err := Infrastructure(InfrastructureParams{ScenarioType: "conflict", Intensity: "medium", DurationDays: 30})
	if err != nil {
		t.Fatalf("Infrastructure: %v", err)
	}
	if len(res.DirectDamage) != 4 {
		t.Fatalf("direct damage sectors = %d, want 4", len(res.DirectDamage))
	}

	// Energy takes cascade pressure from telecom (0.55), water (0.25)
	// and transportation (0.35), each contributing rate*0.3.
	energy := res.CascadeFailures["energy"]
	want := (0.55 + 0.25 + 0.35) * 0.3
	if math.Abs(energy.FunctionalityReduction-want) > 1e-9 {
		t.Errorf("energy cascade = %v, want %v", energy.FunctionalityReduction, want)
	}

	// Service disruption combines direct damage and cascade load.
	disruption, ok := res.ServiceDisruptions["energy"]
	if !ok {
		t.Fatal("missing energy service disruption")
	}
	if math.Abs(disruption.DisruptionRate-(0.50+want)) > 1e-9 {
		t.Errorf("energy disruption = %v, want %v", disruption.DisruptionRate, 0.50+want)
	}
	if math.Abs(disruption.EstimatedDurationDays-30*disruption.DisruptionRate) > 1e-9 {
		t.Errorf("duration = %v, want %v", disruption.EstimatedDurationDays, 30*disruption.DisruptionRate)
	}
}

func TestInfrastructureProfileRestriction(t *testing.T) {
	res, err := Infrastructure(InfrastructureParams{
		Profile:      map[string]float64{"energy": 0.5},
		ScenarioType: "conflict",
		Intensity:    "medium",
		DurationDays: 30,
	})
	if err != nil {
		t.Fatalf("Infrastructure: %v", err)
	}
	if len(res.DirectDamage) != 1 {
		t.Fatalf("direct damage sectors = %d, want 1", len(res.DirectDamage))
	}
	if _, ok := res.DirectDamage["energy"]; !ok {
		t.Fatal("missing direct damage for energy")
	}
	// Cascades from energy still reach its dependents.
	if len(res.CascadeFailures) != 3 {
		t.Errorf("cascade sectors = %d, want 3", len(res.CascadeFailures))
	}
}

func TestInfrastructureDisruptionGate(t *testing.T) {
	// A low-intensity hit on transportation alone puts only 0.045 of
	// cascade load on its dependents, below the reporting gate.
	res, err := Infrastructure(InfrastructureParams{
		Profile:      map[string]float64{"transportation": 1},
		ScenarioType: "conflict",
		Intensity:    "low",
		DurationDays: 30,
	})
	if err != nil {
		t.Fatalf("Infrastructure: %v", err)
	}
	if len(res.ServiceDisruptions) != 1 {
		t.Fatalf("service disruptions = %d, want 1", len(res.ServiceDisruptions))
	}
	if _, ok := res.ServiceDisruptions["transportation"]; !ok {
		t.Fatal("missing transportation disruption")
	}
}

func TestInfrastructureRecoveryCostFactor(t *testing.T) {
	base, err := Infrastructure(InfrastructureParams{ScenarioType: "conflict", Intensity: "high", DurationDays: 60})
	if err != nil {
		t.Fatalf("Infrastructure: %v", err)
	}
	remote, err := Infrastructure(InfrastructureParams{
		ScenarioType: "conflict",
		Intensity:    "high",
		DurationDays: 60,
		Geographic: &api.GeographicResult{
			LogisticsFactors: api.LogisticsFactors{AccessibilityFactor: 0.2},
		},
	})
	if err != nil {
		t.Fatalf("Infrastructure: %v", err)
	}

	// Accessibility 0.2 gives a 3.5x recovery cost factor against the
	// 1.5x default used when no terrain data is available.
	ratio := remote.EconomicImpact.DirectCostsUSD / base.EconomicImpact.DirectCostsUSD
	if math.Abs(ratio-3.5/1.5) > 1e-9 {
		t.Errorf("direct cost ratio = %v, want %v", ratio, 3.5/1.5)
	}
	if remote.EconomicImpact.TotalDamageUSD <= base.EconomicImpact.TotalDamageUSD {
		t.Error("remote terrain should raise total damage")
	}
}
