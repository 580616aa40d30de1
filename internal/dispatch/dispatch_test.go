package dispatch

import (
	"reflect"
	"testing"

	"github.com/polystrat/geosim/internal/api"
)

func intp(v int) *int       { return &v }
func int64p(v int64) *int64 { return &v }

func TestRunEmptyConfig(t *testing.T) {
	rs, failures := Run(&api.ScenarioConfig{})
	if !rs.Empty() {
		t.Errorf("empty config produced domains %v", rs.Domains())
	}
	if len(failures) != 0 {
		t.Errorf("empty config produced failures %v", failures)
	}
}

func TestRunPresenceGating(t *testing.T) {
	tests := []struct {
		name    string
		cfg     api.ScenarioConfig
		domains []string
	}{
		{
			name:    "location only",
			cfg:     api.ScenarioConfig{Location: "Kashmir"},
			domains: []string{"geographic"},
		},
		{
			name:    "population pulls psychological",
			cfg:     api.ScenarioConfig{PopulationSize: int64p(500000)},
			domains: []string{"population", "psychological"},
		},
		{
			name:    "cultural region",
			cfg:     api.ScenarioConfig{CulturalRegion: "south_asia"},
			domains: []string{"cultural"},
		},
		{
			name:    "long horizon climate",
			cfg:     api.ScenarioConfig{TimeHorizonYears: 30, Region: "south_asia"},
			domains: []string{"climate"},
		},
		{
			name: "short horizon skips climate",
			cfg:  api.ScenarioConfig{TimeHorizonYears: 5, Region: "south_asia"},
		},
		{
			name:    "economic type",
			cfg:     api.ScenarioConfig{Type: "economic", TargetCountry: "Russia"},
			domains: []string{"economic"},
		},
		{
			name:    "economic warfare flag",
			cfg:     api.ScenarioConfig{Type: "conflict", EconomicWarfare: true, TargetCountry: "Pakistan"},
			domains: []string{"economic"},
		},
		{
			name: "supply chain",
			cfg: api.ScenarioConfig{SupplyChainDisruption: &api.SupplyChainDisruption{
				AffectedNodes:       []string{"Taiwan"},
				DisruptionIntensity: 0.8,
			}},
			domains: []string{"supply_chain"},
		},
		{
			name:    "infrastructure",
			cfg:     api.ScenarioConfig{InfrastructureImpact: &api.InfrastructureImpact{}},
			domains: []string{"infrastructure"},
		},
		{
			name: "nuclear requires conflict type",
			cfg: api.ScenarioConfig{
				Type: "economic", NuclearEscalation: true,
				AttackerCountry: "Pakistan", DefenderCountry: "India",
				TargetCountry: "India",
			},
			domains: []string{"economic"},
		},
		{
			name: "conflict with missile threat and escalation",
			cfg: api.ScenarioConfig{
				Type:              "conflict",
				NuclearEscalation: true,
				AttackerCountry:   "Pakistan",
				DefenderCountry:   "India",
				MissileThreat: &api.MissileThreat{
					LaunchCoords:   [2]float64{33.7, 73.1},
					TargetCoords:   [2]float64{28.6, 77.2},
					MissileType:    "ballistic_missiles",
					MissileSubtype: "SRBM",
				},
			},
			domains: []string{"military", "nuclear"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs, failures := Run(&tt.cfg)
			if len(failures) != 0 {
				t.Fatalf("unexpected failures: %v", failures)
			}
			if got := rs.Domains(); !reflect.DeepEqual(got, tt.domains) {
				t.Errorf("domains = %v, want %v", got, tt.domains)
			}
		})
	}
}

func TestRunFailureIsolation(t *testing.T) {
	// An unknown nuclear party fails that simulator only; the rest of the
	// run proceeds.
	cfg := api.ScenarioConfig{
		Type:              "conflict",
		NuclearEscalation: true,
		AttackerCountry:   "Atlantis",
		DefenderCountry:   "India",
		PopulationSize:    int64p(1000000),
	}
	rs, failures := Run(&cfg)
	if len(failures) != 1 || failures[0].Domain != "nuclear" {
		t.Fatalf("failures = %v, want one nuclear failure", failures)
	}
	if rs.Nuclear != nil {
		t.Error("failed domain left a result")
	}
	if rs.Population == nil || rs.Psychological == nil {
		t.Error("unrelated domains missing after isolated failure")
	}
}

func TestRunInfrastructureConsumesGeographic(t *testing.T) {
	elevation := 2200.0
	cfg := api.ScenarioConfig{
		Type:                 "conflict",
		Location:             "Hindu Kush",
		TerrainType:          "mountainous",
		ElevationM:           &elevation,
		InfrastructureImpact: &api.InfrastructureImpact{},
		DurationDays:         intp(60),
	}
	withTerrain, failures := Run(&cfg)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	flat := api.ScenarioConfig{
		Type:                 "conflict",
		InfrastructureImpact: &api.InfrastructureImpact{},
		DurationDays:         intp(60),
	}
	without, failures := Run(&flat)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}

	// Mountain terrain raises the recovery cost factor above the
	// no-terrain default.
	if withTerrain.Infrastructure.EconomicImpact.DirectCostsUSD <= without.Infrastructure.EconomicImpact.DirectCostsUSD {
		t.Error("terrain data did not raise infrastructure recovery costs")
	}
}

func TestRunNuclearPartiesFromCountriesInvolved(t *testing.T) {
	cfg := api.ScenarioConfig{
		Type:              "war",
		NuclearEscalation: true,
		CountriesInvolved: []string{"Pakistan", "India"},
	}
	rs, failures := Run(&cfg)
	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %v", failures)
	}
	if rs.Nuclear == nil {
		t.Fatal("nuclear simulator did not run")
	}
	if rs.Nuclear.DefenderCasualties.Country != "India" {
		t.Errorf("defender = %q, want India", rs.Nuclear.DefenderCasualties.Country)
	}
}
