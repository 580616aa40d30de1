// Package experiments ships the built-in scenario configurations used for
// demonstration runs and regression baselines.
package experiments

import (
	"fmt"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

func intPtr(v int) *int           { return &v }
func int64Ptr(v int64) *int64     { return &v }
func floatPtr(v float64) *float64 { return &v }

// builtin maps experiment name to its scenario configuration.
var builtin = map[string]*api.ScenarioConfig{
	"india_pakistan_conflict": {
		Name:              "india_pakistan_conflict",
		Type:              "conflict",
		AttackerCountry:   "Pakistan",
		DefenderCountry:   "India",
		CountriesInvolved: []string{"India", "Pakistan", "China", "USA"},
		DurationDays:      intPtr(45),
		Intensity:         "high",
		EscalationLevel:   "strategic",
		NuclearEscalation: true,
		PopulationSize:    int64Ptr(50000000),
		Location:          "Kashmir",
		LocationType:      "mountainous",
		TerrainType:       "mountainous",
		ClimateZone:       "continental",
		ElevationM:        floatPtr(2500),
		CulturalRegion:    "south_asia",
		MissileThreat: &api.MissileThreat{
			LaunchCoords:   [2]float64{33.7782, 73.0610},
			TargetCoords:   [2]float64{28.6139, 77.2090},
			MissileType:    "ballistic_missiles",
			MissileSubtype: "IRBM",
			WeaponType:     "nuclear",
		},
		DefenseSystems: []string{"S-400", "Akash", "Iron Dome"},
		TargetAreaData: &api.TargetArea{
			PopulationDensity: 25000,
			AreaType:          "urban",
			ProtectionLevel:   0.15,
			BuildingDensity:   0.7,
			TimeOfDay:         "day",
		},
		EconomicWarfare: true,
		SupplyChainDisruption: &api.SupplyChainDisruption{
			AffectedNodes:       []string{"India", "Pakistan", "China"},
			AffectedMaterials:   []string{"textiles", "agriculture", "pharmaceuticals"},
			DisruptionIntensity: 0.8,
		},
		InfrastructureImpact: &api.InfrastructureImpact{
			Profile: map[string]float64{
				"transportation":     0.6,
				"energy":             0.8,
				"telecommunications": 0.7,
				"water_systems":      0.5,
			},
		},
	},

	"china_taiwan_scenario": {
		Name:              "china_taiwan_scenario",
		Type:              "conflict",
		AttackerCountry:   "China",
		DefenderCountry:   "Taiwan",
		CountriesInvolved: []string{"China", "Taiwan", "USA", "Japan"},
		DurationDays:      intPtr(60),
		Intensity:         "extreme",
		EscalationLevel:   "strategic",
		PopulationSize:    int64Ptr(23000000),
		Location:          "Taiwan",
		LocationType:      "island",
		TerrainType:       "coastal",
		ClimateZone:       "subtropical",
		ElevationM:        floatPtr(200),
		CulturalRegion:    "east_asia",
	},

	"middle_east_oil_crisis": {
		Name:         "middle_east_oil_crisis",
		Type:         "economic",
		WarfareType:  "supply_chain_disruption",
		Intensity:    "extreme",
		DurationDays: intPtr(180),
		SupplyChainDisruption: &api.SupplyChainDisruption{
			AffectedNodes:       []string{"Saudi Arabia", "Iran", "Iraq"},
			AffectedMaterials:   []string{"oil_gas"},
			DisruptionIntensity: 0.9,
		},
	},

	"pandemic_economic_collapse": {
		Name:            "pandemic_economic_collapse",
		Type:            "health_crisis",
		PopulationSize:  int64Ptr(7800000000),
		DurationDays:    intPtr(365),
		EconomicWarfare: true,
		WarfareType:     "supply_chain_disruption",
		Intensity:       "high",
	},

	"cyber_warfare_escalation": {
		Name:         "cyber_warfare_escalation",
		Type:         "cyber",
		WarfareType:  "cyber_warfare",
		Intensity:    "high",
		DurationDays: intPtr(90),
		InfrastructureImpact: &api.InfrastructureImpact{
			Profile: map[string]float64{
				"telecommunications": 0.8,
				"energy":             0.6,
				"finance":            0.9,
				"transportation":     0.4,
			},
		},
	},

	"climate_refugee_crisis": {
		Name:             "climate_refugee_crisis",
		Type:             "climate",
		PopulationSize:   int64Ptr(200000000),
		TimeHorizonYears: 30,
		DurationDays:     intPtr(10950),
		Location:         "South Asia",
		ClimateZone:      "tropical",
	},
}

// Names lists the available experiments in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a copy of the named experiment configuration. Callers get
// their own copy so a run cannot contaminate the catalog.
func Get(name string) (*api.ScenarioConfig, error) {
	cfg, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("unknown experiment %q (available: %v)", name, Names())
	}
	return cfg.Clone(), nil
}
