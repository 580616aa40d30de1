package sim

import (
	"math"

	"github.com/polystrat/geosim/internal/api"
)

// climateScenario holds end-of-century (80 year) projections for an RCP
// emission pathway; the simulator scales them linearly to the requested time
// horizon.
type climateScenario struct {
	tempIncreaseC     float64
	seaLevelRiseCM    float64
	extremeWeatherX   float64
}

var climateScenarios = map[string]climateScenario{
	"rcp26": {tempIncreaseC: 1.8, seaLevelRiseCM: 43, extremeWeatherX: 1.4},
	"rcp45": {tempIncreaseC: 2.4, seaLevelRiseCM: 56, extremeWeatherX: 2.1},
	"rcp60": {tempIncreaseC: 3.2, seaLevelRiseCM: 72, extremeWeatherX: 2.8},
	"rcp85": {tempIncreaseC: 4.3, seaLevelRiseCM: 98, extremeWeatherX: 3.6},
}

// regionalClimateFactors amplify the global projection for especially exposed
// regions. Absent vulnerabilities default to 1.0 (no sea exposure: 0).
type regionalClimateFactors struct {
	heatVulnerability     float64
	droughtVulnerability  float64
	seaLevelVulnerability float64 // 0 means the region has no sea exposure
}

var climateRegions = map[string]regionalClimateFactors{
	"south_asia":          {heatVulnerability: 1.8, seaLevelVulnerability: 2.0},
	"middle_east":         {heatVulnerability: 2.5, droughtVulnerability: 2.8},
	"small_island_states": {heatVulnerability: 1.0, seaLevelVulnerability: 4.5},
}

// ClimateParams describes a long-horizon climate projection request.
type ClimateParams struct {
	Region           string
	EmissionScenario string
	TimeHorizonYears int
	PopulationSize   int64
}

// Climate scales an RCP pathway to the scenario horizon and derives regional
// migration pressure and climate-driven conflict risk.
func Climate(p ClimateParams) (*api.ClimateResult, error) {
	scenario, ok := climateScenarios[p.EmissionScenario]
	emission := p.EmissionScenario
	if !ok {
		emission = "rcp45"
		scenario = climateScenarios[emission]
	}
	factors, ok := climateRegions[p.Region]
	if !ok {
		factors = climateRegions["south_asia"]
	}

	scale := float64(p.TimeHorizonYears) / 80
	tempC := scenario.tempIncreaseC * scale
	seaCM := scenario.seaLevelRiseCM * scale
	weatherX := scenario.extremeWeatherX * scale

	population := float64(p.PopulationSize)
	if population <= 0 {
		population = 1000000
	}

	// Sea level rise above 50cm (regionally adjusted) starts displacing
	// coastal populations.
	var migrationPressure, permanentDisplacement float64
	if factors.seaLevelVulnerability > 0 {
		regionalRise := seaCM * factors.seaLevelVulnerability
		if regionalRise > 50 {
			migrationRate := math.Min(0.4, regionalRise/125)
			migrationPressure = math.Floor(population * 0.4 * migrationRate)
			displacementRate := math.Min(0.3, regionalRise/200)
			permanentDisplacement = math.Floor(population * displacementRate)
		}
	}

	var resourceScarcity float64
	drought := factors.droughtVulnerability
	if drought == 0 {
		drought = 1.0
	}
	if drought > 1.5 {
		resourceScarcity = math.Min(0.8, (drought-1.0)/2.0)
	}

	var migrationTensions float64
	if permanentDisplacement > 10000 {
		migrationTensions = math.Min(1.0, permanentDisplacement/100000) * 0.6
	}

	return &api.ClimateResult{
		EmissionScenario: emission,
		TimeHorizonYears: float64(p.TimeHorizonYears),
		ClimateProjection: api.ClimateProjection{
			TemperatureIncreaseC:     tempC,
			SeaLevelRiseM:            seaCM / 100,
			ExtremeWeatherMultiplier: weatherX,
		},
		MigrationPressure: migrationPressure,
		ConflictRisk:      (resourceScarcity + migrationTensions) / 2,
	}, nil
}
