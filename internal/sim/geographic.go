package sim

import (
	"github.com/polystrat/geosim/internal/api"
)

// terrainTransportDensity is the transport network density per terrain type,
// in [0,1]. Unknown terrain falls back to suburban.
var terrainTransportDensity = map[string]float64{
	"urban_dense":        0.88,
	"urban_medium":       0.72,
	"suburban":           0.55,
	"rural_agricultural": 0.25,
	"mountainous":        0.15,
	"coastal":            0.78,
	"desert":             0.10,
	"forest":             0.12,
}

// GeographicParams selects the terrain and climate context for a location.
type GeographicParams struct {
	Location    string
	TerrainType string
	ClimateZone string
	ElevationM  float64
}

// Geographic derives terrain accessibility and logistics factors for a
// location. Accessibility is driven by elevation bands; road accessibility
// additionally scales with the terrain's transport density.
func Geographic(p GeographicParams) (*api.GeographicResult, error) {
	transport, ok := terrainTransportDensity[p.TerrainType]
	if !ok {
		transport = terrainTransportDensity["suburban"]
	}

	var category string
	var accessibility, difficulty float64
	switch {
	case p.ElevationM < 500:
		category, accessibility, difficulty = "lowland", 1.0, 1.0
	case p.ElevationM < 1500:
		category, accessibility, difficulty = "highland", 0.8, 1.3
	case p.ElevationM < 3000:
		category, accessibility, difficulty = "mountain", 0.5, 1.8
	default:
		category, accessibility, difficulty = "high_mountain", 0.2, 2.5
	}

	return &api.GeographicResult{
		Location:    p.Location,
		TerrainType: p.TerrainType,
		ClimateZone: p.ClimateZone,
		ElevationM:  p.ElevationM,
		ElevationEffects: api.ElevationEffects{
			ElevationCategory:      category,
			AccessibilityFactor:    accessibility,
			ConstructionDifficulty: difficulty,
		},
		LogisticsFactors: api.LogisticsFactors{
			AccessibilityFactor:     accessibility,
			RoadAccessibility:       transport * accessibility,
			SupplyLineVulnerability: 1.0 - transport,
		},
	}, nil
}
