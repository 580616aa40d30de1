package sim

import (
	"math"
	"testing"
)

func TestGeographicElevationBands(t *testing.T) {
	tests := []struct {
		name          string
		elevation     float64
		wantCategory  string
		wantAccess    float64
		wantDifficulty float64
	}{
		{"lowland", 100, "lowland", 1.0, 1.0},
		{"highland", 900, "highland", 0.8, 1.3},
		{"mountain", 2200, "mountain", 0.5, 1.8},
		{"high mountain", 4500, "high_mountain", 0.2, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Geographic(GeographicParams{
				Location:    "test",
				TerrainType: "urban_medium",
				ClimateZone: "temperate",
				ElevationM:  tt.elevation,
			})
			if err != nil {
				t.Fatalf("Geographic: %v", err)
			}
			if res.ElevationEffects.ElevationCategory != tt.wantCategory {
				t.Errorf("category = %q, want %q", res.ElevationEffects.ElevationCategory, tt.wantCategory)
			}
			if res.ElevationEffects.AccessibilityFactor != tt.wantAccess {
				t.Errorf("accessibility = %v, want %v", res.ElevationEffects.AccessibilityFactor, tt.wantAccess)
			}
			if res.ElevationEffects.ConstructionDifficulty != tt.wantDifficulty {
				t.Errorf("difficulty = %v, want %v", res.ElevationEffects.ConstructionDifficulty, tt.wantDifficulty)
			}
			if res.LogisticsFactors.AccessibilityFactor != tt.wantAccess {
				t.Errorf("logistics accessibility = %v, want %v", res.LogisticsFactors.AccessibilityFactor, tt.wantAccess)
			}
		})
	}
}

func TestGeographicLogistics(t *testing.T) {
	res, err := Geographic(GeographicParams{TerrainType: "mountainous", ElevationM: 2000})
	if err != nil {
		t.Fatalf("Geographic: %v", err)
	}
	wantRoad := 0.15 * 0.5
	if math.Abs(res.LogisticsFactors.RoadAccessibility-wantRoad) > 1e-9 {
		t.Errorf("road accessibility = %v, want %v", res.LogisticsFactors.RoadAccessibility, wantRoad)
	}
	if math.Abs(res.LogisticsFactors.SupplyLineVulnerability-0.85) > 1e-9 {
		t.Errorf("supply line vulnerability = %v, want 0.85", res.LogisticsFactors.SupplyLineVulnerability)
	}
}

func TestGeographicUnknownTerrainFallsBack(t *testing.T) {
	res, err := Geographic(GeographicParams{TerrainType: "swamp", ElevationM: 10})
	if err != nil {
		t.Fatalf("Geographic: %v", err)
	}
	// Suburban transport density 0.55 at full accessibility.
	if math.Abs(res.LogisticsFactors.RoadAccessibility-0.55) > 1e-9 {
		t.Errorf("road accessibility = %v, want 0.55", res.LogisticsFactors.RoadAccessibility)
	}
}
