package sim

import (
	"github.com/polystrat/geosim/internal/api"
)

// regionalCulture carries the cultural profile scores (0-10) that drive how
// social structures absorb disruption.
type regionalCulture struct {
	communityCollectivism float64
	traditionalAuthority  float64
}

var regionalCultures = map[string]regionalCulture{
	"south_asia":      {communityCollectivism: 8.5, traditionalAuthority: 7.5},
	"middle_east":     {communityCollectivism: 8.2, traditionalAuthority: 8.0},
	"western_society": {communityCollectivism: 5.8, traditionalAuthority: 4.5},
}

var defaultCulture = regionalCulture{communityCollectivism: 6.5, traditionalAuthority: 6.0}

var adaptationPressure = map[string]float64{
	"low": 0.3, "medium": 0.6, "high": 0.8, "extreme": 0.9,
}

// CulturalParams selects the cultural region under stress.
type CulturalParams struct {
	Region    string
	Intensity string
}

// Cultural models disruption to family, community, and economic structures
// and the resulting cohesion shift. Collectivist societies lose more cohesion
// per unit of structural disruption; strongly traditional ones erode less.
func Cultural(p CulturalParams) (*api.CulturalResult, error) {
	culture, ok := regionalCultures[p.Region]
	if !ok {
		culture = defaultCulture
	}
	intensity := normalizeIntensity(p.Intensity)

	// Structural disruption levels: family, community organizations,
	// economic systems.
	family, community, economic := 0.4, 0.5, 0.6
	if intensity == "extreme" {
		family, community, economic = 0.7, 0.8, 0.9
	}
	meanDisruption := (family + community + economic) / 3

	pressure := adaptationPressure[intensity]

	return &api.CulturalResult{
		Region: p.Region,
		SocialStructureChanges: api.SocialStructureChanges{
			SocialCohesionChange:    -meanDisruption * culture.communityCollectivism,
			TraditionDisruptionRate: pressure * (1 - culture.traditionalAuthority/10),
		},
	}, nil
}
