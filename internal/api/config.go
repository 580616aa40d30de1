package api

// ScenarioConfig describes a hypothetical scenario to analyze. Every field is
// optional; the dispatcher treats absence as "that analyzer is not applicable"
// and resolves documented defaults at its own boundary. The pipeline never
// mutates a config after it has been submitted.
type ScenarioConfig struct {
	Name      string `json:"name,omitempty"`
	Type      string `json:"type,omitempty"`      // conflict | military | war | economic | ...
	Intensity string `json:"intensity,omitempty"` // low | medium | high | extreme

	DurationDays     *int `json:"duration_days,omitempty"`
	TimeHorizonYears int  `json:"time_horizon_years,omitempty"`

	CountriesInvolved []string `json:"countries_involved,omitempty"`
	AttackerCountry   string   `json:"attacker_country,omitempty"`
	DefenderCountry   string   `json:"defender_country,omitempty"`
	TargetCountry     string   `json:"target_country,omitempty"`

	// Military escalation controls.
	NuclearEscalation bool   `json:"nuclear_escalation,omitempty"`
	EscalationLevel   string `json:"escalation_level,omitempty"` // limited | tactical | strategic | all_out
	FirstStrike       bool   `json:"first_strike,omitempty"`

	MissileThreat  *MissileThreat `json:"missile_threat,omitempty"`
	DefenseSystems []string       `json:"defense_systems,omitempty"`
	TargetAreaData *TargetArea    `json:"target_area_data,omitempty"`

	// Population and social context.
	PopulationSize *int64 `json:"population_size,omitempty"`
	LocationType   string `json:"location_type,omitempty"`
	CulturalRegion string `json:"cultural_region,omitempty"`

	// Geography and climate context.
	Location         string   `json:"location,omitempty"`
	TerrainType      string   `json:"terrain_type,omitempty"`
	ClimateZone      string   `json:"climate_zone,omitempty"`
	ElevationM       *float64 `json:"elevation_m,omitempty"`
	Region           string   `json:"region,omitempty"`
	EmissionScenario string   `json:"emission_scenario,omitempty"`

	// Economic warfare and downstream disruption.
	EconomicWarfare       bool                   `json:"economic_warfare,omitempty"`
	WarfareType           string                 `json:"warfare_type,omitempty"`
	SupplyChainDisruption *SupplyChainDisruption `json:"supply_chain_disruption,omitempty"`
	InfrastructureImpact  *InfrastructureImpact  `json:"infrastructure_impact,omitempty"`
}

// MissileThreat describes a single missile launch to model.
type MissileThreat struct {
	LaunchCoords   [2]float64 `json:"launch_coords"` // lat, lon
	TargetCoords   [2]float64 `json:"target_coords"`
	MissileType    string     `json:"missile_type"`    // ballistic_missiles | cruise_missiles
	MissileSubtype string     `json:"missile_subtype"` // e.g. SRBM, MRBM, IRBM, ICBM
	WeaponType     string     `json:"weapon_type,omitempty"`
}

// TargetArea describes the area around the missile impact point.
type TargetArea struct {
	PopulationDensity float64 `json:"population_density,omitempty"`
	AreaType          string  `json:"area_type,omitempty"`
	ProtectionLevel   float64 `json:"protection_level,omitempty"`
	BuildingDensity   float64 `json:"building_density,omitempty"`
	TimeOfDay         string  `json:"time_of_day,omitempty"`
}

// SupplyChainDisruption selects supply-chain nodes and materials to disrupt.
type SupplyChainDisruption struct {
	AffectedNodes       []string `json:"affected_nodes"`
	AffectedMaterials   []string `json:"affected_materials"`
	DisruptionIntensity float64  `json:"disruption_intensity"`
}

// InfrastructureImpact carries a per-sector damage profile in [0,1].
type InfrastructureImpact struct {
	Profile map[string]float64 `json:"profile"`
}

// IsConflict reports whether the scenario type selects the military analyzer.
func (c *ScenarioConfig) IsConflict() bool {
	switch c.Type {
	case "conflict", "military", "war":
		return true
	}
	return false
}

// IntensityOrDefault returns the configured intensity or "medium".
func (c *ScenarioConfig) IntensityOrDefault() string {
	if c.Intensity == "" {
		return "medium"
	}
	return c.Intensity
}

// DurationOrDefault returns the configured duration or the given fallback.
// Analyzers use different fallbacks (30 days for most, 180 for economic
// warfare), so the default is resolved per call site.
func (c *ScenarioConfig) DurationOrDefault(fallback int) int {
	if c.DurationDays == nil {
		return fallback
	}
	return *c.DurationDays
}

// TypeOrDefault returns the configured scenario type or "conflict".
func (c *ScenarioConfig) TypeOrDefault() string {
	if c.Type == "" {
		return "conflict"
	}
	return c.Type
}

// Clone returns a deep copy. The pipeline clones the caller's config into the
// result envelope so later caller-side mutation cannot leak into a stored run.
func (c *ScenarioConfig) Clone() *ScenarioConfig {
	if c == nil {
		return nil
	}
	cp := *c
	cp.CountriesInvolved = append([]string(nil), c.CountriesInvolved...)
	cp.DefenseSystems = append([]string(nil), c.DefenseSystems...)
	if c.DurationDays != nil {
		d := *c.DurationDays
		cp.DurationDays = &d
	}
	if c.PopulationSize != nil {
		p := *c.PopulationSize
		cp.PopulationSize = &p
	}
	if c.ElevationM != nil {
		e := *c.ElevationM
		cp.ElevationM = &e
	}
	if c.MissileThreat != nil {
		mt := *c.MissileThreat
		cp.MissileThreat = &mt
	}
	if c.TargetAreaData != nil {
		ta := *c.TargetAreaData
		cp.TargetAreaData = &ta
	}
	if c.SupplyChainDisruption != nil {
		sc := *c.SupplyChainDisruption
		sc.AffectedNodes = append([]string(nil), c.SupplyChainDisruption.AffectedNodes...)
		sc.AffectedMaterials = append([]string(nil), c.SupplyChainDisruption.AffectedMaterials...)
		cp.SupplyChainDisruption = &sc
	}
	if c.InfrastructureImpact != nil {
		ii := InfrastructureImpact{Profile: make(map[string]float64, len(c.InfrastructureImpact.Profile))}
		for k, v := range c.InfrastructureImpact.Profile {
			ii.Profile[k] = v
		}
		cp.InfrastructureImpact = &ii
	}
	return &cp
}
