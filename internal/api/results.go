package api

import "sort"

// Per-domain simulator results. Each struct carries the fields the
// integration, risk, and response stages actually read, plus the supporting
// detail the simulators naturally produce. Presence of a domain in a run is
// encoded as a non-nil pointer in ResultSet.

// ResultSet maps each domain to its simulator output. A nil entry means the
// simulator was not applicable or failed; downstream stages must treat nil as
// "no contribution".
type ResultSet struct {
	Military       *MilitaryResult       `json:"military,omitempty"`
	Nuclear        *NuclearResult        `json:"nuclear,omitempty"`
	Economic       *EconomicResult       `json:"economic,omitempty"`
	SupplyChain    *SupplyChainResult    `json:"supply_chain,omitempty"`
	Population     *PopulationResult     `json:"population,omitempty"`
	Psychological  *PsychologicalResult  `json:"psychological,omitempty"`
	Cultural       *CulturalResult       `json:"cultural,omitempty"`
	Geographic     *GeographicResult     `json:"geographic,omitempty"`
	Climate        *ClimateResult        `json:"climate,omitempty"`
	Infrastructure *InfrastructureResult `json:"infrastructure,omitempty"`
}

// Domains returns the names of present domains in canonical order.
func (rs *ResultSet) Domains() []string {
	if rs == nil {
		return nil
	}
	var out []string
	for _, d := range []struct {
		name    string
		present bool
	}{
		{"military", rs.Military != nil},
		{"nuclear", rs.Nuclear != nil},
		{"economic", rs.Economic != nil},
		{"supply_chain", rs.SupplyChain != nil},
		{"population", rs.Population != nil},
		{"psychological", rs.Psychological != nil},
		{"cultural", rs.Cultural != nil},
		{"geographic", rs.Geographic != nil},
		{"climate", rs.Climate != nil},
		{"infrastructure", rs.Infrastructure != nil},
	} {
		if d.present {
			out = append(out, d.name)
		}
	}
	return out
}

// Empty reports whether no simulator produced a result.
func (rs *ResultSet) Empty() bool {
	return rs == nil || len(rs.Domains()) == 0
}

// ModelFailure records a simulator that was applicable but failed. Failures
// never block other simulators; they are surfaced on the result envelope.
type ModelFailure struct {
	Domain string `json:"domain"`
	Error  string `json:"error"`
}

// --- military ---

type MilitaryResult struct {
	Trajectory       *Trajectory       `json:"trajectory,omitempty"`
	DefenseAnalysis  *DefenseAnalysis  `json:"defense_analysis,omitempty"`
	CasualtyAnalysis *CasualtyAnalysis `json:"casualty_analysis,omitempty"`
}

type Trajectory struct {
	DistanceKM           float64 `json:"distance_km"`
	TrajectoryDistanceKM float64 `json:"trajectory_distance_km"`
	FlightTimeSeconds    float64 `json:"flight_time_seconds"`
	ApogeeAltitudeKM     float64 `json:"apogee_altitude_km"`
	TerminalVelocityMPS  float64 `json:"terminal_velocity_mps"`
	KineticEnergyMJ      float64 `json:"kinetic_energy_megajoules"`
	ExplosiveYieldKT     float64 `json:"explosive_yield_kt"`
	AccuracyMissM        float64 `json:"accuracy_miss_distance_m"`
	LaunchDetectionS     float64 `json:"launch_detection_time_s"`
	PayloadKG            float64 `json:"payload_kg"`
}

type DefenseAnalysis struct {
	TotalInterceptionProbability float64               `json:"total_interception_probability"`
	InterceptionAttempts         []InterceptionAttempt `json:"interception_attempts"`
	TotalDefenseCostUSD          float64               `json:"total_defense_cost_usd"`
}

type InterceptionAttempt struct {
	System                string  `json:"system"`
	EngagementRangeKM     float64 `json:"engagement_range_km"`
	SingleShotProbability float64 `json:"single_shot_probability"`
	NumberOfEngagements   float64 `json:"number_of_engagements"`
	TotalProbability      float64 `json:"total_probability"`
	EngagementCostUSD     float64 `json:"engagement_cost_usd"`
}

type CasualtyAnalysis struct {
	ImmediateCasualties         float64 `json:"immediate_casualties"`
	Injured                     float64 `json:"injured"`
	TotalAffected               float64 `json:"total_affected"`
	LethalRadiusM               float64 `json:"lethal_radius_m,omitempty"`
	DamageRadiusM               float64 `json:"damage_radius_m,omitempty"`
	AffectedAreaKM2             float64 `json:"affected_area_km2"`
	InfrastructureDamagePercent float64 `json:"infrastructure_damage_percent"`
	EconomicDamageUSD           float64 `json:"economic_damage_usd"`
}

// --- nuclear ---

type NuclearResult struct {
	ScenarioType            string         `json:"scenario_type"`
	FirstStrike             bool           `json:"first_strike"`
	AttackerWarheadsUsed    float64        `json:"attacker_warheads_used"`
	DefenderWarheadsUsed    float64        `json:"defender_warheads_used"`
	TotalWarheadsDetonated  float64        `json:"total_warheads_detonated"`
	AttackerCasualties      NuclearCountry `json:"attacker_casualties"`
	DefenderCasualties      NuclearCountry `json:"defender_casualties"`
	GlobalEffects           GlobalEffects  `json:"global_effects"`
	EscalationProbability   float64        `json:"escalation_probability"`
	WarDurationDays         float64        `json:"war_duration_days"`
}

type NuclearCountry struct {
	Country             string  `json:"country"`
	ImmediateCasualties float64 `json:"immediate_casualties"`
	TotalAffected       float64 `json:"total_affected"`
}

type GlobalEffects struct {
	NuclearWinterRisk    float64 `json:"nuclear_winter_risk"`
	GlobalFalloutIndex   float64 `json:"global_fallout_index"`
	AgriculturalLossRate float64 `json:"agricultural_loss_rate"`
}

// --- economic ---

type EconomicResult struct {
	TargetCountry        string               `json:"target_country"`
	WarfareType          string               `json:"warfare_type"`
	IntensityLevel       string               `json:"intensity_level"`
	DurationDays         float64              `json:"duration_days"`
	EconomicDamage       EconomicDamage       `json:"economic_damage"`
	MacroeconomicEffects MacroeconomicEffects `json:"macroeconomic_effects"`
	RecoveryAnalysis     RecoveryAnalysis     `json:"recovery_analysis"`
}

type EconomicDamage struct {
	TotalDamageUSD   float64 `json:"total_damage_usd"`
	BaseDamageUSD    float64 `json:"base_damage_usd"`
	CascadeEffectsUSD float64 `json:"cascade_effects_usd"`
	GDPImpactPercent float64 `json:"gdp_impact_percent"`
	PerCapitaLossUSD float64 `json:"per_capita_loss_usd"`
}

type MacroeconomicEffects struct {
	UnemploymentIncreasePercent float64 `json:"unemployment_increase_percent"`
	InflationIncreasePercent    float64 `json:"inflation_increase_percent"`
	CurrencyDevaluationPercent  float64 `json:"currency_devaluation_percent"`
}

type RecoveryAnalysis struct {
	EstimatedRecoveryMonths float64 `json:"estimated_recovery_months"`
	RecoveryShape           string  `json:"recovery_shape"`
}

// --- supply chain ---

type SupplyChainResult struct {
	DisruptedNodes      []string              `json:"disrupted_nodes"`
	DisruptedMaterials  []string              `json:"disrupted_materials"`
	DisruptionIntensity float64               `json:"disruption_intensity"`
	NodeEffects         map[string]NodeEffect `json:"node_effects"`
	GlobalImpactSummary GlobalImpactSummary   `json:"global_impact_summary"`
}

type NodeEffect struct {
	DirectTradeLossBillion float64 `json:"direct_trade_loss_billion"`
	RecoveryMonths         float64 `json:"recovery_months"`
}

type GlobalImpactSummary struct {
	TotalEconomicImpactBillion float64 `json:"total_economic_impact_billion"`
	DirectTradeLossBillion     float64 `json:"direct_trade_loss_billion"`
	CascadeEffectsBillion      float64 `json:"cascade_effects_billion"`
	CountriesAffected          int     `json:"countries_affected"`
	SeverityLevel              string  `json:"severity_level"`
	GlobalGDPImpactPercent     float64 `json:"global_gdp_impact_percent"`
	EstimatedRecoveryMonths    float64 `json:"estimated_recovery_months"`
}

// --- population / social ---

type PopulationResult struct {
	LocationType         string               `json:"location_type"`
	PopulationSize       float64              `json:"population_size"`
	DisplacementAnalysis DisplacementAnalysis `json:"displacement_analysis"`
	SocialCohesion       SocialCohesion       `json:"social_cohesion"`
	StressIndicators     StressIndicators     `json:"stress_indicators"`
	RecoveryCapacity     float64              `json:"recovery_capacity"`
}

type DisplacementAnalysis struct {
	TotalDisplaced          float64 `json:"total_displaced"`
	DisplacementRatePercent float64 `json:"displacement_rate_percent"`
	InternalDisplacement    float64 `json:"internal_displacement"`
	ExternalMigration       float64 `json:"external_migration"`
	ReturnProbability       float64 `json:"return_probability"`
	ExpectedReturnMonths    float64 `json:"expected_return_months"`
}

type SocialCohesion struct {
	CohesionIndex float64 `json:"cohesion_index"`
}

type StressIndicators struct {
	OverallStress float64 `json:"overall_stress"`
}

type PsychologicalResult struct {
	MentalHealthOutcomes MentalHealthOutcomes `json:"mental_health_outcomes"`
	CommunityResilience  float64              `json:"community_resilience"`
}

type MentalHealthOutcomes struct {
	PTSD       PrevalenceOutcome `json:"ptsd"`
	Depression DepressionOutcome `json:"depression"`
	Anxiety    PrevalenceOutcome `json:"anxiety_disorders"`
}

type PrevalenceOutcome struct {
	PrevalenceRate     float64 `json:"prevalence_rate"`
	AffectedPopulation float64 `json:"affected_population"`
}

type DepressionOutcome struct {
	PrevalenceRate     float64 `json:"prevalence_rate"`
	SeverityScore      float64 `json:"severity_score"`
	AffectedPopulation float64 `json:"affected_population"`
}

type CulturalResult struct {
	Region                 string                 `json:"region"`
	SocialStructureChanges SocialStructureChanges `json:"social_structure_changes"`
}

type SocialStructureChanges struct {
	SocialCohesionChange    float64 `json:"social_cohesion_change"`
	TraditionDisruptionRate float64 `json:"tradition_disruption_rate"`
}

// --- geographic / climate / infrastructure ---

type GeographicResult struct {
	Location         string           `json:"location"`
	TerrainType      string           `json:"terrain_type"`
	ClimateZone      string           `json:"climate_zone"`
	ElevationM       float64          `json:"elevation_m"`
	ElevationEffects ElevationEffects `json:"elevation_effects"`
	LogisticsFactors LogisticsFactors `json:"logistics_factors"`
}

type ElevationEffects struct {
	ElevationCategory      string  `json:"elevation_category"`
	AccessibilityFactor    float64 `json:"accessibility_factor"`
	ConstructionDifficulty float64 `json:"construction_difficulty"`
}

type LogisticsFactors struct {
	AccessibilityFactor     float64 `json:"accessibility_factor"`
	RoadAccessibility       float64 `json:"road_accessibility"`
	SupplyLineVulnerability float64 `json:"supply_line_vulnerability"`
}

type ClimateResult struct {
	EmissionScenario  string            `json:"emission_scenario"`
	TimeHorizonYears  float64           `json:"time_horizon_years"`
	ClimateProjection ClimateProjection `json:"climate_projection"`
	MigrationPressure float64           `json:"migration_pressure"`
	ConflictRisk      float64           `json:"conflict_risk"`
}

type ClimateProjection struct {
	TemperatureIncreaseC     float64 `json:"temperature_increase_c"`
	SeaLevelRiseM            float64 `json:"sea_level_rise_m"`
	ExtremeWeatherMultiplier float64 `json:"extreme_weather_multiplier"`
}

type InfrastructureResult struct {
	DirectDamage       map[string]DirectDamage      `json:"direct_damage"`
	CascadeFailures    map[string]CascadeFailure    `json:"cascade_failures"`
	ServiceDisruptions map[string]ServiceDisruption `json:"service_disruptions"`
	EconomicImpact     InfrastructureEconomicImpact `json:"economic_impact"`
}

type DirectDamage struct {
	DamageRate         float64 `json:"damage_rate"`
	ReplacementCostUSD float64 `json:"replacement_cost_usd"`
}

type CascadeFailure struct {
	FunctionalityReduction float64 `json:"functionality_reduction"`
}

type ServiceDisruption struct {
	DisruptionRate         float64  `json:"disruption_rate"`
	ServicesAffected       []string `json:"services_affected"`
	PopulationImpactPercent float64 `json:"population_impact_percent"`
	EstimatedDurationDays  float64  `json:"estimated_duration_days"`
}

type InfrastructureEconomicImpact struct {
	TotalDamageUSD   float64            `json:"total_damage_usd"`
	DirectCostsUSD   float64            `json:"direct_costs_usd"`
	IndirectCostsUSD map[string]float64 `json:"indirect_costs_usd"`
}

// MeanServiceDisruption returns the mean disruption rate across disrupted
// services, or 0 when none are present. Several stages use this as the
// infrastructure severity signal.
func (ir *InfrastructureResult) MeanServiceDisruption() float64 {
	if ir == nil || len(ir.ServiceDisruptions) == 0 {
		return 0
	}
	sectors := make([]string, 0, len(ir.ServiceDisruptions))
	for sector := range ir.ServiceDisruptions {
		sectors = append(sectors, sector)
	}
	sort.Strings(sectors)

	var sum float64
	for _, sector := range sectors {
		sum += ir.ServiceDisruptions[sector].DisruptionRate
	}
	return sum / float64(len(ir.ServiceDisruptions))
}
