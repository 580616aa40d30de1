package api

import "time"

// Analysis stage outputs. All scores are floats; fields documented with a
// range are guaranteed to stay inside it by the producing stage, including
// the degenerate case where no simulator ran.

// IntegratedAnalysis is the cross-model integration of a ResultSet.
type IntegratedAnalysis struct {
	CrossModelInteractions CrossModelInteractions `json:"cross_model_interactions"`
	CompoundEffects        CompoundEffects        `json:"compound_effects"`
	FeedbackLoops          FeedbackLoops          `json:"feedback_loops"`
	SystemVulnerabilities  SystemVulnerabilities  `json:"system_vulnerabilities"`
	ResilienceFactors      ResilienceFactors      `json:"resilience_factors"`
}

// CrossModelInteractions holds the pairwise interaction records. Each entry
// is present only when both of its source domains produced results.
type CrossModelInteractions struct {
	MilitaryEconomic         *MilitaryEconomicInteraction         `json:"military_economic,omitempty"`
	PopulationInfrastructure *PopulationInfrastructureInteraction `json:"population_infrastructure,omitempty"`
	EconomicSocial           *EconomicSocialInteraction           `json:"economic_social,omitempty"`
	GeographicAmplifiers     *GeographicAmplifiers                `json:"geographic_amplifiers,omitempty"`
}

type MilitaryEconomicInteraction struct {
	CasualtyEconomicMultiplier  float64 `json:"casualty_economic_multiplier"`
	AdjustedEconomicDamage      float64 `json:"adjusted_economic_damage"`
	ConfidenceInEconomicSystems float64 `json:"confidence_in_economic_systems"`
}

type PopulationInfrastructureInteraction struct {
	DisplacementRecoveryDelay         float64 `json:"displacement_recovery_delay"`
	WorkforceAvailability             float64 `json:"workforce_availability"`
	InfrastructureMaintenanceCapacity float64 `json:"infrastructure_maintenance_capacity"`
}

type EconomicSocialInteraction struct {
	EconomicSocialStressMultiplier float64 `json:"economic_social_stress_multiplier"`
	UnemploymentSocialImpact       float64 `json:"unemployment_social_impact"`
	SocialUnrestProbability        float64 `json:"social_unrest_probability"`
}

type GeographicAmplifiers struct {
	TerrainDifficultyMultiplier float64 `json:"terrain_difficulty_multiplier"`
	LogisticsConstraintFactor   float64 `json:"logistics_constraint_factor"`
	EvacuationDifficulty        float64 `json:"evacuation_difficulty"`
	RecoveryAccessFactor        float64 `json:"recovery_access_factor"`
}

// CompoundEffects aggregates multi-domain totals.
type CompoundEffects struct {
	TotalCasualtyBurden CasualtyBurden   `json:"total_casualty_burden"`
	TotalEconomicImpact EconomicImpact   `json:"total_economic_impact"`
	SocialDisruption    SocialDisruption `json:"social_disruption"`
}

type CasualtyBurden struct {
	TotalCasualties    float64          `json:"total_casualties"`
	CasualtySources    []CasualtySource `json:"casualty_sources"`
	CasualtyMultiplier float64          `json:"casualty_multiplier"`
}

type CasualtySource struct {
	Source     string  `json:"source"`
	Casualties float64 `json:"casualties"`
}

type EconomicImpact struct {
	TotalDamageUSD   float64          `json:"total_damage_usd"`
	EconomicSources  []EconomicSource `json:"economic_sources"`
	GDPImpactPercent float64          `json:"gdp_impact_percent"`
}

type EconomicSource struct {
	Source string  `json:"source"`
	Damage float64 `json:"damage"`
}

type SocialDisruption struct {
	TotalDisruptionScore    float64            `json:"total_disruption_score"`    // [0,1]
	DisruptionFactors       []DisruptionFactor `json:"disruption_factors"`
	SocialCohesionRemaining float64            `json:"social_cohesion_remaining"` // 1 - score
}

type DisruptionFactor struct {
	Factor string  `json:"factor"`
	Score  float64 `json:"score"`
}

// FeedbackLoops holds the two-domain coupling records.
type FeedbackLoops struct {
	EconomicSocial         *EconomicSocialLoop         `json:"economic_social_loop,omitempty"`
	InfrastructureEconomic *InfrastructureEconomicLoop `json:"infrastructure_economic_loop,omitempty"`
	PopulationSecurity     *PopulationSecurityLoop     `json:"population_security_loop,omitempty"`
}

type EconomicSocialLoop struct {
	InitialEconomicImpact     float64 `json:"initial_economic_impact"`
	InducedSocialDisplacement float64 `json:"induced_social_displacement"`
	FeedbackEconomicDamage    float64 `json:"feedback_economic_damage"`
	LoopStrength              float64 `json:"loop_strength"` // [0,1]
	StabilizationTimeMonths   int     `json:"stabilization_time_months"`
}

type InfrastructureEconomicLoop struct {
	InfrastructureDisruption         float64 `json:"infrastructure_disruption"`
	EconomicRecoveryDelay            float64 `json:"economic_recovery_delay"`
	InfrastructureInvestmentShortage float64 `json:"infrastructure_investment_shortage"`
	LoopStrength                     float64 `json:"loop_strength"`
}

type PopulationSecurityLoop struct {
	PopulationStress         float64 `json:"population_stress"`
	SecurityDeterioration    float64 `json:"security_deterioration"`
	IncreasedMilitaryResponse float64 `json:"increased_military_response"`
	CivilianMilitaryTension  float64 `json:"civilian_military_tension"`
}

type SystemVulnerabilities struct {
	CascadeVulnerability float64  `json:"cascade_vulnerability"` // [0,1]
	SinglePointFailures  []string `json:"single_point_failures"`
	CriticalDependencies []string `json:"critical_dependencies"`
	ResilienceGaps       []string `json:"resilience_gaps"`
}

type ResilienceFactors struct {
	OverallResilienceScore float64 `json:"overall_resilience_score"`
	StructuralResilience   float64 `json:"structural_resilience"`
	SocialResilience       float64 `json:"social_resilience"`
	EconomicResilience     float64 `json:"economic_resilience"`
	AdaptiveCapacity       float64 `json:"adaptive_capacity"`
}

// --- timeline ---

// TimelinePhase is a named, bounded window. Phases for a scenario type form a
// non-decreasing sequence starting at day 0.
type TimelinePhase struct {
	Phase    string `json:"phase"`
	StartDay int    `json:"start_day"`
	EndDay   int    `json:"end_day"`
}

type TimelineProjection struct {
	Phases                         []TimelinePhase       `json:"phases"`
	CasualtyTimeline               []CasualtyPoint       `json:"casualty_timeline"`
	EconomicImpactTimeline         []EconomicPoint       `json:"economic_impact_timeline"`
	InfrastructureRecoveryTimeline []InfrastructurePoint `json:"infrastructure_recovery_timeline"`
	SocialRecoveryTimeline         []SocialPoint         `json:"social_recovery_timeline"`
	EscalationProbabilityTimeline  []EscalationPoint     `json:"escalation_probability_timeline"`
}

type CasualtyPoint struct {
	Phase                string  `json:"phase"`
	Day                  int     `json:"day"`
	PhaseCasualties      float64 `json:"phase_casualties"`
	CumulativeCasualties float64 `json:"cumulative_casualties"`
	CasualtyRatePerDay   float64 `json:"casualty_rate_per_day"`
}

type EconomicPoint struct {
	Phase               string  `json:"phase"`
	Day                 int     `json:"day"`
	PhaseDamageUSD      float64 `json:"phase_damage_usd"`
	CumulativeDamageUSD float64 `json:"cumulative_damage_usd"`
	GDPImpactPercent    float64 `json:"gdp_impact_percent"`
}

type InfrastructurePoint struct {
	Phase               string  `json:"phase"`
	Day                 int     `json:"day"`
	DamageRate          float64 `json:"damage_rate"`
	OperationalCapacity float64 `json:"operational_capacity"`
	RecoveryRate        float64 `json:"recovery_rate"`
}

type SocialPoint struct {
	Phase                 string  `json:"phase"`
	Day                   int     `json:"day"`
	SocialDisruptionScore float64 `json:"social_disruption_score"`
	SocialCohesion        float64 `json:"social_cohesion"`
	RecoveryRate          float64 `json:"recovery_rate"`
}

type EscalationPoint struct {
	Phase                     string  `json:"phase"`
	Day                       int     `json:"day"`
	EscalationProbability     float64 `json:"escalation_probability"` // [0, 0.9]
	DeEscalationOpportunities float64 `json:"de_escalation_opportunities"`
}

// --- risk / confidence ---

type RiskAssessment struct {
	OverallRiskScore         float64             `json:"overall_risk_score"` // [0,1]
	RiskCategories           map[string]float64  `json:"risk_categories"`
	CriticalVulnerabilities  []string            `json:"critical_vulnerabilities"`
	RiskMitigationPriorities []string            `json:"risk_mitigation_priorities"`
	UncertaintyFactors       []UncertaintyFactor `json:"uncertainty_factors"`
}

type UncertaintyFactor struct {
	Factor string  `json:"factor"`
	Impact float64 `json:"impact"`
}

type ConfidenceAnalysis struct {
	OverallConfidence  float64            `json:"overall_confidence"` // [0,1]
	ModelConfidence    map[string]float64 `json:"model_confidence"`
	DataQualityScores  map[string]float64 `json:"data_quality_scores"`
	UncertaintySources []string           `json:"uncertainty_sources"`
}

// --- policy ---

type PolicyRecommendations struct {
	ImmediateActions          []string                      `json:"immediate_actions"`
	ShortTermStrategies       []string                      `json:"short_term_strategies"`
	LongTermPolicies          []string                      `json:"long_term_policies"`
	InternationalCoordination []string                      `json:"international_coordination"`
	ResourceAllocation        map[string]ResourceAllocation `json:"resource_allocation"`
}

type ResourceAllocation struct {
	BudgetAllocation float64 `json:"budget_allocation"`
	PriorityLevel    string  `json:"priority_level"` // High | Medium | Low
}

// --- escalation / global response ---

type EscalationAnalysis struct {
	EscalationProbability       float64                 `json:"escalation_probability"` // [0, 0.95]
	EscalationFactors           map[string]CategoryRisk `json:"escalation_factors"`
	TimeFactor                  float64                 `json:"time_factor"`
	ScenarioModifier            float64                 `json:"scenario_modifier"`
	EscalationTriggersActivated []string                `json:"escalation_triggers_activated"`
	DeEscalationOpportunities   []string                `json:"de_escalation_opportunities"`
}

type CategoryRisk struct {
	Category            string   `json:"category"`
	RiskLevel           float64  `json:"risk_level"` // [0,1]
	TriggeredThresholds []string `json:"triggered_thresholds"`
}

type GlobalResponse struct {
	ScenarioSeverity      SeverityAssessment       `json:"scenario_severity"`
	ImmediateResponses    map[string]PowerResponse `json:"immediate_responses"`
	DiplomaticInitiatives DiplomaticInitiatives    `json:"diplomatic_initiatives"`
	EconomicMeasures      EconomicMeasures         `json:"economic_measures"`
	MilitaryResponses     *MilitaryResponses       `json:"military_responses,omitempty"`
	HumanitarianAid       HumanitarianAid          `json:"humanitarian_aid"`
	LongTermImplications  LongTermImplications     `json:"long_term_implications"`
}

type SeverityAssessment struct {
	OverallSeverityScore float64            `json:"overall_severity_score"`
	SeverityFactors      map[string]float64 `json:"severity_factors"`
	SeverityCategory     string             `json:"severity_category"` // low | moderate | high | severe | extreme
}

type PowerResponse struct {
	DiplomaticEngagement string `json:"diplomatic_engagement"`
	EconomicMeasures     string `json:"economic_measures"`
	MilitaryPosturing    string `json:"military_posturing"`
	HumanitarianAid      string `json:"humanitarian_aid"`
}

type DiplomaticInitiatives struct {
	UNSecurityCouncilAction         bool     `json:"un_security_council_action"`
	RegionalOrganizationInvolvement []string `json:"regional_organization_involvement"`
	BilateralMediationEfforts       []string `json:"bilateral_mediation_efforts"`
	InternationalArbitration        bool     `json:"international_arbitration"`
}

type EconomicMeasures struct {
	SanctionsRegime   map[string]SanctionsPackage `json:"sanctions_regime"`
	TradeRestrictions map[string]string           `json:"trade_restrictions"`
}

type SanctionsPackage struct {
	Type                      string   `json:"type"`
	Sectors                   []string `json:"sectors"`
	InternationalCoordination string   `json:"international_coordination"`
}

type MilitaryResponses struct {
	DeterrenceMeasures     []string `json:"deterrence_measures"`
	AllianceActivation     []string `json:"alliance_activation"`
	PeacekeepingDeployment bool     `json:"peacekeeping_deployment"`
}

type HumanitarianAid struct {
	AidRequirementUSD float64 `json:"aid_requirement_usd"`
}

type LongTermImplications struct {
	PowerBalanceShifts      map[string]string `json:"power_balance_shifts"`
	AllianceChanges         []string          `json:"alliance_changes"`
	NewSecurityArrangements []string          `json:"new_security_arrangements"`
	EconomicRealignments    []string          `json:"economic_realignments"`
}

// --- envelope ---

// Analysis run statuses as persisted with the envelope.
const (
	StatusInitialized = "initialized"
	StatusRunning     = "running"
	StatusCompleted   = "completed"
	StatusError       = "error"
)

// ComprehensiveResult is the full envelope produced by one pipeline run. It is
// built incrementally by the pipeline phases, handed whole to the persistence
// collaborator, and never mutated after being returned.
type ComprehensiveResult struct {
	ScenarioID        string          `json:"scenario_id"`
	ScenarioConfig    *ScenarioConfig `json:"scenario_config"`
	AnalysisStartTime time.Time       `json:"analysis_start_time"`
	AnalysisEndTime   time.Time       `json:"analysis_end_time,omitzero"`

	ModelResults  *ResultSet     `json:"model_results,omitempty"`
	ModelFailures []ModelFailure `json:"model_failures,omitempty"`

	IntegratedAnalysis    *IntegratedAnalysis    `json:"integrated_analysis,omitempty"`
	TimelineProjections   *TimelineProjection    `json:"timeline_projections,omitempty"`
	RiskAssessment        *RiskAssessment        `json:"risk_assessment,omitempty"`
	PolicyRecommendations *PolicyRecommendations `json:"policy_recommendations,omitempty"`
	ConfidenceAnalysis    *ConfidenceAnalysis    `json:"confidence_analysis,omitempty"`
	EscalationAnalysis    *EscalationAnalysis    `json:"escalation_analysis,omitempty"`
	GlobalResponse        *GlobalResponse        `json:"global_response,omitempty"`

	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
