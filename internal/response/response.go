// Package response models the international reaction to a scenario: how
// severe the outside world judges it, what the neutral major powers do, and
// the diplomatic, economic, military, and humanitarian measures that follow.
package response

import (
	"math"
	"strings"

	"github.com/polystrat/geosim/internal/api"
)

// aidPerAffectedUSD is the humanitarian aid requirement per affected person.
const aidPerAffectedUSD = 500

var majorPowers = []string{"USA", "China", "Russia", "EU"}

// Model produces the global response assessment for a scenario run.
func Model(cfg *api.ScenarioConfig, rs *api.ResultSet) *api.GlobalResponse {
	actors := cfg.CountriesInvolved
	scenarioType := cfg.TypeOrDefault()
	severity := assessSeverity(rs)

	gr := &api.GlobalResponse{
		ScenarioSeverity:      severity,
		ImmediateResponses:    immediateResponses(actors, severity.SeverityCategory),
		DiplomaticInitiatives: diplomaticInitiatives(actors, scenarioType, severity.SeverityCategory),
		EconomicMeasures:      economicMeasures(actors, scenarioType, severity.SeverityCategory),
		HumanitarianAid:       humanitarianAid(rs),
		LongTermImplications:  longTermImplications(actors, scenarioType, rs),
	}
	switch scenarioType {
	case "conflict", "military", "war":
		gr.MilitaryResponses = militaryResponses(actors, severity.SeverityCategory)
	}
	return gr
}

// assessSeverity normalizes the domain results into [0,1] severity factors.
// Casualties saturate at 100k, GDP impact at 20%, displacement at 50%.
func assessSeverity(rs *api.ResultSet) api.SeverityAssessment {
	factors := map[string]float64{
		"casualty_severity":       0,
		"economic_severity":       0,
		"infrastructure_severity": 0,
		"social_severity":         0,
	}
	if rs != nil {
		if rs.Military != nil && rs.Military.CasualtyAnalysis != nil {
			factors["casualty_severity"] = math.Min(1.0, rs.Military.CasualtyAnalysis.ImmediateCasualties/100000)
		}
		if rs.Economic != nil {
			factors["economic_severity"] = math.Min(1.0, rs.Economic.EconomicDamage.GDPImpactPercent/20)
		}
		if rs.Infrastructure != nil {
			factors["infrastructure_severity"] = rs.Infrastructure.MeanServiceDisruption()
		}
		if rs.Population != nil {
			factors["social_severity"] = math.Min(1.0, rs.Population.DisplacementAnalysis.DisplacementRatePercent/50)
		}
	}

	overall := (factors["casualty_severity"] + factors["economic_severity"] +
		factors["infrastructure_severity"] + factors["social_severity"]) / 4
	factors["regional_stability_impact"] = overall

	return api.SeverityAssessment{
		OverallSeverityScore: overall,
		SeverityFactors:      factors,
		SeverityCategory:     categorizeSeverity(overall),
	}
}

func categorizeSeverity(score float64) string {
	switch {
	case score < 0.2:
		return "low"
	case score < 0.4:
		return "moderate"
	case score < 0.6:
		return "high"
	case score < 0.8:
		return "severe"
	default:
		return "extreme"
	}
}

// immediateResponses covers the major powers that are not primary actors.
// Powers involved in the scenario respond as belligerents, not responders.
func immediateResponses(actors []string, category string) map[string]api.PowerResponse {
	responses := make(map[string]api.PowerResponse)
	for _, power := range majorPowers {
		if contains(actors, power) {
			continue
		}
		switch category {
		case "severe", "extreme":
			responses[power] = api.PowerResponse{
				DiplomaticEngagement: "high",
				EconomicMeasures:     "medium",
				MilitaryPosturing:    "medium",
				HumanitarianAid:      "high",
			}
		case "high":
			responses[power] = api.PowerResponse{
				DiplomaticEngagement: "medium",
				EconomicMeasures:     "low",
				MilitaryPosturing:    "low",
				HumanitarianAid:      "medium",
			}
		default:
			responses[power] = api.PowerResponse{
				DiplomaticEngagement: "low",
				EconomicMeasures:     "none",
				MilitaryPosturing:    "none",
				HumanitarianAid:      "low",
			}
		}
	}
	return responses
}

func diplomaticInitiatives(actors []string, scenarioType, category string) api.DiplomaticInitiatives {
	di := api.DiplomaticInitiatives{}

	switch category {
	case "high", "severe", "extreme":
		di.UNSecurityCouncilAction = true
	}

	if contains(actors, "India") || contains(actors, "Pakistan") {
		di.RegionalOrganizationInvolvement = append(di.RegionalOrganizationInvolvement, "SAARC")
	}
	if contains(actors, "China") || contains(actors, "Taiwan") || contains(actors, "Japan") {
		di.RegionalOrganizationInvolvement = append(di.RegionalOrganizationInvolvement, "ASEAN")
	}

	if category == "severe" || category == "extreme" {
		di.BilateralMediationEfforts = []string{"USA", "EU", "UN"}
	}
	if scenarioType == "territorial" || scenarioType == "resource" {
		di.InternationalArbitration = true
	}
	return di
}

func economicMeasures(actors []string, scenarioType, category string) api.EconomicMeasures {
	em := api.EconomicMeasures{
		SanctionsRegime:   make(map[string]api.SanctionsPackage),
		TradeRestrictions: make(map[string]string),
	}

	if category == "severe" || category == "extreme" {
		for _, actor := range actors {
			switch actor {
			case "Russia", "China", "Iran":
				em.SanctionsRegime[actor] = api.SanctionsPackage{
					Type:                      "comprehensive",
					Sectors:                   []string{"finance", "energy", "technology", "defense"},
					InternationalCoordination: "high",
				}
			}
		}
	}

	if scenarioType == "economic" {
		em.TradeRestrictions = map[string]string{
			"tariffs":              "increased",
			"export_controls":      "enhanced",
			"investment_screening": "strengthened",
		}
	}
	return em
}

func militaryResponses(actors []string, category string) *api.MilitaryResponses {
	mr := &api.MilitaryResponses{}

	if category == "severe" || category == "extreme" {
		mr.DeterrenceMeasures = []string{
			"Increased military exercises",
			"Enhanced force readiness",
			"Strategic asset deployment",
		}
	}
	if contains(actors, "NATO") || contains(actors, "USA") || contains(actors, "EU") {
		mr.AllianceActivation = append(mr.AllianceActivation, "NATO Article 5 consideration")
	}
	mr.PeacekeepingDeployment = category == "extreme"
	return mr
}

func humanitarianAid(rs *api.ResultSet) api.HumanitarianAid {
	var affected float64
	if rs != nil {
		if rs.Military != nil && rs.Military.CasualtyAnalysis != nil {
			affected += rs.Military.CasualtyAnalysis.TotalAffected
		}
		if rs.Population != nil {
			affected += rs.Population.DisplacementAnalysis.TotalDisplaced
		}
	}
	return api.HumanitarianAid{
		AidRequirementUSD: math.Floor(affected * aidPerAffectedUSD),
	}
}

func longTermImplications(actors []string, scenarioType string, rs *api.ResultSet) api.LongTermImplications {
	lti := api.LongTermImplications{
		PowerBalanceShifts: make(map[string]string),
		NewSecurityArrangements: []string{
			"Updated defense strategies",
			"New deterrence concepts",
			"Enhanced crisis management",
		},
	}

	if contains(actors, "USA") && contains(actors, "China") {
		lti.PowerBalanceShifts["us_china_competition"] = "intensified"
	}
	if scenarioType == "military" {
		lti.AllianceChanges = []string{
			"Strengthened regional alliances",
			"New defense partnerships",
			"Enhanced intelligence sharing",
		}
	}
	if strings.Contains(scenarioType, "economic") || (rs != nil && rs.SupplyChain != nil) {
		lti.EconomicRealignments = []string{
			"Supply chain diversification",
			"Strategic autonomy initiatives",
			"New trade partnerships",
		}
	}
	return lti
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
