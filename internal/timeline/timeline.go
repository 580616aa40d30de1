// Package timeline projects integrated scenario effects onto a phased
// schedule. The phase layout is a fixed sequence per scenario family; each of
// the five metric projectors spreads a compound total over the phases with a
// fixed allocation table, or models recovery decay for rate-style metrics.
package timeline

import (
	"math"

	"github.com/polystrat/geosim/internal/api"
)

const globalGDPUSD = 25e12

// Base per-phase escalation probability before phase multipliers.
const baseEscalationProbability = 0.3

// Project builds the full timeline projection for a scenario.
func Project(ia *api.IntegratedAnalysis, scenarioType string, durationDays int) *api.TimelineProjection {
	phases := definePhases(scenarioType, durationDays)
	return &api.TimelineProjection{
		Phases:                         phases,
		CasualtyTimeline:               casualtyTimeline(ia, phases),
		EconomicImpactTimeline:         economicTimeline(ia, phases),
		InfrastructureRecoveryTimeline: infrastructureTimeline(phases),
		SocialRecoveryTimeline:         socialTimeline(ia, phases),
		EscalationProbabilityTimeline:  escalationTimeline(phases),
	}
}

// definePhases lays out the phase schedule for the scenario family. Raw phase
// boundaries come from fractional splits of the duration; the sequence is
// then normalized so phases are contiguous and non-decreasing from day 0.
func definePhases(scenarioType string, durationDays int) []api.TimelinePhase {
	var raw []api.TimelinePhase
	switch scenarioType {
	case "conflict", "war", "military":
		d := durationDays
		raw = []api.TimelinePhase{
			{Phase: "initial_impact", StartDay: 0, EndDay: min(7, d/10)},
			{Phase: "escalation", StartDay: min(7, d/10), EndDay: min(30, d*3/10)},
			{Phase: "sustained_conflict", StartDay: min(30, d*3/10), EndDay: min(d*8/10, d-30)},
			{Phase: "resolution_phase", StartDay: max(d-30, d*8/10), EndDay: d},
			{Phase: "immediate_aftermath", StartDay: d, EndDay: d + 90},
			{Phase: "recovery", StartDay: d + 90, EndDay: d + 365},
		}
	case "economic":
		d := durationDays
		raw = []api.TimelinePhase{
			{Phase: "initial_shock", StartDay: 0, EndDay: 14},
			{Phase: "market_adjustment", StartDay: 14, EndDay: 60},
			{Phase: "structural_adaptation", StartDay: 60, EndDay: d},
			{Phase: "recovery_phase", StartDay: d, EndDay: d + 180},
		}
	default:
		raw = []api.TimelinePhase{
			{Phase: "immediate_impact", StartDay: 0, EndDay: 3},
			{Phase: "emergency_response", StartDay: 3, EndDay: 14},
			{Phase: "stabilization", StartDay: 14, EndDay: 60},
			{Phase: "recovery", StartDay: 60, EndDay: 365},
			{Phase: "rebuilding", StartDay: 365, EndDay: 1095},
		}
	}
	return normalizePhases(raw)
}

// normalizePhases forces contiguity: each phase starts where the previous one
// ended and never ends before it starts. Short durations would otherwise
// leave gaps between the fractional-split boundaries.
func normalizePhases(phases []api.TimelinePhase) []api.TimelinePhase {
	day := 0
	for i := range phases {
		phases[i].StartDay = day
		if phases[i].EndDay < day {
			phases[i].EndDay = day
		}
		day = phases[i].EndDay
	}
	return phases
}

func casualtyTimeline(ia *api.IntegratedAnalysis, phases []api.TimelinePhase) []api.CasualtyPoint {
	total := ia.CompoundEffects.TotalCasualtyBurden.TotalCasualties

	out := make([]api.CasualtyPoint, 0, len(phases))
	var cumulative float64
	for _, phase := range phases {
		rate := 0.1
		switch phase.Phase {
		case "initial_impact":
			rate = 0.6
		case "escalation":
			rate = 0.3
		}
		phaseCasualties := math.Floor(total * rate)
		cumulative += phaseCasualties

		duration := phase.EndDay - phase.StartDay
		out = append(out, api.CasualtyPoint{
			Phase:                phase.Phase,
			Day:                  phase.EndDay,
			PhaseCasualties:      phaseCasualties,
			CumulativeCasualties: cumulative,
			CasualtyRatePerDay:   phaseCasualties / math.Max(1, float64(duration)),
		})
	}
	return out
}

func economicTimeline(ia *api.IntegratedAnalysis, phases []api.TimelinePhase) []api.EconomicPoint {
	total := ia.CompoundEffects.TotalEconomicImpact.TotalDamageUSD

	out := make([]api.EconomicPoint, 0, len(phases))
	var cumulative float64
	for _, phase := range phases {
		rate := 0.2
		switch phase.Phase {
		case "initial_impact", "escalation":
			rate = 0.4
		}
		phaseDamage := total * rate
		cumulative += phaseDamage

		out = append(out, api.EconomicPoint{
			Phase:               phase.Phase,
			Day:                 phase.EndDay,
			PhaseDamageUSD:      phaseDamage,
			CumulativeDamageUSD: cumulative,
			GDPImpactPercent:    cumulative / globalGDPUSD * 100,
		})
	}
	return out
}

func infrastructureTimeline(phases []api.TimelinePhase) []api.InfrastructurePoint {
	damageRate := 0.7 // assumed initial damage

	out := make([]api.InfrastructurePoint, 0, len(phases))
	for _, phase := range phases {
		recovery := 0.0
		switch phase.Phase {
		case "recovery", "rebuilding":
			recovery = 0.1
		case "stabilization":
			recovery = 0.05
		}
		if recovery > 0 {
			damageRate = math.Max(0.1, damageRate-recovery)
		}

		out = append(out, api.InfrastructurePoint{
			Phase:               phase.Phase,
			Day:                 phase.EndDay,
			DamageRate:          damageRate,
			OperationalCapacity: 1.0 - damageRate,
			RecoveryRate:        recovery,
		})
	}
	return out
}

func socialTimeline(ia *api.IntegratedAnalysis, phases []api.TimelinePhase) []api.SocialPoint {
	disruption := ia.CompoundEffects.SocialDisruption.TotalDisruptionScore

	out := make([]api.SocialPoint, 0, len(phases))
	for _, phase := range phases {
		recovery := 0.0
		switch phase.Phase {
		case "recovery", "rebuilding":
			recovery = 0.08
		case "stabilization":
			recovery = 0.04
		}
		if recovery > 0 {
			disruption = math.Max(0.1, disruption-recovery)
		}

		out = append(out, api.SocialPoint{
			Phase:                 phase.Phase,
			Day:                   phase.EndDay,
			SocialDisruptionScore: disruption,
			SocialCohesion:        1.0 - disruption,
			RecoveryRate:          recovery,
		})
	}
	return out
}

func escalationTimeline(phases []api.TimelinePhase) []api.EscalationPoint {
	out := make([]api.EscalationPoint, 0, len(phases))
	for _, phase := range phases {
		multiplier := 0.5
		switch phase.Phase {
		case "initial_impact":
			multiplier = 0.8
		case "escalation":
			multiplier = 1.5
		case "sustained_conflict":
			multiplier = 1.2
		}
		prob := baseEscalationProbability * multiplier

		out = append(out, api.EscalationPoint{
			Phase:                     phase.Phase,
			Day:                       phase.EndDay,
			EscalationProbability:     math.Min(0.9, prob),
			DeEscalationOpportunities: 1.0 - prob,
		})
	}
	return out
}
