package timeline

import (
	"math"
	"testing"

	"github.com/polystrat/geosim/internal/api"
)

func analysisWith(casualties, damageUSD, disruption float64) *api.IntegratedAnalysis {
	return &api.IntegratedAnalysis{
		CompoundEffects: api.CompoundEffects{
			TotalCasualtyBurden: api.CasualtyBurden{TotalCasualties: casualties},
			TotalEconomicImpact: api.EconomicImpact{TotalDamageUSD: damageUSD},
			SocialDisruption:    api.SocialDisruption{TotalDisruptionScore: disruption},
		},
	}
}

func checkContiguous(t *testing.T, phases []api.TimelinePhase) {
	t.Helper()
	if len(phases) == 0 {
		t.Fatal("no phases")
	}
	if phases[0].StartDay != 0 {
		t.Errorf("first phase starts at day %d, want 0", phases[0].StartDay)
	}
	for i, p := range phases {
		if p.EndDay < p.StartDay {
			t.Errorf("phase %q ends (%d) before it starts (%d)", p.Phase, p.EndDay, p.StartDay)
		}
		if i > 0 && p.StartDay != phases[i-1].EndDay {
			t.Errorf("phase %q starts at %d, previous ended at %d", p.Phase, p.StartDay, phases[i-1].EndDay)
		}
	}
}

func TestPhasesContiguousAcrossTypes(t *testing.T) {
	// Short conflict durations squeeze the fractional splits together;
	// the schedule must stay contiguous regardless.
	for _, days := range []int{10, 45, 90, 365} {
		proj := Project(analysisWith(1000, 1e9, 0.5), "conflict", days)
		checkContiguous(t, proj.Phases)
		if len(proj.Phases) != 6 {
			t.Errorf("duration %d: %d conflict phases, want 6", days, len(proj.Phases))
		}
		if last := proj.Phases[len(proj.Phases)-1]; last.EndDay != days+365 {
			t.Errorf("duration %d: final day %d, want %d", days, last.EndDay, days+365)
		}
	}

	for _, typ := range []string{"economic", "natural_disaster"} {
		checkContiguous(t, Project(analysisWith(0, 0, 0), typ, 60).Phases)
	}
}

func TestEconomicPhaseSchedule(t *testing.T) {
	proj := Project(analysisWith(0, 1e12, 0), "economic", 180)
	if len(proj.Phases) != 4 {
		t.Fatalf("%d phases, want 4", len(proj.Phases))
	}
	if last := proj.Phases[3]; last.EndDay != 360 { // duration + 180
		t.Errorf("final day = %d, want 360", last.EndDay)
	}
	want := []string{"initial_shock", "market_adjustment", "structural_adaptation", "recovery_phase"}
	for i, p := range proj.Phases {
		if p.Phase != want[i] {
			t.Errorf("phase[%d] = %q, want %q", i, p.Phase, want[i])
		}
	}
}

func TestCasualtyAllocation(t *testing.T) {
	proj := Project(analysisWith(100000, 0, 0), "conflict", 90)
	ct := proj.CasualtyTimeline
	if len(ct) != 6 {
		t.Fatalf("%d casualty points, want 6", len(ct))
	}
	if ct[0].PhaseCasualties != 60000 {
		t.Errorf("initial impact casualties = %v, want 60000", ct[0].PhaseCasualties)
	}
	if ct[1].PhaseCasualties != 30000 {
		t.Errorf("escalation casualties = %v, want 30000", ct[1].PhaseCasualties)
	}
	for i := 1; i < len(ct); i++ {
		if ct[i].CumulativeCasualties < ct[i-1].CumulativeCasualties {
			t.Errorf("cumulative casualties decreased at %q", ct[i].Phase)
		}
	}
}

func TestEconomicCumulativeMonotone(t *testing.T) {
	proj := Project(analysisWith(0, 5e12, 0), "economic", 180)
	et := proj.EconomicImpactTimeline
	for i := 1; i < len(et); i++ {
		if et[i].CumulativeDamageUSD < et[i-1].CumulativeDamageUSD {
			t.Errorf("cumulative damage decreased at %q", et[i].Phase)
		}
	}
	if et[0].PhaseDamageUSD != 5e12*0.2 { // initial_shock is not a conflict phase
		t.Errorf("initial shock damage = %v, want %v", et[0].PhaseDamageUSD, 5e12*0.2)
	}
}

func TestRecoveryRatesDecayWithFloor(t *testing.T) {
	// The disaster schedule has stabilization, recovery, and rebuilding
	// phases, so both rate metrics decay and floor at 0.1.
	proj := Project(analysisWith(0, 0, 0.2), "natural_disaster", 60)

	it := proj.InfrastructureRecoveryTimeline
	for i := 1; i < len(it); i++ {
		if it[i].DamageRate > it[i-1].DamageRate {
			t.Errorf("infrastructure damage rate rose at %q", it[i].Phase)
		}
	}
	for _, p := range it {
		if p.DamageRate < 0.1 {
			t.Errorf("damage rate %v below 0.1 floor at %q", p.DamageRate, p.Phase)
		}
		if math.Abs(p.OperationalCapacity-(1-p.DamageRate)) > 1e-9 {
			t.Errorf("capacity %v does not complement damage %v", p.OperationalCapacity, p.DamageRate)
		}
	}

	st := proj.SocialRecoveryTimeline
	for i := 1; i < len(st); i++ {
		if st[i].SocialDisruptionScore > st[i-1].SocialDisruptionScore {
			t.Errorf("social disruption rose at %q", st[i].Phase)
		}
	}
	// Starting at 0.2 the decay hits the floor during recovery phases.
	if last := st[len(st)-1]; last.SocialDisruptionScore != 0.1 {
		t.Errorf("final social disruption = %v, want 0.1 floor", last.SocialDisruptionScore)
	}
}

func TestEscalationPhaseMultipliers(t *testing.T) {
	proj := Project(analysisWith(0, 0, 0), "conflict", 90)
	et := proj.EscalationProbabilityTimeline

	wants := map[string]float64{
		"initial_impact":      0.3 * 0.8,
		"escalation":          0.3 * 1.5,
		"sustained_conflict":  0.3 * 1.2,
		"resolution_phase":    0.3 * 0.5,
		"immediate_aftermath": 0.3 * 0.5,
		"recovery":            0.3 * 0.5,
	}
	for _, p := range et {
		if want := wants[p.Phase]; math.Abs(p.EscalationProbability-want) > 1e-9 {
			t.Errorf("%q escalation = %v, want %v", p.Phase, p.EscalationProbability, want)
		}
		if p.EscalationProbability > 0.9 {
			t.Errorf("%q escalation above 0.9 cap", p.Phase)
		}
		if math.Abs(p.DeEscalationOpportunities-(1-p.EscalationProbability)) > 1e-9 {
			t.Errorf("%q de-escalation does not complement", p.Phase)
		}
	}
}
