package sim

import (
	"fmt"
	"math"

	"github.com/polystrat/geosim/internal/api"
)

type nuclearArsenal struct {
	totalWarheads          float64
	averageYieldKT         float64
	firstStrikeCapability  bool
}

var nuclearArsenals = map[string]nuclearArsenal{
	"USA":      {totalWarheads: 5800, averageYieldKT: 150, firstStrikeCapability: true},
	"Russia":   {totalWarheads: 6375, averageYieldKT: 200, firstStrikeCapability: true},
	"China":    {totalWarheads: 350, averageYieldKT: 250},
	"India":    {totalWarheads: 164, averageYieldKT: 45},
	"Pakistan": {totalWarheads: 170, averageYieldKT: 25},
}

var nuclearPopulations = map[string]float64{
	"USA":      331000000,
	"Russia":   146000000,
	"China":    1440000000,
	"India":    1380000000,
	"Pakistan": 225000000,
	"Iran":     84000000,
	"Israel":   9500000,
}

type escalationParams struct {
	warheadsUsedPercent float64
	civilianTargets     bool
}

var nuclearEscalationParams = map[string]escalationParams{
	"limited":   {warheadsUsedPercent: 0.05, civilianTargets: false},
	"tactical":  {warheadsUsedPercent: 0.15, civilianTargets: true},
	"strategic": {warheadsUsedPercent: 0.40, civilianTargets: true},
	"all_out":   {warheadsUsedPercent: 0.80, civilianTargets: true},
}

var nuclearEscalationProb = map[string]float64{
	"limited":   0.25,
	"tactical":  0.40,
	"strategic": 0.65,
	"all_out":   0.0,
}

var nuclearWarDurationDays = map[string]float64{
	"limited":   7,
	"tactical":  14,
	"strategic": 3,
	"all_out":   1,
}

// NuclearParams describes a nuclear exchange between two arsenal states.
type NuclearParams struct {
	Attacker        string
	Defender        string
	EscalationLevel string // limited | tactical | strategic | all_out
	FirstStrike     bool
}

// Nuclear models a two-sided nuclear exchange: warheads committed at the given
// escalation level, retaliation after a possible disarming first strike, and
// the resulting casualties and global effects.
func Nuclear(p NuclearParams) (*api.NuclearResult, error) {
	attacker, ok := nuclearArsenals[p.Attacker]
	if !ok {
		return nil, fmt.Errorf("nuclear: no arsenal data for %q", p.Attacker)
	}
	defender, ok := nuclearArsenals[p.Defender]
	if !ok {
		return nil, fmt.Errorf("nuclear: no arsenal data for %q", p.Defender)
	}
	level := p.EscalationLevel
	if level == "" {
		level = "limited"
	}
	params, ok := nuclearEscalationParams[level]
	if !ok {
		return nil, fmt.Errorf("nuclear: unknown escalation level %q", level)
	}

	attackerUsed := math.Floor(attacker.totalWarheads * params.warheadsUsedPercent)

	retaliation := 0.7
	if p.FirstStrike && attacker.firstStrikeCapability {
		retaliation = 0.3 // most forces destroyed on the ground
	}
	defenderUsed := math.Floor(defender.totalWarheads * params.warheadsUsedPercent * retaliation)

	attackerCasualties := countryCasualties(defender, p.Attacker, defenderUsed, params.civilianTargets)
	defenderCasualties := countryCasualties(attacker, p.Defender, attackerUsed, params.civilianTargets)

	totalDetonated := attackerUsed + defenderUsed
	avgYield := (attacker.averageYieldKT + defender.averageYieldKT) / 2

	return &api.NuclearResult{
		ScenarioType:           level + "_nuclear_exchange",
		FirstStrike:            p.FirstStrike,
		AttackerWarheadsUsed:   attackerUsed,
		DefenderWarheadsUsed:   defenderUsed,
		TotalWarheadsDetonated: totalDetonated,
		AttackerCasualties:     attackerCasualties,
		DefenderCasualties:     defenderCasualties,
		GlobalEffects:          globalNuclearEffects(totalDetonated, avgYield),
		EscalationProbability:  nuclearEscalationProb[level],
		WarDurationDays:        nuclearWarDurationDays[level],
	}, nil
}

func countryCasualties(striker nuclearArsenal, target string, warheadsUsed float64, civilianTargets bool) api.NuclearCountry {
	population, ok := nuclearPopulations[target]
	if !ok {
		population = 50000000
	}

	perWarhead := 50000.0
	if civilianTargets {
		perWarhead = 150000.0
	}
	perWarhead *= math.Pow(striker.averageYieldKT/100, 0.6)

	immediate := math.Floor(math.Min(warheadsUsed*perWarhead, population*0.4))
	radiation := math.Floor(immediate * 0.5)
	injured := math.Floor(immediate * 1.8)

	return api.NuclearCountry{
		Country:             target,
		ImmediateCasualties: immediate,
		TotalAffected:       immediate + radiation + injured,
	}
}

func globalNuclearEffects(totalWarheads, avgYieldKT float64) api.GlobalEffects {
	totalYieldMT := totalWarheads * avgYieldKT / 1000

	// Below ~5 MT the exchange has no measurable climate signal.
	var winterRisk, agriculturalLoss float64
	if totalYieldMT > 5 {
		winterRisk = math.Min(1.0, totalYieldMT/50)
		agriculturalLoss = math.Min(0.80, totalYieldMT*0.06)
	}

	return api.GlobalEffects{
		NuclearWinterRisk:    winterRisk,
		GlobalFalloutIndex:   totalWarheads * avgYieldKT * 150,
		AgriculturalLossRate: agriculturalLoss,
	}
}
