// Package dispatch selects and runs the applicable domain simulators for a
// scenario configuration. Applicability is presence-based: a simulator runs
// iff the config fields that describe its domain are set. Simulators run in
// dependency order so that consumers (infrastructure after geographic,
// psychological after population) see their inputs.
package dispatch

import (
	"fmt"

	"github.com/polystrat/geosim/internal/api"
	"github.com/polystrat/geosim/internal/sim"
)

// Defaults resolved at the dispatch boundary. Simulator packages apply their
// own fallbacks for unknown enum values; these cover absent config fields.
const (
	defaultTerrainType   = "urban_medium"
	defaultClimateZone   = "temperate"
	defaultElevationM    = 100.0
	defaultTargetCountry = "USA"

	defaultDurationDays         = 30
	defaultEconomicDurationDays = 180
)

// Run executes every applicable simulator for the config. A failing simulator
// never blocks the others: its domain stays nil in the ResultSet and the
// failure is recorded. The returned set may be empty when nothing applies.
func Run(cfg *api.ScenarioConfig) (*api.ResultSet, []api.ModelFailure) {
	rs := &api.ResultSet{}
	var failures []api.ModelFailure

	record := func(domain string, err error) {
		failures = append(failures, api.ModelFailure{Domain: domain, Error: err.Error()})
	}

	// Geographic runs first: infrastructure consumes its logistics
	// factors.
	if cfg.Location != "" {
		res, err := runGuarded("geographic", func() (*api.GeographicResult, error) {
			return sim.Geographic(sim.GeographicParams{
				Location:    cfg.Location,
				TerrainType: stringOr(cfg.TerrainType, defaultTerrainType),
				ClimateZone: stringOr(cfg.ClimateZone, defaultClimateZone),
				ElevationM:  floatOr(cfg.ElevationM, defaultElevationM),
			})
		})
		if err != nil {
			record("geographic", err)
		} else {
			rs.Geographic = res
		}
	}

	// Population before psychological, which reads its cohesion index.
	if cfg.PopulationSize != nil {
		res, err := runGuarded("population", func() (*api.PopulationResult, error) {
			return sim.Population(sim.PopulationParams{
				LocationType:   cfg.LocationType,
				PopulationSize: *cfg.PopulationSize,
				ScenarioType:   cfg.TypeOrDefault(),
				Intensity:      cfg.IntensityOrDefault(),
				DurationDays:   cfg.DurationOrDefault(defaultDurationDays),
			})
		})
		if err != nil {
			record("population", err)
		} else {
			rs.Population = res
		}

		res2, err := runGuarded("psychological", func() (*api.PsychologicalResult, error) {
			return sim.Psychological(sim.PsychologicalParams{
				Population:   rs.Population,
				ScenarioType: cfg.TypeOrDefault(),
				Intensity:    cfg.IntensityOrDefault(),
				DurationDays: cfg.DurationOrDefault(defaultDurationDays),
			})
		})
		if err != nil {
			record("psychological", err)
		} else {
			rs.Psychological = res2
		}
	}

	if cfg.IsConflict() {
		if cfg.MissileThreat != nil {
			res, err := runGuarded("military", func() (*api.MilitaryResult, error) {
				return sim.Military(sim.MilitaryParams{
					Threat:         cfg.MissileThreat,
					DefenseSystems: cfg.DefenseSystems,
					TargetArea:     cfg.TargetAreaData,
				})
			})
			if err != nil {
				record("military", err)
			} else {
				rs.Military = res
			}
		}
		if cfg.NuclearEscalation {
			attacker, defender := exchangeParties(cfg)
			res, err := runGuarded("nuclear", func() (*api.NuclearResult, error) {
				return sim.Nuclear(sim.NuclearParams{
					Attacker:        attacker,
					Defender:        defender,
					EscalationLevel: cfg.EscalationLevel,
					FirstStrike:     cfg.FirstStrike,
				})
			})
			if err != nil {
				record("nuclear", err)
			} else {
				rs.Nuclear = res
			}
		}
	}

	if cfg.EconomicWarfare || cfg.Type == "economic" {
		res, err := runGuarded("economic", func() (*api.EconomicResult, error) {
			return sim.Economic(sim.EconomicParams{
				Attacker:     cfg.AttackerCountry,
				Target:       stringOr(cfg.TargetCountry, defaultTargetCountry),
				WarfareType:  cfg.WarfareType,
				Intensity:    cfg.IntensityOrDefault(),
				DurationDays: cfg.DurationOrDefault(defaultEconomicDurationDays),
			})
		})
		if err != nil {
			record("economic", err)
		} else {
			rs.Economic = res
		}
	}

	if cfg.SupplyChainDisruption != nil {
		sc := cfg.SupplyChainDisruption
		res, err := runGuarded("supply_chain", func() (*api.SupplyChainResult, error) {
			return sim.SupplyChain(sim.SupplyChainParams{
				DisruptedNodes:     sc.AffectedNodes,
				DisruptedMaterials: sc.AffectedMaterials,
				Intensity:          sc.DisruptionIntensity,
			})
		})
		if err != nil {
			record("supply_chain", err)
		} else {
			rs.SupplyChain = res
		}
	}

	if cfg.InfrastructureImpact != nil {
		res, err := runGuarded("infrastructure", func() (*api.InfrastructureResult, error) {
			return sim.Infrastructure(sim.InfrastructureParams{
				Profile:      cfg.InfrastructureImpact.Profile,
				ScenarioType: cfg.TypeOrDefault(),
				Intensity:    cfg.IntensityOrDefault(),
				DurationDays: cfg.DurationOrDefault(defaultDurationDays),
				Geographic:   rs.Geographic,
			})
		})
		if err != nil {
			record("infrastructure", err)
		} else {
			rs.Infrastructure = res
		}
	}

	if cfg.CulturalRegion != "" {
		res, err := runGuarded("cultural", func() (*api.CulturalResult, error) {
			return sim.Cultural(sim.CulturalParams{
				Region:    cfg.CulturalRegion,
				Intensity: cfg.IntensityOrDefault(),
			})
		})
		if err != nil {
			record("cultural", err)
		} else {
			rs.Cultural = res
		}
	}

	// Climate only engages on genuinely long horizons.
	if cfg.TimeHorizonYears > 5 {
		res, err := runGuarded("climate", func() (*api.ClimateResult, error) {
			return sim.Climate(sim.ClimateParams{
				Region:           cfg.Region,
				EmissionScenario: cfg.EmissionScenario,
				TimeHorizonYears: cfg.TimeHorizonYears,
				PopulationSize:   populationOrZero(cfg),
			})
		})
		if err != nil {
			record("climate", err)
		} else {
			rs.Climate = res
		}
	}

	return rs, failures
}

// runGuarded isolates a simulator call: a panic inside one domain model
// becomes that domain's failure instead of taking down the run.
func runGuarded[T any](domain string, fn func() (*T, error)) (res *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			res = nil
			err = fmt.Errorf("%s simulator panic: %v", domain, r)
		}
	}()
	return fn()
}

// exchangeParties resolves the nuclear exchange sides, falling back to the
// involved-countries list when the explicit fields are absent.
func exchangeParties(cfg *api.ScenarioConfig) (attacker, defender string) {
	attacker = cfg.AttackerCountry
	defender = cfg.DefenderCountry
	if attacker == "" && len(cfg.CountriesInvolved) > 0 {
		attacker = cfg.CountriesInvolved[0]
	}
	if defender == "" && len(cfg.CountriesInvolved) > 1 {
		defender = cfg.CountriesInvolved[1]
	}
	return attacker, defender
}

func stringOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func populationOrZero(cfg *api.ScenarioConfig) int64 {
	if cfg.PopulationSize == nil {
		return 0
	}
	return *cfg.PopulationSize
}
