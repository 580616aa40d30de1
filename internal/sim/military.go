package sim

import (
	"fmt"
	"math"

	"github.com/polystrat/geosim/internal/api"
)

// missileSpec holds the specification ranges for a missile subtype. Values
// are [lo, hi]; the simulator evaluates them deterministically at the center
// of the range.
type missileSpec struct {
	rangeKM     [2]float64
	payloadKG   [2]float64
	velocityMPS [2]float64
	accuracyCEP [2]float64
}

var weaponSystems = map[string]map[string]missileSpec{
	"ballistic_missiles": {
		"ICBM": {rangeKM: [2]float64{5500, 15000}, payloadKG: [2]float64{1000, 3500}, velocityMPS: [2]float64{6000, 8000}, accuracyCEP: [2]float64{100, 300}},
		"IRBM": {rangeKM: [2]float64{1000, 5499}, payloadKG: [2]float64{500, 2000}, velocityMPS: [2]float64{3000, 5000}, accuracyCEP: [2]float64{50, 200}},
		"SRBM": {rangeKM: [2]float64{150, 999}, payloadKG: [2]float64{200, 1000}, velocityMPS: [2]float64{1000, 3000}, accuracyCEP: [2]float64{10, 100}},
	},
	"cruise_missiles": {
		"subsonic":   {rangeKM: [2]float64{200, 2500}, payloadKG: [2]float64{200, 500}, velocityMPS: [2]float64{200, 300}, accuracyCEP: [2]float64{1, 10}},
		"supersonic": {rangeKM: [2]float64{300, 1000}, payloadKG: [2]float64{300, 800}, velocityMPS: [2]float64{800, 1200}, accuracyCEP: [2]float64{5, 30}},
		"hypersonic": {rangeKM: [2]float64{500, 3000}, payloadKG: [2]float64{400, 1200}, velocityMPS: [2]float64{1700, 3500}, accuracyCEP: [2]float64{10, 50}},
	},
}

type defenseSpec struct {
	maxRangeKM        float64
	minRangeKM        float64
	interceptAltM     [2]float64
	successRate       float64
	reactionTimeS     float64
	costPerInterceptor float64
}

var defenseSystems = map[string]defenseSpec{
	"Iron Dome":     {maxRangeKM: 70, minRangeKM: 4, interceptAltM: [2]float64{150, 40000}, successRate: 0.90, reactionTimeS: 15, costPerInterceptor: 40000},
	"Patriot PAC-3": {maxRangeKM: 160, minRangeKM: 3, interceptAltM: [2]float64{600, 40000}, successRate: 0.85, reactionTimeS: 20, costPerInterceptor: 3000000},
	"THAAD":         {maxRangeKM: 200, minRangeKM: 40, interceptAltM: [2]float64{40000, 150000}, successRate: 0.95, reactionTimeS: 25, costPerInterceptor: 15000000},
	"S-400":         {maxRangeKM: 400, minRangeKM: 2, interceptAltM: [2]float64{10, 185000}, successRate: 0.92, reactionTimeS: 18, costPerInterceptor: 1200000},
}

// terrainCasualtyMultiplier amplifies casualty estimates by target area type.
var terrainCasualtyMultiplier = map[string]float64{
	"urban":    2.1,
	"mountain": 1.3,
	"desert":   1.1,
	"forest":   1.4,
	"plains":   1.0,
	"coastal":  1.2,
}

const earthRadiusKM = 6371

// haversineKM returns the great circle distance between two lat/lon pairs.
func haversineKM(a, b [2]float64) float64 {
	lat1 := a[0] * math.Pi / 180
	lon1 := a[1] * math.Pi / 180
	lat2 := b[0] * math.Pi / 180
	lon2 := b[1] * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1
	h := math.Sin(dlat/2)*math.Sin(dlat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}

// MilitaryParams describes a single missile threat and the defenses facing it.
type MilitaryParams struct {
	Threat         *api.MissileThreat
	DefenseSystems []string
	TargetArea     *api.TargetArea
}

// Military models the threat end to end: trajectory physics, layered defense
// interception, and casualty estimation at the impact point.
func Military(p MilitaryParams) (*api.MilitaryResult, error) {
	if p.Threat == nil {
		return nil, fmt.Errorf("military: missile threat required")
	}
	traj, err := computeTrajectory(p.Threat)
	if err != nil {
		return nil, err
	}

	systems := p.DefenseSystems
	if len(systems) == 0 {
		systems = []string{"Patriot PAC-3", "THAAD"}
	}
	defense := computeInterception(traj, systems)

	weaponType := p.Threat.WeaponType
	if weaponType == "" {
		weaponType = "conventional"
	}
	casualties := estimateCasualties(traj, p.TargetArea, weaponType)

	return &api.MilitaryResult{
		Trajectory:       traj,
		DefenseAnalysis:  defense,
		CasualtyAnalysis: casualties,
	}, nil
}

func computeTrajectory(threat *api.MissileThreat) (*api.Trajectory, error) {
	family, ok := weaponSystems[threat.MissileType]
	if !ok {
		return nil, fmt.Errorf("military: unknown missile type %q", threat.MissileType)
	}
	spec, ok := family[threat.MissileSubtype]
	if !ok {
		return nil, fmt.Errorf("military: unknown missile subtype %q", threat.MissileSubtype)
	}

	distanceKM := haversineKM(threat.LaunchCoords, threat.TargetCoords)
	velocity := midpoint(spec.velocityMPS[0], spec.velocityMPS[1])
	payloadKG := midpoint(spec.payloadKG[0], spec.payloadKG[1])
	accuracyCEP := midpoint(spec.accuracyCEP[0], spec.accuracyCEP[1])

	var trajectoryKM, flightTimeS, apogeeKM, terminalVelocity float64
	if threat.MissileType == "ballistic_missiles" {
		if distanceKM > 300 {
			apogeeKM = distanceKM * 0.15
			trajectoryKM = math.Sqrt(distanceKM*distanceKM + (2*apogeeKM)*(2*apogeeKM))
			flightTimeS = trajectoryKM * 1000 / velocity
			terminalVelocity = velocity * 0.85 // atmospheric re-entry losses
		} else {
			trajectoryKM = distanceKM
			flightTimeS = distanceKM * 1000 / velocity
			terminalVelocity = velocity * 0.9
		}
	} else {
		trajectoryKM = distanceKM * 1.1 // terrain following
		flightTimeS = trajectoryKM * 1000 / velocity
		terminalVelocity = velocity
	}

	kineticEnergyJ := 0.5 * payloadKG * terminalVelocity * terminalVelocity

	var yieldKT float64
	if payloadKG > 1000 {
		yieldKT = payloadKG * 0.02
	} else {
		yieldKT = payloadKG * 0.6 / 1000
	}

	return &api.Trajectory{
		DistanceKM:           distanceKM,
		TrajectoryDistanceKM: trajectoryKM,
		FlightTimeSeconds:    flightTimeS,
		ApogeeAltitudeKM:     apogeeKM,
		TerminalVelocityMPS:  terminalVelocity,
		KineticEnergyMJ:      kineticEnergyJ / 1e6,
		ExplosiveYieldKT:     yieldKT,
		AccuracyMissM:        accuracyCEP * 0.5,
		LaunchDetectionS:     math.Max(60, flightTimeS*0.1),
		PayloadKG:            payloadKG,
	}, nil
}

func computeInterception(traj *api.Trajectory, active []string) *api.DefenseAnalysis {
	out := &api.DefenseAnalysis{}

	for _, name := range active {
		spec, ok := defenseSystems[name]
		if !ok {
			continue
		}
		if traj.DistanceKM > spec.maxRangeKM {
			continue
		}
		window := traj.FlightTimeSeconds - traj.LaunchDetectionS - spec.reactionTimeS
		if window <= 0 {
			continue
		}

		velocityFactor := math.Min(1.0, 1500/traj.TerminalVelocityMPS)

		altitudeM := traj.ApogeeAltitudeKM * 1000
		if altitudeM == 0 {
			altitudeM = 10 * 1000
		}
		altitudeFactor := 1.0
		if altitudeM < spec.interceptAltM[0] {
			altitudeFactor = 0.3
		} else if altitudeM > spec.interceptAltM[1] {
			altitudeFactor = 0.5
		}

		engagements := math.Min(3, math.Floor(window/10))
		singleShot := spec.successRate * velocityFactor * altitudeFactor
		totalProb := 1 - math.Pow(1-singleShot, engagements)

		out.InterceptionAttempts = append(out.InterceptionAttempts, api.InterceptionAttempt{
			System:                name,
			EngagementRangeKM:     math.Min(traj.DistanceKM, spec.maxRangeKM),
			SingleShotProbability: singleShot,
			NumberOfEngagements:   engagements,
			TotalProbability:      totalProb,
			EngagementCostUSD:     engagements * spec.costPerInterceptor,
		})
		out.TotalDefenseCostUSD += engagements * spec.costPerInterceptor
		if totalProb > out.TotalInterceptionProbability {
			out.TotalInterceptionProbability = totalProb
		}
	}

	// Systems coordinate imperfectly; cap the stacked bonus.
	if len(out.InterceptionAttempts) > 1 {
		bonus := math.Min(0.15, float64(len(out.InterceptionAttempts))*0.05)
		out.TotalInterceptionProbability = math.Min(0.98, out.TotalInterceptionProbability+bonus)
	}
	return out
}

func estimateCasualties(traj *api.Trajectory, area *api.TargetArea, weaponType string) *api.CasualtyAnalysis {
	popDensity := 1000.0
	areaType := "urban"
	protection := 0.1
	buildingDensity := 0.6
	timeOfDay := "day"
	if area != nil {
		if area.PopulationDensity > 0 {
			popDensity = area.PopulationDensity
		}
		if area.AreaType != "" {
			areaType = area.AreaType
		}
		if area.ProtectionLevel > 0 {
			protection = area.ProtectionLevel
		}
		if area.BuildingDensity > 0 {
			buildingDensity = area.BuildingDensity
		}
		if area.TimeOfDay != "" {
			timeOfDay = area.TimeOfDay
		}
	}

	if weaponType == "nuclear" {
		return nuclearImpactCasualties(traj.ExplosiveYieldKT, popDensity, areaType, protection, traj.AccuracyMissM)
	}
	return conventionalCasualties(traj.ExplosiveYieldKT, popDensity, areaType, protection, traj.AccuracyMissM, buildingDensity, timeOfDay)
}

func casualtyMultiplierFor(areaType string) float64 {
	if m, ok := terrainCasualtyMultiplier[areaType]; ok {
		return m
	}
	return terrainCasualtyMultiplier["urban"]
}

func nuclearImpactCasualties(yieldKT, popDensity float64, areaType string, protection, missM float64) *api.CasualtyAnalysis {
	fireballM := 150 * math.Pow(yieldKT, 0.4)
	radiationM := 1200 * math.Pow(yieldKT, 0.4)
	thermalM := 2000 * math.Pow(yieldKT, 0.4)

	if missM > fireballM {
		reduction := math.Max(0.1, 1-(missM-fireballM)/fireballM)
		fireballM *= reduction
		radiationM *= reduction
		thermalM *= reduction
	}

	fireballKM2 := math.Pi * math.Pow(fireballM/1000, 2)
	radiationKM2 := math.Pi * math.Pow(radiationM/1000, 2)
	thermalKM2 := math.Pi * math.Pow(thermalM/1000, 2)

	mult := casualtyMultiplierFor(areaType)

	fireballDeaths := fireballKM2 * popDensity * 0.98 * mult
	radiationDeaths := (radiationKM2 - fireballKM2) * popDensity * 0.75 * mult
	thermalInjuries := (thermalKM2 - radiationKM2) * popDensity * 0.6 * mult

	fireballDeaths = math.Floor(fireballDeaths * (1 - protection*0.1))
	radiationDeaths = math.Floor(radiationDeaths * (1 - protection*0.5))
	thermalInjuries = math.Floor(thermalInjuries * (1 - protection*0.7))

	deaths := fireballDeaths + radiationDeaths
	return &api.CasualtyAnalysis{
		ImmediateCasualties:         deaths,
		Injured:                     thermalInjuries,
		TotalAffected:               deaths + thermalInjuries,
		LethalRadiusM:               radiationM,
		DamageRadiusM:               thermalM,
		AffectedAreaKM2:             thermalKM2,
		InfrastructureDamagePercent: math.Min(98, yieldKT*0.8+60),
		EconomicDamageUSD:           thermalKM2 * yieldKT * 0.1 * 1e9,
	}
}

func conventionalCasualties(yieldKT, popDensity float64, areaType string, protection, missM, buildingDensity float64, timeOfDay string) *api.CasualtyAnalysis {
	tntKG := yieldKT * 1000
	lethalM := 65 * math.Pow(tntKG, 0.33)
	damageM := lethalM * 2.5

	if missM > lethalM {
		reduction := math.Max(0.1, 1-(missM-lethalM)/lethalM)
		lethalM *= reduction
		damageM *= reduction
	}

	lethalKM2 := math.Pi * math.Pow(lethalM/1000, 2)
	damageKM2 := math.Pi * math.Pow(damageM/1000, 2)

	mult := casualtyMultiplierFor(areaType)

	inLethal := lethalKM2 * popDensity
	inDamage := (damageKM2 - lethalKM2) * popDensity
	if timeOfDay == "night" {
		inLethal *= 1.2
		inDamage *= 1.2
	} else {
		inLethal *= 0.8
		inDamage *= 0.9
	}

	deaths := math.Floor(inLethal * (1 - protection) * 0.6 * mult)
	injured := math.Floor(inDamage * (1 - protection*0.5) * 0.3 * mult)

	return &api.CasualtyAnalysis{
		ImmediateCasualties:         deaths,
		Injured:                     injured,
		TotalAffected:               deaths + injured,
		LethalRadiusM:               lethalM,
		DamageRadiusM:               damageM,
		AffectedAreaKM2:             damageKM2,
		InfrastructureDamagePercent: math.Min(95, buildingDensity*60+20),
		EconomicDamageUSD:           damageKM2 * 50 * buildingDensity * 1e6,
	}
}
