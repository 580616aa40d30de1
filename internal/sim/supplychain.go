package sim

import (
	"math"
	"sort"

	"github.com/polystrat/geosim/internal/api"
)

// supplyEdge is one critical trade relationship in the global supply graph.
type supplyEdge struct {
	source        string
	target        string
	material      string
	dependency    float64
	volumeBillion float64
}

var supplyChainEdges = []supplyEdge{
	{"China", "USA", "rare_earths", 0.8, 15},
	{"Taiwan", "USA", "semiconductors", 0.9, 120},
	{"Saudi Arabia", "USA", "oil", 0.3, 45},
	{"China", "Germany", "manufactured_goods", 0.6, 180},
	{"Russia", "Germany", "natural_gas", 0.7, 85},
	{"Australia", "China", "iron_ore", 0.8, 65},
	{"Ukraine", "global", "wheat", 0.3, 8},
	{"India", "global", "pharmaceuticals", 0.4, 25},
}

var recoveryCapabilities = map[string]float64{
	"USA": 0.9, "China": 0.8, "Germany": 0.85, "Japan": 0.83,
	"South Korea": 0.78, "Taiwan": 0.75, "Australia": 0.72,
	"Canada": 0.70, "Brazil": 0.55, "India": 0.58,
	"Russia": 0.52, "Saudi Arabia": 0.48,
}

// SupplyChainParams selects graph nodes and materials to disrupt at a given
// intensity in [0,1]. An empty material list disrupts every material the
// node exports.
type SupplyChainParams struct {
	DisruptedNodes     []string
	DisruptedMaterials []string
	Intensity          float64
}

// SupplyChain propagates a disruption through the trade graph: direct trade
// losses at each disrupted node, dampened cascades along dependency paths,
// and a global severity summary.
func SupplyChain(p SupplyChainParams) (*api.SupplyChainResult, error) {
	nodeEffects := make(map[string]api.NodeEffect, len(p.DisruptedNodes))
	var directLoss float64
	for _, node := range p.DisruptedNodes {
		loss := nodeTradeLoss(node, p.DisruptedMaterials, p.Intensity)
		directLoss += loss
		nodeEffects[node] = api.NodeEffect{
			DirectTradeLossBillion: loss,
			RecoveryMonths:         nodeRecoveryMonths(node, p.Intensity),
		}
	}

	cascadeLoss, cascadeCount := cascadeEffects(p.DisruptedNodes, p.Intensity)
	total := directLoss + cascadeLoss

	severity := "extreme"
	switch {
	case total < 100:
		severity = "low"
	case total < 500:
		severity = "moderate"
	case total < 1500:
		severity = "high"
	}

	globalRecovery := map[string]float64{"low": 6, "moderate": 18, "high": 36, "extreme": 60}[severity]

	return &api.SupplyChainResult{
		DisruptedNodes:      append([]string(nil), p.DisruptedNodes...),
		DisruptedMaterials:  append([]string(nil), p.DisruptedMaterials...),
		DisruptionIntensity: p.Intensity,
		NodeEffects:         nodeEffects,
		GlobalImpactSummary: api.GlobalImpactSummary{
			TotalEconomicImpactBillion: total,
			DirectTradeLossBillion:     directLoss,
			CascadeEffectsBillion:      cascadeLoss,
			CountriesAffected:          len(nodeEffects) + cascadeCount,
			SeverityLevel:              severity,
			GlobalGDPImpactPercent:     total / 104000 * 100, // global GDP ~104T
			EstimatedRecoveryMonths:    globalRecovery,
		},
	}, nil
}

func materialSelected(material string, materials []string) bool {
	if len(materials) == 0 {
		return true
	}
	for _, m := range materials {
		if m == material {
			return true
		}
	}
	return false
}

func nodeTradeLoss(node string, materials []string, intensity float64) float64 {
	var loss float64
	for _, e := range supplyChainEdges {
		if e.source != node || !materialSelected(e.material, materials) {
			continue
		}
		loss += e.volumeBillion * intensity * e.dependency
	}
	return loss
}

func nodeRecoveryMonths(node string, intensity float64) float64 {
	base := 30.0
	switch {
	case intensity <= 0.2:
		base = 3
	case intensity <= 0.5:
		base = 8
	case intensity <= 0.8:
		base = 18
	}
	capability, ok := recoveryCapabilities[node]
	if !ok {
		capability = 0.4
	}
	return math.Floor(base / math.Max(0.3, capability))
}

// cascadeEffects walks dependency paths (up to three hops) out of each
// disrupted node. Impact dampens by dependency*0.7 per hop; only nodes whose
// strongest path impact exceeds 0.1 count as affected.
func cascadeEffects(disrupted []string, intensity float64) (lossBillion float64, affected int) {
	disruptedSet := make(map[string]bool, len(disrupted))
	for _, n := range disrupted {
		disruptedSet[n] = true
	}

	nodes := make(map[string]bool)
	for _, e := range supplyChainEdges {
		nodes[e.source] = true
		nodes[e.target] = true
	}

	names := make([]string, 0, len(nodes))
	for n := range nodes {
		names = append(names, n)
	}
	sort.Strings(names)

	for _, node := range names {
		if disruptedSet[node] {
			continue
		}
		var strongest float64
		for _, origin := range disrupted {
			if impact := strongestPathImpact(origin, node, intensity, 3); impact > strongest {
				strongest = impact
			}
		}
		if strongest > 0.1 {
			lossBillion += strongest * 5
			affected++
		}
	}
	return lossBillion, affected
}

func strongestPathImpact(from, to string, impact float64, hops int) float64 {
	if hops == 0 {
		return 0
	}
	var best float64
	for _, e := range supplyChainEdges {
		if e.source != from {
			continue
		}
		next := impact * e.dependency * 0.7
		if e.target == to {
			if next > best {
				best = next
			}
			continue
		}
		if deeper := strongestPathImpact(e.target, to, next, hops-1); deeper > best {
			best = deeper
		}
	}
	return best
}
