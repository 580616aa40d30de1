// Package sim contains the domain simulators invoked by the dispatch layer.
// Each simulator is a pure, deterministic function from typed parameters to a
// typed result. Simulators never share state; failures are returned as errors
// and isolated by the dispatcher.
package sim

// intensityLevels is the canonical ordering used by every intensity table.
var intensityLevels = []string{"low", "medium", "high", "extreme"}

// normalizeIntensity maps unknown intensity labels to "medium" so a malformed
// config degrades instead of failing the whole run.
func normalizeIntensity(intensity string) string {
	for _, l := range intensityLevels {
		if intensity == l {
			return l
		}
	}
	return "medium"
}

// midpoint collapses a [lo, hi] specification range to its deterministic
// center. Simulators use it wherever the underlying data is a range.
func midpoint(lo, hi float64) float64 {
	return (lo + hi) / 2
}
