package api

import (
	"github.com/google/uuid"

	"github.com/polystrat/geosim/pkg/canonical"
)

// ComputeScenarioID derives the deterministic scenario identifier from a
// configuration. Equal configurations always map to the same id, so repeat
// submissions of an identical scenario collapse onto one analysis record.
func ComputeScenarioID(cfg *ScenarioConfig) (string, error) {
	b, err := canonical.ConfigBytes(cfg)
	if err != nil {
		return "", err
	}
	return uuid.NewSHA1(uuid.NameSpaceDNS, b).String(), nil
}
