// Package canonical produces canonical JSON encodings of scenario
// configurations. Scenario identifiers are derived from these bytes, so the
// encoding must be stable across processes and releases.
//
// Rules:
//   - Keys sorted alphabetically at every nesting level
//   - No whitespace (compact JSON)
//   - Absent optional fields omitted entirely
package canonical

import (
	"encoding/json"
	"fmt"
)

// ConfigBytes renders a scenario configuration as canonical JSON.
//
// The value is first marshalled with its struct tags, then decoded into
// generic maps and re-marshalled. encoding/json sorts map keys, which gives
// a stable key order regardless of struct field order.
func ConfigBytes(cfg interface{}) ([]byte, error) {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("canonical: marshal config: %w", err)
	}

	var generic map[string]interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("canonical: decode config: %w", err)
	}

	out, err := json.Marshal(generic)
	if err != nil {
		return nil, fmt.Errorf("canonical: re-marshal config: %w", err)
	}
	return out, nil
}
