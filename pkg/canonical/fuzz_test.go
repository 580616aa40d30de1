package canonical

import (
	"bytes"
	"encoding/json"
	"testing"
)

// FuzzConfigBytes checks that the canonical encoding neither crashes on
// arbitrary JSON documents nor drifts between encodings of the same value.
func FuzzConfigBytes(f *testing.F) {
	f.Add([]byte(`{"scenario_type":"conflict","intensity":"high"}`))
	f.Add([]byte(`{"nested":{"key":"value"},"n":1.234567890123}`))
	f.Add([]byte(`{"actors":["India","Pakistan"],"time_horizon_days":30}`))
	f.Add([]byte(`{}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		var obj map[string]interface{}
		if err := json.Unmarshal(data, &obj); err != nil {
			return
		}

		first, err := ConfigBytes(obj)
		if err != nil {
			return
		}

		second, err := ConfigBytes(obj)
		if err != nil {
			t.Fatalf("second encoding failed after first succeeded: %v", err)
		}
		if !bytes.Equal(first, second) {
			t.Errorf("encoding not stable: %s != %s", first, second)
		}

		// The canonical bytes must decode back to an equivalent document.
		var roundTrip map[string]interface{}
		if err := json.Unmarshal(first, &roundTrip); err != nil {
			t.Errorf("canonical bytes not valid JSON: %v", err)
		}
	})
}
