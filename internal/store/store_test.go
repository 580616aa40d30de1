package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/polystrat/geosim/internal/api"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ms := NewMemoryStore("")
	ctx := context.Background()

	got, err := ms.Get(ctx, "missing")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Get(missing) = %v, want nil", got)
	}

	result := &api.ComprehensiveResult{ScenarioID: "abc", Status: api.StatusCompleted}
	if err := ms.Set(ctx, "abc", result, time.Hour); err != nil {
		t.Fatal(err)
	}

	got, err = ms.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.ScenarioID != "abc" {
		t.Errorf("Get(abc) = %v", got)
	}
}

func TestMemoryStoreFirstWriteWins(t *testing.T) {
	ms := NewMemoryStore("")
	ctx := context.Background()

	first := &api.ComprehensiveResult{ScenarioID: "abc", Status: api.StatusCompleted}
	second := &api.ComprehensiveResult{ScenarioID: "abc", Status: api.StatusError}

	if err := ms.Set(ctx, "abc", first, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := ms.Set(ctx, "abc", second, time.Hour); err != nil {
		t.Fatal(err)
	}

	got, err := ms.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != api.StatusCompleted {
		t.Errorf("status = %q, want first write to win", got.Status)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ms := NewMemoryStore("")
	ctx := context.Background()

	result := &api.ComprehensiveResult{ScenarioID: "abc"}
	if err := ms.Set(ctx, "abc", result, -time.Second); err != nil {
		t.Fatal(err)
	}

	got, err := ms.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got != nil {
		t.Errorf("Get(expired) = %v, want nil", got)
	}
}

func TestMemoryStoreSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	ctx := context.Background()

	ms := NewMemoryStore(path)
	result := &api.ComprehensiveResult{ScenarioID: "abc", Status: api.StatusCompleted}
	if err := ms.Set(ctx, "abc", result, time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := ms.Close(); err != nil {
		t.Fatal(err)
	}

	reloaded := NewMemoryStore(path)
	got, err := reloaded.Get(ctx, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if got == nil || got.Status != api.StatusCompleted {
		t.Errorf("reloaded Get(abc) = %v", got)
	}
}
