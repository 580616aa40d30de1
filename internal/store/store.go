// Package store persists completed scenario analyses keyed by scenario id.
// Because ids are derived from a canonical hash of the configuration, the
// store doubles as the idempotence layer: resubmitting an identical scenario
// finds the stored run instead of recomputing it.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/polystrat/geosim/internal/api"
)

// Store persists scenario analysis envelopes.
type Store interface {
	// Get retrieves a stored result by scenario id. Returns nil if not found.
	Get(ctx context.Context, scenarioID string) (*api.ComprehensiveResult, error)

	// Set stores a result with TTL. First write wins.
	Set(ctx context.Context, scenarioID string, result *api.ComprehensiveResult, ttl time.Duration) error

	// Close releases resources
	Close() error
}

// MemoryStore is an in-memory store with optional file snapshot.
type MemoryStore struct {
	mu       sync.RWMutex
	store    map[string]*entry
	snapshot string // optional file path for persistence
}

type entry struct {
	Result    *api.ComprehensiveResult
	ExpiresAt time.Time
}

// NewMemoryStore creates an in-memory scenario store. If snapshotPath is
// non-empty, the store loads surviving entries from it at startup and writes
// it back on Set and Close.
func NewMemoryStore(snapshotPath string) *MemoryStore {
	ms := &MemoryStore{
		store:    make(map[string]*entry),
		snapshot: snapshotPath,
	}
	if snapshotPath != "" {
		ms.loadSnapshot()
	}
	return ms
}

func (m *MemoryStore) Get(ctx context.Context, scenarioID string) (*api.ComprehensiveResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.store[scenarioID]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.ExpiresAt) {
		return nil, nil // expired
	}
	return e.Result, nil
}

func (m *MemoryStore) Set(ctx context.Context, scenarioID string, result *api.ComprehensiveResult, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// First write wins
	if e, exists := m.store[scenarioID]; exists {
		if time.Now().Before(e.ExpiresAt) {
			return nil
		}
	}

	m.store[scenarioID] = &entry{
		Result:    result,
		ExpiresAt: time.Now().Add(ttl),
	}

	if m.snapshot != "" {
		go m.saveSnapshot() // async to avoid blocking
	}
	return nil
}

func (m *MemoryStore) Close() error {
	if m.snapshot != "" {
		return m.saveSnapshot()
	}
	return nil
}

func (m *MemoryStore) loadSnapshot() error {
	data, err := os.ReadFile(m.snapshot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no snapshot yet
		}
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var snapshot map[string]*entry
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}

	// Only load non-expired entries
	now := time.Now()
	for k, v := range snapshot {
		if now.Before(v.ExpiresAt) {
			m.store[k] = v
		}
	}
	return nil
}

func (m *MemoryStore) saveSnapshot() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	toSave := make(map[string]*entry)
	for k, v := range m.store {
		if now.Before(v.ExpiresAt) {
			toSave[k] = v
		}
	}

	data, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.snapshot, data, 0600)
}
