package transport

import (
	"context"
	"sync"
)

// Memory is an in-process transport backed by a map. It implements
// both WriteSink and ReadSource, which makes it the natural backend
// for tests and for staging records before a durable copy.
//
// Thread-safety: all methods are safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
	saves   map[string]int
}

// NewMemory creates an empty in-memory transport.
func NewMemory() *Memory {
	return &Memory{
		records: make(map[string][]byte),
		saves:   make(map[string]int),
	}
}

// Save stores a record under its content hash. Re-saving an existing id
// keeps the first copy; content-addressing guarantees the bytes match.
func (m *Memory) Save(_ context.Context, id string, encoded []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[id]++
	if _, ok := m.records[id]; ok {
		return nil
	}
	stored := make([]byte, len(encoded))
	copy(stored, encoded)
	m.records[id] = stored
	return nil
}

// Get returns the record stored under id, or (nil, nil) if absent.
func (m *Memory) Get(_ context.Context, id string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	encoded, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return encoded, nil
}

// Name implements ReadSource.
func (m *Memory) Name() string {
	return "memory"
}

// Len returns the number of distinct records stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// SaveCount returns how many times Save was called for id, including
// idempotent re-saves. Used by tests to verify fan-out behavior.
func (m *Memory) SaveCount(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves[id]
}
