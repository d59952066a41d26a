package sequence

import (
	"context"
	"sync"
)

// Memory is an in-memory Store for tests and local runs.
type Memory struct {
	mu   sync.Mutex
	last map[string]int64
}

func NewMemory() *Memory { return &Memory{last: make(map[string]int64)} }

func (m *Memory) Next(_ context.Context, scope string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last[scope]++
	return m.last[scope], nil
}
