package weekly

import (
	"context"
	"strings"
	"sync"
)

// Memory is an in-memory aggregate for tests. Add mirrors the upsert the
// deposit toggle transaction performs against Postgres.
type Memory struct {
	mu   sync.Mutex
	data map[string]Totals // agg_key -> totals
}

func NewMemory() *Memory { return &Memory{data: make(map[string]Totals)} }

func (m *Memory) Add(key string, deltas Totals) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.data[key]
	if t == nil {
		t = Totals{}
		m.data[key] = t
	}
	for res, d := range deltas {
		t[res] = t[res].Add(d)
	}
}

func (m *Memory) Get(_ context.Context, uid string, week string) (Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := Totals{}
	for res, qty := range m.data[uid+"_"+week] {
		out[res] = qty
	}
	return out, nil
}

func (m *Memory) ListWeek(_ context.Context, week string) (map[string]Totals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]Totals{}
	for key, totals := range m.data {
		uid, ok := strings.CutSuffix(key, "_"+week)
		if !ok {
			continue
		}
		t := Totals{}
		for res, qty := range totals {
			t[res] = qty
		}
		out[uid] = t
	}
	return out, nil
}

// IsZero reports whether every stored total is zero, i.e. increments and
// decrements cancelled out exactly.
func (m *Memory) IsZero() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, totals := range m.data {
		for _, qty := range totals {
			if !qty.IsZero() {
				return false
			}
		}
	}
	return true
}
