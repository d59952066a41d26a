package deposits

import (
	"context"
	"sync"
	"time"

	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/domain/weekly"
)

// Memory is an in-memory Store for tests, wired to in-memory ledger and
// weekly stores so toggle side effects land the same way the Postgres
// transaction lands them.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*Deposit

	Ledger *ledger.Memory
	Weekly *weekly.Memory
}

func NewMemory(l *ledger.Memory, w *weekly.Memory) *Memory {
	return &Memory{byID: make(map[int64]*Deposit), Ledger: l, Weekly: w}
}

func (m *Memory) Create(_ context.Context, d *Deposit) (*Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	cp := *d
	cp.ID = m.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now()
	}
	m.byID[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *Memory) GetByID(_ context.Context, id int64) (*Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	out := *d
	return &out, nil
}

func (m *Memory) List(_ context.Context, creatorUID string, limit int) ([]Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Deposit
	for _, d := range m.byID {
		if creatorUID != "" && d.CreatorUID != creatorUID {
			continue
		}
		out = append(out, *d)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *Memory) ApplyToggle(ctx context.Context, t Toggle) (*Deposit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.byID[t.DepositID]
	if !ok {
		return nil, ErrNotFound
	}

	d.Flags = d.Flags.With(t.Flag, t.Value)
	if t.Flag == FlagConfirmed {
		d.Confirmed = t.Value
	}
	now := time.Now()
	d.LastStatusBy = t.Actor.UID
	d.LastStatusName = t.Actor.Name
	d.LastStatusAt = &now

	if t.Stock != nil && !d.StockApplied {
		d.StockApplied = true
		if _, err := m.Ledger.Append(ctx, *t.Stock); err != nil {
			return nil, err
		}
	}

	if t.Deltas != nil {
		m.Weekly.Add(t.WeekKey, t.Deltas)
	}

	out := *d
	return &out, nil
}

func (m *Memory) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
