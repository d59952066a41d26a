package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-memory Store for tests and local runs. Same guarantees as
// the Postgres repo: the guarded appends hold the lock across check and
// write, so a pair is all-or-nothing and a debit never overshoots.
type Memory struct {
	mu     sync.Mutex
	nextID int64
	movs   []Movement
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) appendLocked(mov Movement) int64 {
	m.nextID++
	mov.ID = m.nextID
	if mov.CreatedAt.IsZero() {
		mov.CreatedAt = time.Now()
	}
	m.movs = append(m.movs, mov)
	return mov.ID
}

func (m *Memory) Append(_ context.Context, mov Movement) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendLocked(mov), nil
}

func (m *Memory) AppendTransfer(_ context.Context, out, in Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bal := Fold(m.movs, out.ProductID, out.ContainerID)
	if out.Qty > bal {
		return &InsufficientBalanceError{ProductID: out.ProductID, ContainerID: out.ContainerID, Available: bal, Requested: out.Qty}
	}

	outID := m.appendLocked(out)
	in.PairID = &outID
	inID := m.appendLocked(in)
	m.movs[len(m.movs)-2].PairID = &inID
	return nil
}

func (m *Memory) AppendSale(_ context.Context, out Movement) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bal := Fold(m.movs, out.ProductID, out.ContainerID)
	if out.Qty > bal {
		return &InsufficientBalanceError{ProductID: out.ProductID, ContainerID: out.ContainerID, Available: bal, Requested: out.Qty}
	}
	m.appendLocked(out)
	return nil
}

func (m *Memory) BalanceOf(_ context.Context, productID int64, containerID *int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Fold(m.movs, productID, containerID), nil
}

func (m *Memory) ContainerHasMovements(_ context.Context, containerID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mov := range m.movs {
		if mov.ContainerID != nil && *mov.ContainerID == containerID {
			return true, nil
		}
	}
	return false, nil
}

func (m *Memory) Recent(_ context.Context, productID int64, limit int) ([]Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Movement
	for i := len(m.movs) - 1; i >= 0 && len(out) < limit; i-- {
		if m.movs[i].ProductID == productID {
			out = append(out, m.movs[i])
		}
	}
	return out, nil
}

func (m *Memory) UnpairedTransfers(_ context.Context) ([]Movement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	byID := make(map[int64]bool, len(m.movs))
	for _, mov := range m.movs {
		byID[mov.ID] = true
	}
	var out []Movement
	for _, mov := range m.movs {
		if mov.Reason != ReasonTransfer {
			continue
		}
		if mov.PairID == nil || !byID[*mov.PairID] {
			out = append(out, mov)
		}
	}
	return out, nil
}

// All returns a copy of every movement, oldest first.
func (m *Memory) All() []Movement {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Movement, len(m.movs))
	copy(out, m.movs)
	return out
}
