package sequence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stashops/depotd/internal/infra/metrics"
)

var (
	// ErrConflict is a transient write conflict on the counter; stores
	// return it when a retry can succeed.
	ErrConflict = errors.New("sequence write conflict")

	// ErrAllocationFailed means the retry budget is exhausted. Never a
	// duplicate, never a silent skip.
	ErrAllocationFailed = errors.New("sequence allocation failed")
)

// Store issues the next counter value for a scope as one atomic
// read-increment-write.
type Store interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// Allocator wraps a Store with bounded retries on write conflicts.
// Concurrent callers for the same scope each get a distinct, strictly
// increasing integer; a gap can only appear if an aborted transaction is
// never retried by the caller.
type Allocator struct {
	store       Store
	log         *slog.Logger
	maxAttempts int
}

func NewAllocator(store Store, log *slog.Logger, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Allocator{store: store, log: log, maxAttempts: maxAttempts}
}

func (a *Allocator) Allocate(ctx context.Context, scope string) (int64, error) {
	var lastErr error
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		n, err := a.store.Next(ctx, scope)
		if err == nil {
			return n, nil
		}
		if !errors.Is(err, ErrConflict) {
			return 0, err
		}
		lastErr = err
		metrics.SequenceRetries.Inc()
		a.log.Warn("sequence conflict, retrying", "scope", scope, "attempt", attempt)
	}
	return 0, fmt.Errorf("%w: scope %s after %d attempts: %v", ErrAllocationFailed, scope, a.maxAttempts, lastErr)
}

// FormatCode builds the human-readable deposit identifier from a scope
// (folder number) and an allocated sequence value, e.g. "07-0012".
func FormatCode(scope string, n int64) string {
	return fmt.Sprintf("%s-%04d", scope, n)
}
