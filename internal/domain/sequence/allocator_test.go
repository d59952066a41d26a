package sequence_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashops/depotd/internal/domain/sequence"
)

func discardLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAllocate_ConcurrentCallersGetDistinctValues(t *testing.T) {
	// 50 concurrent allocations for scope "07" must yield exactly {1..50}.
	alloc := sequence.NewAllocator(sequence.NewMemory(), discardLog(), 5)
	ctx := context.Background()

	const n = 50
	results := make([]int64, n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = alloc.Allocate(ctx, "07")
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	sort.Slice(results, func(a, b int) bool { return results[a] < results[b] })
	for i, v := range results {
		assert.Equal(t, int64(i+1), v)
	}
}

func TestAllocate_ScopesAreIndependent(t *testing.T) {
	alloc := sequence.NewAllocator(sequence.NewMemory(), discardLog(), 5)
	ctx := context.Background()

	a1, err := alloc.Allocate(ctx, "07")
	require.NoError(t, err)
	b1, err := alloc.Allocate(ctx, "12")
	require.NoError(t, err)
	a2, err := alloc.Allocate(ctx, "07")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a1)
	assert.Equal(t, int64(1), b1)
	assert.Equal(t, int64(2), a2)
}

// conflictStore fails with ErrConflict a fixed number of times before
// delegating to the real store.
type conflictStore struct {
	inner     sequence.Store
	conflicts int
}

func (c *conflictStore) Next(ctx context.Context, scope string) (int64, error) {
	if c.conflicts > 0 {
		c.conflicts--
		return 0, sequence.ErrConflict
	}
	return c.inner.Next(ctx, scope)
}

func TestAllocate_RetriesConflictsThenSucceeds(t *testing.T) {
	store := &conflictStore{inner: sequence.NewMemory(), conflicts: 3}
	alloc := sequence.NewAllocator(store, discardLog(), 5)

	v, err := alloc.Allocate(context.Background(), "07")
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestAllocate_ExhaustedRetriesSurfaceAllocationFailed(t *testing.T) {
	store := &conflictStore{inner: sequence.NewMemory(), conflicts: 100}
	alloc := sequence.NewAllocator(store, discardLog(), 4)

	_, err := alloc.Allocate(context.Background(), "07")
	assert.ErrorIs(t, err, sequence.ErrAllocationFailed)
	assert.Equal(t, 96, store.conflicts, "exactly maxAttempts tries")
}

func TestFormatCode(t *testing.T) {
	assert.Equal(t, "07-0001", sequence.FormatCode("07", 1))
	assert.Equal(t, "07-0123", sequence.FormatCode("07", 123))
	assert.Equal(t, "07-12345", sequence.FormatCode("07", 12345))
}
