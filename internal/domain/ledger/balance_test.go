package ledger_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stashops/depotd/internal/domain/ledger"
)

func ptr(v int64) *int64 { return &v }

func TestFold_SignedContributions(t *testing.T) {
	movs := []ledger.Movement{
		{Type: ledger.MoveIn, Reason: ledger.ReasonProduction, Qty: 100, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveOut, Reason: ledger.ReasonSale, Qty: 30, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveIn, Reason: ledger.ReasonDeposit, Qty: 5, ProductID: 1, ContainerID: nil},
		{Type: ledger.MoveIn, Reason: ledger.ReasonProduction, Qty: 50, ProductID: 2, ContainerID: ptr(1)},
	}

	assert.Equal(t, int64(70), ledger.Fold(movs, 1, ptr(1)))
	assert.Equal(t, int64(75), ledger.Fold(movs, 1, nil), "nil container spans containers and global")
	assert.Equal(t, int64(50), ledger.Fold(movs, 2, nil))
	assert.Equal(t, int64(0), ledger.Fold(movs, 3, nil))
}

func TestFold_OrderIndependent(t *testing.T) {
	movs := []ledger.Movement{
		{Type: ledger.MoveIn, Qty: 10, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveOut, Qty: 3, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveIn, Qty: 7, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveOut, Qty: 4, ProductID: 1, ContainerID: ptr(1)},
		{Type: ledger.MoveIn, Qty: 1, ProductID: 1, ContainerID: ptr(1)},
	}
	want := ledger.Fold(movs, 1, ptr(1))

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		rng.Shuffle(len(movs), func(a, b int) { movs[a], movs[b] = movs[b], movs[a] })
		assert.Equal(t, want, ledger.Fold(movs, 1, ptr(1)))
	}
}
