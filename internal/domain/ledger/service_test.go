package ledger_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashops/depotd/internal/domain/ledger"
)

func newTestService(t *testing.T) (*ledger.Service, *ledger.Memory) {
	t.Helper()
	store := ledger.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ledger.NewService(store, log), store
}

func seed(t *testing.T, store *ledger.Memory, productID, containerID, qty int64) {
	t.Helper()
	_, err := store.Append(context.Background(), ledger.Movement{
		Type: ledger.MoveIn, Reason: ledger.ReasonProduction,
		Qty: qty, ProductID: productID, ContainerID: &containerID,
	})
	require.NoError(t, err)
}

func TestAppend_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var ve *ledger.ValidationError

	_, err := svc.Append(ctx, ledger.Movement{Type: ledger.MoveIn, Reason: ledger.ReasonProduction, Qty: 0, ProductID: 1})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Append(ctx, ledger.Movement{Type: "sideways", Reason: ledger.ReasonProduction, Qty: 1, ProductID: 1})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Append(ctx, ledger.Movement{Type: ledger.MoveIn, Reason: "gift", Qty: 1, ProductID: 1})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Append(ctx, ledger.Movement{Type: ledger.MoveIn, Reason: ledger.ReasonProduction, Qty: 1, ProductID: 1})
	assert.NoError(t, err)
}

func TestTransfer_MovesBalanceBetweenContainers(t *testing.T) {
	// Container X has 100 of P; transferring 40 to Y leaves 60/40 and the
	// product total untouched.
	svc, store := newTestService(t)
	ctx := context.Background()
	seed(t, store, 1, 10, 100)

	err := svc.Transfer(ctx, ledger.Actor{UID: "u1"}, 1, 10, 20, 40)
	require.NoError(t, err)

	from, _ := store.BalanceOf(ctx, 1, ptr(10))
	to, _ := store.BalanceOf(ctx, 1, ptr(20))
	total, _ := store.BalanceOf(ctx, 1, nil)
	assert.Equal(t, int64(60), from)
	assert.Equal(t, int64(40), to)
	assert.Equal(t, int64(100), total, "transfer conserves the product total")

	movs := store.All()
	require.Len(t, movs, 3) // seed + pair
	out, in := movs[1], movs[2]
	assert.Equal(t, ledger.MoveOut, out.Type)
	assert.Equal(t, ledger.MoveIn, in.Type)
	assert.Equal(t, ledger.ReasonTransfer, out.Reason)
	require.NotNil(t, out.PairID)
	require.NotNil(t, in.PairID)
	assert.Equal(t, in.ID, *out.PairID)
	assert.Equal(t, out.ID, *in.PairID)

	orphans, err := store.UnpairedTransfers(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestTransfer_InsufficientBalance_NoPartialEffect(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	seed(t, store, 1, 10, 30)

	err := svc.Transfer(ctx, ledger.Actor{UID: "u1"}, 1, 10, 20, 40)
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	var ibe *ledger.InsufficientBalanceError
	require.ErrorAs(t, err, &ibe)
	assert.Equal(t, int64(30), ibe.Available)
	assert.Equal(t, int64(40), ibe.Requested)

	assert.Len(t, store.All(), 1, "rejected transfer must write nothing")
}

func TestTransfer_SameContainerRejected(t *testing.T) {
	svc, store := newTestService(t)
	seed(t, store, 1, 10, 100)

	var ve *ledger.ValidationError
	err := svc.Transfer(context.Background(), ledger.Actor{UID: "u1"}, 1, 10, 10, 5)
	assert.ErrorAs(t, err, &ve)
	assert.Len(t, store.All(), 1)
}

func TestSale_DebitsBalance(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	seed(t, store, 1, 10, 100)

	require.NoError(t, svc.Sale(ctx, ledger.Actor{UID: "u1"}, 1, 10, 25, "street sale"))

	bal, _ := store.BalanceOf(ctx, 1, ptr(10))
	assert.Equal(t, int64(75), bal)

	movs := store.All()
	require.Len(t, movs, 2)
	assert.Equal(t, ledger.ReasonSale, movs[1].Reason)
	assert.Equal(t, ledger.MoveOut, movs[1].Type)
}

func TestSale_OverBalanceRejected(t *testing.T) {
	// Balance 60, request 150: rejected, balance stays 60.
	svc, store := newTestService(t)
	ctx := context.Background()
	seed(t, store, 1, 10, 60)

	err := svc.Sale(ctx, ledger.Actor{UID: "u1"}, 1, 10, 150, "")
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	bal, _ := store.BalanceOf(ctx, 1, ptr(10))
	assert.Equal(t, int64(60), bal)
}

func TestContainerHasMovements(t *testing.T) {
	_, store := newTestService(t)
	ctx := context.Background()
	seed(t, store, 1, 10, 5)

	has, err := store.ContainerHasMovements(ctx, 10)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.ContainerHasMovements(ctx, 99)
	require.NoError(t, err)
	assert.False(t, has)
}
