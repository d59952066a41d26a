package ledger

import "context"

// Store is the persistence boundary of the movement log. The two guarded
// appends re-check the source balance inside the same transaction as the
// insert, so a debit can never overshoot a balance that changed between the
// caller's check and the commit.
type Store interface {
	Append(ctx context.Context, m Movement) (int64, error)
	// AppendTransfer writes the out/in pair atomically; either both
	// movements land or neither does.
	AppendTransfer(ctx context.Context, out, in Movement) error
	// AppendSale writes a single balance-guarded out movement.
	AppendSale(ctx context.Context, out Movement) error
	BalanceOf(ctx context.Context, productID int64, containerID *int64) (int64, error)
	ContainerHasMovements(ctx context.Context, containerID int64) (bool, error)
	Recent(ctx context.Context, productID int64, limit int) ([]Movement, error)
	// UnpairedTransfers reports transfer movements whose partner is
	// missing. Empty on a healthy ledger.
	UnpairedTransfers(ctx context.Context) ([]Movement, error)
}
