package deposits

import (
	"context"

	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/domain/weekly"
)

// Toggle is one flag flip plus everything that must land in the same
// store transaction as the flag write: audit stamp, legacy mirror, the
// optional stock movement and the optional weekly delta. Attaching them
// here (instead of follow-up calls) is what keeps a crash from leaving the
// flag set with its side effect missing.
type Toggle struct {
	DepositID int64
	Flag      Flag
	Value     bool
	Actor     ledger.Actor

	Stock *ledger.Movement // non-nil: append with the flag write, guarded by StockApplied

	WeekKey  string
	WeekUID  string
	Week     string
	Deltas   weekly.Totals // non-nil: upsert into the weekly aggregate
}

// Store persists deposit records. ApplyToggle is atomic over the flag
// write and the attached side effects.
type Store interface {
	Create(ctx context.Context, d *Deposit) (*Deposit, error)
	GetByID(ctx context.Context, id int64) (*Deposit, error)
	List(ctx context.Context, creatorUID string, limit int) ([]Deposit, error)
	ApplyToggle(ctx context.Context, t Toggle) (*Deposit, error)
	// Delete removes the record only; movements and aggregate entries it
	// produced stay behind.
	Delete(ctx context.Context, id int64) error
}
