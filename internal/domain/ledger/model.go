package ledger

import "time"

type MoveType string

const (
	MoveIn  MoveType = "in"
	MoveOut MoveType = "out"
)

type Reason string

const (
	ReasonDeposit         Reason = "deposit"
	ReasonProduction      Reason = "production"
	ReasonSale            Reason = "sale"
	ReasonAdminWithdrawal Reason = "admin_withdrawal"
	ReasonTransfer        Reason = "transfer"
)

// Actor is whatever identity the caller hands us; the ledger records it
// verbatim and never authenticates.
type Actor struct {
	UID  string
	Name string
	Role int
}

// Movement is append-only: corrections are made by appending an offsetting
// movement, never by editing.
type Movement struct {
	ID          int64
	CreatedAt   time.Time
	Type        MoveType
	Reason      Reason
	Qty         int64
	ProductID   int64
	ContainerID *int64 // nil = global, not tied to a container
	Actor       Actor
	Note        string
	DepositID   *int64 // back-ref for reason=deposit
	PairID      *int64 // the other side of a transfer
}

func validReason(r Reason) bool {
	switch r {
	case ReasonDeposit, ReasonProduction, ReasonSale, ReasonAdminWithdrawal, ReasonTransfer:
		return true
	}
	return false
}

func validType(t MoveType) bool {
	return t == MoveIn || t == MoveOut
}
