package products

import "time"

// Product is a reference target the ledger points at; it owns no inventory
// state of its own.
type Product struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
