package containers

import (
	"errors"
	"time"
)

// ErrInUse gates deletion: a container referenced by any movement stays.
// Operator intervention, never an automatic retry.
var ErrInUse = errors.New("container has movements")

// Container is a named stock bucket, e.g. a shared stash.
type Container struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
