package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPartialTransfer     = errors.New("one-sided transfer")
)

// ValidationError covers everything rejected before any write: non-positive
// quantity, unknown type/reason, same-container transfer.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return "validation: " + e.Msg }

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InsufficientBalanceError carries the shortage details; unwraps to
// ErrInsufficientBalance for errors.Is checks.
type InsufficientBalanceError struct {
	ProductID   int64
	ContainerID *int64
	Available   int64
	Requested   int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance: product %d has %d, requested %d",
		e.ProductID, e.Available, e.Requested)
}

func (e *InsufficientBalanceError) Unwrap() error { return ErrInsufficientBalance }
