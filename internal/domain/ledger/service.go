package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stashops/depotd/internal/infra/metrics"
)

type Service struct {
	store Store
	log   *slog.Logger
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log}
}

func validate(m Movement) error {
	if m.Qty <= 0 {
		return validationf("quantity must be positive, got %d", m.Qty)
	}
	if !validType(m.Type) {
		return validationf("unknown movement type %q", m.Type)
	}
	if !validReason(m.Reason) {
		return validationf("unknown movement reason %q", m.Reason)
	}
	return nil
}

// Append records a single unguarded movement (production, admin withdrawal).
func (s *Service) Append(ctx context.Context, m Movement) (int64, error) {
	if err := validate(m); err != nil {
		return 0, err
	}
	id, err := s.store.Append(ctx, m)
	if err != nil {
		return 0, err
	}
	metrics.MovementsAppended.WithLabelValues(string(m.Reason)).Inc()
	return id, nil
}

func (s *Service) Balance(ctx context.Context, productID int64, containerID *int64) (int64, error) {
	return s.store.BalanceOf(ctx, productID, containerID)
}

func (s *Service) ContainerHasMovements(ctx context.Context, containerID int64) (bool, error) {
	return s.store.ContainerHasMovements(ctx, containerID)
}

func (s *Service) Recent(ctx context.Context, productID int64, limit int) ([]Movement, error) {
	return s.store.Recent(ctx, productID, limit)
}

// Transfer moves qty of a product between two containers as one logical
// operation: an out at the source and an in at the destination, both or
// neither. The store re-validates the source balance inside the same
// transaction as the pair.
func (s *Service) Transfer(ctx context.Context, actor Actor, productID, from, to, qty int64) error {
	if qty <= 0 {
		return validationf("quantity must be positive, got %d", qty)
	}
	if from == to {
		return validationf("transfer source and destination are the same container %d", from)
	}
	bal, err := s.store.BalanceOf(ctx, productID, &from)
	if err != nil {
		return err
	}
	if qty > bal {
		return &InsufficientBalanceError{ProductID: productID, ContainerID: &from, Available: bal, Requested: qty}
	}

	out := Movement{
		Type:        MoveOut,
		Reason:      ReasonTransfer,
		Qty:         qty,
		ProductID:   productID,
		ContainerID: &from,
		Actor:       actor,
		Note:        fmt.Sprintf("transfer to container %d", to),
	}
	in := Movement{
		Type:        MoveIn,
		Reason:      ReasonTransfer,
		Qty:         qty,
		ProductID:   productID,
		ContainerID: &to,
		Actor:       actor,
		Note:        fmt.Sprintf("transfer from container %d", from),
	}
	if err := s.store.AppendTransfer(ctx, out, in); err != nil {
		return err
	}
	metrics.MovementsAppended.WithLabelValues(string(ReasonTransfer)).Add(2)
	return nil
}

// Sale debits qty of a product from a container. Same balance guard as a
// transfer, single out movement.
func (s *Service) Sale(ctx context.Context, actor Actor, productID, containerID, qty int64, note string) error {
	if qty <= 0 {
		return validationf("quantity must be positive, got %d", qty)
	}
	bal, err := s.store.BalanceOf(ctx, productID, &containerID)
	if err != nil {
		return err
	}
	if qty > bal {
		return &InsufficientBalanceError{ProductID: productID, ContainerID: &containerID, Available: bal, Requested: qty}
	}

	out := Movement{
		Type:        MoveOut,
		Reason:      ReasonSale,
		Qty:         qty,
		ProductID:   productID,
		ContainerID: &containerID,
		Actor:       actor,
		Note:        note,
	}
	if err := s.store.AppendSale(ctx, out); err != nil {
		return err
	}
	metrics.MovementsAppended.WithLabelValues(string(ReasonSale)).Inc()
	return nil
}
