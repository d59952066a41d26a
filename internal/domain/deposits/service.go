package deposits

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stashops/depotd/internal/domain/ledger"
	"github.com/stashops/depotd/internal/domain/sequence"
	"github.com/stashops/depotd/internal/domain/weekly"
	"github.com/stashops/depotd/internal/infra/metrics"
)

// Event is what the notification relay receives; formatting and delivery
// are entirely the relay's concern.
type Event struct {
	DepositID int64
	Code      string
	Severity  Severity
	Flags     Flags
	Resources weekly.Totals
}

type Notifier interface {
	Notify(ctx context.Context, targetUID string, ev Event) error
}

type Service struct {
	store       Store
	alloc       *sequence.Allocator
	notifier    Notifier
	log         *slog.Logger
	folder      string // scope key for deposit codes
	containerID int64  // default container confirmed deposits book into
}

func NewService(store Store, alloc *sequence.Allocator, notifier Notifier,
	log *slog.Logger, folder string, containerID int64) *Service {
	return &Service{
		store: store, alloc: alloc, notifier: notifier,
		log: log, folder: folder, containerID: containerID,
	}
}

// Create validates the submission, allocates the next code for the folder
// and persists the record in the pending state.
func (s *Service) Create(ctx context.Context, d Deposit) (*Deposit, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	seq, err := s.alloc.Allocate(ctx, s.folder)
	if err != nil {
		return nil, err
	}
	d.Code = sequence.FormatCode(s.folder, seq)
	d.Flags = Flags{}
	d.Confirmed = false
	d.StockApplied = false
	return s.store.Create(ctx, &d)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Deposit, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, creatorUID string, limit int) ([]Deposit, error) {
	return s.store.List(ctx, creatorUID, limit)
}

// Delete removes the record. Movements and weekly totals it already
// produced are deliberately left intact.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// ToggleResult carries the updated record plus a non-fatal warning when the
// notification could not be delivered; the flag change is committed either
// way.
type ToggleResult struct {
	Deposit *Deposit
	Warning string
}

// SetFlag flips one approval flag and applies its side effects atomically
// with the flag write. Setting a flag to its current value is a no-op.
func (s *Service) SetFlag(ctx context.Context, id int64, flag Flag, value bool, actor ledger.Actor) (*ToggleResult, error) {
	d, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}
	if d.Flags.Get(flag) == value {
		return &ToggleResult{Deposit: d}, nil
	}

	prev := d.Flags
	eff := Decide(prev, flag, value)

	t := Toggle{DepositID: d.ID, Flag: flag, Value: value, Actor: actor}

	if eff.AppendStock && d.CountTotal() > 0 && !d.StockApplied {
		t.Stock = &ledger.Movement{
			Type:        ledger.MoveIn,
			Reason:      ledger.ReasonDeposit,
			Qty:         d.CountTotal(),
			ProductID:   d.ProductID,
			ContainerID: &s.containerID,
			Actor:       actor,
			Note:        fmt.Sprintf("deposit %s confirmed", d.Code),
			DepositID:   &d.ID,
		}
	}

	if eff.Weekly != 0 {
		deltas := d.ResourceTotals()
		if eff.Weekly < 0 {
			for k, v := range deltas {
				deltas[k] = v.Neg()
			}
		}
		if len(deltas) > 0 {
			t.Deltas = deltas
			t.WeekUID = d.CreatorUID
			t.Week = weekly.Week(d.CreatedAt)
			t.WeekKey = weekly.Key(d.CreatorUID, d.CreatedAt)
		}
	}

	updated, err := s.store.ApplyToggle(ctx, t)
	if err != nil {
		return nil, err
	}
	metrics.DepositToggles.WithLabelValues(string(flag)).Inc()
	if t.Stock != nil {
		metrics.MovementsAppended.WithLabelValues(string(ledger.ReasonDeposit)).Inc()
	}

	res := &ToggleResult{Deposit: updated}
	if eff.Notify {
		ev := Event{
			DepositID: updated.ID,
			Code:      updated.Code,
			Severity:  eff.Severity,
			Flags:     updated.Flags,
			Resources: updated.ResourceTotals(),
		}
		if err := s.notifier.Notify(ctx, updated.CreatorUID, ev); err != nil {
			// Fire-and-forget relative to the committed flag change.
			metrics.NotifyFailures.Inc()
			s.log.Warn("notification delivery failed", "deposit", updated.Code, "err", err)
			res.Warning = fmt.Sprintf("notification not delivered: %v", err)
		}
	}
	return res, nil
}
