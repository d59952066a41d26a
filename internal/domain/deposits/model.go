package deposits

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stashops/depotd/internal/domain/weekly"
)

type Flag string

const (
	FlagMetaPaid     Flag = "meta_paid"
	FlagManufactured Flag = "manufactured"
	FlagConfirmed    Flag = "confirmed"
	FlagRefused      Flag = "refused"
)

func ParseFlag(s string) (Flag, bool) {
	switch Flag(s) {
	case FlagMetaPaid, FlagManufactured, FlagConfirmed, FlagRefused:
		return Flag(s), true
	}
	return "", false
}

// Flags are four independent storage bits; the single "current status" view
// is derived, never stored.
type Flags struct {
	MetaPaid     bool
	Manufactured bool
	Confirmed    bool
	Refused      bool
}

func (f Flags) Get(flag Flag) bool {
	switch flag {
	case FlagMetaPaid:
		return f.MetaPaid
	case FlagManufactured:
		return f.Manufactured
	case FlagConfirmed:
		return f.Confirmed
	case FlagRefused:
		return f.Refused
	}
	return false
}

func (f Flags) With(flag Flag, value bool) Flags {
	switch flag {
	case FlagMetaPaid:
		f.MetaPaid = value
	case FlagManufactured:
		f.Manufactured = value
	case FlagConfirmed:
		f.Confirmed = value
	case FlagRefused:
		f.Refused = value
	}
	return f
}

type Status string

const (
	StatusRefused      Status = "refused"
	StatusConfirmed    Status = "confirmed"
	StatusManufactured Status = "manufactured"
	StatusMetaPaid     Status = "meta_paid"
	StatusPending      Status = "pending"
)

// EffectiveStatus folds the four flags into one display status.
// Precedence: refused > confirmed > manufactured > metaPaid > pending.
func (f Flags) EffectiveStatus() Status {
	switch {
	case f.Refused:
		return StatusRefused
	case f.Confirmed:
		return StatusConfirmed
	case f.Manufactured:
		return StatusManufactured
	case f.MetaPaid:
		return StatusMetaPaid
	default:
		return StatusPending
	}
}

var (
	ErrEmptyDeposit  = errors.New("deposit needs at least one positive field")
	ErrNegativeField = errors.New("deposit fields cannot be negative")
	ErrNotFound      = errors.New("deposit not found")
)

// Deposit is one user submission under approval. Code is allocated once at
// creation and immutable thereafter.
type Deposit struct {
	ID          int64
	Code        string // "<folder>-<seq>"
	CreatorUID  string
	CreatorName string
	ProductID   int64

	Efedrina   int64
	Folhas     int64
	Embalagens int64
	Dinheiro   decimal.Decimal

	ProofURL       string
	ProofExpiresAt *time.Time

	Flags     Flags
	Confirmed bool // legacy mirror of Flags.Confirmed, kept in sync on every toggle

	// StockApplied guards the one ledger movement a confirmation may emit:
	// once set, re-toggling confirmed never appends a second one.
	StockApplied bool

	LastStatusBy   string
	LastStatusName string
	LastStatusAt   *time.Time
	CreatedAt      time.Time
}

// CountTotal is the stock quantity a confirmation books into the ledger:
// the sum of the resource counts, money excluded.
func (d *Deposit) CountTotal() int64 {
	return d.Efedrina + d.Folhas + d.Embalagens
}

// ResourceTotals returns every positive field keyed the way the weekly
// aggregate stores them, dinheiro under its own key.
func (d *Deposit) ResourceTotals() weekly.Totals {
	t := weekly.Totals{}
	if d.Efedrina > 0 {
		t[weekly.KeyEfedrina] = decimal.NewFromInt(d.Efedrina)
	}
	if d.Folhas > 0 {
		t[weekly.KeyFolhas] = decimal.NewFromInt(d.Folhas)
	}
	if d.Embalagens > 0 {
		t[weekly.KeyEmbalagens] = decimal.NewFromInt(d.Embalagens)
	}
	if d.Dinheiro.IsPositive() {
		t[weekly.KeyDinheiro] = d.Dinheiro
	}
	return t
}

func (d *Deposit) Validate() error {
	if d.Efedrina < 0 || d.Folhas < 0 || d.Embalagens < 0 || d.Dinheiro.IsNegative() {
		return ErrNegativeField
	}
	if d.CountTotal() == 0 && !d.Dinheiro.IsPositive() {
		return ErrEmptyDeposit
	}
	return nil
}
