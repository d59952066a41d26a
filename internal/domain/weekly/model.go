package weekly

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Resource keys of the paid-totals aggregate. The monetary amount lives
// under its own key next to the counts.
const (
	KeyEfedrina   = "efedrina"
	KeyFolhas     = "folhas"
	KeyEmbalagens = "embalagens"
	KeyDinheiro   = "dinheiro"
)

// Totals holds the running per-resource sums for one (user, week) key.
type Totals map[string]decimal.Decimal

// Key formats the aggregate key for a user and the ISO week of t:
// "<uid>_<year>-W<2-digit week>". ISO 8601 weeks start on Monday and the
// year boundary is Thursday-anchored, which time.ISOWeek implements.
func Key(uid string, t time.Time) string {
	return uid + "_" + Week(t)
}

// Week formats the ISO week of t, e.g. "2025-W03".
func Week(t time.Time) string {
	y, w := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", y, w)
}
