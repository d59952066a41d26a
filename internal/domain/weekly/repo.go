package weekly

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Repo reads the weekly paid aggregate. Writes happen only inside the
// deposit toggle transaction (see deposits.Repo), never through a public
// mutator here.
type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Get(ctx context.Context, uid string, week string) (Totals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT resource, qty
		FROM weekly_paid
		WHERE agg_key = $1
	`, uid+"_"+week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := Totals{}
	for rows.Next() {
		var res string
		var qty decimal.Decimal
		if err := rows.Scan(&res, &qty); err != nil {
			return nil, err
		}
		out[res] = qty
	}
	return out, rows.Err()
}

// ListWeek returns every user's totals for one ISO week, for reporting.
func (r *Repo) ListWeek(ctx context.Context, week string) (map[string]Totals, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT uid, resource, qty
		FROM weekly_paid
		WHERE week = $1
		ORDER BY uid, resource
	`, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]Totals{}
	for rows.Next() {
		var uid, res string
		var qty decimal.Decimal
		if err := rows.Scan(&uid, &res, &qty); err != nil {
			return nil, err
		}
		if out[uid] == nil {
			out[uid] = Totals{}
		}
		out[uid][res] = qty
	}
	return out, rows.Err()
}
