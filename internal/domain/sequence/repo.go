package sequence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Next increments and returns the counter in a single upsert; Postgres
// serializes concurrent upserts on the same scope row, so no two callers
// can observe the same value.
func (r *Repo) Next(ctx context.Context, scope string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO sequence_counters (scope, last)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET last = sequence_counters.last + 1
		RETURNING last
	`, scope).Scan(&n)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// serialization_failure / deadlock_detected
			if pgErr.Code == "40001" || pgErr.Code == "40P01" {
				return 0, ErrConflict
			}
		}
		return 0, err
	}
	return n, nil
}
