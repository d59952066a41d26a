package containers

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*Container, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO containers (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`, name)
	var c Container
	err := row.Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err == pgx.ErrNoRows {
		return r.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Container, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM containers WHERE id = $1
	`, id)
	var c Container
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Container, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM containers WHERE name = $1
	`, name)
	var c Container
	if err := row.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) List(ctx context.Context) ([]Container, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM containers ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Container
	for rows.Next() {
		var c Container
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Delete removes a container only when no movement references it; the check
// and the delete run in one transaction.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var inUse bool
	if err := tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM movements WHERE container_id = $1)
	`, id).Scan(&inUse); err != nil {
		return err
	}
	if inUse {
		return ErrInUse
	}

	if _, err := tx.Exec(ctx, `DELETE FROM containers WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
