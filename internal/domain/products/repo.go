package products

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Create(ctx context.Context, name string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO products (name) VALUES ($1)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, created_at
	`, name)
	var p Product
	err := row.Scan(&p.ID, &p.Name, &p.CreatedAt)
	if err == pgx.ErrNoRows {
		return r.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM products WHERE id = $1
	`, id)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByName(ctx context.Context, name string) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, created_at FROM products WHERE name = $1
	`, name)
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, created_at FROM products ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
