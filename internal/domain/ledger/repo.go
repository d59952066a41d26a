package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is the Postgres Store. Movements are never updated or deleted here;
// the single UPDATE below only closes the pair back-reference of a transfer
// within the transaction that created both sides.
type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const balanceSQL = `
	SELECT COALESCE(SUM(CASE WHEN type = 'in' THEN qty ELSE -qty END), 0)
	FROM movements
	WHERE product_id = $1 AND ($2::bigint IS NULL OR container_id = $2)
`

const insertSQL = `
	INSERT INTO movements
		(type, reason, qty, product_id, container_id, actor_uid, actor_name, actor_role, note, deposit_id, pair_id)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	RETURNING id
`

func (r *Repo) Append(ctx context.Context, m Movement) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, insertSQL,
		string(m.Type), string(m.Reason), m.Qty, m.ProductID, m.ContainerID,
		m.Actor.UID, m.Actor.Name, m.Actor.Role, m.Note, m.DepositID, m.PairID,
	).Scan(&id)
	return id, err
}

func (r *Repo) AppendTransfer(ctx context.Context, out, in Movement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Re-check the source balance inside the transaction; the caller's
	// earlier read may be stale by now.
	var bal int64
	if err := tx.QueryRow(ctx, balanceSQL, out.ProductID, out.ContainerID).Scan(&bal); err != nil {
		return err
	}
	if out.Qty > bal {
		return &InsufficientBalanceError{ProductID: out.ProductID, ContainerID: out.ContainerID, Available: bal, Requested: out.Qty}
	}

	var outID int64
	if err := tx.QueryRow(ctx, insertSQL,
		string(out.Type), string(out.Reason), out.Qty, out.ProductID, out.ContainerID,
		out.Actor.UID, out.Actor.Name, out.Actor.Role, out.Note, out.DepositID, nil,
	).Scan(&outID); err != nil {
		return err
	}

	var inID int64
	if err := tx.QueryRow(ctx, insertSQL,
		string(in.Type), string(in.Reason), in.Qty, in.ProductID, in.ContainerID,
		in.Actor.UID, in.Actor.Name, in.Actor.Role, in.Note, in.DepositID, outID,
	).Scan(&inID); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE movements SET pair_id = $1 WHERE id = $2`, inID, outID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) AppendSale(ctx context.Context, out Movement) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var bal int64
	if err := tx.QueryRow(ctx, balanceSQL, out.ProductID, out.ContainerID).Scan(&bal); err != nil {
		return err
	}
	if out.Qty > bal {
		return &InsufficientBalanceError{ProductID: out.ProductID, ContainerID: out.ContainerID, Available: bal, Requested: out.Qty}
	}

	var id int64
	if err := tx.QueryRow(ctx, insertSQL,
		string(out.Type), string(out.Reason), out.Qty, out.ProductID, out.ContainerID,
		out.Actor.UID, out.Actor.Name, out.Actor.Role, out.Note, out.DepositID, nil,
	).Scan(&id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *Repo) BalanceOf(ctx context.Context, productID int64, containerID *int64) (int64, error) {
	var bal int64
	err := r.pool.QueryRow(ctx, balanceSQL, productID, containerID).Scan(&bal)
	return bal, err
}

func (r *Repo) ContainerHasMovements(ctx context.Context, containerID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM movements WHERE container_id = $1)
	`, containerID).Scan(&exists)
	return exists, err
}

func (r *Repo) Recent(ctx context.Context, productID int64, limit int) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, created_at, type, reason, qty, product_id, container_id,
		       actor_uid, actor_name, actor_role, note, deposit_id, pair_id
		FROM movements
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

// UnpairedTransfers lists transfer movements whose partner row is missing.
// Feeds the transfer-audit command; a healthy ledger returns nothing.
func (r *Repo) UnpairedTransfers(ctx context.Context) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT m.id, m.created_at, m.type, m.reason, m.qty, m.product_id, m.container_id,
		       m.actor_uid, m.actor_name, m.actor_role, m.note, m.deposit_id, m.pair_id
		FROM movements m
		WHERE m.reason = 'transfer'
		  AND (m.pair_id IS NULL
		       OR NOT EXISTS (SELECT 1 FROM movements p WHERE p.id = m.pair_id))
		ORDER BY m.created_at
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]Movement, error) {
	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(
			&m.ID, &m.CreatedAt, &m.Type, &m.Reason, &m.Qty, &m.ProductID, &m.ContainerID,
			&m.Actor.UID, &m.Actor.Name, &m.Actor.Role, &m.Note, &m.DepositID, &m.PairID,
		); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
