package deposits

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const depositCols = `
	id, code, creator_uid, creator_name, product_id,
	efedrina, folhas, embalagens, dinheiro,
	proof_url, proof_expires_at,
	meta_paid, manufactured, confirmed_flag, refused, confirmed,
	stock_applied, last_status_by, last_status_name, last_status_at, created_at
`

func scanDeposit(row pgx.Row) (*Deposit, error) {
	var d Deposit
	err := row.Scan(
		&d.ID, &d.Code, &d.CreatorUID, &d.CreatorName, &d.ProductID,
		&d.Efedrina, &d.Folhas, &d.Embalagens, &d.Dinheiro,
		&d.ProofURL, &d.ProofExpiresAt,
		&d.Flags.MetaPaid, &d.Flags.Manufactured, &d.Flags.Confirmed, &d.Flags.Refused, &d.Confirmed,
		&d.StockApplied, &d.LastStatusBy, &d.LastStatusName, &d.LastStatusAt, &d.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repo) Create(ctx context.Context, d *Deposit) (*Deposit, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO deposits
			(code, creator_uid, creator_name, product_id,
			 efedrina, folhas, embalagens, dinheiro,
			 proof_url, proof_expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING`+depositCols,
		d.Code, d.CreatorUID, d.CreatorName, d.ProductID,
		d.Efedrina, d.Folhas, d.Embalagens, d.Dinheiro,
		d.ProofURL, d.ProofExpiresAt,
	)
	return scanDeposit(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Deposit, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+depositCols+`FROM deposits WHERE id = $1`, id)
	return scanDeposit(row)
}

func (r *Repo) List(ctx context.Context, creatorUID string, limit int) ([]Deposit, error) {
	q := `SELECT` + depositCols + `FROM deposits`
	args := []any{}
	if creatorUID != "" {
		q += ` WHERE creator_uid = $1`
		args = append(args, creatorUID)
	}
	q += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d`, limit)

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Deposit
	for rows.Next() {
		d, err := scanDeposit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// flagColumn maps a flag to its column. confirmed_flag additionally mirrors
// into the legacy confirmed column inside ApplyToggle.
func flagColumn(f Flag) string {
	switch f {
	case FlagMetaPaid:
		return "meta_paid"
	case FlagManufactured:
		return "manufactured"
	case FlagConfirmed:
		return "confirmed_flag"
	case FlagRefused:
		return "refused"
	}
	return ""
}

// ApplyToggle flips the flag and lands every attached side effect in the
// same transaction, so a crash can never leave the flag set with the
// movement or the aggregate delta missing.
func (r *Repo) ApplyToggle(ctx context.Context, t Toggle) (*Deposit, error) {
	col := flagColumn(t.Flag)
	if col == "" {
		return nil, fmt.Errorf("unknown flag %q", t.Flag)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := fmt.Sprintf(`
		UPDATE deposits
		SET %s = $2,
		    last_status_by = $3,
		    last_status_name = $4,
		    last_status_at = now()
		WHERE id = $1
	`, col)
	tag, err := tx.Exec(ctx, q, t.DepositID, t.Value, t.Actor.UID, t.Actor.Name)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}

	if t.Flag == FlagConfirmed {
		if _, err := tx.Exec(ctx, `UPDATE deposits SET confirmed = $2 WHERE id = $1`, t.DepositID, t.Value); err != nil {
			return nil, err
		}
	}

	if t.Stock != nil {
		// The guard bit makes the movement once-only even if confirmed is
		// toggled off and on again, or two admins race on the same record.
		guard, err := tx.Exec(ctx, `
			UPDATE deposits SET stock_applied = TRUE
			WHERE id = $1 AND stock_applied = FALSE
		`, t.DepositID)
		if err != nil {
			return nil, err
		}
		if guard.RowsAffected() == 1 {
			m := t.Stock
			if _, err := tx.Exec(ctx, `
				INSERT INTO movements
					(type, reason, qty, product_id, container_id, actor_uid, actor_name, actor_role, note, deposit_id)
				VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			`, string(m.Type), string(m.Reason), m.Qty, m.ProductID, m.ContainerID,
				m.Actor.UID, m.Actor.Name, m.Actor.Role, m.Note, m.DepositID); err != nil {
				return nil, err
			}
		}
	}

	for res, delta := range t.Deltas {
		if _, err := tx.Exec(ctx, `
			INSERT INTO weekly_paid (agg_key, uid, week, resource, qty)
			VALUES ($1,$2,$3,$4,$5)
			ON CONFLICT (agg_key, resource) DO UPDATE SET qty = weekly_paid.qty + EXCLUDED.qty
		`, t.WeekKey, t.WeekUID, t.Week, res, delta); err != nil {
			return nil, err
		}
	}

	row := tx.QueryRow(ctx, `SELECT`+depositCols+`FROM deposits WHERE id = $1`, t.DepositID)
	d, err := scanDeposit(row)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM deposits WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
