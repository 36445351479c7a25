package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devanshyadav01/sweetshop/internal/errs"
	"github.com/devanshyadav01/sweetshop/internal/model"
	"github.com/jackc/pgx/v5"
)

// SweetRepo implements SweetRepository using PostgreSQL.
type SweetRepo struct{ db *DB }

// NewSweetRepo constructs a sweet repository.
func NewSweetRepo(db *DB) *SweetRepo { return &SweetRepo{db: db} }

const sweetCols = `id, name, category, price, quantity, created_at, updated_at`

// Create inserts a new catalog item and returns the stored row.
func (r *SweetRepo) Create(ctx context.Context, n model.NewSweet) (*model.Sweet, error) {
	const q = `
INSERT INTO sweets (name, category, price, quantity)
VALUES ($1, $2, $3, $4)
RETURNING ` + sweetCols
	return scanSweet(r.db.Pool.QueryRow(ctx, q, n.Name, n.Category, n.Price, n.Quantity))
}

// Get selects an item by id.
func (r *SweetRepo) Get(ctx context.Context, id int64) (*model.Sweet, error) {
	const q = `SELECT ` + sweetCols + ` FROM sweets WHERE id=$1`
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id))
}

// List returns all items, newest first.
func (r *SweetRepo) List(ctx context.Context) ([]model.Sweet, error) {
	const q = `SELECT ` + sweetCols + ` FROM sweets ORDER BY created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

// Search returns items matching all set filters, newest first.
func (r *SweetRepo) Search(ctx context.Context, f model.SweetFilter) ([]model.Sweet, error) {
	q := `SELECT ` + sweetCols + ` FROM sweets`
	var conds []string
	var args []any
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.MinPrice != nil {
		args = append(args, *f.MinPrice)
		conds = append(conds, fmt.Sprintf("price >= $%d", len(args)))
	}
	if f.MaxPrice != nil {
		args = append(args, *f.MaxPrice)
		conds = append(conds, fmt.Sprintf("price <= $%d", len(args)))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectSweets(rows)
}

// Update applies a partial update, bumping updated_at, and returns the row.
func (r *SweetRepo) Update(ctx context.Context, id int64, up model.SweetUpdate) (*model.Sweet, error) {
	if up.Empty() {
		return r.Get(ctx, id)
	}
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if up.Name != nil {
		add("name", *up.Name)
	}
	if up.Category != nil {
		add("category", *up.Category)
	}
	if up.Price != nil {
		add("price", *up.Price)
	}
	if up.Quantity != nil {
		add("quantity", *up.Quantity)
	}
	sets = append(sets, "updated_at = now()")

	args = append(args, id)
	q := fmt.Sprintf("UPDATE sweets SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), sweetCols)
	return scanSweet(r.db.Pool.QueryRow(ctx, q, args...))
}

// Delete removes an item and returns the deleted row.
func (r *SweetRepo) Delete(ctx context.Context, id int64) (*model.Sweet, error) {
	const q = `DELETE FROM sweets WHERE id=$1 RETURNING ` + sweetCols
	return scanSweet(r.db.Pool.QueryRow(ctx, q, id))
}

// AdjustQuantity adds delta to an item's quantity inside a transaction.
// The row lock makes the check-then-update atomic per item, so two concurrent
// purchases cannot both pass the sufficiency check against a stale quantity.
func (r *SweetRepo) AdjustQuantity(ctx context.Context, id int64, delta int64) (s *model.Sweet, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const sel = `SELECT quantity FROM sweets WHERE id=$1 FOR UPDATE`
	var cur int64
	if err = tx.QueryRow(ctx, sel, id).Scan(&cur); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if cur+delta < 0 {
		return nil, &errs.InsufficientQuantityError{Available: cur, Requested: -delta}
	}

	const upd = `UPDATE sweets SET quantity=$2, updated_at=now() WHERE id=$1 RETURNING ` + sweetCols
	return scanSweet(tx.QueryRow(ctx, upd, id, cur+delta))
}

func scanSweet(row pgx.Row) (*model.Sweet, error) {
	var s model.Sweet
	err := row.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func collectSweets(rows pgx.Rows) ([]model.Sweet, error) {
	defer rows.Close()
	var out []model.Sweet
	for rows.Next() {
		var s model.Sweet
		if err := rows.Scan(&s.ID, &s.Name, &s.Category, &s.Price, &s.Quantity, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
