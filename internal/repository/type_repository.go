package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mktops/hid-generator/internal/model"
)

// TypeRepo persists component types and their owned position lists.  The
// type_orders cascade is manual: positions are always written or removed
// in the same call that touches the owning type row.
type TypeRepo struct{ DB *sql.DB }

func NewTypeRepo(db *sql.DB) *TypeRepo { return &TypeRepo{DB: db} }

// positionSyncPlan computes what a position-count change needs to do.
// Growing from current to target adds rows current+1..target; shrinking
// deletes rows with order_no above target.  The target never drops below
// one position.  addFrom > addTo means nothing to add; deleteAbove == 0
// means nothing to delete.
func positionSyncPlan(current, target int) (addFrom, addTo, deleteAbove int) {
	if target < 1 {
		target = 1
	}
	switch {
	case target > current:
		return current + 1, target, 0
	case target < current:
		return 1, 0, target
	default:
		return 1, 0, 0
	}
}

// CreateWithPositions inserts a type row and its positions 1..count in a
// single bulk statement.
func (r *TypeRepo) CreateWithPositions(ctx context.Context, name, code string, count int) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO types (name, code) VALUES (?,?)",
		strings.TrimSpace(name), strings.TrimSpace(code))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrTypeCodeExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if count < 1 {
		count = 1
	}
	if err := r.insertPositions(ctx, uint64(id), 1, count); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// insertPositions bulk-inserts positions from..to for a type.
func (r *TypeRepo) insertPositions(ctx context.Context, typeID uint64, from, to int) error {
	if from > to {
		return nil
	}
	query := "INSERT INTO type_orders (type_id, order_no) VALUES "
	args := make([]interface{}, 0, (to-from+1)*2)
	for n := from; n <= to; n++ {
		if n > from {
			query += ","
		}
		query += "(?,?)"
		args = append(args, typeID, n)
	}
	_, err := r.DB.ExecContext(ctx, query, args...)
	return err
}

// GetByID fetches a type by id.
func (r *TypeRepo) GetByID(ctx context.Context, id uint64) (model.ComponentType, error) {
	var t model.ComponentType
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,code FROM types WHERE id=? LIMIT 1", id).
		Scan(&t.ID, &t.Name, &t.Code)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ComponentType{}, ErrTypeNotFound
	}
	return t, err
}

// List returns all types ordered by name.
func (r *TypeRepo) List(ctx context.Context) ([]model.ComponentType, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,code FROM types ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ComponentType
	for rows.Next() {
		var t model.ComponentType
		if err := rows.Scan(&t.ID, &t.Name, &t.Code); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListPositions returns a type's allowed slot numbers ascending.  An empty
// result is a valid state; the generator falls back to a default range.
func (r *TypeRepo) ListPositions(ctx context.Context, typeID uint64) ([]int, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT order_no FROM type_orders WHERE type_id=? ORDER BY order_no", typeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountPositions returns how many positions a type currently owns.
func (r *TypeRepo) CountPositions(ctx context.Context, typeID uint64) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM type_orders WHERE type_id=?", typeID).Scan(&n)
	return n, err
}

// Update changes name and code, then syncs the owned position list to the
// requested count.  Equal counts are a no-op on type_orders.
func (r *TypeRepo) Update(ctx context.Context, id uint64, name, code string, positionCount int) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE types SET name=?, code=? WHERE id=?",
		strings.TrimSpace(name), strings.TrimSpace(code), id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrTypeCodeExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return r.SyncPositionCount(ctx, id, positionCount)
}

// SyncPositionCount grows or shrinks a type's position list to target.
func (r *TypeRepo) SyncPositionCount(ctx context.Context, typeID uint64, target int) error {
	current, err := r.CountPositions(ctx, typeID)
	if err != nil {
		return err
	}
	addFrom, addTo, deleteAbove := positionSyncPlan(current, target)
	if addFrom <= addTo {
		return r.insertPositions(ctx, typeID, addFrom, addTo)
	}
	if deleteAbove > 0 {
		_, err := r.DB.ExecContext(ctx,
			"DELETE FROM type_orders WHERE type_id=? AND order_no > ?", typeID, deleteAbove)
		return err
	}
	return nil
}

// Delete removes a type and all of its positions.  Positions go first so
// a failure between the statements never leaves orphaned rows.
func (r *TypeRepo) Delete(ctx context.Context, id uint64) error {
	if _, err := r.DB.ExecContext(ctx,
		"DELETE FROM type_orders WHERE type_id=?", id); err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx, "DELETE FROM types WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTypeNotFound
	}
	return nil
}
