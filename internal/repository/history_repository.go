package repository

import (
	"context"
	"database/sql"

	"github.com/mktops/hid-generator/internal/model"
)

// HistoryRepo appends and lists generation records.  Rows are never
// updated; the only destructive operation is the admin clear-all.
type HistoryRepo struct{ DB *sql.DB }

func NewHistoryRepo(db *sql.DB) *HistoryRepo { return &HistoryRepo{DB: db} }

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

// clampHistoryLimit keeps the list size inside sane bounds regardless of
// what the caller asked for.
func clampHistoryLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}

// Insert appends one generation record and fills in its ID.
func (r *HistoryRepo) Insert(ctx context.Context, rec *model.HistoryRecord) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO history (base_url, final_url, country, category_name, type_code, order_value, hid_value)
		 VALUES (?,?,?,?,?,?,?)`,
		rec.BaseURL, rec.FinalURL, rec.Country, rec.CategoryName, rec.TypeCode, rec.OrderValue, rec.HidValue)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rec.ID = uint64(id)
	return nil
}

// List returns up to limit records, newest first.  The limit is clamped
// to [1, maxHistoryLimit]; zero or negative falls back to the default.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]model.HistoryRecord, error) {
	limit = clampHistoryLimit(limit)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, created_at, base_url, final_url, country, category_name, type_code, order_value, hid_value
		 FROM history ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryRecord
	for rows.Next() {
		var rec model.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.BaseURL, &rec.FinalURL,
			&rec.Country, &rec.CategoryName, &rec.TypeCode, &rec.OrderValue, &rec.HidValue); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ClearAll wipes the history table.  Admin-only bulk action.
func (r *HistoryRepo) ClearAll(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, "DELETE FROM history")
	return err
}
