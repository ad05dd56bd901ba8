package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mktops/hid-generator/internal/model"
)

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// Create inserts a category and returns its ID.
func (r *CategoryRepo) Create(ctx context.Context, name, prefix string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (name, prefix) VALUES (?,?)",
		strings.TrimSpace(name), strings.TrimSpace(prefix))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrCategoryExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID fetches a category by id.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.Category, error) {
	var c model.Category
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,prefix FROM categories WHERE id=? LIMIT 1", id).
		Scan(&c.ID, &c.Name, &c.Prefix)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrCategoryNotFound
	}
	return c, err
}

// List returns all categories ordered by name.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id,name,prefix FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Prefix); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update changes name and prefix of a category.
func (r *CategoryRepo) Update(ctx context.Context, id uint64, name, prefix string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE categories SET name=?, prefix=? WHERE id=?",
		strings.TrimSpace(name), strings.TrimSpace(prefix), id)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrCategoryExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a category.  Nothing references categories by id, so no
// cascade is needed.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
