package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/mktops/hid-generator/internal/model"
	"github.com/mktops/hid-generator/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// normalizeUsername lower-cases and trims a username.  Storage always
// receives the normalized form, which makes the unique index on
// users.username case-insensitive in effect.
func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Create inserts a user with a fresh salt and returns its ID.
func (r *UserRepo) Create(ctx context.Context, username, password, role string) (uint64, error) {
	username = normalizeUsername(username)
	salt, err := utils.NewSalt()
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, role, salt, pwd_hash) VALUES (?,?,?,?)",
		username, role, salt, utils.HashPassword(salt, password))
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrUsernameExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByUsername fetches a user by normalized username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,role,salt,pwd_hash,created_at FROM users WHERE username=? LIMIT 1",
		normalizeUsername(username)).
		Scan(&u.ID, &u.Username, &u.Role, &u.Salt, &u.PwdHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,role,salt,pwd_hash,created_at FROM users WHERE id=? LIMIT 1",
		id).
		Scan(&u.ID, &u.Username, &u.Role, &u.Salt, &u.PwdHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// VerifyCredentials looks the user up and recomputes the stored hash with
// the supplied password.  The second return value is false both for an
// unknown username and for a wrong password, so callers cannot tell the
// cases apart.
func (r *UserRepo) VerifyCredentials(ctx context.Context, username, password string) (model.User, bool, error) {
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return model.User{}, false, nil
		}
		return model.User{}, false, err
	}
	if !utils.VerifyPassword(u.Salt, password, u.PwdHash) {
		return model.User{}, false, nil
	}
	return u, true, nil
}

// List returns all users ordered by username.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,role,salt,pwd_hash,created_at FROM users ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Role, &u.Salt, &u.PwdHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Update changes a user's password and/or role and returns the user's id
// so callers can revoke open sessions after a password change.  A nil
// newPassword leaves the stored credentials alone; a nil newRole keeps the
// current role.  Supplying a password regenerates the salt, so the old
// password stops working immediately.
func (r *UserRepo) Update(ctx context.Context, username string, newPassword, newRole *string) (uint64, error) {
	username = normalizeUsername(username)
	// Existence check up front: the updates below can touch zero rows both
	// for a missing user and for values that happen to match.
	u, err := r.GetByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	if newPassword != nil {
		salt, err := utils.NewSalt()
		if err != nil {
			return 0, err
		}
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE users SET salt=?, pwd_hash=? WHERE username=?",
			salt, utils.HashPassword(salt, *newPassword), username); err != nil {
			return 0, err
		}
	}
	if newRole != nil {
		if _, err := r.DB.ExecContext(ctx,
			"UPDATE users SET role=? WHERE username=?", *newRole, username); err != nil {
			return 0, err
		}
	}
	return u.ID, nil
}

// Delete removes a user by username.  Protected-account policy lives in
// the handler layer; the repository only reports whether a row went away.
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM users WHERE username=?", normalizeUsername(username))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}
