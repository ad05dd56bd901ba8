// Package repository implements data access for the hid generator's
// tables.  Each repository is a thin struct over *sql.DB running short
// single-statement queries; sentinel errors let handlers map storage
// failures onto user-facing messages without inspecting SQL errors.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameExists is returned when creating a user whose (lower-cased)
// username is already taken.
var ErrUsernameExists = errors.New("username already exists")

// ErrCategoryExists is returned on a category name collision.
var ErrCategoryExists = errors.New("category name already exists")

// ErrTypeCodeExists is returned on a component type code collision.
var ErrTypeCodeExists = errors.New("type code already exists")

// ErrUserNotFound is returned when a user lookup or mutation matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrCategoryNotFound is returned when a category lookup matches no row.
var ErrCategoryNotFound = errors.New("category not found")

// ErrTypeNotFound is returned when a component type lookup matches no row.
var ErrTypeNotFound = errors.New("type not found")

// isDuplicateKey reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
