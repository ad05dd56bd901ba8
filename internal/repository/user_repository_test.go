package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeUsername(t *testing.T) {
	// "Admin" and "admin" must resolve to the same stored value so the
	// unique index rejects the duplicate and login finds the account
	// regardless of casing.
	assert.Equal(t, "admin", normalizeUsername("Admin"))
	assert.Equal(t, "admin", normalizeUsername("  ADMIN "))
	assert.Equal(t, normalizeUsername("Vale"), normalizeUsername("vale"))
}

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'admin' for key 'uq_users_username'")))
	assert.False(t, isDuplicateKey(errors.New("Error 1146 (42S02): Table 'hid.users' doesn't exist")))
	assert.False(t, isDuplicateKey(nil))
}
