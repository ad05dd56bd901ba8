package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Passwords are never stored: pwd_hash holds the SHA-256 digest of
// the salt concatenated with the password, and each password change
// regenerates the salt.  Usernames are stored lower-cased so the unique
// index also enforces case-insensitive uniqueness.
//
// Fields:
//  ID        – primary key identifier of the user.
//  Username  – unique, lower-cased login name.
//  Role      – "admin" or "user"; gates the admin surface only.
//  Salt      – 32-char hex salt used for the stored hash.
//  PwdHash   – hex SHA-256 of salt concatenated with the password.
//  CreatedAt – timestamp of creation.
type User struct {
	ID        uint64    // users.id
	Username  string    // users.username
	Role      string    // users.role
	Salt      string    // users.salt
	PwdHash   string    // users.pwd_hash
	CreatedAt time.Time // users.created_at
}

// RefreshToken models an entry in the `refresh_tokens` table.  Each
// refresh token belongs to a user; the plain token is not stored, only
// its SHA-256 hash.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (nil if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
