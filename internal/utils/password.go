package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// NewSalt returns 16 bytes of cryptographically secure random data encoded
// as a 32-character hex string.  A fresh salt is generated for every
// password set or change.
func NewSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashPassword returns the hex SHA-256 digest of salt concatenated with the
// plain password.  The stored pwd_hash column holds exactly this value.
func HashPassword(salt, plain string) string {
	sum := sha256.Sum256([]byte(salt + plain))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword recomputes the hash with the stored salt and compares it
// against the stored digest in constant time.
func VerifyPassword(salt, plain, storedHash string) bool {
	computed := HashPassword(salt, plain)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
