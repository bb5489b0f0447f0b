// Package cryptox wraps the password hashing primitives used by the
// platform. Hashes are bcrypt with a fixed work factor; the salt is
// generated per call and embedded in the encoded hash, so identical
// passwords produce different encodings.
package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt work factor. 12 keeps a single hash in the
// tens-to-low-hundreds of milliseconds range on commodity hardware.
const HashCost = 12

var (
	// ErrMismatch reports that the password does not match the stored hash.
	ErrMismatch = errors.New("cryptox: password does not match")

	// ErrHashFormat reports a stored hash that is not a valid bcrypt
	// encoding. Callers must present this to clients exactly like
	// ErrMismatch so the two cases cannot be told apart.
	ErrHashFormat = errors.New("cryptox: malformed password hash")
)

// HashPassword derives a bcrypt hash of password with a random salt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against an encoded bcrypt
// hash in constant time. It never panics on bad input; a malformed hash
// yields ErrHashFormat and a non-matching password yields ErrMismatch.
func VerifyPassword(password, encodedHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return ErrHashFormat
	}
}
