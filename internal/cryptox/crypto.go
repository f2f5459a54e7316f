// Package cryptox derives and checks credential verifiers. Passwords are
// never stored: registration keeps only a random salt and the argon2id
// derivation, and login re-derives a candidate for comparison.
package cryptox

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"
)

// DeriveVerifier computes the argon2id verifier for a password and salt.
// The derivation is deterministic, so a login candidate derived from the
// same inputs matches the stored value byte for byte.
func DeriveVerifier(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// CheckVerifier compares a stored verifier against a candidate in constant
// time.
func CheckVerifier(verifier, candidate []byte) bool {
	return subtle.ConstantTimeCompare(verifier, candidate) == 1
}
