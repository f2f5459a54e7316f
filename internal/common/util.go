package common

import "crypto/rand"

// GenerateRandByteArray returns size cryptographically random bytes.
// Panics when the system RNG fails; that condition is not recoverable.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return b
}
