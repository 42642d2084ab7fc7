package poly1305

import "fmt"

// KeySizeError represents an error when the Poly1305 key size is invalid.
// Poly1305 keys must be exactly 32 bytes long.
type KeySizeError int

// Error returns a formatted error message describing the invalid key size.
func (k KeySizeError) Error() string {
	return fmt.Sprintf("crypto/poly1305: invalid key size %d, must be exactly 32 bytes", k)
}

// AlreadyFinalizedError represents an error when Update is called on a MAC
// instance that has already been finalized. A Poly1305 key is valid for
// exactly one message, so the instance cannot be reused afterward.
type AlreadyFinalizedError struct{}

// Error returns a formatted error message describing the misuse.
func (e AlreadyFinalizedError) Error() string {
	return "crypto/poly1305: Update called after Finalize"
}
