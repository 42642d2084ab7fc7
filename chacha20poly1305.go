// Package chacha20poly1305 is a from-scratch, semantic and developer-friendly
// implementation of the ChaCha20 stream cipher, the Poly1305 one-time
// authenticator, and their RFC 8439 ChaCha20-Poly1305 AEAD composition.
package chacha20poly1305

import (
	"github.com/dromara/chacha20poly1305/crypto"
)

const Version = "0.1.0"

var (
	// Encrypt defines an Encrypter instance.
	Encrypt = crypto.NewEncrypter()
	// Decrypt defines a Decrypter instance.
	Decrypt = crypto.NewDecrypter()
)
