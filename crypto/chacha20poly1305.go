package crypto

import (
	"io"

	"github.com/dromara/chacha20poly1305/crypto/chacha20poly1305"
	"github.com/dromara/chacha20poly1305/crypto/cipher"
)

// ByChaCha20Poly1305 encrypts by ChaCha20-Poly1305.
func (e *Encrypter) ByChaCha20Poly1305(c *cipher.ChaCha20Poly1305Cipher) *Encrypter {
	if e.Error != nil {
		return e
	}

	// If reader is set, read it to the end so it is sealed as one AEAD message
	if e.reader != nil {
		if e.src, e.Error = io.ReadAll(e.reader); e.Error != nil {
			return e
		}
	}

	if len(e.src) > 0 {
		e.dst, e.Error = chacha20poly1305.NewStdEncrypter(c).Encrypt(e.src)
	}
	return e
}

// ByChaCha20Poly1305 decrypts by ChaCha20-Poly1305.
func (d Decrypter) ByChaCha20Poly1305(c *cipher.ChaCha20Poly1305Cipher) Decrypter {
	if d.Error != nil {
		return d
	}

	// If reader is set, use streaming processing
	if d.reader != nil {
		d.dst, d.Error = d.stream(func(r io.Reader) io.Reader {
			return chacha20poly1305.NewStreamDecrypter(r, c)
		})
		return d
	}

	// Decrypt data in memory
	if len(d.src) > 0 {
		d.dst, d.Error = chacha20poly1305.NewStdDecrypter(c).Decrypt(d.src)
	}
	return d
}
