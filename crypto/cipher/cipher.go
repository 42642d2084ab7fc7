// Package cipher provides the cipher configuration structs shared by the
// algorithm packages (crypto/chacha20 and crypto/chacha20poly1305). It holds
// the key/nonce/AAD parameters a caller sets before driving an encrypter or
// decrypter; the arithmetic itself lives in the algorithm packages.
package cipher

type baseCipher struct {
	Key []byte
}

// SetKey sets the encryption key for the cipher.
func (c *baseCipher) SetKey(key []byte) {
	c.Key = key
}
