package chacha20poly1305

import (
	"encoding/binary"

	"github.com/dromara/chacha20poly1305/crypto/chacha20"
	"github.com/dromara/chacha20poly1305/crypto/poly1305"
	"github.com/dromara/chacha20poly1305/internal/subtle"
)

// KeySize is the size in bytes of a ChaCha20-Poly1305 key.
const KeySize = chacha20.KeySize

// NonceSize is the size in bytes of a ChaCha20-Poly1305 nonce.
const NonceSize = chacha20.NonceSize

// Overhead is the size in bytes the authentication tag adds to a sealed
// message.
const Overhead = poly1305.TagSize

// aead is the from-scratch RFC 8439 ChaCha20-Poly1305 composer. It derives
// a fresh one-time Poly1305 key per (key, nonce) from ChaCha20's block 0,
// encrypts with ChaCha20 starting at block 1, and authenticates the
// AAD-then-ciphertext framing described in section 2.8. Seal/Open take the
// whole message at once; callers who need to build up AAD and ciphertext
// incrementally instead use Session, which carries the one-bit AAD-closed
// flag this one-shot path doesn't need.
type aead struct {
	key [KeySize]byte
}

// newAEAD validates key and returns an AEAD composer bound to it. The nonce
// is supplied per Seal/Open call, matching the one-time-key-per-nonce
// contract of the construction.
func newAEAD(key []byte) (*aead, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	a := &aead{}
	copy(a.key[:], key)
	return a, nil
}

// pad16 returns the number of zero bytes needed to round n up to a multiple
// of 16, per the MAC_input construction in RFC 8439 section 2.8.
func pad16(n int) int {
	return (16 - n%16) % 16
}

var zeroPad [16]byte

// oneTimeKey derives the one-time Poly1305 key for (a.key, nonce) by
// running ChaCha20 at counter 0 and keeping only the first 32 bytes of that
// block; the remaining 32 bytes are discarded and the block buffer wiped.
// It returns the ChaCha20 cipher with its counter already advanced to 1, so
// the caller can use it directly for the encrypt/decrypt keystream.
func oneTimeKey(key [KeySize]byte, nonce []byte) (*chacha20.Cipher, [poly1305.KeySize]byte, error) {
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce)
	if err != nil {
		return nil, [poly1305.KeySize]byte{}, err
	}

	var block [chacha20.BlockSize]byte
	if err := c.KeyStreamBlock(&block); err != nil {
		return nil, [poly1305.KeySize]byte{}, err
	}

	var polyKey [poly1305.KeySize]byte
	copy(polyKey[:], block[:poly1305.KeySize])
	subtle.Wipe(block[:])

	c.SetCounter(1)
	return c, polyKey, nil
}

// tag computes the Poly1305 authentication tag over additionalData and
// ciphertext under polyKey, following the AAD ‖ pad16 ‖ CT ‖ pad16 ‖
// LE64(|AAD|) ‖ LE64(|CT|) framing from RFC 8439 section 2.8.
func tag(polyKey [poly1305.KeySize]byte, additionalData, ciphertext []byte) ([poly1305.TagSize]byte, error) {
	m, err := poly1305.New(polyKey[:])
	if err != nil {
		return [poly1305.TagSize]byte{}, err
	}
	defer m.Wipe()

	_ = m.Update(additionalData)
	_ = m.Update(zeroPad[:pad16(len(additionalData))])
	_ = m.Update(ciphertext)
	_ = m.Update(zeroPad[:pad16(len(ciphertext))])

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], uint64(len(additionalData)))
	binary.LittleEndian.PutUint64(lengths[8:16], uint64(len(ciphertext)))
	_ = m.Update(lengths[:])

	return m.Finalize(), nil
}

// Seal encrypts and authenticates plaintext, appending the result to dst
// and returning the updated slice. The last Overhead bytes of the result
// are the authentication tag. It returns LengthExceededError, with dst
// unchanged, if plaintext is too long for a single ChaCha20 stream (more
// than 2^32-1 blocks starting at counter 1).
func (a *aead) Seal(dst, nonce, plaintext, additionalData []byte) ([]byte, error) {
	c, polyKey, err := oneTimeKey(a.key, nonce)
	if err != nil {
		// nonce size was already validated by the caller before reaching
		// here; this path exists only to keep the function total.
		return dst, err
	}
	defer c.Wipe()

	ciphertext := make([]byte, len(plaintext))
	if err := c.XORKeyStream(ciphertext, plaintext); err != nil {
		return dst, err
	}

	tagBytes, err := tag(polyKey, additionalData, ciphertext)
	if err != nil {
		return dst, err
	}

	dst = append(dst, ciphertext...)
	dst = append(dst, tagBytes[:]...)
	return dst, nil
}

// Open authenticates and decrypts ciphertext (which must include the
// trailing tag), appending the plaintext to dst. It returns
// AuthenticationError if the tag does not match; no plaintext is released
// on failure.
func (a *aead) Open(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(ciphertext) < Overhead {
		return nil, AuthenticationError{}
	}

	ct := ciphertext[:len(ciphertext)-Overhead]
	receivedTag := ciphertext[len(ciphertext)-Overhead:]

	c, polyKey, err := oneTimeKey(a.key, nonce)
	if err != nil {
		return nil, err
	}
	defer c.Wipe()

	tagBytes, err := tag(polyKey, additionalData, ct)
	if err != nil {
		return nil, err
	}

	if !subtle.ConstantTimeCompare(tagBytes[:], receivedTag) {
		return nil, AuthenticationError{}
	}

	plaintext := make([]byte, len(ct))
	if err := c.XORKeyStream(plaintext, ct); err != nil {
		return nil, err
	}

	return append(dst, plaintext...), nil
}
