package chacha20poly1305

import (
	"encoding/binary"

	"github.com/dromara/chacha20poly1305/crypto/chacha20"
	"github.com/dromara/chacha20poly1305/crypto/poly1305"
)

// sessionState names a position in the {InitAAD, AbsorbingCT, Finalized}
// state machine that RFC 8439 section 2.8's AAD-then-ciphertext MAC framing
// imposes on an incremental AEAD message.
type sessionState int

const (
	stateInitAAD sessionState = iota
	stateAbsorbingCT
	stateFinalized
)

// Session is an incremental ChaCha20-Poly1305 encryption session bound to a
// single (key, nonce) pair, for callers who build up associated data and
// ciphertext across multiple calls instead of supplying both upfront to
// Seal/Open. Associated data must be absorbed first, with zero or more calls
// to UpdateAAD; the first call to Encrypt or Finalize closes AAD absorption
// for the rest of the session's life. A further UpdateAAD call after that
// point returns OrderingViolation instead of silently reordering the MAC
// input, which would change the authenticated bytes without either party
// noticing.
type Session struct {
	c      *chacha20.Cipher
	poly   *poly1305.MAC
	aadLen uint64
	ctLen  uint64
	state  sessionState
}

// NewSession derives the one-time Poly1305 key and ChaCha20 keystream for
// (key, nonce), exactly as Seal/Open do, and returns a session ready to
// absorb associated data and then ciphertext incrementally.
func NewSession(key, nonce []byte) (*Session, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	var k [KeySize]byte
	copy(k[:], key)

	c, polyKey, err := oneTimeKey(k, nonce)
	if err != nil {
		return nil, err
	}

	m, err := poly1305.New(polyKey[:])
	if err != nil {
		c.Wipe()
		return nil, err
	}

	return &Session{c: c, poly: m}, nil
}

// UpdateAAD absorbs additional associated data into the running tag. It
// returns OrderingViolation once any ciphertext has been absorbed via
// Encrypt, or once Finalize has been called.
func (s *Session) UpdateAAD(aad []byte) error {
	if s.state != stateInitAAD {
		return OrderingViolation{Op: "UpdateAAD"}
	}
	if err := s.poly.Update(aad); err != nil {
		return err
	}
	s.aadLen += uint64(len(aad))
	return nil
}

// closeAAD pads the absorbed associated data to a 16-byte boundary and
// transitions the session into ciphertext absorption. It is idempotent after
// the first call from either Encrypt or Finalize.
func (s *Session) closeAAD() error {
	if s.state != stateInitAAD {
		return nil
	}
	if err := s.poly.Update(zeroPad[:pad16(int(s.aadLen%16))]); err != nil {
		return err
	}
	s.state = stateAbsorbingCT
	return nil
}

// Encrypt encrypts plaintext into dst with the session's ChaCha20 keystream
// and absorbs the resulting ciphertext into the running tag, returning
// LengthExceededError if the keystream is exhausted. Calling Encrypt closes
// AAD absorption for the rest of the session. It returns OrderingViolation
// if the session has already been finalized.
func (s *Session) Encrypt(dst, plaintext []byte) error {
	if s.state == stateFinalized {
		return OrderingViolation{Op: "Encrypt"}
	}
	if err := s.closeAAD(); err != nil {
		return err
	}

	if err := s.c.XORKeyStream(dst, plaintext); err != nil {
		return err
	}
	if err := s.poly.Update(dst[:len(plaintext)]); err != nil {
		return err
	}
	s.ctLen += uint64(len(plaintext))
	return nil
}

// Finalize closes AAD absorption if it is not already closed, pads the
// ciphertext to a 16-byte boundary, appends the AAD/ciphertext length
// trailer, and returns the resulting tag. The session is spent afterward;
// any further UpdateAAD, Encrypt, or Finalize call returns OrderingViolation.
func (s *Session) Finalize() ([poly1305.TagSize]byte, error) {
	if s.state == stateFinalized {
		return [poly1305.TagSize]byte{}, OrderingViolation{Op: "Finalize"}
	}
	if err := s.closeAAD(); err != nil {
		return [poly1305.TagSize]byte{}, err
	}
	if err := s.poly.Update(zeroPad[:pad16(int(s.ctLen%16))]); err != nil {
		return [poly1305.TagSize]byte{}, err
	}

	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[0:8], s.aadLen)
	binary.LittleEndian.PutUint64(lengths[8:16], s.ctLen)
	if err := s.poly.Update(lengths[:]); err != nil {
		return [poly1305.TagSize]byte{}, err
	}

	s.state = stateFinalized
	return s.poly.Finalize(), nil
}

// Wipe clears the session's ChaCha20 and Poly1305 state. It is safe to call
// at any point in the session's lifetime, finalized or not.
func (s *Session) Wipe() {
	s.c.Wipe()
	s.poly.Wipe()
}
