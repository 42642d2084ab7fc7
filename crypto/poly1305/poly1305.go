// Package poly1305 implements the Poly1305 one-time message authenticator
// from scratch, as standardized in RFC 8439 section 2.5. It uses the
// donna-style representation of five 26-bit limbs for both the clamped
// evaluation key r and the running accumulator, so every block reduction is
// free of data-dependent branches or memory accesses.
package poly1305

import (
	"encoding/binary"

	"github.com/dromara/chacha20poly1305/internal/subtle"
)

// KeySize is the size in bytes of a Poly1305 one-time key.
const KeySize = 32

// TagSize is the size in bytes of a Poly1305 tag.
const TagSize = 16

const blockSize = 16

// mask26 extracts the low 26 bits of a limb during carry propagation.
const mask26 = 0x3ffffff

// MAC is a Poly1305 instance keyed for exactly one message. Once Finalize
// has been called the instance is spent: further Update calls fail with
// AlreadyFinalizedError.
type MAC struct {
	r [5]uint32 // clamped evaluation key, 26-bit limbs
	h [5]uint32 // accumulator, 26-bit limbs with carry slack
	s [4]uint32 // additive key, 32-bit little-endian words

	buf    [blockSize]byte
	buflen int
	done   bool
}

// New creates a Poly1305 MAC keyed by key, which must be exactly 32 bytes:
// the first 16 bytes become the clamped evaluation key r, the last 16 the
// additive key s, per RFC 8439 section 2.5.
func New(key []byte) (*MAC, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}

	m := &MAC{}

	t0 := binary.LittleEndian.Uint32(key[0:4])
	t1 := binary.LittleEndian.Uint32(key[4:8])
	t2 := binary.LittleEndian.Uint32(key[8:12])
	t3 := binary.LittleEndian.Uint32(key[12:16])

	// Clamp: r &= 0x0ffffffc0ffffffc0ffffffc0fffffff, then split into five
	// 26-bit limbs.
	t0 &= 0x0fffffff
	t1 &= 0x0ffffffc
	t2 &= 0x0ffffffc
	t3 &= 0x0ffffffc

	m.r[0] = t0 & mask26
	m.r[1] = ((t0 >> 26) | (t1 << 6)) & mask26
	m.r[2] = ((t1 >> 20) | (t2 << 12)) & mask26
	m.r[3] = ((t2 >> 14) | (t3 << 18)) & mask26
	m.r[4] = (t3 >> 8) & mask26

	m.s[0] = binary.LittleEndian.Uint32(key[16:20])
	m.s[1] = binary.LittleEndian.Uint32(key[20:24])
	m.s[2] = binary.LittleEndian.Uint32(key[24:28])
	m.s[3] = binary.LittleEndian.Uint32(key[28:32])

	return m, nil
}

// Update absorbs data into the running tag computation, buffering any
// partial 16-byte block internally until it is completed by a later Update
// or consumed by Finalize. Calling Update after Finalize returns
// AlreadyFinalizedError.
func (m *MAC) Update(data []byte) error {
	if m.done {
		return AlreadyFinalizedError{}
	}

	if m.buflen > 0 {
		n := copy(m.buf[m.buflen:], data)
		m.buflen += n
		data = data[n:]
		if m.buflen < blockSize {
			return nil
		}
		m.block(m.buf[:], true)
		m.buflen = 0
	}

	for len(data) >= blockSize {
		m.block(data[:blockSize], true)
		data = data[blockSize:]
	}

	if len(data) > 0 {
		m.buflen = copy(m.buf[:], data)
	}

	return nil
}

// block absorbs one 16-byte block: a ← (a + n) · r mod (2^130 - 5), where n
// is the block interpreted as a little-endian integer with an additional
// high bit set (hibit) when the block came from a complete 16-byte chunk.
func (m *MAC) block(block []byte, hibit bool) {
	var hibitLimb uint32
	if hibit {
		hibitLimb = 1 << 24
	}

	t0 := binary.LittleEndian.Uint32(block[0:4])
	t1 := binary.LittleEndian.Uint32(block[4:8])
	t2 := binary.LittleEndian.Uint32(block[8:12])
	t3 := binary.LittleEndian.Uint32(block[12:16])

	n0 := t0 & mask26
	n1 := ((t0 >> 26) | (t1 << 6)) & mask26
	n2 := ((t1 >> 20) | (t2 << 12)) & mask26
	n3 := ((t2 >> 14) | (t3 << 18)) & mask26
	n4 := (t3 >> 8) | hibitLimb

	h0 := uint64(m.h[0]) + uint64(n0)
	h1 := uint64(m.h[1]) + uint64(n1)
	h2 := uint64(m.h[2]) + uint64(n2)
	h3 := uint64(m.h[3]) + uint64(n3)
	h4 := uint64(m.h[4]) + uint64(n4)

	r0, r1, r2, r3, r4 := uint64(m.r[0]), uint64(m.r[1]), uint64(m.r[2]), uint64(m.r[3]), uint64(m.r[4])

	// Schoolbook multiply of the 5-limb accumulator by the 5-limb key,
	// folding the 2^130 ≡ 5 (mod p) reduction into the cross terms that
	// would otherwise overflow past limb 4.
	d0 := h0*r0 + h1*(5*r4) + h2*(5*r3) + h3*(5*r2) + h4*(5*r1)
	d1 := h0*r1 + h1*r0 + h2*(5*r4) + h3*(5*r3) + h4*(5*r2)
	d2 := h0*r2 + h1*r1 + h2*r0 + h3*(5*r4) + h4*(5*r3)
	d3 := h0*r3 + h1*r2 + h2*r1 + h3*r0 + h4*(5*r4)
	d4 := h0*r4 + h1*r3 + h2*r2 + h3*r1 + h4*r0

	// Carry propagation back down to 26-bit limbs.
	c := d0 >> 26
	out0 := uint32(d0) & mask26
	d1 += c
	c = d1 >> 26
	out1 := uint32(d1) & mask26
	d2 += c
	c = d2 >> 26
	out2 := uint32(d2) & mask26
	d3 += c
	c = d3 >> 26
	out3 := uint32(d3) & mask26
	d4 += c
	c = d4 >> 26
	out4 := uint32(d4) & mask26

	// The carry out of limb 4 feeds back into limb 0 scaled by 5, since
	// 2^130 ≡ 5 (mod 2^130-5); one more short propagation absorbs it.
	out0 += uint32(c) * 5
	c = uint64(out0) >> 26
	out0 &= mask26
	out1 += uint32(c)

	m.h[0], m.h[1], m.h[2], m.h[3], m.h[4] = out0, out1, out2, out3, out4
}

// Finalize processes any buffered partial block, reduces the accumulator
// strictly mod (2^130-5), adds the additive key s mod 2^128, and serializes
// the result as 16 little-endian bytes. After Finalize the instance is
// spent and must not be reused.
func (m *MAC) Finalize() [TagSize]byte {
	if m.buflen > 0 {
		var padded [blockSize]byte
		copy(padded[:], m.buf[:m.buflen])
		padded[m.buflen] = 1
		m.block(padded[:], false)
	}
	m.done = true

	h0, h1, h2, h3, h4 := m.h[0], m.h[1], m.h[2], m.h[3], m.h[4]

	// One more carry pass to fully normalize the limbs before the
	// constant-time final reduction below.
	c := h1 >> 26
	h1 &= mask26
	h2 += c
	c = h2 >> 26
	h2 &= mask26
	h3 += c
	c = h3 >> 26
	h3 &= mask26
	h4 += c
	c = h4 >> 26
	h4 &= mask26
	h0 += c * 5
	c = h0 >> 26
	h0 &= mask26
	h1 += c

	// Compute h - p, where p = 2^130 - 5, and conditionally select it
	// without branching on the borrow bit.
	g0 := h0 + 5
	c = g0 >> 26
	g0 &= mask26
	g1 := h1 + c
	c = g1 >> 26
	g1 &= mask26
	g2 := h2 + c
	c = g2 >> 26
	g2 &= mask26
	g3 := h3 + c
	c = g3 >> 26
	g3 &= mask26
	g4 := h4 + c - (1 << 26)

	// g4's top bit is set exactly when h - p underflowed, i.e. h < p and no
	// reduction was needed. selectG is 1 (select g) when h >= p, and 0
	// (select h) when h < p, derived from the borrow bit without a branch.
	selectG := (g4 >> 31) ^ 1

	h0 = subtle.SelectUint32(selectG, g0, h0)
	h1 = subtle.SelectUint32(selectG, g1, h1)
	h2 = subtle.SelectUint32(selectG, g2, h2)
	h3 = subtle.SelectUint32(selectG, g3, h3)
	h4 = subtle.SelectUint32(selectG, g4, h4)

	// Repack the five 26-bit limbs into four 32-bit words.
	f0 := h0 | (h1 << 26)
	f1 := (h1 >> 6) | (h2 << 20)
	f2 := (h2 >> 12) | (h3 << 14)
	f3 := (h3 >> 18) | (h4 << 8)

	// Add s mod 2^128, carrying between the four 32-bit words.
	total := uint64(f0) + uint64(m.s[0])
	f0 = uint32(total)
	total = uint64(f1) + uint64(m.s[1]) + (total >> 32)
	f1 = uint32(total)
	total = uint64(f2) + uint64(m.s[2]) + (total >> 32)
	f2 = uint32(total)
	total = uint64(f3) + uint64(m.s[3]) + (total >> 32)
	f3 = uint32(total)

	var tag [TagSize]byte
	binary.LittleEndian.PutUint32(tag[0:4], f0)
	binary.LittleEndian.PutUint32(tag[4:8], f1)
	binary.LittleEndian.PutUint32(tag[8:12], f2)
	binary.LittleEndian.PutUint32(tag[12:16], f3)

	return tag
}

// Verify finalizes the MAC and compares it against expected in constant
// time, returning true iff the tags match. expected must be TagSize bytes;
// any other length is rejected.
func (m *MAC) Verify(expected []byte) bool {
	tag := m.Finalize()
	return subtle.ConstantTimeCompare(tag[:], expected)
}

// Wipe clears the evaluation key, accumulator, additive key, and any
// buffered bytes so the one-time key no longer appears in memory.
func (m *MAC) Wipe() {
	subtle.WipeUint32(m.r[:])
	subtle.WipeUint32(m.h[:])
	subtle.WipeUint32(m.s[:])
	subtle.Wipe(m.buf[:])
	m.buflen = 0
}

// Sum computes the Poly1305 tag of msg under key in one call, without
// requiring the caller to manage an explicit MAC instance.
func Sum(key, msg []byte) ([TagSize]byte, error) {
	m, err := New(key)
	if err != nil {
		return [TagSize]byte{}, err
	}
	defer m.Wipe()

	if err := m.Update(msg); err != nil {
		return [TagSize]byte{}, err
	}
	return m.Finalize(), nil
}
