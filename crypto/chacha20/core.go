package chacha20

import (
	"encoding/binary"
	"math"

	"github.com/dromara/chacha20poly1305/internal/subtle"
)

// KeySize is the size in bytes of a ChaCha20 key.
const KeySize = 32

// NonceSize is the size in bytes of a ChaCha20 nonce, per RFC 8439.
const NonceSize = 12

// BlockSize is the size in bytes of one ChaCha20 keystream block.
const BlockSize = 64

const (
	sigma0 = 0x61707865
	sigma1 = 0x3320646e
	sigma2 = 0x79622d32
	sigma3 = 0x6b206574
)

// Cipher is a from-scratch ChaCha20 keystream generator, implementing the
// block function and counter management described in RFC 8439 section 2.
// Its XORKeyStream/KeyStreamBlock methods return LengthExceededError once
// the 32-bit block counter is exhausted, so they do not satisfy the
// standard library's cipher.Stream interface (which has no error return).
type Cipher struct {
	key     [8]uint32
	nonce   [3]uint32
	counter uint32

	block      [BlockSize]byte // keystream for the current counter value
	used       int             // bytes of block already consumed, in [0, BlockSize]
	overflowed bool            // true once the counter has produced block 2^32-1 and cannot advance further
}

// NewUnauthenticatedCipher creates a ChaCha20 stream cipher keyed by key and
// nonce, with the block counter starting at 0. key must be 32 bytes and
// nonce must be 12 bytes; any other length is rejected rather than
// silently truncated or padded.
func NewUnauthenticatedCipher(key, nonce []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, KeySizeError(len(key))
	}
	if len(nonce) != NonceSize {
		return nil, InvalidNonceSizeError{Size: len(nonce)}
	}

	c := &Cipher{used: BlockSize}
	for i := 0; i < 8; i++ {
		c.key[i] = binary.LittleEndian.Uint32(key[i*4:])
	}
	for i := 0; i < 3; i++ {
		c.nonce[i] = binary.LittleEndian.Uint32(nonce[i*4:])
	}
	return c, nil
}

// SetCounter sets the block counter used to generate the next keystream
// block, discarding any buffered keystream bytes from the prior counter
// value. The AEAD composer reads the one-time key from block 0 of a fresh
// cipher and then uses this to move to counter 1 for the message itself, per
// RFC 8439 section 2.8.
func (c *Cipher) SetCounter(counter uint32) {
	c.counter = counter
	c.used = BlockSize
	c.overflowed = false
}

func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = d<<16 | d>>16
	c += d
	b ^= c
	b = b<<12 | b>>20
	a += b
	d ^= a
	d = d<<8 | d>>24
	c += d
	b ^= c
	b = b<<7 | b>>25
	return a, b, c, d
}

// block computes one 64-byte ChaCha20 block for the given counter value and
// writes it to out. It runs the fixed 20-round (10 double-round) permutation
// over the constant, key, counter, and nonce words and adds the original
// state back in, exactly as specified in RFC 8439 section 2.3.
func block(key [8]uint32, nonce [3]uint32, counter uint32, out *[BlockSize]byte) {
	x0, x1, x2, x3 := uint32(sigma0), uint32(sigma1), uint32(sigma2), uint32(sigma3)
	x4, x5, x6, x7 := key[0], key[1], key[2], key[3]
	x8, x9, x10, x11 := key[4], key[5], key[6], key[7]
	x12, x13, x14, x15 := counter, nonce[0], nonce[1], nonce[2]

	s0, s1, s2, s3 := x0, x1, x2, x3
	s4, s5, s6, s7 := x4, x5, x6, x7
	s8, s9, s10, s11 := x8, x9, x10, x11
	s12, s13, s14, s15 := x12, x13, x14, x15

	for i := 0; i < 10; i++ {
		// column rounds
		x0, x4, x8, x12 = quarterRound(x0, x4, x8, x12)
		x1, x5, x9, x13 = quarterRound(x1, x5, x9, x13)
		x2, x6, x10, x14 = quarterRound(x2, x6, x10, x14)
		x3, x7, x11, x15 = quarterRound(x3, x7, x11, x15)
		// diagonal rounds
		x0, x5, x10, x15 = quarterRound(x0, x5, x10, x15)
		x1, x6, x11, x12 = quarterRound(x1, x6, x11, x12)
		x2, x7, x8, x13 = quarterRound(x2, x7, x8, x13)
		x3, x4, x9, x14 = quarterRound(x3, x4, x9, x14)
	}

	x0 += s0
	x1 += s1
	x2 += s2
	x3 += s3
	x4 += s4
	x5 += s5
	x6 += s6
	x7 += s7
	x8 += s8
	x9 += s9
	x10 += s10
	x11 += s11
	x12 += s12
	x13 += s13
	x14 += s14
	x15 += s15

	binary.LittleEndian.PutUint32(out[0:], x0)
	binary.LittleEndian.PutUint32(out[4:], x1)
	binary.LittleEndian.PutUint32(out[8:], x2)
	binary.LittleEndian.PutUint32(out[12:], x3)
	binary.LittleEndian.PutUint32(out[16:], x4)
	binary.LittleEndian.PutUint32(out[20:], x5)
	binary.LittleEndian.PutUint32(out[24:], x6)
	binary.LittleEndian.PutUint32(out[28:], x7)
	binary.LittleEndian.PutUint32(out[32:], x8)
	binary.LittleEndian.PutUint32(out[36:], x9)
	binary.LittleEndian.PutUint32(out[40:], x10)
	binary.LittleEndian.PutUint32(out[44:], x11)
	binary.LittleEndian.PutUint32(out[48:], x12)
	binary.LittleEndian.PutUint32(out[52:], x13)
	binary.LittleEndian.PutUint32(out[56:], x14)
	binary.LittleEndian.PutUint32(out[60:], x15)
}

// XORKeyStream XORs each byte in src with a byte from the keystream and
// writes the result to dst, advancing the block counter as needed. dst and
// src must overlap entirely or not at all. It returns LengthExceededError,
// without writing anything further to dst, if completing the call would
// require a block past counter 2^32-1.
func (c *Cipher) XORKeyStream(dst, src []byte) error {
	if len(dst) < len(src) {
		panic("chacha20: output smaller than input")
	}

	for len(src) > 0 {
		if c.used == BlockSize {
			if c.overflowed {
				return LengthExceededError{}
			}
			block(c.key, c.nonce, c.counter, &c.block)
			if c.counter == math.MaxUint32 {
				c.overflowed = true
			} else {
				c.counter++
			}
			c.used = 0
		}

		n := BlockSize - c.used
		if n > len(src) {
			n = len(src)
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ c.block[c.used+i]
		}
		c.used += n
		dst = dst[n:]
		src = src[n:]
	}
	return nil
}

// KeyStreamBlock writes the raw keystream block for the cipher's current
// counter value to out, without consuming or requiring any input. The AEAD
// composer uses this to read the one-time Poly1305 key out of block 0
// without XOR-ing it against caller data. It returns LengthExceededError if
// the counter has already been exhausted by a prior XORKeyStream call.
func (c *Cipher) KeyStreamBlock(out *[BlockSize]byte) error {
	if c.overflowed {
		return LengthExceededError{}
	}
	block(c.key, c.nonce, c.counter, out)
	return nil
}

// Wipe clears the cipher's key, nonce, and buffered keystream so they no
// longer appear in memory once the cipher is no longer needed.
func (c *Cipher) Wipe() {
	subtle.WipeUint32(c.key[:])
	subtle.WipeUint32(c.nonce[:])
	subtle.Wipe(c.block[:])
	c.counter = 0
	c.used = BlockSize
}
