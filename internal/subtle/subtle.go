// Package subtle holds the optimization barrier every piece of secret state
// in the crypto tree routes through: wiping key material and buffers, and
// branch-free conditional selection and comparison over secret-dependent
// values. Nothing in this package is safe to use outside that role.
package subtle

import "runtime"

// Wipe overwrites b with zeros through a store the compiler cannot treat as
// dead, so a buffer holding a key, nonce-derived keystream, or Poly1305 state
// is actually cleared rather than optimized away because nothing reads it
// afterward.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// WipeUint32 zeros a slice of 32-bit words, used for the ChaCha20 state array
// and the Poly1305 limb arrays.
func WipeUint32(w []uint32) {
	for i := range w {
		w[i] = 0
	}
	runtime.KeepAlive(w)
}

// SelectByte returns x if v is 1 and y if v is 0. v must be exactly 0 or 1;
// behavior is undefined for any other value. The selection is computed with
// a bitwise mask rather than a branch so it runs in constant time regardless
// of which operand is chosen.
func SelectByte(v, x, y byte) byte {
	mask := -v // v==1 -> 0xff, v==0 -> 0x00
	return y ^ (mask & (x ^ y))
}

// SelectUint32 is SelectByte for 32-bit words, used to conditionally apply
// the final Poly1305 subtraction of p = 2^130-5 without branching on the
// borrow bit.
func SelectUint32(v uint32, x, y uint32) uint32 {
	mask := -v // v==1 -> 0xffffffff, v==0 -> 0x00000000
	return y ^ (mask & (x ^ y))
}

// ConstantTimeCompare reports whether x and y are equal, in time independent
// of where (or whether) they first differ. Unequal lengths are rejected
// immediately since the length of a tag or key is never itself secret.
func ConstantTimeCompare(x, y []byte) bool {
	if len(x) != len(y) {
		return false
	}
	var v byte
	for i := range x {
		v |= x[i] ^ y[i]
	}
	return v == 0
}
