package chacha20

import (
	"encoding/hex"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHexBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

// TestBlockFunctionRFC8439 checks the raw block function against the
// section 2.3.2 test vector: key = 00..1f, nonce = 00:00:00:09:00:00:00:4a:00:00:00:00,
// counter = 1.
func TestBlockFunctionRFC8439(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := mustHexBytes(t, "000000090000004a00000000")

	want := mustHexBytes(t, ""+
		"10f1e7e4d13b5915500fdd1fa32071c4"+
		"c7d1f4c733c068030422aa9ac3d46c4e"+
		"d2826446079faa0914c2d705d98b02a2"+
		"b5129cd1de164eb9cbd083e8a2503c4e")

	c, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	c.SetCounter(1)

	var got [BlockSize]byte
	require.NoError(t, c.KeyStreamBlock(&got))
	assert.Equal(t, want, got[:])
}

// TestXORKeyStreamMatchesBlockFunction checks that encrypting a run of zero
// bytes reproduces the raw keystream blocks exactly, tying XORKeyStream's
// counter management back to the block function vector above across a
// multi-block span and an unaligned split.
func TestXORKeyStreamMatchesBlockFunction(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := mustHexBytes(t, "000000090000004a00000000")

	var wantBlock1, wantBlock2 [BlockSize]byte
	ref, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	ref.SetCounter(1)
	require.NoError(t, ref.KeyStreamBlock(&wantBlock1))
	ref.SetCounter(2)
	require.NoError(t, ref.KeyStreamBlock(&wantBlock2))

	want := append(append([]byte{}, wantBlock1[:]...), wantBlock2[:]...)

	c, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	c.SetCounter(1)

	zero := make([]byte, len(want))
	got := make([]byte, len(want))
	require.NoError(t, c.XORKeyStream(got[:1], zero[:1]))
	require.NoError(t, c.XORKeyStream(got[1:33], zero[1:33]))
	require.NoError(t, c.XORKeyStream(got[33:], zero[33:]))

	assert.Equal(t, want, got)
}

// TestXORKeyStreamRFC8439Vector checks XORKeyStream against the literal
// section 2.4.2 encryption test vector: key = 00..1f, nonce =
// 00:00:00:00:00:00:00:4a:00:00:00:00, initial counter = 1, encrypting the
// "Ladies and Gentlemen" plaintext from section 2.4.
func TestXORKeyStreamRFC8439Vector(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := mustHexBytes(t, "000000000000004a00000000")

	plaintext := []byte("Ladies and Gentlemen of the class of '99: " +
		"If I could offer you only one tip for the future, sunscreen would be it.")
	require.Len(t, plaintext, 114)

	want := mustHexBytes(t, ""+
		"6e2e359a2568f98041ba0728dd0d6981e97e7aec1d4360c20a27afccfd9fae0b"+
		"f91b65c5524733ab8f593dabcd62b3571639d624e65152ab8f530c359f0861d8"+
		"07ca0dbf500d6a6156a38e088a22b65e52bc514d16ccf806818ce91ab7793736"+
		"5af90bbf74a35be6b40b8eedf2785e42874d")

	c, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	c.SetCounter(1)

	got := make([]byte, len(plaintext))
	require.NoError(t, c.XORKeyStream(got, plaintext))
	assert.Equal(t, want, got)

	dec, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	dec.SetCounter(1)
	recovered := make([]byte, len(got))
	require.NoError(t, dec.XORKeyStream(recovered, got))
	assert.Equal(t, plaintext, recovered)
}

// TestXORKeyStreamCounterOverflow checks Testable Property S6: once the
// block counter has produced the block at 2^32-1, any further call that
// would need another block returns LengthExceededError instead of wrapping
// the counter back to 0 and reusing a keystream block.
func TestXORKeyStreamCounterOverflow(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)

	c, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)
	c.SetCounter(math.MaxUint32)

	// The block at counter 2^32-1 is still valid and must succeed.
	lastBlock := make([]byte, BlockSize)
	require.NoError(t, c.XORKeyStream(lastBlock, make([]byte, BlockSize)))

	// Advancing to a block past 2^32-1 must fail, not wrap the counter to 0.
	err = c.XORKeyStream(make([]byte, 1), make([]byte, 1))
	var lengthErr LengthExceededError
	assert.ErrorAs(t, err, &lengthErr)

	// KeyStreamBlock must report the same exhaustion.
	var block [BlockSize]byte
	err = c.KeyStreamBlock(&block)
	assert.ErrorAs(t, err, &lengthErr)

	// Rewinding the counter clears the exhausted state.
	c.SetCounter(0)
	require.NoError(t, c.KeyStreamBlock(&block))
}

func TestNewUnauthenticatedCipher_Errors(t *testing.T) {
	_, err := NewUnauthenticatedCipher(make([]byte, 16), make([]byte, NonceSize))
	var keyErr KeySizeError
	assert.ErrorAs(t, err, &keyErr)

	_, err = NewUnauthenticatedCipher(make([]byte, KeySize), make([]byte, 8))
	var nonceErr InvalidNonceSizeError
	assert.ErrorAs(t, err, &nonceErr)
}

func TestWipe(t *testing.T) {
	key := make([]byte, KeySize)
	nonce := make([]byte, NonceSize)
	c, err := NewUnauthenticatedCipher(key, nonce)
	require.NoError(t, err)

	var block [BlockSize]byte
	require.NoError(t, c.KeyStreamBlock(&block))
	c.Wipe()

	for _, w := range c.key {
		assert.Equal(t, uint32(0), w)
	}
	for _, w := range c.nonce {
		assert.Equal(t, uint32(0), w)
	}
}
