package subtle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWipe(t *testing.T) {
	b := []byte("super secret key material!!")
	Wipe(b)
	for _, v := range b {
		assert.Equal(t, byte(0), v)
	}
}

func TestWipeUint32(t *testing.T) {
	w := []uint32{1, 2, 3, 4}
	WipeUint32(w)
	for _, v := range w {
		assert.Equal(t, uint32(0), v)
	}
}

func TestSelectByte(t *testing.T) {
	assert.Equal(t, byte(0xAA), SelectByte(1, 0xAA, 0xBB))
	assert.Equal(t, byte(0xBB), SelectByte(0, 0xAA, 0xBB))
}

func TestSelectUint32(t *testing.T) {
	assert.Equal(t, uint32(10), SelectUint32(1, 10, 20))
	assert.Equal(t, uint32(20), SelectUint32(0, 10, 20))
}

func TestConstantTimeCompare(t *testing.T) {
	t.Run("equal", func(t *testing.T) {
		assert.True(t, ConstantTimeCompare([]byte("abcd"), []byte("abcd")))
	})

	t.Run("different contents", func(t *testing.T) {
		assert.False(t, ConstantTimeCompare([]byte("abcd"), []byte("abce")))
	})

	t.Run("different lengths", func(t *testing.T) {
		assert.False(t, ConstantTimeCompare([]byte("abc"), []byte("abcd")))
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, ConstantTimeCompare(nil, nil))
	})
}
