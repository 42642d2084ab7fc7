package crypto

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEncrypter(t *testing.T) {
	e := NewEncrypter()
	assert.Nil(t, e.Error)
	assert.Empty(t, e.ToRawBytes())
}

func TestEncrypter_FromString(t *testing.T) {
	t.Run("non-empty string", func(t *testing.T) {
		e := NewEncrypter().FromString("hello world")
		assert.Equal(t, []byte("hello world"), e.src)
	})

	t.Run("empty string", func(t *testing.T) {
		e := NewEncrypter().FromString("")
		assert.Empty(t, e.src)
	})
}

func TestEncrypter_FromBytes(t *testing.T) {
	t.Run("non-empty bytes", func(t *testing.T) {
		e := NewEncrypter().FromBytes([]byte("hello world"))
		assert.Equal(t, []byte("hello world"), e.src)
	})

	t.Run("nil bytes", func(t *testing.T) {
		e := NewEncrypter().FromBytes(nil)
		assert.Nil(t, e.src)
	})
}

func TestEncrypter_FromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "encrypter-raw-*")
	assert.NoError(t, err)
	_, err = f.WriteString("plaintext bytes")
	assert.NoError(t, err)
	_, err = f.Seek(0, 0)
	assert.NoError(t, err)
	defer f.Close()

	e := NewEncrypter().FromFile(f)
	assert.NotNil(t, e.reader)
}

func TestEncrypter_ToRawString_ToRawBytes(t *testing.T) {
	e := NewEncrypter()
	e.dst = []byte("ciphertext")

	assert.Equal(t, "ciphertext", e.ToRawString())
	assert.Equal(t, []byte("ciphertext"), e.ToRawBytes())
}
