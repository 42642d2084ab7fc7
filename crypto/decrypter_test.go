package crypto

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDecrypter(t *testing.T) {
	d := NewDecrypter()
	assert.Nil(t, d.Error)
	assert.Empty(t, d.ToBytes())
}

func TestDecrypter_FromRawString(t *testing.T) {
	t.Run("non-empty string", func(t *testing.T) {
		d := NewDecrypter().FromRawString("hello world")
		assert.Equal(t, []byte("hello world"), d.src)
	})

	t.Run("empty string", func(t *testing.T) {
		d := NewDecrypter().FromRawString("")
		assert.Empty(t, d.src)
	})
}

func TestDecrypter_FromRawBytes(t *testing.T) {
	t.Run("non-empty bytes", func(t *testing.T) {
		d := NewDecrypter().FromRawBytes([]byte("hello world"))
		assert.Equal(t, []byte("hello world"), d.src)
	})

	t.Run("nil bytes", func(t *testing.T) {
		d := NewDecrypter().FromRawBytes(nil)
		assert.Nil(t, d.src)
	})
}

func TestDecrypter_FromRawFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "decrypter-raw-*")
	assert.NoError(t, err)
	_, err = f.WriteString("ciphertext bytes")
	assert.NoError(t, err)
	_, err = f.Seek(0, 0)
	assert.NoError(t, err)
	defer f.Close()

	d := NewDecrypter().FromRawFile(f)
	assert.NotNil(t, d.reader)
}

func TestDecrypter_ToString_ToBytes(t *testing.T) {
	d := NewDecrypter()
	d.dst = []byte("plaintext")

	assert.Equal(t, "plaintext", d.ToString())
	assert.Equal(t, []byte("plaintext"), d.ToBytes())
}

func TestDecrypter_ToBytes_empty(t *testing.T) {
	d := NewDecrypter()
	assert.Equal(t, []byte{}, d.ToBytes())
}
