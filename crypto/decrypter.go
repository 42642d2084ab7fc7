package crypto

import (
	"bytes"
	"io"
	"io/fs"

	"github.com/dromara/chacha20poly1305/utils"
)

// Decrypter is the fluent entry point for decryption. A caller loads the
// ciphertext with one of the From* methods, drives it through ByChaCha20 or
// ByChaCha20Poly1305, and reads the result back out with ToString/ToBytes.
type Decrypter struct {
	src    []byte
	dst    []byte
	reader io.Reader
	Error  error
}

// NewDecrypter returns a new Decrypter instance.
func NewDecrypter() Decrypter {
	return Decrypter{}
}

// FromRawString decrypts from raw string.
func (d Decrypter) FromRawString(s string) Decrypter {
	d.src = utils.String2Bytes(s)
	return d
}

// FromRawBytes decrypts from raw bytes.
func (d Decrypter) FromRawBytes(b []byte) Decrypter {
	d.src = b
	return d
}

// FromRawFile decrypts from raw file.
func (d Decrypter) FromRawFile(f fs.File) Decrypter {
	d.reader = f
	return d
}

// ToString outputs as string.
func (d Decrypter) ToString() string {
	return utils.Bytes2String(d.dst)
}

// ToBytes outputs as byte slice.
func (d Decrypter) ToBytes() []byte {
	if len(d.dst) == 0 {
		return []byte{}
	}
	return d.dst
}

func (d Decrypter) stream(fn func(io.Reader) io.Reader) ([]byte, error) {
	var buf bytes.Buffer
	decrypter := fn(d.reader)

	if _, err := io.CopyBuffer(&buf, decrypter, make([]byte, BufferSize)); err != nil && err != io.EOF {
		return []byte{}, err
	}
	if buf.Len() == 0 {
		return []byte{}, nil
	}
	return buf.Bytes(), nil
}
