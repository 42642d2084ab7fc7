package crypto

import (
	"bytes"
	"io"
	"io/fs"

	"github.com/dromara/chacha20poly1305/utils"
)

// Encrypter is the fluent entry point for encryption. A caller loads the
// plaintext with one of the From* methods, drives it through ByChaCha20 or
// ByChaCha20Poly1305, and reads the result back out with ToString/ToBytes.
type Encrypter struct {
	src    []byte
	dst    []byte
	reader io.Reader
	Error  error
}

// NewEncrypter returns a new Encrypter instance.
func NewEncrypter() *Encrypter {
	return &Encrypter{}
}

// FromString encrypts from string.
func (e *Encrypter) FromString(s string) *Encrypter {
	e.src = utils.String2Bytes(s)
	return e
}

// FromBytes encrypts from byte slice.
func (e *Encrypter) FromBytes(b []byte) *Encrypter {
	e.src = b
	return e
}

// FromFile encrypts from file.
func (e *Encrypter) FromFile(f fs.File) *Encrypter {
	e.reader = f
	return e
}

// ToRawString outputs as raw string without encoding.
func (e *Encrypter) ToRawString() string {
	return utils.Bytes2String(e.dst)
}

// ToRawBytes outputs as raw byte slice without encoding.
func (e *Encrypter) ToRawBytes() []byte {
	return e.dst
}

func (e *Encrypter) stream(fn func(io.Writer) io.WriteCloser) ([]byte, error) {
	var result bytes.Buffer

	encrypter := fn(&result)
	defer encrypter.Close()

	buffer := make([]byte, BufferSize)
	for {
		n, readErr := e.reader.Read(buffer)
		if n > 0 {
			if _, writeErr := encrypter.Write(buffer[:n]); writeErr != nil {
				return nil, writeErr
			}
		}
		if readErr != nil {
			if readErr == io.EOF {
				break
			}
			return nil, readErr
		}
	}

	return result.Bytes(), nil
}
