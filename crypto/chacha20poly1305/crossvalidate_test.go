package chacha20poly1305

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xchacha20poly1305 "golang.org/x/crypto/chacha20poly1305"
)

// TestCrossValidateAgainstXCrypto checks the from-scratch AEAD composer
// against golang.org/x/crypto/chacha20poly1305's reference implementation
// over random keys, nonces, and message/AAD sizes: both must seal to the
// same bytes, and each must accept the other's sealed output.
func TestCrossValidateAgainstXCrypto(t *testing.T) {
	sizes := []int{0, 1, 15, 16, 17, 63, 64, 65, 1024}

	for _, size := range sizes {
		key := make([]byte, KeySize)
		nonce := make([]byte, NonceSize)
		plaintext := make([]byte, size)
		aad := make([]byte, size%32)
		_, err := rand.Read(key)
		require.NoError(t, err)
		_, err = rand.Read(nonce)
		require.NoError(t, err)
		_, err = rand.Read(plaintext)
		require.NoError(t, err)
		_, err = rand.Read(aad)
		require.NoError(t, err)

		ours, err := newAEAD(key)
		require.NoError(t, err)
		theirs, err := xchacha20poly1305.New(key)
		require.NoError(t, err)

		ourSealed, err := ours.Seal(nil, nonce, plaintext, aad)
		require.NoError(t, err, "size %d: our Seal must not fail", size)
		theirSealed := theirs.Seal(nil, nonce, plaintext, aad)
		assert.Equal(t, theirSealed, ourSealed, "size %d: sealed output must match reference", size)

		theirOpened, err := theirs.Open(nil, nonce, ourSealed, aad)
		require.NoError(t, err, "size %d: reference must accept our sealed output", size)
		assert.Equal(t, plaintext, theirOpened)

		ourOpened, err := ours.Open(nil, nonce, theirSealed, aad)
		require.NoError(t, err, "size %d: we must accept reference's sealed output", size)
		assert.Equal(t, plaintext, ourOpened)
	}
}
