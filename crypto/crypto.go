// Package crypto provides a fluent builder API over this module's ChaCha20 and
// ChaCha20-Poly1305 AEAD implementations, exposing both one-shot Encrypt/Decrypt
// operations and streaming io.Writer/io.Reader wrappers through Encrypter and
// Decrypter.
package crypto

// BufferSize buffer size for streaming (4KB)
var BufferSize = 4096
