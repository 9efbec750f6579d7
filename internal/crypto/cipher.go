// ABOUTME: Authenticated encryption of text payloads stored in the vault
// ABOUTME: AES-256-GCM with the nonce prepended, base64-encoded as one opaque token
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// ErrDecrypt is returned when a token fails authentication. It is the
// only signal of a wrong password or a corrupted record.
var ErrDecrypt = errors.New("decryption failed")

// Codec encrypts and decrypts UTF-8 text under one derived key.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec builds a codec from a 32-byte key produced by DeriveKey.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("key must be %d bytes, got %d", keyLen, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{aead: aead}, nil
}

// Encrypt seals plaintext into a self-contained token: a fresh random
// nonce followed by the GCM ciphertext and tag, base64url-encoded so it
// can be stored as a single TEXT column.
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens a token produced by Encrypt. Any malformed or tampered
// token, or one sealed under a different key, yields ErrDecrypt.
func (c *Codec) Decrypt(token string) (string, error) {
	blob, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	ns := c.aead.NonceSize()
	if len(blob) < ns {
		return "", fmt.Errorf("%w: token too short", ErrDecrypt)
	}
	plaintext, err := c.aead.Open(nil, blob[:ns], blob[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plaintext), nil
}
