// ABOUTME: Derives the vault encryption key from the user password
// ABOUTME: PBKDF2-HMAC-SHA256, 100k iterations, fixed application salt
package crypto

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// kdfIterations matches the original vault format; changing it
	// invalidates every existing store.
	kdfIterations = 100_000
	keyLen        = 32
)

// kdfSalt is fixed application-wide so the same password always yields
// the same key. Kept for compatibility with existing vault files; a
// per-store random salt would require a format migration.
var kdfSalt = []byte("mindvault_kdf_salt")

// DeriveKey deterministically derives a 32-byte AES key from a password.
// Any password is accepted; a wrong one only surfaces later as a
// decryption failure.
func DeriveKey(password string) []byte {
	return pbkdf2.Key([]byte(password), kdfSalt, kdfIterations, keyLen, sha256.New)
}
