// Package cryptox implements the symmetric encryption layer behind chronicle
// sync: AES-GCM over a 32-byte key, with argon2id derivation for
// passphrase-based keys.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// ErrAuthentication indicates a wrong key, a tampered token or a malformed
// token. Decrypt never returns garbage plaintext; it returns this instead.
var ErrAuthentication = errors.New("authentication failed")

const (
	keySize   = 32
	saltSize  = 16
	nonceSize = 12
)

// GenerateKey produces a fresh random 256-bit key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %w", err)
	}
	return key, nil
}

// GenerateSalt produces a random 16-byte salt for DeriveKey.
func GenerateSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// DeriveKey derives a 256-bit key from a passphrase and salt using argon2id.
// Same inputs always yield the same key, so two devices sharing a passphrase
// and salt derive the same sync key.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, keySize)
}

// Encrypt seals plaintext with AES-GCM under key and returns an opaque token:
// base64url(nonce || ciphertext). The token is ASCII and contains no newline,
// so it is safe to store one per line in the remote blob.
func Encrypt(plaintext string, key []byte) (string, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aesgcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. It fails with ErrAuthentication when the key is
// wrong or the token has been tampered with.
func Decrypt(token string, key []byte) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: malformed token", ErrAuthentication)
	}
	if len(raw) < nonceSize {
		return "", fmt.Errorf("%w: token too short", ErrAuthentication)
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	plaintext, err := aesgcm.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthentication, err)
	}
	return string(plaintext), nil
}

// WipeKey overwrites key material with zeros. Nil-safe.
func WipeKey(key []byte) {
	for i := range key {
		key[i] = 0
	}
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return aesgcm, nil
}
