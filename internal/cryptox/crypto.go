// Package cryptox seals short secrets, such as third-party API keys, for
// storage at rest with AES-256-GCM.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// SealedPrefix marks a value produced by Seal.
const SealedPrefix = "enc:v1:"

var ErrMalformed = errors.New("malformed sealed value")

// DeriveKey stretches a passphrase into a 32-byte AES key with Argon2id.
func DeriveKey(passphrase []byte, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// Sealer encrypts and decrypts strings with one key. It is safe for
// concurrent use.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer accepts a 16, 24 or 32 byte AES key.
func NewSealer(key []byte) (*Sealer, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Sealer{aead: aead}, nil
}

// Seal returns SealedPrefix followed by base64(nonce || ciphertext). The
// empty string and values this sealer can already open are returned
// unchanged; anything else, including plaintext that merely starts with
// SealedPrefix, is sealed.
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return plaintext, nil
	}
	if IsSealed(plaintext) {
		if _, err := s.Open(plaintext); err == nil {
			return plaintext, nil
		}
	}

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	out := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return SealedPrefix + base64.RawStdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Values without SealedPrefix were stored before
// encryption was enabled and are returned as is.
func (s *Sealer) Open(value string) (string, error) {
	raw, ok := strings.CutPrefix(value, SealedPrefix)
	if !ok {
		return value, nil
	}

	data, err := base64.RawStdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	n := s.aead.NonceSize()
	if len(data) < n+s.aead.Overhead() {
		return "", ErrMalformed
	}

	plaintext, err := s.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return string(plaintext), nil
}

// IsSealed reports whether value carries SealedPrefix.
func IsSealed(value string) bool {
	return strings.HasPrefix(value, SealedPrefix)
}
