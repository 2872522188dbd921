// Package tokenseal encrypts refresh tokens before they reach durable storage.
package tokenseal

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var ErrMalformed = errors.New("tokenseal: malformed sealed token")

// Sealer seals and opens stored token values.
type Sealer interface {
	Seal(plain string) (string, error)
	Open(sealed string) (string, error)
}

// SecretBox seals with NaCl secretbox under a key derived from a passphrase.
type SecretBox struct {
	key [32]byte
}

// NewSecretBox derives a 256-bit key from passphrase.
func NewSecretBox(passphrase string) (*SecretBox, error) {
	if passphrase == "" {
		return nil, errors.New("tokenseal: empty passphrase")
	}
	return &SecretBox{key: sha256.Sum256([]byte(passphrase))}, nil
}

// Seal returns base64(nonce || box).
func (s *SecretBox) Seal(plain string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("tokenseal: nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plain), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

func (s *SecretBox) Open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrMalformed
	}

	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrMalformed
	}
	return string(plain), nil
}

// Plain stores tokens as-is. Used when no seal key is configured.
type Plain struct{}

func (Plain) Seal(plain string) (string, error) { return plain, nil }

func (Plain) Open(sealed string) (string, error) { return sealed, nil }

// New returns a SecretBox for a non-empty passphrase and Plain otherwise.
func New(passphrase string) (Sealer, error) {
	if passphrase == "" {
		return Plain{}, nil
	}
	return NewSecretBox(passphrase)
}
