// Package aead seals kernel payloads with AES-256-GCM or
// ChaCha20-Poly1305 under a caller-supplied nonce.
//
// The throughput kernels seal the same plaintext under one fixed nonce on
// every iteration so the measured work is identical across runs. Nonce
// reuse is unsafe for real traffic; nothing here generates nonces.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// Algorithm names an AEAD construction.
type Algorithm string

const (
	AESGCM           Algorithm = "aes-256-gcm"
	ChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

// KeySize is the key length of both algorithms.
const KeySize = 32

var (
	ErrKeySize   = errors.New("aead: key must be 32 bytes")
	ErrNonceSize = errors.New("aead: wrong nonce size")
)

// Cipher seals and opens under explicit nonces.
type Cipher struct {
	alg  Algorithm
	aead cipher.AEAD
}

// New creates a cipher for alg.
func New(alg Algorithm, key []byte) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, ErrKeySize
	}

	var (
		a   cipher.AEAD
		err error
	)
	switch alg {
	case AESGCM:
		var block cipher.Block
		if block, err = aes.NewCipher(key); err == nil {
			a, err = cipher.NewGCM(block)
		}
	case ChaCha20Poly1305:
		a, err = chacha20poly1305.New(key)
	default:
		return nil, fmt.Errorf("aead: unknown algorithm %q", alg)
	}
	if err != nil {
		return nil, err
	}
	return &Cipher{alg: alg, aead: a}, nil
}

// Algorithm returns the construction the cipher was built with.
func (c *Cipher) Algorithm() Algorithm { return c.alg }

// NonceSize returns the nonce size in bytes.
func (c *Cipher) NonceSize() int { return c.aead.NonceSize() }

// Overhead returns the tag size in bytes.
func (c *Cipher) Overhead() int { return c.aead.Overhead() }

// SealFixed appends ciphertext||tag for plaintext under nonce to dst.
func (c *Cipher) SealFixed(dst, nonce, plaintext, additionalData []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, ErrNonceSize
	}
	return c.aead.Seal(dst, nonce, plaintext, additionalData), nil
}

// OpenFixed reverses SealFixed.
func (c *Cipher) OpenFixed(dst, nonce, ciphertext, additionalData []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, ErrNonceSize
	}
	return c.aead.Open(dst, nonce, ciphertext, additionalData)
}
