package kernel

import (
	"crypto/sha256"

	"github.com/yndnr/kernbench-go/pkg/crypto/aead"
)

const (
	payloadSize = 10000

	hashIterations    = 500
	encryptIterations = 500
)

// Payload returns a fresh copy of the 10,000-byte buffer shared by the hash,
// cipher and compression kernels. Byte i holds i mod 256.
func Payload() []byte {
	data := make([]byte, payloadSize)
	for i := range data {
		data[i] = byte(i % 256)
	}
	return data
}

// CipherKey returns the 32-byte key 0, 1, ..., 31 used by the cipher kernels.
func CipherKey() []byte {
	key := make([]byte, aead.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

// SHA256 hashes the payload 500 times, each with a fresh hash state.
func SHA256() {
	data := Payload()
	for i := 0; i < hashIterations; i++ {
		h := sha256.New()
		h.Write(data)
		_ = h.Sum(nil)
	}
}

// SHA256Digest returns the digest SHA256 computes on every iteration.
func SHA256Digest() []byte {
	h := sha256.New()
	h.Write(Payload())
	return h.Sum(nil)
}

// AESEncrypt seals the payload 500 times with AES-256-GCM under one key and
// one all-zero nonce.
//
// The nonce is reused on every iteration. This measures throughput only and
// must stay that way to keep the work identical to other ports.
func AESEncrypt() {
	c := mustAESGCM()
	data := Payload()
	nonce := make([]byte, c.NonceSize())
	for i := 0; i < encryptIterations; i++ {
		if _, err := c.SealFixed(nil, nonce, data, nil); err != nil {
			panic(err)
		}
	}
}

// AESCiphertext returns ciphertext||tag produced by one AESEncrypt iteration.
func AESCiphertext() []byte {
	c := mustAESGCM()
	out, err := c.SealFixed(nil, make([]byte, c.NonceSize()), Payload(), nil)
	if err != nil {
		panic(err)
	}
	return out
}

func mustAESGCM() *aead.Cipher {
	c, err := aead.New(aead.AESGCM, CipherKey())
	if err != nil {
		panic("kernel: " + err.Error())
	}
	return c
}
