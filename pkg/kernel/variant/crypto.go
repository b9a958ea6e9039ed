package variant

import (
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/yndnr/kernbench-go/pkg/crypto/aead"
	"github.com/yndnr/kernbench-go/pkg/kernel"
)

const (
	hashIterations    = 500
	encryptIterations = 500
)

// ChaCha20Encrypt seals the payload 500 times with ChaCha20-Poly1305 under
// the kernel key and an all-zero nonce.
func ChaCha20Encrypt() {
	c := mustChaCha20()
	data := kernel.Payload()
	nonce := make([]byte, c.NonceSize())
	for i := 0; i < encryptIterations; i++ {
		if _, err := c.SealFixed(nil, nonce, data, nil); err != nil {
			panic(err)
		}
	}
}

// ChaCha20Ciphertext returns ciphertext||tag from one ChaCha20Encrypt iteration.
func ChaCha20Ciphertext() []byte {
	c := mustChaCha20()
	out, err := c.SealFixed(nil, make([]byte, c.NonceSize()), kernel.Payload(), nil)
	if err != nil {
		panic(err)
	}
	return out
}

func mustChaCha20() *aead.Cipher {
	c, err := aead.New(aead.ChaCha20Poly1305, kernel.CipherKey())
	if err != nil {
		panic("variant: " + err.Error())
	}
	return c
}

// BLAKE2bHash computes BLAKE2b-256 of the payload 500 times.
func BLAKE2bHash() {
	data := kernel.Payload()
	for i := 0; i < hashIterations; i++ {
		_ = blake2b.Sum256(data)
	}
}

// SHA3Hash computes SHA3-256 of the payload 500 times, each with a fresh
// hash state.
func SHA3Hash() {
	data := kernel.Payload()
	for i := 0; i < hashIterations; i++ {
		h := sha3.New256()
		h.Write(data)
		_ = h.Sum(nil)
	}
}
