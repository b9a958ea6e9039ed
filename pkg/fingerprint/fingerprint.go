// Package fingerprint computes and compares SHA-256 fingerprints of kernel
// artefacts such as ciphertexts, digests and compressed streams.
package fingerprint

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Of returns the hex-encoded SHA-256 of data.
func Of(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Hex encodes a raw digest as lowercase hex.
func Hex(digest []byte) string {
	return hex.EncodeToString(digest)
}

// Equal compares two hex strings in constant time, ignoring case.
func Equal(actual, expected string) bool {
	a := strings.ToLower(actual)
	e := strings.ToLower(expected)
	return subtle.ConstantTimeCompare([]byte(a), []byte(e)) == 1
}

// Short returns the first 12 characters of a fingerprint for display.
func Short(fp string) string {
	if len(fp) <= 12 {
		return fp
	}
	return fp[:12]
}
