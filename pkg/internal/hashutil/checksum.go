// Package hashutil provides the checksum primitives archive backends use
// to detect on-disk corruption.
package hashutil

import (
	"crypto/sha256"
	"encoding/hex"
)

// Checksum returns the hex-encoded SHA-256 digest of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Verify reports whether data matches the given hex-encoded digest.
func Verify(data []byte, expected string) bool {
	return Checksum(data) == expected
}
