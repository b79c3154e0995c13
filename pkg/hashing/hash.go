package hashing

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// FingerprintLength is the number of hex characters kept from the digest
const FingerprintLength = 8

// Fingerprint returns a short, stable identifier for a secret so two
// environments can be compared without printing the secret itself.
// Formula: hex(BLAKE2b-256(value))[:8]
func Fingerprint(value string) string {
	sum := blake2b.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])[:FingerprintLength]
}
