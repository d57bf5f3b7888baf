package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// LabelHash returns the hex-encoded SHA-256 of a preference label. Pending
// count-decryption entries store this hash instead of the label so the
// correlation table stays fixed-width, and the label-count store resolves it
// back through a unique index rather than a linear scan.
func LabelHash(label string) string {
	sum := sha256.Sum256([]byte(label))
	return hex.EncodeToString(sum[:])
}

// HashString computes an HMAC-SHA256 signature over data using hashKey and
// returns it hex-encoded. Used by the local attestation scheme to sign and
// verify decryption callbacks.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashBytes([]byte(data), hashKey))
}

// HashEqual compares two hex-encoded HMAC digests in constant time.
func HashEqual(a, b string) bool {
	ab, errA := hex.DecodeString(a)
	bb, errB := hex.DecodeString(b)
	if errA != nil || errB != nil {
		return false
	}
	return hmac.Equal(ab, bb)
}

// hashBytes computes a raw HMAC-SHA256 digest over data using hashKey.
func hashBytes(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}
