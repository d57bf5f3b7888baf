package crypto

import (
	"errors"
	"strings"

	"github.com/dkhalitov/go-cipher-ledger/internal/utils"
)

// ErrAttestationMismatch is returned when a callback attestation does not
// verify against the request identifier and plaintexts it claims to cover.
var ErrAttestationMismatch = errors.New("attestation does not match plaintexts")

// attestationSeparator joins the request id and plaintexts into the signed
// payload. The unit separator cannot occur in decimal plaintexts and is
// rejected in labels at the encryption boundary, so the encoding is
// unambiguous.
const attestationSeparator = "\x1f"

// Attest computes the HMAC-SHA256 attestation the local oracle attaches to a
// callback: a keyed signature over the request identifier and the plaintexts
// in delivery order. Exported so tests can forge valid callbacks against a
// known key.
func Attest(key, requestID string, plaintexts []string) string {
	payload := requestID + attestationSeparator + strings.Join(plaintexts, attestationSeparator)
	return utils.HashString(payload, key)
}

// verifyAttestation recomputes the expected attestation and compares it in
// constant time.
func verifyAttestation(key, requestID string, plaintexts []string, attestation string) error {
	if !utils.HashEqual(Attest(key, requestID, plaintexts), attestation) {
		return ErrAttestationMismatch
	}
	return nil
}
