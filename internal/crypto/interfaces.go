// Package crypto models the two external cryptographic capabilities the
// ledger core depends on: arithmetic over encrypted integers and the
// decryption oracle. Both are interfaces so that the core never hard-wires a
// particular scheme; the bundled local backend implements them
// deterministically for tests, development, and demos.
package crypto

import (
	"context"

	"github.com/dkhalitov/go-cipher-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/crypto_mock.go -package=mock

// Arithmetic performs homomorphic operations on opaque ciphertext handles.
// The ledger only ever needs encrypted constants and addition: label counts
// start at an encrypted zero and grow by an encrypted one per reveal.
type Arithmetic interface {
	// Zero returns a fresh handle encrypting the integer 0.
	Zero(ctx context.Context) (models.CiphertextHandle, error)

	// One returns a fresh handle encrypting the integer 1.
	One(ctx context.Context) (models.CiphertextHandle, error)

	// Add returns a fresh handle encrypting the sum of the two operands.
	// Operands are not consumed and stay valid.
	Add(ctx context.Context, a, b models.CiphertextHandle) (models.CiphertextHandle, error)

	// IsInitialized reports whether the handle refers to a live ciphertext
	// known to the backend.
	IsInitialized(ctx context.Context, ct models.CiphertextHandle) (bool, error)
}

// DecryptionOracle schedules asynchronous decryptions and verifies the
// attestations that accompany the resulting callbacks. Scheduling returns
// immediately with a request identifier; the plaintext arrives later — at an
// arbitrary delay, possibly never — through the reveal-handler endpoints.
type DecryptionOracle interface {
	// ScheduleDecryption asks the oracle to decrypt the given handles and
	// deliver the result to the callback path selected by kind. The returned
	// request identifier correlates the eventual callback.
	ScheduleDecryption(ctx context.Context, handles []models.CiphertextHandle, kind models.CallbackKind) (string, error)

	// VerifyAttestation checks that attestation proves plaintexts were
	// genuinely computed by the oracle for the given request. This is the
	// sole trust boundary of the reveal path.
	VerifyAttestation(requestID string, plaintexts []string, attestation string) error
}

// RevealSink receives oracle callbacks. It is implemented by the reveal
// service and consumed by the local dispatcher; a production oracle posts to
// the equivalent HTTP endpoints instead.
type RevealSink interface {
	OnRecordDecrypted(ctx context.Context, requestID string, plaintexts []string, attestation string) error
	OnCountDecrypted(ctx context.Context, requestID string, count string, attestation string) (models.CountRevealedResponse, error)
}
