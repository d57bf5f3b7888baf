package service

import (
	"context"

	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles guardian account registration, credential verification,
// and the JWT token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account. The AuthHash field of the input
	// carries the plaintext password and is replaced by its argon2id hash
	// before persistence.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates an existing account by login and password.
	Login(ctx context.Context, user models.User) (models.User, error)

	// CreateToken issues a signed JWT for the given account.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw JWT string and extracts the account id.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// LedgerService owns record submission and all plaintext-side reads: revealed
// projections, record listings, and the label index.
type LedgerService interface {
	// Submit stores a new encrypted record for ownerID after checking that
	// all three handles refer to live ciphertexts. Returns the record with
	// its assigned identifier.
	Submit(ctx context.Context, ownerID int64, request models.SubmitRequest) (models.EncryptedRecord, error)

	// GetRevealed returns the plaintext projection of a record owned by
	// ownerID. Unrevealed records yield a projection with Revealed=false.
	GetRevealed(ctx context.Context, ownerID, recordID int64) (models.RevealedRecord, error)

	// ListRecords returns the caller's record projections matching filter.
	ListRecords(ctx context.Context, filter store.RecordFilter) ([]models.RecordListItem, error)

	// ListLabels returns every preference label revealed so far, in
	// first-seen order. Counts stay encrypted and are not included.
	ListLabels(ctx context.Context) ([]string, error)
}

// DecryptionService is the correlator: it schedules oracle decryptions,
// records the pending correlation, and lets requesters reclaim stalled ones.
type DecryptionService interface {
	// RequestRecordDecryption schedules the decryption of a record owned by
	// ownerID and returns the oracle request identifier. Already-revealed
	// records are rejected with [store.ErrAlreadyRevealed].
	RequestRecordDecryption(ctx context.Context, ownerID, recordID int64) (string, error)

	// RequestLabelCountDecryption schedules the decryption of the aggregate
	// count for a known label and returns the oracle request identifier.
	RequestLabelCountDecryption(ctx context.Context, label string) (string, error)

	// CancelDecryption transitions an open correlation owned by ownerID to
	// the cancelled state; any later callback for it is rejected.
	CancelDecryption(ctx context.Context, ownerID int64, requestID string) error
}

// RevealService processes oracle callbacks. It implements
// [crypto.RevealSink]; the HTTP callback endpoints delegate to it as well.
type RevealService interface {
	// OnRecordDecrypted applies a record-reveal callback: correlation and
	// attestation checks, plaintext decode, and the atomic commit of the
	// projection plus the homomorphic count increment.
	OnRecordDecrypted(ctx context.Context, requestID string, plaintexts []string, attestation string) error

	// OnCountDecrypted applies a count-reveal callback and returns the
	// decrypted aggregate for the label the request concerned.
	OnCountDecrypted(ctx context.Context, requestID string, count string, attestation string) (models.CountRevealedResponse, error)
}
