package store

import (
	"context"

	"github.com/dkhalitov/go-cipher-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// RecordFilter narrows a record listing. The zero value matches everything
// owned by OwnerID.
type RecordFilter struct {
	// OwnerID restricts results to one account. Required.
	OwnerID int64

	// IDs restricts results to specific record identifiers when non-empty.
	IDs []int64

	// RevealedOnly drops records whose plaintext projection has not been
	// committed yet.
	RevealedOnly bool
}

// RecordRepository owns the encrypted records, their plaintext projections,
// and the atomic reveal commit that ties both to the aggregate counts.
type RecordRepository interface {
	// SaveRecord persists a new encrypted record together with its empty
	// plaintext projection and fills in the assigned ID and CreatedAt.
	SaveRecord(ctx context.Context, record *models.EncryptedRecord) error

	// GetRecord returns the encrypted record with the given id or
	// [ErrRecordNotFound].
	GetRecord(ctx context.Context, id int64) (models.EncryptedRecord, error)

	// GetRevealed returns the plaintext projection for id or
	// [ErrRecordNotFound] when the id was never assigned. An unrevealed
	// projection is a valid result with Revealed=false.
	GetRevealed(ctx context.Context, id int64) (models.RevealedRecord, error)

	// ListRecords returns projections matching the filter together with
	// their submission timestamps, ordered by record id.
	ListRecords(ctx context.Context, filter RecordFilter) ([]models.RecordListItem, error)

	// CommitReveal applies a record-reveal callback atomically: finalizes
	// the pending entry, writes the plaintext projection, and creates or
	// replaces the encrypted label count. Fails with [ErrAlreadyRevealed]
	// (first writer wins) or [ErrPendingNotFound] without partial effects.
	CommitReveal(ctx context.Context, commit models.RevealCommit) error
}

// PendingRepository tracks issued decryption requests. Entries are finalized
// in place and never physically removed, so every request identifier the
// correlator ever issued stays resolvable.
type PendingRepository interface {
	// SavePending records a freshly issued request correlation.
	SavePending(ctx context.Context, pending models.PendingDecryption) error

	// GetPending resolves a request identifier or returns
	// [ErrPendingNotFound].
	GetPending(ctx context.Context, requestID string) (models.PendingDecryption, error)

	// MarkPending transitions an open entry to done or cancelled. Returns
	// [ErrPendingNotFound] for unknown identifiers and [ErrPendingNotOpen]
	// when the entry has already left the open state.
	MarkPending(ctx context.Context, requestID string, status models.PendingStatus) error

	// ListOpenPending returns every entry still in the open state, used by
	// the expiry sweeper.
	ListOpenPending(ctx context.Context) ([]models.PendingDecryption, error)
}

// LabelRepository reads the encrypted per-label counts and the label index.
// Writes happen only through [RecordRepository.CommitReveal].
type LabelRepository interface {
	// GetLabelCount returns the count entry for a plaintext label or
	// [ErrLabelNotFound].
	GetLabelCount(ctx context.Context, label string) (models.LabelCount, error)

	// GetLabelByHash resolves a label hash back to its count entry or
	// returns [ErrLabelNotFound]. Backed by a unique index, not a scan.
	GetLabelByHash(ctx context.Context, labelHash string) (models.LabelCount, error)

	// ListLabels returns every label ever revealed, in first-seen order.
	ListLabels(ctx context.Context) ([]models.LabelCount, error)
}

// UserRepository persists guardian accounts.
type UserRepository interface {
	// CreateUser persists a new account and returns it with the assigned
	// UserID, or [ErrLoginAlreadyExists].
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the account with the given login or
	// [ErrNoUserWasFound].
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}
