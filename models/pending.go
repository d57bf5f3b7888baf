package models

import "time"

// CallbackKind selects which reveal path an oracle callback targets.
type CallbackKind string

const (
	// RecordCallback marks a decryption of a full record (savings, spending,
	// preference label).
	RecordCallback CallbackKind = "record"

	// CountCallback marks a decryption of a single aggregate label count.
	CountCallback CallbackKind = "count"
)

// PendingStatus is the lifecycle state of a pending decryption entry.
type PendingStatus string

const (
	// PendingOpen means the request has been issued and no callback has been
	// accepted yet.
	PendingOpen PendingStatus = "pending"

	// PendingDone means the matching callback has been processed. Entries
	// are finalized in place, never physically removed.
	PendingDone PendingStatus = "done"

	// PendingCancelled means the requester reclaimed a stalled correlation;
	// any later callback for the request is rejected.
	PendingCancelled PendingStatus = "cancelled"
)

// PendingDecryption correlates an oracle-issued request identifier with the
// target it concerns: either a record or an aggregate label count. A request
// identifier resolves to at most one target.
type PendingDecryption struct {
	// RequestID is the identifier returned by the oracle when the
	// decryption was scheduled.
	RequestID string `json:"request_id"`

	// Kind distinguishes record-reveal from count-reveal correlations.
	Kind CallbackKind `json:"kind"`

	// RecordID is the target record for RecordCallback entries; 0 otherwise.
	RecordID int64 `json:"record_id,omitempty"`

	// LabelHash is the target aggregate for CountCallback entries, stored as
	// the hex SHA-256 of the label; empty otherwise.
	LabelHash string `json:"label_hash,omitempty"`

	// Status tracks the entry lifecycle; see the PendingStatus constants.
	Status PendingStatus `json:"status"`

	// IssuedAt is when the request was scheduled. Entries older than the
	// configured request TTL are treated as expired.
	IssuedAt time.Time `json:"issued_at"`
}

// TableName returns the name of the database table
// associated with the PendingDecryption model.
func (p PendingDecryption) TableName() string {
	return "pending_decryptions"
}

// Expired reports whether the entry was issued more than ttl ago at instant
// now. A non-positive ttl disables expiry.
func (p PendingDecryption) Expired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(p.IssuedAt) > ttl
}

// RevealCommit bundles everything the store must apply atomically when a
// record-reveal callback is accepted: the plaintext projection, the pending
// entry to finalize, and the new encrypted count for the revealed label.
// Either all of it is written or none of it is.
type RevealCommit struct {
	// RequestID is the pending entry being finalized.
	RequestID string

	// Revealed is the full plaintext projection to persist, with
	// Revealed=true already set.
	Revealed RevealedRecord

	// Label is the revealed preference label whose count was incremented.
	Label string

	// LabelHash is the hex SHA-256 of Label.
	LabelHash string

	// Count is the updated encrypted running count for Label.
	Count CiphertextHandle

	// NewLabel indicates Label has never been seen before: the store must
	// create the label-count row and append the label to the index.
	NewLabel bool
}
