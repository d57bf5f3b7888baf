package models

import "time"

// SubmitRequest is the inbound payload for submitting a new encrypted
// record. All three handles must be present; the server stores them opaquely.
type SubmitRequest struct {
	// Savings is the encrypted saved amount.
	Savings CiphertextHandle `json:"savings_ct"`

	// Spending is the encrypted spent amount.
	Spending CiphertextHandle `json:"spending_ct"`

	// Preference is the encrypted preference-label encoding.
	Preference CiphertextHandle `json:"preference_ct"`
}

// SubmitResponse returns the identifier assigned to a submitted record.
type SubmitResponse struct {
	ID int64 `json:"id"`
}

// DecryptionResponse returns the oracle-issued request identifier for a
// scheduled decryption so the caller can correlate the eventual reveal.
type DecryptionResponse struct {
	RequestID string `json:"request_id"`
}

// RecordCallbackRequest is the payload the decryption oracle posts when a
// record decryption completes. Plaintexts arrive in submission order:
// savings, spending, preference label.
type RecordCallbackRequest struct {
	RequestID   string   `json:"request_id"`
	Plaintexts  []string `json:"plaintexts"`
	Attestation string   `json:"attestation"`
}

// CountCallbackRequest is the payload the decryption oracle posts when an
// aggregate label-count decryption completes.
type CountCallbackRequest struct {
	RequestID   string `json:"request_id"`
	Count       string `json:"count"`
	Attestation string `json:"attestation"`
}

// CountRevealedResponse surfaces a decrypted aggregate count to the caller
// that delivered the callback.
type CountRevealedResponse struct {
	Label string `json:"label"`
	Count uint64 `json:"count"`
}

// LabelListResponse lists every preference label seen so far, in first-seen
// order. Counts stay encrypted and are not included.
type LabelListResponse struct {
	Labels []string `json:"labels"`
}

// RecordListItem is one row of a record listing: the plaintext projection
// (zero values while unrevealed) plus the submission timestamp.
type RecordListItem struct {
	RevealedRecord

	CreatedAt time.Time `json:"created_at"`
}
