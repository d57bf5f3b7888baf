package models

import "time"

type (
	// CiphertextHandle is an opaque reference to an encrypted integer or
	// label. The server never interprets its contents; all arithmetic and
	// decryption on handles is delegated to the crypto capability layer.
	CiphertextHandle string
)

// IsZero reports whether the handle is the empty sentinel, i.e. no
// ciphertext has been assigned yet.
func (c CiphertextHandle) IsZero() bool {
	return c == ""
}

// EncryptedRecord is a submitted behavioral record in encrypted form.
// Records are immutable once created and are never deleted; identifiers are
// assigned densely starting at 1, with 0 reserved as "no record".
type EncryptedRecord struct {
	// ID is the server-assigned record identifier.
	ID int64 `json:"id"`

	// OwnerID is the account that submitted the record. Record-scoped
	// operations are restricted to this owner.
	OwnerID int64 `json:"owner_id"`

	// Savings is the encrypted saved amount.
	Savings CiphertextHandle `json:"savings_ct"`

	// Spending is the encrypted spent amount.
	Spending CiphertextHandle `json:"spending_ct"`

	// Preference is the encrypted preference-label encoding.
	Preference CiphertextHandle `json:"preference_ct"`

	// CreatedAt is the submission timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the EncryptedRecord model.
func (e EncryptedRecord) TableName() string {
	return "records"
}

// RevealedRecord is the plaintext projection paired 1:1 with an
// EncryptedRecord. It is created empty (all zero values, Revealed=false) at
// submission time. The only legal mutation is the single transition
// Revealed false -> true performed by the reveal handler; once true the flag
// never goes back.
type RevealedRecord struct {
	// RecordID links back to the EncryptedRecord with the same identifier.
	RecordID int64 `json:"record_id"`

	// Savings is the decrypted saved amount. Zero until revealed.
	Savings uint64 `json:"savings"`

	// Spending is the decrypted spent amount. Zero until revealed.
	Spending uint64 `json:"spending"`

	// Label is the decrypted preference label. Empty until revealed.
	Label string `json:"label"`

	// Revealed reports whether the oracle callback for this record has been
	// processed. Absence of a record is also represented as Revealed=false.
	Revealed bool `json:"revealed"`

	// RevealedAt is the time the reveal was committed; zero until revealed.
	RevealedAt time.Time `json:"revealed_at,omitzero"`
}

// TableName returns the name of the database table
// associated with the RevealedRecord model.
func (r RevealedRecord) TableName() string {
	return "revealed_records"
}
