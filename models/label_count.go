package models

// LabelCount holds the encrypted running count of reveals for one preference
// label. The count is created lazily at the first reveal of the label,
// initialized to an encrypted zero, and incremented homomorphically by an
// encrypted one per reveal; the server never sees the plaintext count.
type LabelCount struct {
	// Label is the plaintext preference label. Labels are learned from
	// record reveals, so holding them in plaintext leaks nothing new.
	Label string `json:"label"`

	// LabelHash is the hex SHA-256 of Label, used to resolve count-reveal
	// callbacks back to the label they concern.
	LabelHash string `json:"label_hash"`

	// Count is the encrypted running count.
	Count CiphertextHandle `json:"count_ct"`

	// Position is the zero-based insertion order of the label; ordering
	// LabelCount rows by Position yields the label index.
	Position int `json:"position"`
}

// TableName returns the name of the database table
// associated with the LabelCount model.
func (l LabelCount) TableName() string {
	return "label_counts"
}
