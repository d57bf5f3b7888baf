package models

import "time"

// User is a guardian account that submits encrypted records and requests
// reveals. Credential material never leaves the persistence boundary in a
// reversible form.
type User struct {
	// UserID is the internal unique identifier of the account, used as the
	// record owner on submission.
	UserID int64 `json:"-"`

	// Login is the unique login identifier used during authentication.
	Login string `json:"login"`

	// Name is the display name of the account. Non-sensitive.
	Name string `json:"name"`

	// AuthHash is the argon2id-derived credential verifier. It MUST be a
	// derived value, never a plaintext password.
	AuthHash string `json:"auth_hash"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
