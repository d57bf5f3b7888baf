package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrNotRecordOwner is returned when a record-scoped operation is
	// attempted by an account other than the record's submitter.
	ErrNotRecordOwner = errors.New("record belongs to another account")

	// ErrUnknownRequest is returned for a callback whose request identifier
	// does not resolve to an open correlation of the matching kind.
	ErrUnknownRequest = errors.New("unknown decryption request")

	// ErrRequestExpired is returned for a callback whose correlation was
	// cancelled or outlived the configured request TTL.
	ErrRequestExpired = errors.New("decryption request expired or cancelled")

	// ErrInvalidAttestation is returned when a callback's attestation does
	// not verify. Nothing observable changes when this happens.
	ErrInvalidAttestation = errors.New("attestation verification failed")

	// ErrMalformedPlaintext is returned when a verified callback carries
	// plaintexts the ledger cannot decode.
	ErrMalformedPlaintext = errors.New("malformed callback plaintext")

	// ErrHandleNotInitialized is returned at submission time when a
	// ciphertext handle does not refer to a live ciphertext.
	ErrHandleNotInitialized = errors.New("ciphertext handle is not initialized")
)
