package adapter

import "errors"

// Sentinel errors mapped from HTTP status codes by mapHTTPError.
var (
	// ErrUnauthorized corresponds to 401: missing, expired, or invalid
	// credentials.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrForbidden corresponds to 403: the record belongs to another account.
	ErrForbidden = errors.New("access to record denied")

	// ErrNotFound corresponds to 404: unknown record, label, or request.
	ErrNotFound = errors.New("not found")

	// ErrConflict corresponds to 409: the record is already revealed.
	ErrConflict = errors.New("already revealed")
)
