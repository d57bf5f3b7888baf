// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

// Package adapter provides transport-layer abstractions for communicating
// with the ledger server.
//
// The primary abstraction is [ServerAdapter], which decouples the CLI client
// from the underlying protocol. The package ships an HTTP/REST implementation
// ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling.
package adapter

import (
	"context"

	"github.com/dkhalitov/go-cipher-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the ledger
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful Register or Login.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account with the provided credentials. On
	// success it stores the returned bearer token via SetToken.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the account. On success it stores the returned
	// bearer token via SetToken.
	Login(ctx context.Context, user models.User) (models.Token, error)

	// Submit sends a new encrypted record and returns its assigned id.
	Submit(ctx context.Context, request models.SubmitRequest) (int64, error)

	// GetRevealed fetches the plaintext projection of one of the caller's
	// records. Unrevealed records come back with Revealed=false.
	GetRevealed(ctx context.Context, recordID int64) (models.RevealedRecord, error)

	// ListRecords fetches every record projection owned by the caller.
	ListRecords(ctx context.Context) ([]models.RecordListItem, error)

	// ListLabels fetches the label index in first-seen order.
	ListLabels(ctx context.Context) ([]string, error)

	// RequestRecordDecryption schedules the oracle decryption of a record
	// and returns the request identifier.
	RequestRecordDecryption(ctx context.Context, recordID int64) (string, error)

	// RequestCountDecryption schedules the oracle decryption of the
	// aggregate count for a label and returns the request identifier.
	RequestCountDecryption(ctx context.Context, label string) (string, error)

	// CancelDecryption reclaims a stalled decryption request.
	CancelDecryption(ctx context.Context, requestID string) error
}
