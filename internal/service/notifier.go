package service

import (
	"context"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
)

// Notifier receives reveal events. Notifications carry identifiers, labels,
// counts, and timestamps only — never record plaintexts.
type Notifier interface {
	// RecordSubmitted fires after a record is stored.
	RecordSubmitted(ctx context.Context, recordID int64, createdAt time.Time)

	// DecryptionRequested fires after a decryption is scheduled with the
	// oracle and its correlation persisted. recordID is 0 for count requests.
	DecryptionRequested(ctx context.Context, requestID string, recordID int64)

	// RecordRevealed fires after a record-reveal commit.
	RecordRevealed(ctx context.Context, recordID int64, revealedAt time.Time)

	// CountRevealed fires after a count-reveal callback is accepted.
	CountRevealed(ctx context.Context, label string, count uint64, revealedAt time.Time)
}

// logNotifier emits reveal events as structured log entries. It is the
// default sink; deployments that push events elsewhere wrap or replace it.
type logNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier constructs a [Notifier] writing to the given logger.
func NewLogNotifier(logger *logger.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) RecordSubmitted(ctx context.Context, recordID int64, createdAt time.Time) {
	logger.FromContext(ctx).Info().
		Str("event", "record_submitted").
		Int64("record_id", recordID).
		Time("created_at", createdAt).
		Msg("record submitted")
}

func (n *logNotifier) DecryptionRequested(ctx context.Context, requestID string, recordID int64) {
	logger.FromContext(ctx).Info().
		Str("event", "decryption_requested").
		Str("request_id", requestID).
		Int64("record_id", recordID).
		Msg("decryption requested")
}

func (n *logNotifier) RecordRevealed(ctx context.Context, recordID int64, revealedAt time.Time) {
	logger.FromContext(ctx).Info().
		Str("event", "record_revealed").
		Int64("record_id", recordID).
		Time("revealed_at", revealedAt).
		Msg("record revealed")
}

func (n *logNotifier) CountRevealed(ctx context.Context, label string, count uint64, revealedAt time.Time) {
	logger.FromContext(ctx).Info().
		Str("event", "count_revealed").
		Str("label", label).
		Uint64("count", count).
		Time("revealed_at", revealedAt).
		Msg("label count revealed")
}
