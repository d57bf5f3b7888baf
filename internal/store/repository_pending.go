package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// pendingRepository is the PostgreSQL-backed implementation of
// [PendingRepository], executing all operations against the
// "pending_decryptions" table.
type pendingRepository struct {
	*DB
	logger *logger.Logger
}

// NewPendingRepository constructs a [PendingRepository] backed by the
// provided database connection and logger.
func NewPendingRepository(db *DB, logger *logger.Logger) PendingRepository {
	return &pendingRepository{
		DB:     db,
		logger: logger,
	}
}

// SavePending inserts a freshly issued request correlation.
func (p *pendingRepository) SavePending(ctx context.Context, pending models.PendingDecryption) error {
	log := logger.FromContext(ctx)

	recordID := sql.NullInt64{Int64: pending.RecordID, Valid: pending.RecordID != 0}
	labelHash := sql.NullString{String: pending.LabelHash, Valid: pending.LabelHash != ""}

	_, err := p.DB.ExecContext(ctx, savePendingQuery,
		pending.RequestID,
		pending.Kind,
		recordID,
		labelHash,
		pending.Status,
		pending.IssuedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "pendingRepository.SavePending").
			Str("request_id", pending.RequestID).
			Str("kind", string(pending.Kind)).
			Msg("failed to insert pending decryption")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// GetPending resolves a request identifier to its correlation entry.
func (p *pendingRepository) GetPending(ctx context.Context, requestID string) (models.PendingDecryption, error) {
	log := logger.FromContext(ctx)

	var pending models.PendingDecryption
	var recordID sql.NullInt64
	var labelHash sql.NullString

	err := p.DB.QueryRowContext(ctx, getPendingQuery, requestID).Scan(
		&pending.RequestID,
		&pending.Kind,
		&recordID,
		&labelHash,
		&pending.Status,
		&pending.IssuedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PendingDecryption{}, ErrPendingNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "pendingRepository.GetPending").
			Str("request_id", requestID).
			Msg("failed to query pending decryption")
		return models.PendingDecryption{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	pending.RecordID = recordID.Int64
	pending.LabelHash = labelHash.String

	return pending, nil
}

// ListOpenPending returns every correlation still in the open state, oldest
// first.
func (p *pendingRepository) ListOpenPending(ctx context.Context) ([]models.PendingDecryption, error) {
	log := logger.FromContext(ctx)

	rows, err := p.DB.QueryContext(ctx, listOpenPendingQuery)
	if err != nil {
		log.Err(err).
			Str("func", "pendingRepository.ListOpenPending").
			Msg("failed to query open pending decryptions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var open []models.PendingDecryption

	for rows.Next() {
		var pending models.PendingDecryption
		var recordID sql.NullInt64
		var labelHash sql.NullString

		if scanErr := rows.Scan(
			&pending.RequestID,
			&pending.Kind,
			&recordID,
			&labelHash,
			&pending.Status,
			&pending.IssuedAt,
		); scanErr != nil {
			log.Err(scanErr).
				Str("func", "pendingRepository.ListOpenPending").
				Msg("failed to scan pending row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		pending.RecordID = recordID.Int64
		pending.LabelHash = labelHash.String
		open = append(open, pending)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "pendingRepository.ListOpenPending").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return open, nil
}

// MarkPending transitions an open entry to the given status. The CTE result
// distinguishes a missing entry (current_status NULL) from one that has
// already been finalized or cancelled (updated_id NULL).
func (p *pendingRepository) MarkPending(ctx context.Context, requestID string, status models.PendingStatus) error {
	log := logger.FromContext(ctx)

	var currentStatus *string
	var updatedID *string

	err := p.DB.QueryRowContext(ctx, markPendingQuery, requestID, status).Scan(&currentStatus, &updatedID)
	if err != nil {
		log.Err(err).
			Str("func", "pendingRepository.MarkPending").
			Str("request_id", requestID).
			Msg("failed to execute pending transition query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// not found: target_entry empty -> both NULL
	if currentStatus == nil {
		log.Warn().
			Str("func", "pendingRepository.MarkPending").
			Str("request_id", requestID).
			Msg("pending entry not found")
		return ErrPendingNotFound
	}

	// found but not updated -> already done or cancelled
	if updatedID == nil {
		log.Warn().
			Str("func", "pendingRepository.MarkPending").
			Str("request_id", requestID).
			Str("current_status", *currentStatus).
			Msg("pending entry already left the open state")
		return ErrPendingNotOpen
	}

	log.Info().
		Str("func", "pendingRepository.MarkPending").
		Str("request_id", requestID).
		Str("status", string(status)).
		Msg("pending entry transitioned")

	return nil
}
