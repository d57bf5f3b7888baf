package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It owns the "records" and "revealed_records" tables
// and, inside [recordRepository.CommitReveal], also writes "label_counts"
// and "pending_decryptions" so a reveal callback commits as one transaction.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so database interactions are traced with structured
// fields (record_id, request_id, label hash).
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the provided
// database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveRecord inserts the encrypted record and its empty plaintext projection
// inside one transaction. The server-assigned id and creation timestamp are
// written back into record. Identifiers come from a sequence starting at 1,
// so 0 stays free as the "no record" sentinel.
func (r *recordRepository) SaveRecord(ctx context.Context, record *models.EncryptedRecord) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.SaveRecord").
			Int64("owner_id", record.OwnerID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, saveRecordQuery,
		record.OwnerID,
		record.Savings,
		record.Spending,
		record.Preference,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.SaveRecord").
			Int64("owner_id", record.OwnerID).
			Msg("failed to insert encrypted record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, saveRevealedStubQuery, record.ID); err != nil {
		log.Err(err).
			Str("func", "recordRepository.SaveRecord").
			Int64("record_id", record.ID).
			Msg("failed to insert empty plaintext projection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "recordRepository.SaveRecord").
			Int64("record_id", record.ID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recordRepository.SaveRecord").
		Int64("record_id", record.ID).
		Int64("owner_id", record.OwnerID).
		Msg("saved encrypted record")

	return nil
}

// GetRecord retrieves one encrypted record by id.
func (r *recordRepository) GetRecord(ctx context.Context, id int64) (models.EncryptedRecord, error) {
	log := logger.FromContext(ctx)

	var record models.EncryptedRecord
	err := r.DB.QueryRowContext(ctx, getRecordQuery, id).Scan(
		&record.ID,
		&record.OwnerID,
		&record.Savings,
		&record.Spending,
		&record.Preference,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.EncryptedRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("record_id", id).
			Msg("failed to query encrypted record")
		return models.EncryptedRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// GetRevealed retrieves the plaintext projection by record id. Unrevealed
// projections come back with zero values and Revealed=false.
func (r *recordRepository) GetRevealed(ctx context.Context, id int64) (models.RevealedRecord, error) {
	log := logger.FromContext(ctx)

	var revealed models.RevealedRecord
	err := r.DB.QueryRowContext(ctx, getRevealedQuery, id).Scan(
		&revealed.RecordID,
		&revealed.Savings,
		&revealed.Spending,
		&revealed.Label,
		&revealed.Revealed,
		&revealed.RevealedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.RevealedRecord{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.GetRevealed").
			Int64("record_id", id).
			Msg("failed to query plaintext projection")
		return models.RevealedRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return revealed, nil
}

// ListRecords returns the projections matching the filter, ordered by
// record id.
func (r *recordRepository) ListRecords(ctx context.Context, filter RecordFilter) ([]models.RecordListItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListRecordsQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("owner_id", filter.OwnerID).
			Msg("failed to build listing query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("owner_id", filter.OwnerID).
			Msg("failed to execute listing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.RecordListItem, 0, 16)

	for rows.Next() {
		var item models.RecordListItem

		scanErr := rows.Scan(
			&item.RecordID,
			&item.CreatedAt,
			&item.Savings,
			&item.Spending,
			&item.Label,
			&item.Revealed,
			&item.RevealedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.ListRecords").
				Int64("owner_id", filter.OwnerID).
				Msg("failed to scan listing row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.ListRecords").
			Int64("owner_id", filter.OwnerID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return items, nil
}

// CommitReveal applies an accepted record-reveal callback inside a single
// transaction:
//
//  1. The pending entry leaves the open state (missing entry aborts the
//     commit — the correlator never issued this request against this store).
//  2. The plaintext projection is written under the revealed=FALSE
//     predicate; zero affected rows means a concurrent or earlier callback
//     already revealed the record and the whole commit rolls back with
//     [ErrAlreadyRevealed].
//  3. The encrypted label count is inserted (first reveal of the label,
//     appended to the index by position) or replaced.
//
// The transaction is rolled back automatically (via defer) on any failure,
// so a rejected callback leaves no partial effects.
func (r *recordRepository) CommitReveal(ctx context.Context, commit models.RevealCommit) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CommitReveal").
			Str("request_id", commit.RequestID).
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, markPendingDoneQuery, commit.RequestID)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CommitReveal").
			Str("request_id", commit.RequestID).
			Msg("failed to finalize pending entry")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Warn().
			Str("func", "recordRepository.CommitReveal").
			Str("request_id", commit.RequestID).
			Msg("pending entry missing or not open")
		return ErrPendingNotFound
	}

	result, err = tx.ExecContext(ctx, commitRevealedQuery,
		commit.Revealed.RecordID,
		commit.Revealed.Savings,
		commit.Revealed.Spending,
		commit.Revealed.Label,
	)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CommitReveal").
			Int64("record_id", commit.Revealed.RecordID).
			Msg("failed to write plaintext projection")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		log.Warn().
			Str("func", "recordRepository.CommitReveal").
			Int64("record_id", commit.Revealed.RecordID).
			Msg("projection already revealed, rolling back")
		return ErrAlreadyRevealed
	}

	if commit.NewLabel {
		_, err = tx.ExecContext(ctx, insertLabelCountQuery, commit.Label, commit.LabelHash, commit.Count)
	} else {
		_, err = tx.ExecContext(ctx, updateLabelCountQuery, commit.Label, commit.Count)
	}
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.CommitReveal").
			Str("label_hash", commit.LabelHash).
			Bool("new_label", commit.NewLabel).
			Msg("failed to write encrypted label count")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "recordRepository.CommitReveal").
			Str("request_id", commit.RequestID).
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "recordRepository.CommitReveal").
		Int64("record_id", commit.Revealed.RecordID).
		Str("request_id", commit.RequestID).
		Msg("reveal committed")

	return nil
}
