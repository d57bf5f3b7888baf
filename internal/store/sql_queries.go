package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Static SQL executed by the PostgreSQL repositories. Dynamic listings are
// built with squirrel in [buildListRecordsQuery].
const (
	saveRecordQuery = `
		INSERT INTO records (owner_id, savings_ct, spending_ct, preference_ct)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	saveRevealedStubQuery = `
		INSERT INTO revealed_records (record_id)
		VALUES ($1)`

	getRecordQuery = `
		SELECT id, owner_id, savings_ct, spending_ct, preference_ct, created_at
		FROM records
		WHERE id = $1`

	getRevealedQuery = `
		SELECT record_id, savings, spending, label, revealed, COALESCE(revealed_at, 'epoch'::timestamptz)
		FROM revealed_records
		WHERE record_id = $1`

	savePendingQuery = `
		INSERT INTO pending_decryptions (request_id, kind, record_id, label_hash, status, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	getPendingQuery = `
		SELECT request_id, kind, record_id, label_hash, status, issued_at
		FROM pending_decryptions
		WHERE request_id = $1`

	listOpenPendingQuery = `
		SELECT request_id, kind, record_id, label_hash, status, issued_at
		FROM pending_decryptions
		WHERE status = 'pending'
		ORDER BY issued_at`

	// markPendingQuery transitions an open entry and reports, in one round
	// trip, whether the entry exists and whether it was still open:
	// current_status NULL means not found, updated_id NULL means the entry
	// had already left the open state.
	markPendingQuery = `
		WITH target_entry AS (
			SELECT request_id, status FROM pending_decryptions WHERE request_id = $1
		), updated AS (
			UPDATE pending_decryptions
			SET status = $2
			WHERE request_id = $1 AND status = 'pending'
			RETURNING request_id
		)
		SELECT
			(SELECT status FROM target_entry)     AS current_status,
			(SELECT request_id FROM updated)      AS updated_id`

	// markPendingDoneQuery is the simplified open->done transition used
	// inside the reveal-commit transaction, where not-found and not-open
	// collapse into the same abort.
	markPendingDoneQuery = `
		UPDATE pending_decryptions
		SET status = 'done'
		WHERE request_id = $1 AND status = 'pending'`

	// commitRevealedQuery writes the plaintext projection with a
	// first-writer-wins predicate; zero affected rows means the record was
	// either never created or already revealed.
	commitRevealedQuery = `
		UPDATE revealed_records
		SET savings = $2, spending = $3, label = $4, revealed = TRUE, revealed_at = now()
		WHERE record_id = $1 AND revealed = FALSE`

	insertLabelCountQuery = `
		INSERT INTO label_counts (label, label_hash, count_ct, position)
		VALUES ($1, $2, $3, (SELECT COUNT(*) FROM label_counts))`

	updateLabelCountQuery = `
		UPDATE label_counts
		SET count_ct = $2
		WHERE label = $1`

	getLabelCountQuery = `
		SELECT label, label_hash, count_ct, position
		FROM label_counts
		WHERE label = $1`

	getLabelByHashQuery = `
		SELECT label, label_hash, count_ct, position
		FROM label_counts
		WHERE label_hash = $1`

	listLabelsQuery = `
		SELECT label, label_hash, count_ct, position
		FROM label_counts
		ORDER BY position`

	saveUserQuery = `
		INSERT INTO users (login, auth_hash, name)
		VALUES ($1, $2, $3)
		RETURNING user_id, login, auth_hash, name, created_at`

	findUserByLoginQuery = `
		SELECT user_id, login, auth_hash, name, created_at
		FROM users
		WHERE login = $1`
)

// buildListRecordsQuery assembles the record-listing SELECT for the given
// filter using squirrel, so optional criteria (explicit ids, revealed-only)
// do not multiply hand-written query variants.
func buildListRecordsQuery(filter RecordFilter) (string, []any, error) {
	builder := sq.
		Select(
			"r.id", "r.created_at",
			"v.savings", "v.spending", "v.label", "v.revealed",
			"COALESCE(v.revealed_at, 'epoch'::timestamptz)",
		).
		From("records r").
		Join("revealed_records v ON v.record_id = r.id").
		Where(sq.Eq{"r.owner_id": filter.OwnerID}).
		OrderBy("r.id").
		PlaceholderFormat(sq.Dollar)

	if len(filter.IDs) > 0 {
		builder = builder.Where(sq.Eq{"r.id": filter.IDs})
	}
	if filter.RevealedOnly {
		builder = builder.Where(sq.Eq{"v.revealed": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}
