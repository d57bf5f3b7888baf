package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// labelRepository is the PostgreSQL-backed implementation of
// [LabelRepository]. It is read-only: label counts are written exclusively
// by the reveal-commit transaction in the record repository.
type labelRepository struct {
	*DB
	logger *logger.Logger
}

// NewLabelRepository constructs a [LabelRepository] backed by the provided
// database connection and logger.
func NewLabelRepository(db *DB, logger *logger.Logger) LabelRepository {
	return &labelRepository{
		DB:     db,
		logger: logger,
	}
}

// GetLabelCount retrieves the count entry for a plaintext label.
func (l *labelRepository) GetLabelCount(ctx context.Context, label string) (models.LabelCount, error) {
	return l.getOne(ctx, "labelRepository.GetLabelCount", getLabelCountQuery, label)
}

// GetLabelByHash resolves a label hash through the unique index on
// label_hash.
func (l *labelRepository) GetLabelByHash(ctx context.Context, labelHash string) (models.LabelCount, error) {
	return l.getOne(ctx, "labelRepository.GetLabelByHash", getLabelByHashQuery, labelHash)
}

// ListLabels returns every label ever revealed, ordered by first-seen
// position.
func (l *labelRepository) ListLabels(ctx context.Context) ([]models.LabelCount, error) {
	log := logger.FromContext(ctx)

	rows, err := l.DB.QueryContext(ctx, listLabelsQuery)
	if err != nil {
		log.Err(err).
			Str("func", "labelRepository.ListLabels").
			Msg("failed to query label index")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	labels := make([]models.LabelCount, 0, 8)

	for rows.Next() {
		var entry models.LabelCount

		if scanErr := rows.Scan(&entry.Label, &entry.LabelHash, &entry.Count, &entry.Position); scanErr != nil {
			log.Err(scanErr).
				Str("func", "labelRepository.ListLabels").
				Msg("failed to scan label row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		labels = append(labels, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "labelRepository.ListLabels").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return labels, nil
}

func (l *labelRepository) getOne(ctx context.Context, caller, query, arg string) (models.LabelCount, error) {
	log := logger.FromContext(ctx)

	var entry models.LabelCount
	err := l.DB.QueryRowContext(ctx, query, arg).Scan(
		&entry.Label,
		&entry.LabelHash,
		&entry.Count,
		&entry.Position,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.LabelCount{}, ErrLabelNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", caller).
			Msg("failed to query label count")
		return models.LabelCount{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}
