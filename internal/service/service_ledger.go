// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// ledgerService is the concrete implementation of LedgerService.
type ledgerService struct {
	recordRepository store.RecordRepository
	labelRepository  store.LabelRepository
	arithmetic       crypto.Arithmetic
	notifier         Notifier

	logger *logger.Logger
}

// NewLedgerService constructs a LedgerService over the given repositories.
// The arithmetic capability is used only to validate submitted handles.
func NewLedgerService(
	recordRepository store.RecordRepository,
	labelRepository store.LabelRepository,
	arithmetic crypto.Arithmetic,
	notifier Notifier,
	logger *logger.Logger,
) LedgerService {
	return &ledgerService{
		recordRepository: recordRepository,
		labelRepository:  labelRepository,
		arithmetic:       arithmetic,
		notifier:         notifier,
		logger:           logger,
	}
}

// Submit stores a new encrypted record. All three handles must be present and
// refer to live ciphertexts; a dangling handle fails the whole submission and
// nothing is stored.
func (l *ledgerService) Submit(ctx context.Context, ownerID int64, request models.SubmitRequest) (models.EncryptedRecord, error) {
	log := logger.FromContext(ctx)

	handles := map[string]models.CiphertextHandle{
		"savings_ct":    request.Savings,
		"spending_ct":   request.Spending,
		"preference_ct": request.Preference,
	}
	for field, handle := range handles {
		if handle.IsZero() {
			log.Error().
				Str("func", "ledgerService.Submit").
				Str("field", field).
				Msg("missing ciphertext handle")
			return models.EncryptedRecord{}, fmt.Errorf("%w: %s", ErrInvalidDataProvided, field)
		}

		initialized, err := l.arithmetic.IsInitialized(ctx, handle)
		if err != nil {
			return models.EncryptedRecord{}, fmt.Errorf("handle check failed: %w", err)
		}
		if !initialized {
			log.Warn().
				Str("func", "ledgerService.Submit").
				Str("field", field).
				Msg("handle does not refer to a live ciphertext")
			return models.EncryptedRecord{}, fmt.Errorf("%w: %s", ErrHandleNotInitialized, field)
		}
	}

	record := models.EncryptedRecord{
		OwnerID:    ownerID,
		Savings:    request.Savings,
		Spending:   request.Spending,
		Preference: request.Preference,
	}

	if err := l.recordRepository.SaveRecord(ctx, &record); err != nil {
		log.Err(err).
			Str("func", "ledgerService.Submit").
			Int64("owner_id", ownerID).
			Msg("record submission failed")
		return models.EncryptedRecord{}, fmt.Errorf("record submission failed: %w", err)
	}

	log.Info().
		Str("func", "ledgerService.Submit").
		Int64("record_id", record.ID).
		Msg("record submitted")

	l.notifier.RecordSubmitted(ctx, record.ID, record.CreatedAt)

	return record, nil
}

// GetRevealed returns the plaintext projection of one of the caller's
// records. Absence never fails: an id that was never assigned reads as an
// unrevealed zero projection, the same shape an unrevealed record has.
// Records owned by other accounts yield ErrNotRecordOwner.
func (l *ledgerService) GetRevealed(ctx context.Context, ownerID, recordID int64) (models.RevealedRecord, error) {
	record, err := l.recordRepository.GetRecord(ctx, recordID)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return models.RevealedRecord{RecordID: recordID}, nil
	case err != nil:
		return models.RevealedRecord{}, fmt.Errorf("record lookup failed: %w", err)
	}

	if record.OwnerID != ownerID {
		logger.FromContext(ctx).Warn().
			Str("func", "ledgerService.GetRevealed").
			Int64("record_id", recordID).
			Int64("owner_id", record.OwnerID).
			Int64("caller_id", ownerID).
			Msg("record access denied")
		return models.RevealedRecord{}, ErrNotRecordOwner
	}

	revealed, err := l.recordRepository.GetRevealed(ctx, recordID)
	if err != nil {
		return models.RevealedRecord{}, fmt.Errorf("projection lookup failed: %w", err)
	}

	return revealed, nil
}

// ListRecords returns the caller's record projections matching filter.
func (l *ledgerService) ListRecords(ctx context.Context, filter store.RecordFilter) ([]models.RecordListItem, error) {
	items, err := l.recordRepository.ListRecords(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("record listing failed: %w", err)
	}

	return items, nil
}

// ListLabels returns the plaintext label index in first-seen order.
func (l *ledgerService) ListLabels(ctx context.Context) ([]string, error) {
	entries, err := l.labelRepository.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("label listing failed: %w", err)
	}

	labels := make([]string, 0, len(entries))
	for _, entry := range entries {
		labels = append(labels, entry.Label)
	}

	return labels, nil
}
