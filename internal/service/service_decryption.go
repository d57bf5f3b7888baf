// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// decryptionService is the concrete implementation of DecryptionService. It
// schedules decryptions with the oracle and persists the correlation before
// returning the request identifier to the caller, so a callback can never
// arrive for a request the ledger does not know.
type decryptionService struct {
	recordRepository  store.RecordRepository
	pendingRepository store.PendingRepository
	labelRepository   store.LabelRepository
	oracle            crypto.DecryptionOracle
	notifier          Notifier

	logger *logger.Logger
}

// NewDecryptionService constructs a DecryptionService over the given
// repositories and oracle client.
func NewDecryptionService(
	recordRepository store.RecordRepository,
	pendingRepository store.PendingRepository,
	labelRepository store.LabelRepository,
	oracle crypto.DecryptionOracle,
	notifier Notifier,
	logger *logger.Logger,
) DecryptionService {
	return &decryptionService{
		recordRepository:  recordRepository,
		pendingRepository: pendingRepository,
		labelRepository:   labelRepository,
		oracle:            oracle,
		notifier:          notifier,
		logger:            logger,
	}
}

// RequestRecordDecryption schedules the decryption of all three ciphertexts
// of a record owned by ownerID. Handles are submitted in a fixed order
// (savings, spending, preference) so the callback plaintexts decode
// positionally.
func (d *decryptionService) RequestRecordDecryption(ctx context.Context, ownerID, recordID int64) (string, error) {
	log := logger.FromContext(ctx)

	record, err := d.recordRepository.GetRecord(ctx, recordID)
	if err != nil {
		return "", fmt.Errorf("record lookup failed: %w", err)
	}
	if record.OwnerID != ownerID {
		log.Warn().
			Str("func", "decryptionService.RequestRecordDecryption").
			Int64("record_id", recordID).
			Int64("caller_id", ownerID).
			Msg("record access denied")
		return "", ErrNotRecordOwner
	}

	revealed, err := d.recordRepository.GetRevealed(ctx, recordID)
	if err != nil {
		return "", fmt.Errorf("projection lookup failed: %w", err)
	}
	if revealed.Revealed {
		return "", store.ErrAlreadyRevealed
	}

	handles := []models.CiphertextHandle{record.Savings, record.Spending, record.Preference}
	requestID, err := d.oracle.ScheduleDecryption(ctx, handles, models.RecordCallback)
	if err != nil {
		return "", fmt.Errorf("oracle scheduling failed: %w", err)
	}

	pending := models.PendingDecryption{
		RequestID: requestID,
		Kind:      models.RecordCallback,
		RecordID:  recordID,
		Status:    models.PendingOpen,
		IssuedAt:  time.Now(),
	}
	if err := d.pendingRepository.SavePending(ctx, pending); err != nil {
		return "", fmt.Errorf("saving pending correlation failed: %w", err)
	}

	log.Info().
		Str("func", "decryptionService.RequestRecordDecryption").
		Str("request_id", requestID).
		Int64("record_id", recordID).
		Msg("record decryption scheduled")

	d.notifier.DecryptionRequested(ctx, requestID, recordID)

	return requestID, nil
}

// RequestLabelCountDecryption schedules the decryption of the aggregate
// count for label. Unknown labels — including labels no record has revealed
// yet — are rejected with [store.ErrLabelNotFound].
func (d *decryptionService) RequestLabelCountDecryption(ctx context.Context, label string) (string, error) {
	log := logger.FromContext(ctx)

	entry, err := d.labelRepository.GetLabelCount(ctx, label)
	if err != nil {
		return "", fmt.Errorf("label lookup failed: %w", err)
	}

	requestID, err := d.oracle.ScheduleDecryption(ctx, []models.CiphertextHandle{entry.Count}, models.CountCallback)
	if err != nil {
		return "", fmt.Errorf("oracle scheduling failed: %w", err)
	}

	pending := models.PendingDecryption{
		RequestID: requestID,
		Kind:      models.CountCallback,
		LabelHash: entry.LabelHash,
		Status:    models.PendingOpen,
		IssuedAt:  time.Now(),
	}
	if err := d.pendingRepository.SavePending(ctx, pending); err != nil {
		return "", fmt.Errorf("saving pending correlation failed: %w", err)
	}

	log.Info().
		Str("func", "decryptionService.RequestLabelCountDecryption").
		Str("request_id", requestID).
		Str("label", label).
		Msg("count decryption scheduled")

	d.notifier.DecryptionRequested(ctx, requestID, 0)

	return requestID, nil
}

// CancelDecryption reclaims an open correlation. Record-scoped requests may
// only be cancelled by the record owner; count requests by any authenticated
// account. A callback arriving after cancellation is rejected.
func (d *decryptionService) CancelDecryption(ctx context.Context, ownerID int64, requestID string) error {
	log := logger.FromContext(ctx)

	pending, err := d.pendingRepository.GetPending(ctx, requestID)
	if err != nil {
		return fmt.Errorf("pending lookup failed: %w", err)
	}

	if pending.Kind == models.RecordCallback {
		record, err := d.recordRepository.GetRecord(ctx, pending.RecordID)
		if err != nil {
			return fmt.Errorf("record lookup failed: %w", err)
		}
		if record.OwnerID != ownerID {
			return ErrNotRecordOwner
		}
	}

	if err := d.pendingRepository.MarkPending(ctx, requestID, models.PendingCancelled); err != nil {
		return fmt.Errorf("cancelling pending correlation failed: %w", err)
	}

	log.Info().
		Str("func", "decryptionService.CancelDecryption").
		Str("request_id", requestID).
		Msg("pending decryption cancelled")

	return nil
}
