// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/internal/utils"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// recordPlaintextCount is the number of plaintexts a record callback must
// carry: savings, spending, preference label, in submission order.
const recordPlaintextCount = 3

// revealService is the concrete implementation of RevealService. Every check
// runs before any state is written: a rejected callback — unknown request,
// bad attestation, malformed plaintext, lost commit race — leaves nothing
// observable behind.
type revealService struct {
	recordRepository  store.RecordRepository
	pendingRepository store.PendingRepository
	labelRepository   store.LabelRepository
	oracle            crypto.DecryptionOracle
	arithmetic        crypto.Arithmetic
	notifier          Notifier

	// requestTTL bounds how long a pending correlation accepts its callback.
	// Zero disables expiry.
	requestTTL time.Duration

	// commitMu serializes the count read, homomorphic increment, and commit.
	// The increment spans several store calls; without one writer at a time,
	// concurrent callbacks sharing a label would read the same count and one
	// increment would be lost.
	commitMu sync.Mutex

	logger *logger.Logger
}

// NewRevealService constructs a RevealService over the given repositories
// and crypto capabilities.
func NewRevealService(
	recordRepository store.RecordRepository,
	pendingRepository store.PendingRepository,
	labelRepository store.LabelRepository,
	oracle crypto.DecryptionOracle,
	arithmetic crypto.Arithmetic,
	notifier Notifier,
	cfg config.Oracle,
	logger *logger.Logger,
) RevealService {
	return &revealService{
		recordRepository:  recordRepository,
		pendingRepository: pendingRepository,
		labelRepository:   labelRepository,
		oracle:            oracle,
		arithmetic:        arithmetic,
		notifier:          notifier,
		requestTTL:        cfg.RequestTTL,
		logger:            logger,
	}
}

// OnRecordDecrypted applies a record-reveal callback.
//
// Checks run in a fixed order: correlation, reveal state, attestation,
// plaintext decode. Only after all of them pass does the service compute the
// homomorphic count increment and commit projection, pending finalization,
// and count in one atomic store operation.
//
// Returns:
//   - ErrUnknownRequest for identifiers with no open record correlation.
//   - ErrRequestExpired for cancelled or TTL-expired correlations.
//   - store.ErrAlreadyRevealed for records whose reveal already committed;
//     the count is never incremented twice.
//   - ErrInvalidAttestation when the attestation does not verify.
//   - ErrMalformedPlaintext when the verified plaintexts cannot be decoded.
func (r *revealService) OnRecordDecrypted(ctx context.Context, requestID string, plaintexts []string, attestation string) error {
	log := logger.FromContext(ctx)

	pending, err := r.resolvePending(ctx, requestID, models.RecordCallback)
	if err != nil {
		return err
	}

	revealed, err := r.recordRepository.GetRevealed(ctx, pending.RecordID)
	if err != nil {
		return fmt.Errorf("projection lookup failed: %w", err)
	}
	if revealed.Revealed {
		log.Warn().
			Str("func", "revealService.OnRecordDecrypted").
			Str("request_id", requestID).
			Int64("record_id", pending.RecordID).
			Msg("record already revealed")
		return store.ErrAlreadyRevealed
	}

	if err := r.oracle.VerifyAttestation(requestID, plaintexts, attestation); err != nil {
		log.Warn().
			Str("func", "revealService.OnRecordDecrypted").
			Str("request_id", requestID).
			Msg("attestation verification failed")
		return fmt.Errorf("%w: %w", ErrInvalidAttestation, err)
	}

	savings, spending, label, err := decodeRecordPlaintexts(plaintexts)
	if err != nil {
		log.Warn().
			Str("func", "revealService.OnRecordDecrypted").
			Str("request_id", requestID).
			Msg("callback plaintexts failed to decode")
		return err
	}

	if err := r.commitReveal(ctx, requestID, pending.RecordID, savings, spending, label); err != nil {
		if errors.Is(err, store.ErrPendingNotFound) {
			// lost the race against a concurrent callback for the same request
			return ErrUnknownRequest
		}
		return err
	}

	log.Info().
		Str("func", "revealService.OnRecordDecrypted").
		Str("request_id", requestID).
		Int64("record_id", pending.RecordID).
		Str("label", label).
		Msg("record reveal committed")

	r.notifier.RecordRevealed(ctx, pending.RecordID, time.Now())

	return nil
}

// OnCountDecrypted applies a count-reveal callback and returns the decrypted
// aggregate for the label the request concerned. The decrypted count is
// surfaced to the caller and announced through the notifier; it is not
// persisted, so the stored count stays encrypted.
//
// Duplicate and finalized correlations are rejected with ErrUnknownRequest.
func (r *revealService) OnCountDecrypted(ctx context.Context, requestID string, count string, attestation string) (models.CountRevealedResponse, error) {
	log := logger.FromContext(ctx)

	pending, err := r.resolvePending(ctx, requestID, models.CountCallback)
	if err != nil {
		return models.CountRevealedResponse{}, err
	}

	if err := r.oracle.VerifyAttestation(requestID, []string{count}, attestation); err != nil {
		log.Warn().
			Str("func", "revealService.OnCountDecrypted").
			Str("request_id", requestID).
			Msg("attestation verification failed")
		return models.CountRevealedResponse{}, fmt.Errorf("%w: %w", ErrInvalidAttestation, err)
	}

	value, err := strconv.ParseUint(count, 10, 64)
	if err != nil {
		return models.CountRevealedResponse{}, fmt.Errorf("%w: count %q", ErrMalformedPlaintext, count)
	}

	entry, err := r.labelRepository.GetLabelByHash(ctx, pending.LabelHash)
	if err != nil {
		return models.CountRevealedResponse{}, fmt.Errorf("label resolution failed: %w", err)
	}

	if err := r.pendingRepository.MarkPending(ctx, requestID, models.PendingDone); err != nil {
		if errors.Is(err, store.ErrPendingNotOpen) {
			// lost the race against a concurrent callback for the same request
			return models.CountRevealedResponse{}, ErrUnknownRequest
		}
		return models.CountRevealedResponse{}, fmt.Errorf("finalizing pending correlation failed: %w", err)
	}

	log.Info().
		Str("func", "revealService.OnCountDecrypted").
		Str("request_id", requestID).
		Str("label", entry.Label).
		Uint64("count", value).
		Msg("label count revealed")

	r.notifier.CountRevealed(ctx, entry.Label, value, time.Now())

	return models.CountRevealedResponse{Label: entry.Label, Count: value}, nil
}

// resolvePending loads the correlation for requestID and checks kind, state,
// and TTL. Expired entries are cancelled in passing so later callbacks fail
// the state check directly.
func (r *revealService) resolvePending(ctx context.Context, requestID string, kind models.CallbackKind) (models.PendingDecryption, error) {
	log := logger.FromContext(ctx)

	pending, err := r.pendingRepository.GetPending(ctx, requestID)
	if err != nil {
		if errors.Is(err, store.ErrPendingNotFound) {
			log.Warn().
				Str("func", "revealService.resolvePending").
				Str("request_id", requestID).
				Msg("callback for unknown request")
			return models.PendingDecryption{}, ErrUnknownRequest
		}
		return models.PendingDecryption{}, fmt.Errorf("pending lookup failed: %w", err)
	}

	if pending.Kind != kind {
		log.Warn().
			Str("func", "revealService.resolvePending").
			Str("request_id", requestID).
			Str("kind", string(pending.Kind)).
			Msg("callback kind does not match correlation")
		return models.PendingDecryption{}, ErrUnknownRequest
	}

	switch pending.Status {
	case models.PendingCancelled:
		return models.PendingDecryption{}, ErrRequestExpired
	case models.PendingDone:
		// a finalized count correlation is simply unknown; a duplicate record
		// callback surfaces as AlreadyRevealed further down the record path,
		// no matter how old the correlation is by now
		if kind == models.CountCallback {
			return models.PendingDecryption{}, ErrUnknownRequest
		}
		return pending, nil
	}

	if pending.Expired(time.Now(), r.requestTTL) {
		if markErr := r.pendingRepository.MarkPending(ctx, requestID, models.PendingCancelled); markErr != nil {
			log.Err(markErr).
				Str("func", "revealService.resolvePending").
				Str("request_id", requestID).
				Msg("failed to cancel expired correlation")
		}
		return models.PendingDecryption{}, ErrRequestExpired
	}

	return pending, nil
}

// commitReveal computes the homomorphic increment for label and commits the
// plaintext projection, pending finalization, and updated count in one store
// operation. commitMu keeps the section single-writer: the count a callback
// reads is always the count its commit overwrites.
func (r *revealService) commitReveal(ctx context.Context, requestID string, recordID int64, savings, spending uint64, label string) error {
	r.commitMu.Lock()
	defer r.commitMu.Unlock()

	newCount, newLabel, err := r.incrementLabelCount(ctx, label)
	if err != nil {
		return err
	}

	commit := models.RevealCommit{
		RequestID: requestID,
		Revealed: models.RevealedRecord{
			RecordID: recordID,
			Savings:  savings,
			Spending: spending,
			Label:    label,
			Revealed: true,
		},
		Label:     label,
		LabelHash: utils.LabelHash(label),
		Count:     newCount,
		NewLabel:  newLabel,
	}

	if err := r.recordRepository.CommitReveal(ctx, commit); err != nil {
		if errors.Is(err, store.ErrPendingNotFound) || errors.Is(err, store.ErrAlreadyRevealed) {
			return err
		}
		return fmt.Errorf("reveal commit failed: %w", err)
	}

	return nil
}

// incrementLabelCount produces the updated encrypted count for label: the
// current count — or a fresh encrypted zero for a first-seen label — plus an
// encrypted one.
func (r *revealService) incrementLabelCount(ctx context.Context, label string) (models.CiphertextHandle, bool, error) {
	var current models.CiphertextHandle
	newLabel := false

	entry, err := r.labelRepository.GetLabelCount(ctx, label)
	switch {
	case err == nil:
		current = entry.Count
	case errors.Is(err, store.ErrLabelNotFound):
		newLabel = true
		if current, err = r.arithmetic.Zero(ctx); err != nil {
			return "", false, fmt.Errorf("encrypting zero failed: %w", err)
		}
	default:
		return "", false, fmt.Errorf("label lookup failed: %w", err)
	}

	one, err := r.arithmetic.One(ctx)
	if err != nil {
		return "", false, fmt.Errorf("encrypting one failed: %w", err)
	}

	updated, err := r.arithmetic.Add(ctx, current, one)
	if err != nil {
		return "", false, fmt.Errorf("homomorphic increment failed: %w", err)
	}

	return updated, newLabel, nil
}

// decodeRecordPlaintexts splits a record callback's plaintexts into their
// typed fields. Plaintexts arrive positionally: savings, spending, label.
func decodeRecordPlaintexts(plaintexts []string) (savings, spending uint64, label string, err error) {
	if len(plaintexts) != recordPlaintextCount {
		return 0, 0, "", fmt.Errorf("%w: expected %d plaintexts, got %d", ErrMalformedPlaintext, recordPlaintextCount, len(plaintexts))
	}

	if savings, err = strconv.ParseUint(plaintexts[0], 10, 64); err != nil {
		return 0, 0, "", fmt.Errorf("%w: savings %q", ErrMalformedPlaintext, plaintexts[0])
	}
	if spending, err = strconv.ParseUint(plaintexts[1], 10, 64); err != nil {
		return 0, 0, "", fmt.Errorf("%w: spending %q", ErrMalformedPlaintext, plaintexts[1])
	}

	label = plaintexts[2]
	if label == "" {
		return 0, 0, "", fmt.Errorf("%w: empty label", ErrMalformedPlaintext)
	}

	return savings, spending, label, nil
}
