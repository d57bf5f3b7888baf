// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAttestationKey = "attestation-test-key"

// recordingNotifier collects emitted events so tests can assert on the
// notification stream. Callbacks may fire from concurrent goroutines, so the
// recorder locks.
type recordingNotifier struct {
	mu        sync.Mutex
	submitted []int64
	requested []string
	revealed  []int64
	counts    map[string]uint64
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{counts: make(map[string]uint64)}
}

func (n *recordingNotifier) RecordSubmitted(_ context.Context, recordID int64, _ time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.submitted = append(n.submitted, recordID)
}

func (n *recordingNotifier) DecryptionRequested(_ context.Context, requestID string, _ int64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested = append(n.requested, requestID)
}

func (n *recordingNotifier) RecordRevealed(_ context.Context, recordID int64, _ time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revealed = append(n.revealed, recordID)
}

func (n *recordingNotifier) CountRevealed(_ context.Context, label string, count uint64, _ time.Time) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.counts[label] = count
}

// testEnv wires the services over the in-memory store and the local crypto
// backend, mirroring the production wiring minus the transport.
type testEnv struct {
	store    *store.MemoryStore
	engine   *crypto.LocalEngine
	notifier *recordingNotifier

	ledger     LedgerService
	decryption DecryptionService
	reveal     RevealService
}

func newTestEnv(t *testing.T, requestTTL time.Duration) *testEnv {
	t.Helper()

	memory := store.NewMemoryStore()
	engine := crypto.NewLocalEngine(testAttestationKey)
	notifier := newRecordingNotifier()
	log := logger.Nop()

	return &testEnv{
		store:      memory,
		engine:     engine,
		notifier:   notifier,
		ledger:     NewLedgerService(memory, memory, engine, notifier, log),
		decryption: NewDecryptionService(memory, memory, memory, engine, notifier, log),
		reveal: NewRevealService(
			memory, memory, memory,
			engine, engine, notifier,
			config.Oracle{AttestationKey: testAttestationKey, RequestTTL: requestTTL},
			log,
		),
	}
}

// submitEncrypted encrypts the given values through the local backend and
// submits them as a record owned by ownerID.
func (env *testEnv) submitEncrypted(t *testing.T, ownerID int64, savings, spending uint64, label string) models.EncryptedRecord {
	t.Helper()

	labelCT, err := env.engine.EncryptString(label)
	require.NoError(t, err)

	record, err := env.ledger.Submit(context.Background(), ownerID, models.SubmitRequest{
		Savings:    env.engine.EncryptUint64(savings),
		Spending:   env.engine.EncryptUint64(spending),
		Preference: labelCT,
	})
	require.NoError(t, err)

	return record
}

// scheduleRecord requests decryption of recordID and resolves the scheduled
// job, returning everything a callback needs.
func (env *testEnv) scheduleRecord(t *testing.T, ownerID, recordID int64) (requestID string, plaintexts []string, attestation string) {
	t.Helper()

	requestID, err := env.decryption.RequestRecordDecryption(context.Background(), ownerID, recordID)
	require.NoError(t, err)

	job := <-env.engine.Jobs()
	require.Equal(t, requestID, job.RequestID)

	plaintexts, attestation, err = env.engine.Resolve(job)
	require.NoError(t, err)

	return requestID, plaintexts, attestation
}

// revealRecord drives the full request-resolve-callback cycle for recordID.
func (env *testEnv) revealRecord(t *testing.T, ownerID, recordID int64) {
	t.Helper()

	requestID, plaintexts, attestation := env.scheduleRecord(t, ownerID, recordID)
	require.NoError(t, env.reveal.OnRecordDecrypted(context.Background(), requestID, plaintexts, attestation))
}

// revealCount drives the full count-decryption cycle for label.
func (env *testEnv) revealCount(t *testing.T, label string) models.CountRevealedResponse {
	t.Helper()

	requestID, err := env.decryption.RequestLabelCountDecryption(context.Background(), label)
	require.NoError(t, err)

	job := <-env.engine.Jobs()
	plaintexts, attestation, err := env.engine.Resolve(job)
	require.NoError(t, err)
	require.Len(t, plaintexts, 1)

	response, err := env.reveal.OnCountDecrypted(context.Background(), requestID, plaintexts[0], attestation)
	require.NoError(t, err)

	return response
}

func TestRevealLifecycle(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	first := env.submitEncrypted(t, 1, 100, 40, "saving")
	second := env.submitEncrypted(t, 1, 250, 10, "spending")
	third := env.submitEncrypted(t, 1, 80, 80, "saving")

	env.revealRecord(t, 1, first.ID)
	env.revealRecord(t, 1, second.ID)
	env.revealRecord(t, 1, third.ID)

	revealed, err := env.ledger.GetRevealed(ctx, 1, first.ID)
	require.NoError(t, err)
	assert.True(t, revealed.Revealed)
	assert.Equal(t, uint64(100), revealed.Savings)
	assert.Equal(t, uint64(40), revealed.Spending)
	assert.Equal(t, "saving", revealed.Label)

	labels, err := env.ledger.ListLabels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"saving", "spending"}, labels)

	saving := env.revealCount(t, "saving")
	assert.Equal(t, uint64(2), saving.Count)
	assert.Equal(t, "saving", saving.Label)

	spending := env.revealCount(t, "spending")
	assert.Equal(t, uint64(1), spending.Count)

	assert.Equal(t, []int64{first.ID, second.ID, third.ID}, env.notifier.revealed)
	assert.Equal(t, uint64(2), env.notifier.counts["saving"])
}

func TestOnRecordDecrypted_DuplicateCallback(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")

	requestID, plaintexts, attestation := env.scheduleRecord(t, 1, record.ID)
	require.NoError(t, env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation))

	// retransmission of the same callback
	err := env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation)
	assert.ErrorIs(t, err, store.ErrAlreadyRevealed)

	// the aggregate count must not be incremented twice
	count := env.revealCount(t, "saving")
	assert.Equal(t, uint64(1), count.Count)
}

func TestOnRecordDecrypted_UnknownRequest(t *testing.T) {
	env := newTestEnv(t, 0)

	err := env.reveal.OnRecordDecrypted(context.Background(), "req-unknown", []string{"1", "2", "x"}, "attestation")
	assert.ErrorIs(t, err, ErrUnknownRequest)
}

func TestOnRecordDecrypted_BadAttestation(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	requestID, plaintexts, attestation := env.scheduleRecord(t, 1, record.ID)

	tampered := append([]string{}, plaintexts...)
	tampered[0] = "999999"

	err := env.reveal.OnRecordDecrypted(ctx, requestID, tampered, attestation)
	assert.ErrorIs(t, err, ErrInvalidAttestation)

	// a rejected callback leaves no trace: the record stays unrevealed and
	// the genuine callback still goes through
	revealed, err := env.ledger.GetRevealed(ctx, 1, record.ID)
	require.NoError(t, err)
	assert.False(t, revealed.Revealed)

	require.NoError(t, env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation))
}

func TestOnRecordDecrypted_MalformedPlaintexts(t *testing.T) {
	tests := []struct {
		name       string
		plaintexts []string
	}{
		{name: "wrong arity", plaintexts: []string{"100", "40"}},
		{name: "non-numeric savings", plaintexts: []string{"lots", "40", "saving"}},
		{name: "non-numeric spending", plaintexts: []string{"100", "some", "saving"}},
		{name: "empty label", plaintexts: []string{"100", "40", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, 0)
			ctx := context.Background()

			record := env.submitEncrypted(t, 1, 100, 40, "saving")
			requestID, _, _ := env.scheduleRecord(t, 1, record.ID)

			// attested but undecodable plaintexts
			attestation := crypto.Attest(testAttestationKey, requestID, tt.plaintexts)

			err := env.reveal.OnRecordDecrypted(ctx, requestID, tt.plaintexts, attestation)
			assert.ErrorIs(t, err, ErrMalformedPlaintext)

			revealed, err := env.ledger.GetRevealed(ctx, 1, record.ID)
			require.NoError(t, err)
			assert.False(t, revealed.Revealed)
		})
	}
}

func TestOnRecordDecrypted_CancelledRequest(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	requestID, plaintexts, attestation := env.scheduleRecord(t, 1, record.ID)

	require.NoError(t, env.decryption.CancelDecryption(ctx, 1, requestID))

	err := env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation)
	assert.ErrorIs(t, err, ErrRequestExpired)
}

func TestOnRecordDecrypted_ExpiredRequest(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")

	// correlation issued beyond the TTL
	require.NoError(t, env.store.SavePending(ctx, models.PendingDecryption{
		RequestID: "req-stale",
		Kind:      models.RecordCallback,
		RecordID:  record.ID,
		Status:    models.PendingOpen,
		IssuedAt:  time.Now().Add(-2 * time.Minute),
	}))

	err := env.reveal.OnRecordDecrypted(ctx, "req-stale", []string{"100", "40", "saving"}, "attestation")
	assert.ErrorIs(t, err, ErrRequestExpired)

	// expiry cancels the correlation in passing
	pending, err := env.store.GetPending(ctx, "req-stale")
	require.NoError(t, err)
	assert.Equal(t, models.PendingCancelled, pending.Status)
}

// slowArithmetic widens the window between reading a label count and
// committing its increment, so an unserialized reveal path would lose one of
// two concurrent increments.
type slowArithmetic struct {
	crypto.Arithmetic
	delay time.Duration
}

func (s slowArithmetic) Add(ctx context.Context, a, b models.CiphertextHandle) (models.CiphertextHandle, error) {
	time.Sleep(s.delay)
	return s.Arithmetic.Add(ctx, a, b)
}

func TestOnRecordDecrypted_ConcurrentSharedLabel(t *testing.T) {
	env := newTestEnv(t, 0)
	env.reveal = NewRevealService(
		env.store, env.store, env.store,
		env.engine,
		slowArithmetic{Arithmetic: env.engine, delay: 20 * time.Millisecond},
		env.notifier,
		config.Oracle{AttestationKey: testAttestationKey},
		logger.Nop(),
	)
	ctx := context.Background()

	first := env.submitEncrypted(t, 1, 100, 40, "saving")
	second := env.submitEncrypted(t, 1, 80, 80, "saving")

	firstRequest, firstPlaintexts, firstAttestation := env.scheduleRecord(t, 1, first.ID)
	secondRequest, secondPlaintexts, secondAttestation := env.scheduleRecord(t, 1, second.ID)

	// deliver both callbacks at once, the way concurrent handlers would
	start := make(chan struct{})
	errs := make(chan error, 2)
	go func() {
		<-start
		errs <- env.reveal.OnRecordDecrypted(ctx, firstRequest, firstPlaintexts, firstAttestation)
	}()
	go func() {
		<-start
		errs <- env.reveal.OnRecordDecrypted(ctx, secondRequest, secondPlaintexts, secondAttestation)
	}()
	close(start)

	require.NoError(t, <-errs)
	require.NoError(t, <-errs)

	// both increments must land: two reveals of "saving" decrypt to 2
	count := env.revealCount(t, "saving")
	assert.Equal(t, uint64(2), count.Count)
}

func TestOnRecordDecrypted_DuplicateAfterTTL(t *testing.T) {
	env := newTestEnv(t, time.Minute)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	requestID, plaintexts, attestation := env.scheduleRecord(t, 1, record.ID)
	require.NoError(t, env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation))

	// age the finalized correlation beyond the TTL
	pending, err := env.store.GetPending(ctx, requestID)
	require.NoError(t, err)
	pending.IssuedAt = time.Now().Add(-2 * time.Minute)
	require.NoError(t, env.store.SavePending(ctx, pending))

	// a late retransmission is a duplicate, not an expired request
	err = env.reveal.OnRecordDecrypted(ctx, requestID, plaintexts, attestation)
	assert.ErrorIs(t, err, store.ErrAlreadyRevealed)

	// the finalized correlation stays done; expiry must not cancel it
	pending, err = env.store.GetPending(ctx, requestID)
	require.NoError(t, err)
	assert.Equal(t, models.PendingDone, pending.Status)
}

func TestOnCountDecrypted_DuplicateCallback(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	env.revealRecord(t, 1, record.ID)

	requestID, err := env.decryption.RequestLabelCountDecryption(ctx, "saving")
	require.NoError(t, err)

	job := <-env.engine.Jobs()
	plaintexts, attestation, err := env.engine.Resolve(job)
	require.NoError(t, err)

	response, err := env.reveal.OnCountDecrypted(ctx, requestID, plaintexts[0], attestation)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), response.Count)

	// a finalized count correlation is simply unknown
	_, err = env.reveal.OnCountDecrypted(ctx, requestID, plaintexts[0], attestation)
	assert.ErrorIs(t, err, ErrUnknownRequest)
}

func TestOnCountDecrypted_KindMismatch(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	requestID, _, _ := env.scheduleRecord(t, 1, record.ID)

	// a record correlation never accepts a count callback
	attestation := crypto.Attest(testAttestationKey, requestID, []string{"1"})
	_, err := env.reveal.OnCountDecrypted(ctx, requestID, "1", attestation)
	assert.ErrorIs(t, err, ErrUnknownRequest)
}

func TestOnCountDecrypted_MalformedCount(t *testing.T) {
	env := newTestEnv(t, 0)
	ctx := context.Background()

	record := env.submitEncrypted(t, 1, 100, 40, "saving")
	env.revealRecord(t, 1, record.ID)

	requestID, err := env.decryption.RequestLabelCountDecryption(ctx, "saving")
	require.NoError(t, err)
	<-env.engine.Jobs()

	attestation := crypto.Attest(testAttestationKey, requestID, []string{"many"})
	_, err = env.reveal.OnCountDecrypted(ctx, requestID, "many", attestation)
	assert.ErrorIs(t, err, ErrMalformedPlaintext)
}
