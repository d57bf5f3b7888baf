// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package crypto

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/google/uuid"
)

// Local backend errors.
var (
	// ErrUnknownHandle is returned when a handle does not refer to any
	// ciphertext known to the local backend.
	ErrUnknownHandle = errors.New("unknown ciphertext handle")

	// ErrNonNumericHandle is returned when arithmetic is attempted on a
	// handle that encrypts a label rather than an integer.
	ErrNonNumericHandle = errors.New("handle does not encrypt an integer")

	// ErrInvalidLabel is returned when a label contains characters reserved
	// by the attestation encoding.
	ErrInvalidLabel = errors.New("label contains reserved characters")
)

// DecryptionJob is one scheduled decryption waiting for the local dispatcher
// to compute and deliver it.
type DecryptionJob struct {
	RequestID string
	Kind      models.CallbackKind
	Handles   []models.CiphertextHandle
}

// LocalEngine is the deterministic in-memory implementation of both
// [Arithmetic] and [DecryptionOracle]. Handles are random identifiers over a
// private value table; "decryption" is a table lookup and attestations are
// HMAC-SHA256 signatures under the configured key.
//
// The engine exists so that the core's correctness can be exercised without
// a real homomorphic scheme. A production deployment replaces it with a
// client for the actual encrypted-arithmetic service and oracle.
type LocalEngine struct {
	mu     sync.RWMutex
	values map[models.CiphertextHandle]string

	attestationKey string

	jobs chan DecryptionJob
}

// NewLocalEngine constructs a [LocalEngine] signing attestations with
// attestationKey. The job queue buffers scheduled decryptions until the
// dispatcher (or a test) drains them.
func NewLocalEngine(attestationKey string) *LocalEngine {
	return &LocalEngine{
		values:         make(map[models.CiphertextHandle]string),
		attestationKey: attestationKey,
		jobs:           make(chan DecryptionJob, 64),
	}
}

// EncryptUint64 stores value in the table under a fresh handle. This is the
// client-side encryption stand-in used by the CLI, the demo flow, and tests.
func (e *LocalEngine) EncryptUint64(value uint64) models.CiphertextHandle {
	return e.put(strconv.FormatUint(value, 10))
}

// EncryptString stores a label under a fresh handle. Labels containing the
// attestation separator are rejected.
func (e *LocalEngine) EncryptString(value string) (models.CiphertextHandle, error) {
	if strings.Contains(value, attestationSeparator) {
		return "", ErrInvalidLabel
	}
	return e.put(value), nil
}

// Zero implements [Arithmetic].
func (e *LocalEngine) Zero(_ context.Context) (models.CiphertextHandle, error) {
	return e.EncryptUint64(0), nil
}

// One implements [Arithmetic].
func (e *LocalEngine) One(_ context.Context) (models.CiphertextHandle, error) {
	return e.EncryptUint64(1), nil
}

// Add implements [Arithmetic]. Both operands must encrypt integers.
func (e *LocalEngine) Add(_ context.Context, a, b models.CiphertextHandle) (models.CiphertextHandle, error) {
	left, err := e.uintValue(a)
	if err != nil {
		return "", err
	}
	right, err := e.uintValue(b)
	if err != nil {
		return "", err
	}

	return e.EncryptUint64(left + right), nil
}

// IsInitialized implements [Arithmetic].
func (e *LocalEngine) IsInitialized(_ context.Context, ct models.CiphertextHandle) (bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	_, ok := e.values[ct]
	return ok, nil
}

// ScheduleDecryption implements [DecryptionOracle]. All handles are checked
// up front so a dangling reference fails at request time, not at callback
// time. The job is queued for the local dispatcher and a fresh request
// identifier is returned.
func (e *LocalEngine) ScheduleDecryption(_ context.Context, handles []models.CiphertextHandle, kind models.CallbackKind) (string, error) {
	e.mu.RLock()
	for _, h := range handles {
		if _, ok := e.values[h]; !ok {
			e.mu.RUnlock()
			return "", fmt.Errorf("%w: %s", ErrUnknownHandle, h)
		}
	}
	e.mu.RUnlock()

	requestID := newRequestID()
	e.jobs <- DecryptionJob{
		RequestID: requestID,
		Kind:      kind,
		Handles:   append([]models.CiphertextHandle(nil), handles...),
	}

	return requestID, nil
}

// VerifyAttestation implements [DecryptionOracle].
func (e *LocalEngine) VerifyAttestation(requestID string, plaintexts []string, attestation string) error {
	return verifyAttestation(e.attestationKey, requestID, plaintexts, attestation)
}

// Jobs exposes the queue of scheduled decryptions. Consumed by the
// dispatcher; tests may drain it directly to deliver callbacks by hand.
func (e *LocalEngine) Jobs() <-chan DecryptionJob {
	return e.jobs
}

// Resolve decrypts the handles of a scheduled job and signs the result.
// Only the dispatcher side of the boundary may call it.
func (e *LocalEngine) Resolve(job DecryptionJob) (plaintexts []string, attestation string, err error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	plaintexts = make([]string, 0, len(job.Handles))
	for _, h := range job.Handles {
		value, ok := e.values[h]
		if !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownHandle, h)
		}
		plaintexts = append(plaintexts, value)
	}

	return plaintexts, Attest(e.attestationKey, job.RequestID, plaintexts), nil
}

func (e *LocalEngine) put(value string) models.CiphertextHandle {
	handle := models.CiphertextHandle("ct-" + newRequestID())

	e.mu.Lock()
	e.values[handle] = value
	e.mu.Unlock()

	return handle
}

func (e *LocalEngine) uintValue(ct models.CiphertextHandle) (uint64, error) {
	e.mu.RLock()
	raw, ok := e.values[ct]
	e.mu.RUnlock()

	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownHandle, ct)
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrNonNumericHandle, ct)
	}

	return value, nil
}

// newRequestID returns a time-ordered UUID, falling back to v4 if the
// monotonic source fails.
func newRequestID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
