// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/service"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/internal/utils"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/stretchr/testify/require"
)

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerUserFn func(ctx context.Context, user models.User) (models.User, error)
	loginFn        func(ctx context.Context, user models.User) (models.User, error)
	createTokenFn  func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn   func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return m.registerUserFn(ctx, user)
}

func (m *mockAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return m.loginFn(ctx, user)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	return m.createTokenFn(ctx, user)
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// mockLedgerService implements service.LedgerService for unit tests.
type mockLedgerService struct {
	submitFn      func(ctx context.Context, ownerID int64, request models.SubmitRequest) (models.EncryptedRecord, error)
	getRevealedFn func(ctx context.Context, ownerID, recordID int64) (models.RevealedRecord, error)
	listRecordsFn func(ctx context.Context, filter store.RecordFilter) ([]models.RecordListItem, error)
	listLabelsFn  func(ctx context.Context) ([]string, error)
}

func (m *mockLedgerService) Submit(ctx context.Context, ownerID int64, request models.SubmitRequest) (models.EncryptedRecord, error) {
	return m.submitFn(ctx, ownerID, request)
}

func (m *mockLedgerService) GetRevealed(ctx context.Context, ownerID, recordID int64) (models.RevealedRecord, error) {
	return m.getRevealedFn(ctx, ownerID, recordID)
}

func (m *mockLedgerService) ListRecords(ctx context.Context, filter store.RecordFilter) ([]models.RecordListItem, error) {
	return m.listRecordsFn(ctx, filter)
}

func (m *mockLedgerService) ListLabels(ctx context.Context) ([]string, error) {
	return m.listLabelsFn(ctx)
}

// mockDecryptionService implements service.DecryptionService for unit tests.
type mockDecryptionService struct {
	requestRecordFn func(ctx context.Context, ownerID, recordID int64) (string, error)
	requestCountFn  func(ctx context.Context, label string) (string, error)
	cancelFn        func(ctx context.Context, ownerID int64, requestID string) error
}

func (m *mockDecryptionService) RequestRecordDecryption(ctx context.Context, ownerID, recordID int64) (string, error) {
	return m.requestRecordFn(ctx, ownerID, recordID)
}

func (m *mockDecryptionService) RequestLabelCountDecryption(ctx context.Context, label string) (string, error) {
	return m.requestCountFn(ctx, label)
}

func (m *mockDecryptionService) CancelDecryption(ctx context.Context, ownerID int64, requestID string) error {
	return m.cancelFn(ctx, ownerID, requestID)
}

// mockRevealService implements service.RevealService for unit tests.
type mockRevealService struct {
	onRecordFn func(ctx context.Context, requestID string, plaintexts []string, attestation string) error
	onCountFn  func(ctx context.Context, requestID, count, attestation string) (models.CountRevealedResponse, error)
}

func (m *mockRevealService) OnRecordDecrypted(ctx context.Context, requestID string, plaintexts []string, attestation string) error {
	return m.onRecordFn(ctx, requestID, plaintexts, attestation)
}

func (m *mockRevealService) OnCountDecrypted(ctx context.Context, requestID, count, attestation string) (models.CountRevealedResponse, error) {
	return m.onCountFn(ctx, requestID, count, attestation)
}

// newTestHandler builds a Handler over the given services; unused fields may
// stay nil because each test exercises a single route.
func newTestHandler(t *testing.T, svcs *service.Services) *Handler {
	t.Helper()
	return NewHandler(svcs, logger.Nop())
}

// authedRequest builds a request whose context already carries the
// authenticated account id, bypassing the auth middleware.
func authedRequest(t *testing.T, method, target, body string, userID int64) *http.Request {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(body))
	}

	ctx := context.WithValue(req.Context(), utils.UserIDCtxKey, userID)
	return req.WithContext(ctx)
}

func jsonBody(body string) io.Reader {
	return strings.NewReader(body)
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
