// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dkhalitov/go-cipher-ledger/internal/service"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDecryptionRouter mounts the decryption and oracle-callback routes on a
// bare chi router.
func newDecryptionRouter(t *testing.T, decryption service.DecryptionService, reveal service.RevealService) *chi.Mux {
	t.Helper()

	h := newTestHandler(t, &service.Services{
		DecryptionService: decryption,
		RevealService:     reveal,
	})

	router := chi.NewRouter()
	router.Post("/api/records/{recordID}/decrypt", h.requestRecordDecryption)
	router.Post("/api/labels/{label}/decrypt", h.requestCountDecryption)
	router.Delete("/api/decryptions/{requestID}", h.cancelDecryption)
	router.Post("/api/oracle/record", h.recordCallback)
	router.Post("/api/oracle/count", h.countCallback)

	return router
}

func TestRequestRecordDecryption_Accepted(t *testing.T) {
	decryption := &mockDecryptionService{
		requestRecordFn: func(_ context.Context, ownerID, recordID int64) (string, error) {
			assert.Equal(t, int64(42), ownerID)
			assert.Equal(t, int64(3), recordID)
			return "req-1", nil
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodPost, "/api/records/3/decrypt", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	response := decodeJSON[models.DecryptionResponse](t, rec)
	assert.Equal(t, "req-1", response.RequestID)
}

func TestRequestRecordDecryption_AlreadyRevealed(t *testing.T) {
	decryption := &mockDecryptionService{
		requestRecordFn: func(_ context.Context, _, _ int64) (string, error) {
			return "", store.ErrAlreadyRevealed
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodPost, "/api/records/3/decrypt", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRequestCountDecryption_Accepted(t *testing.T) {
	decryption := &mockDecryptionService{
		requestCountFn: func(_ context.Context, label string) (string, error) {
			assert.Equal(t, "saving", label)
			return "req-2", nil
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodPost, "/api/labels/saving/decrypt", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)
	response := decodeJSON[models.DecryptionResponse](t, rec)
	assert.Equal(t, "req-2", response.RequestID)
}

func TestRequestCountDecryption_UnknownLabel(t *testing.T) {
	decryption := &mockDecryptionService{
		requestCountFn: func(_ context.Context, _ string) (string, error) {
			return "", store.ErrLabelNotFound
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodPost, "/api/labels/unknown/decrypt", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelDecryption_NoContent(t *testing.T) {
	decryption := &mockDecryptionService{
		cancelFn: func(_ context.Context, ownerID int64, requestID string) error {
			assert.Equal(t, int64(42), ownerID)
			assert.Equal(t, "req-1", requestID)
			return nil
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodDelete, "/api/decryptions/req-1", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCancelDecryption_NotOwner(t *testing.T) {
	decryption := &mockDecryptionService{
		cancelFn: func(_ context.Context, _ int64, _ string) error {
			return service.ErrNotRecordOwner
		},
	}

	router := newDecryptionRouter(t, decryption, nil)
	req := authedRequest(t, http.MethodDelete, "/api/decryptions/req-1", "", 42)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecordCallback_OK(t *testing.T) {
	reveal := &mockRevealService{
		onRecordFn: func(_ context.Context, requestID string, plaintexts []string, attestation string) error {
			assert.Equal(t, "req-1", requestID)
			assert.Equal(t, []string{"100", "40", "saving"}, plaintexts)
			assert.Equal(t, "sig", attestation)
			return nil
		},
	}

	router := newDecryptionRouter(t, nil, reveal)
	body := `{"request_id":"req-1","plaintexts":["100","40","saving"],"attestation":"sig"}`
	req := httptest.NewRequest(http.MethodPost, "/api/oracle/record", jsonBody(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRecordCallback_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "unknown request", serviceErr: service.ErrUnknownRequest, wantStatus: http.StatusNotFound},
		{name: "expired request", serviceErr: service.ErrRequestExpired, wantStatus: http.StatusGone},
		{name: "duplicate reveal", serviceErr: store.ErrAlreadyRevealed, wantStatus: http.StatusConflict},
		{name: "bad attestation", serviceErr: service.ErrInvalidAttestation, wantStatus: http.StatusUnauthorized},
		{name: "malformed plaintexts", serviceErr: service.ErrMalformedPlaintext, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reveal := &mockRevealService{
				onRecordFn: func(_ context.Context, _ string, _ []string, _ string) error {
					return tt.serviceErr
				},
			}

			router := newDecryptionRouter(t, nil, reveal)
			body := `{"request_id":"req-1","plaintexts":["100","40","saving"],"attestation":"sig"}`
			req := httptest.NewRequest(http.MethodPost, "/api/oracle/record", jsonBody(body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRecordCallback_InvalidJSON(t *testing.T) {
	router := newDecryptionRouter(t, nil, &mockRevealService{})

	req := httptest.NewRequest(http.MethodPost, "/api/oracle/record", jsonBody("{broken"))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCountCallback_OK(t *testing.T) {
	reveal := &mockRevealService{
		onCountFn: func(_ context.Context, requestID, count, attestation string) (models.CountRevealedResponse, error) {
			assert.Equal(t, "req-2", requestID)
			assert.Equal(t, "2", count)
			assert.Equal(t, "sig", attestation)
			return models.CountRevealedResponse{Label: "saving", Count: 2}, nil
		},
	}

	router := newDecryptionRouter(t, nil, reveal)
	body := `{"request_id":"req-2","count":"2","attestation":"sig"}`
	req := httptest.NewRequest(http.MethodPost, "/api/oracle/count", jsonBody(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	response := decodeJSON[models.CountRevealedResponse](t, rec)
	assert.Equal(t, "saving", response.Label)
	assert.Equal(t, uint64(2), response.Count)
}

func TestCountCallback_UnknownRequest(t *testing.T) {
	reveal := &mockRevealService{
		onCountFn: func(_ context.Context, _, _, _ string) (models.CountRevealedResponse, error) {
			return models.CountRevealedResponse{}, service.ErrUnknownRequest
		},
	}

	router := newDecryptionRouter(t, nil, reveal)
	body := `{"request_id":"req-2","count":"2","attestation":"sig"}`
	req := httptest.NewRequest(http.MethodPost, "/api/oracle/count", jsonBody(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
