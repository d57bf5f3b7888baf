// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/utils"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/go-chi/chi/v5"
)

// requestRecordDecryption handles POST /api/records/{recordID}/decrypt:
// schedules the oracle decryption of one of the caller's records and returns
// the request identifier correlating the eventual reveal.
func (h *Handler) requestRecordDecryption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	recordID, err := strconv.ParseInt(chi.URLParam(r, "recordID"), 10, 64)
	if err != nil {
		http.Error(w, "invalid record id", http.StatusBadRequest)
		return
	}

	requestID, err := h.services.DecryptionService.RequestRecordDecryption(ctx, userID, recordID)
	if err != nil {
		log.Err(err).Int64("record_id", recordID).Msg("record decryption request failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DecryptionResponse{RequestID: requestID}, http.StatusAccepted)
}

// requestCountDecryption handles POST /api/labels/{label}/decrypt: schedules
// the oracle decryption of the aggregate count for a known label.
func (h *Handler) requestCountDecryption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	label := chi.URLParam(r, "label")
	if label == "" {
		http.Error(w, "empty label", http.StatusBadRequest)
		return
	}

	requestID, err := h.services.DecryptionService.RequestLabelCountDecryption(ctx, label)
	if err != nil {
		log.Err(err).Str("label", label).Msg("count decryption request failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.DecryptionResponse{RequestID: requestID}, http.StatusAccepted)
}

// cancelDecryption handles DELETE /api/decryptions/{requestID}: reclaims an
// open correlation so that a late oracle callback is rejected.
func (h *Handler) cancelDecryption(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	if requestID == "" {
		http.Error(w, "empty request id", http.StatusBadRequest)
		return
	}

	if err := h.services.DecryptionService.CancelDecryption(ctx, userID, requestID); err != nil {
		log.Err(err).Str("request_id", requestID).Msg("decryption cancellation failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// recordCallback handles POST /api/oracle/record: the oracle's record-reveal
// delivery. The attestation inside the payload is the sole authentication of
// this route; requests failing any check leave no observable state behind.
func (h *Handler) recordCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var callback models.RecordCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&callback); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	err := h.services.RevealService.OnRecordDecrypted(ctx, callback.RequestID, callback.Plaintexts, callback.Attestation)
	if err != nil {
		log.Err(err).Str("request_id", callback.RequestID).Msg("record callback rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

// countCallback handles POST /api/oracle/count: the oracle's count-reveal
// delivery. On success the decrypted aggregate is echoed back to the caller.
func (h *Handler) countCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var callback models.CountCallbackRequest
	if err := json.NewDecoder(r.Body).Decode(&callback); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	revealed, err := h.services.RevealService.OnCountDecrypted(ctx, callback.RequestID, callback.Count, callback.Attestation)
	if err != nil {
		log.Err(err).Str("request_id", callback.RequestID).Msg("count callback rejected")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, revealed, http.StatusOK)
}
