// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/internal/utils"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/go-chi/chi/v5"
)

// submitRecord handles POST /api/records: stores a new encrypted record for
// the authenticated account and returns its assigned identifier.
func (h *Handler) submitRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	record, err := h.services.LedgerService.Submit(ctx, userID, request)
	if err != nil {
		log.Err(err).Msg("record submission failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.SubmitResponse{ID: record.ID}, http.StatusCreated)
}

// getRevealed handles GET /api/records/{recordID}: returns the plaintext
// projection of one of the caller's records. Unrevealed records come back
// with zero values and revealed=false.
func (h *Handler) getRevealed(w http.ResponseWriter, r *http.Request) {
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

	revealed, err := h.services.LedgerService.GetRevealed(ctx, userID, recordID)
	if err != nil {
		log.Err(err).Int64("record_id", recordID).Msg("projection lookup failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, revealed, http.StatusOK)
}

// listRecords handles GET /api/records: returns the caller's record
// projections. Optional query parameters: "ids" (comma-separated record
// identifiers) and "revealed" (when "true", drops unrevealed records).
func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	filter := store.RecordFilter{
		OwnerID:      userID,
		RevealedOnly: r.URL.Query().Get("revealed") == "true",
	}

	if rawIDs := r.URL.Query().Get("ids"); rawIDs != "" {
		for _, raw := range strings.Split(rawIDs, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
			if err != nil {
				http.Error(w, "invalid record id in ids parameter", http.StatusBadRequest)
				return
			}
			filter.IDs = append(filter.IDs, id)
		}
	}

	items, err := h.services.LedgerService.ListRecords(ctx, filter)
	if err != nil {
		log.Err(err).Msg("record listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, items, http.StatusOK)
}

// listLabels handles GET /api/labels: returns every preference label
// revealed so far, in first-seen order.
func (h *Handler) listLabels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	labels, err := h.services.LedgerService.ListLabels(ctx)
	if err != nil {
		log.Err(err).Msg("label listing failed")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, models.LabelListResponse{Labels: labels}, http.StatusOK)
}
