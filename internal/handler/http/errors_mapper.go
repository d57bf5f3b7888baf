package http

import (
	"errors"
	"net/http"

	"github.com/dkhalitov/go-cipher-ledger/internal/service"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrHandleNotInitialized:    http.StatusBadRequest,
	service.ErrMalformedPlaintext:      http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrInvalidAttestation:      http.StatusUnauthorized,
	service.ErrNotRecordOwner:          http.StatusForbidden,
	service.ErrUnknownRequest:          http.StatusNotFound,
	service.ErrRequestExpired:          http.StatusGone,

	store.ErrLoginAlreadyExists: http.StatusConflict,
	store.ErrNoUserWasFound:     http.StatusNotFound,
	store.ErrRecordNotFound:     http.StatusNotFound,
	store.ErrLabelNotFound:      http.StatusNotFound,
	store.ErrPendingNotFound:    http.StatusNotFound,
	store.ErrAlreadyRevealed:    http.StatusConflict,
	store.ErrPendingNotOpen:     http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
