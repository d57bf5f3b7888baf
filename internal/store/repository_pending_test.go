package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPendingRepo(t *testing.T) (PendingRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock := newTestDB(t)
	return NewPendingRepository(db, logger.Nop()), mock
}

func TestPendingRepository_SavePending(t *testing.T) {
	repo, mock := newTestPendingRepo(t)
	now := time.Now()

	pending := models.PendingDecryption{
		RequestID: "req-1",
		Kind:      models.RecordCallback,
		RecordID:  3,
		Status:    models.PendingOpen,
		IssuedAt:  now,
	}

	mock.ExpectExec("INSERT INTO pending_decryptions").
		WithArgs(
			pending.RequestID,
			pending.Kind,
			sql.NullInt64{Int64: 3, Valid: true},
			sql.NullString{},
			pending.Status,
			now,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SavePending(context.Background(), pending))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRepository_GetPending_NotFound(t *testing.T) {
	repo, mock := newTestPendingRepo(t)

	mock.ExpectQuery("SELECT request_id, kind").
		WithArgs("req-missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetPending(context.Background(), "req-missing")
	assert.ErrorIs(t, err, ErrPendingNotFound)
}

func TestPendingRepository_GetPending_CountKind(t *testing.T) {
	repo, mock := newTestPendingRepo(t)
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"request_id", "kind", "record_id", "label_hash", "status", "issued_at"}).
		AddRow("req-1", string(models.CountCallback), nil, "hash-saving", string(models.PendingOpen), now)

	mock.ExpectQuery("SELECT request_id, kind").
		WithArgs("req-1").
		WillReturnRows(rows)

	pending, err := repo.GetPending(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, models.CountCallback, pending.Kind)
	assert.Zero(t, pending.RecordID)
	assert.Equal(t, "hash-saving", pending.LabelHash)
}

func TestPendingRepository_MarkPending(t *testing.T) {
	tests := []struct {
		name          string
		currentStatus any
		updatedID     any
		wantErr       error
	}{
		{
			name:          "open entry transitions",
			currentStatus: "pending",
			updatedID:     "req-1",
			wantErr:       nil,
		},
		{
			name:          "missing entry",
			currentStatus: nil,
			updatedID:     nil,
			wantErr:       ErrPendingNotFound,
		},
		{
			name:          "entry already finalized",
			currentStatus: "done",
			updatedID:     nil,
			wantErr:       ErrPendingNotOpen,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestPendingRepo(t)

			rows := sqlmock.
				NewRows([]string{"current_status", "updated_id"}).
				AddRow(tt.currentStatus, tt.updatedID)

			mock.ExpectQuery("WITH target_entry").
				WithArgs("req-1", models.PendingCancelled).
				WillReturnRows(rows)

			err := repo.MarkPending(context.Background(), "req-1", models.PendingCancelled)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPendingRepository_ListOpenPending(t *testing.T) {
	repo, mock := newTestPendingRepo(t)
	now := time.Now()

	rows := sqlmock.
		NewRows([]string{"request_id", "kind", "record_id", "label_hash", "status", "issued_at"}).
		AddRow("req-1", string(models.RecordCallback), int64(3), nil, string(models.PendingOpen), now).
		AddRow("req-2", string(models.CountCallback), nil, "hash-saving", string(models.PendingOpen), now)

	mock.ExpectQuery("SELECT request_id, kind").
		WillReturnRows(rows)

	open, err := repo.ListOpenPending(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, int64(3), open[0].RecordID)
	assert.Equal(t, "hash-saving", open[1].LabelHash)
}
