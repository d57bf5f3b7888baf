package store

import (
	"context"

	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
)

// Storages bundles every repository the service layer consumes.
type Storages struct {
	RecordRepository  RecordRepository
	PendingRepository PendingRepository
	LabelRepository   LabelRepository
	UserRepository    UserRepository
}

// NewStorages selects the persistence backend from configuration: a
// PostgreSQL-backed set of repositories when a DSN is configured (running
// embedded migrations first), or the in-memory store otherwise.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (Storages, error) {
	if cfg.DB.DSN == "" {
		log.Info().Str("func", "NewStorages").Msg("no database DSN configured, using in-memory store")
		memory := NewMemoryStore()
		return Storages{
			RecordRepository:  memory,
			PendingRepository: memory,
			LabelRepository:   memory,
			UserRepository:    memory,
		}, nil
	}

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return Storages{}, err
	}

	if err := db.Migrate(); err != nil {
		return Storages{}, err
	}

	return Storages{
		RecordRepository:  NewRecordRepository(db, log),
		PendingRepository: NewPendingRepository(db, log),
		LabelRepository:   NewLabelRepository(db, log),
		UserRepository:    NewUserRepository(db, log),
	}, nil
}
