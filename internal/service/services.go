package service

import (
	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
)

type Services struct {
	AuthService       AuthService
	LedgerService     LedgerService
	DecryptionService DecryptionService
	RevealService     RevealService
}

func NewServices(
	storages store.Storages,
	arithmetic crypto.Arithmetic,
	oracle crypto.DecryptionOracle,
	notifier Notifier,
	cfg config.StructuredConfig,
	logger *logger.Logger,
) *Services {
	return &Services{
		AuthService: NewAuthService(storages.UserRepository, cfg.App, logger),
		LedgerService: NewLedgerService(
			storages.RecordRepository,
			storages.LabelRepository,
			arithmetic,
			notifier,
			logger,
		),
		DecryptionService: NewDecryptionService(
			storages.RecordRepository,
			storages.PendingRepository,
			storages.LabelRepository,
			oracle,
			notifier,
			logger,
		),
		RevealService: NewRevealService(
			storages.RecordRepository,
			storages.PendingRepository,
			storages.LabelRepository,
			oracle,
			arithmetic,
			notifier,
			cfg.Oracle,
			logger,
		),
	}
}
