package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/config"
	"github.com/dkhalitov/go-cipher-ledger/internal/crypto"
	myHTTP "github.com/dkhalitov/go-cipher-ledger/internal/handler/http"
	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/server"
	"github.com/dkhalitov/go-cipher-ledger/internal/service"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("ledger-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	engine := crypto.NewLocalEngine(cfg.Oracle.AttestationKey)
	notifier := service.NewLogNotifier(log)

	services := service.NewServices(storages, engine, engine, notifier, *cfg, log)

	background := []workers.Worker{
		workers.NewSweeper(storages.PendingRepository, cfg.Oracle.RequestTTL, time.Minute, log),
	}
	if cfg.Oracle.LocalDispatch {
		background = append(background, crypto.NewDispatcher(engine, services.RevealService, cfg.Oracle.DispatchDelay, log))
	}
	workers.NewWorkers(background...).Run(ctx)

	handler := myHTTP.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
