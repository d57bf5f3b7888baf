// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daniil Khalitov

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/internal/store"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// Sweeper periodically cancels pending decryption correlations that outlived
// the configured request TTL, so abandoned requests do not accumulate as open
// entries. Callbacks arriving for a swept request are rejected the same way
// as for an explicitly cancelled one.
type Sweeper struct {
	pendingRepository store.PendingRepository
	ttl               time.Duration
	interval          time.Duration

	logger *logger.Logger
}

// NewSweeper constructs a [Sweeper]. A non-positive interval defaults to one
// minute; a non-positive ttl disables sweeping entirely.
func NewSweeper(pendingRepository store.PendingRepository, ttl, interval time.Duration, logger *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}

	return &Sweeper{
		pendingRepository: pendingRepository,
		ttl:               ttl,
		interval:          interval,
		logger:            logger,
	}
}

// Run implements [Worker]. It blocks until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	if s.ttl <= 0 {
		s.logger.Info().Str("func", "Sweeper.Run").Msg("request TTL disabled, sweeper not running")
		return
	}

	s.logger.Info().
		Str("func", "Sweeper.Run").
		Dur("ttl", s.ttl).
		Dur("interval", s.interval).
		Msg("pending decryption sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str("func", "Sweeper.Run").Msg("pending decryption sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	open, err := s.pendingRepository.ListOpenPending(ctx)
	if err != nil {
		s.logger.Err(err).Str("func", "Sweeper.sweep").Msg("failed to list open pending decryptions")
		return
	}

	now := time.Now()
	for _, pending := range open {
		if !pending.Expired(now, s.ttl) {
			continue
		}

		err := s.pendingRepository.MarkPending(ctx, pending.RequestID, models.PendingCancelled)
		if err != nil {
			// a callback may have finalized the entry between list and mark
			if errors.Is(err, store.ErrPendingNotOpen) {
				continue
			}
			s.logger.Err(err).
				Str("func", "Sweeper.sweep").
				Str("request_id", pending.RequestID).
				Msg("failed to cancel expired correlation")
			continue
		}

		s.logger.Info().
			Str("func", "Sweeper.sweep").
			Str("request_id", pending.RequestID).
			Time("issued_at", pending.IssuedAt).
			Msg("expired correlation cancelled")
	}
}
