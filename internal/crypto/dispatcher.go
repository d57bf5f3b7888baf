package crypto

import (
	"context"
	"time"

	"github.com/dkhalitov/go-cipher-ledger/internal/logger"
	"github.com/dkhalitov/go-cipher-ledger/models"
)

// Dispatcher drains the local engine's job queue and delivers computed
// plaintexts back to the reveal sink, standing in for the external oracle's
// callback traffic in development mode. Delivery is asynchronous with
// respect to scheduling; an optional delay widens the window to make the
// asynchrony visible in demos.
type Dispatcher struct {
	engine *LocalEngine
	sink   RevealSink
	delay  time.Duration

	logger *logger.Logger
}

// NewDispatcher wires a [Dispatcher] to the engine it drains and the sink it
// delivers to.
func NewDispatcher(engine *LocalEngine, sink RevealSink, delay time.Duration, logger *logger.Logger) *Dispatcher {
	return &Dispatcher{
		engine: engine,
		sink:   sink,
		delay:  delay,
		logger: logger,
	}
}

// Run consumes scheduled decryptions until ctx is cancelled. Delivery
// failures are logged and dropped: a real oracle would retry, but the core
// itself owns no retry logic, so the dispatcher mirrors that.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Str("func", "Dispatcher.Run").Msg("local oracle dispatcher started")

	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Str("func", "Dispatcher.Run").Msg("local oracle dispatcher stopped")
			return
		case job := <-d.engine.Jobs():
			if d.delay > 0 {
				select {
				case <-ctx.Done():
					return
				case <-time.After(d.delay):
				}
			}
			d.deliver(ctx, job)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, job DecryptionJob) {
	log := d.logger

	plaintexts, attestation, err := d.engine.Resolve(job)
	if err != nil {
		log.Err(err).
			Str("func", "Dispatcher.deliver").
			Str("request_id", job.RequestID).
			Msg("failed to resolve scheduled decryption")
		return
	}

	switch job.Kind {
	case models.RecordCallback:
		err = d.sink.OnRecordDecrypted(ctx, job.RequestID, plaintexts, attestation)
	case models.CountCallback:
		_, err = d.sink.OnCountDecrypted(ctx, job.RequestID, plaintexts[0], attestation)
	default:
		log.Error().
			Str("func", "Dispatcher.deliver").
			Str("request_id", job.RequestID).
			Str("kind", string(job.Kind)).
			Msg("unknown callback kind")
		return
	}

	if err != nil {
		log.Err(err).
			Str("func", "Dispatcher.deliver").
			Str("request_id", job.RequestID).
			Str("kind", string(job.Kind)).
			Msg("reveal sink rejected callback")
		return
	}

	log.Debug().
		Str("func", "Dispatcher.deliver").
		Str("request_id", job.RequestID).
		Str("kind", string(job.Kind)).
		Msg("callback delivered")
}
