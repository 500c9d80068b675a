package session

import (
	"context"
	"os"
	"sync"

	"tracev/internal/app/errors"
	"tracev/internal/app/ingest"
	"tracev/internal/app/runtime"
	"tracev/internal/app/watch"
	"tracev/internal/config"
	"tracev/internal/config/logger"
)

// Session owns the ingestion goroutine for one run. The input mode is picked
// from the configuration: stdin when no input path is set, a live tail when
// following, a single read to EOF otherwise.
type Session interface {
	Start(ctx context.Context) error
	Stop()
}

type session struct {
	cfg      *config.Config
	pipeline ingest.Pipeline
	bus      runtime.EventBus
	log      logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
}

// NewSession creates a session over the configured input
func NewSession(
	cfg *config.Config,
	p ingest.Pipeline,
	bus runtime.EventBus,
	log logger.Logger,
) Session {
	return &session{
		cfg:      cfg,
		pipeline: p,
		bus:      bus,
		log:      log.WithComponent("SESSION"),
	}
}

// Start launches the ingestion goroutine. A missing input file fails fast
// with ErrInputNotFound; everything after that is reported on the bus.
func (s *session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.ErrSessionStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.started = true

	if s.cfg.Input == "" {
		s.log.Info().Msg("Reading from stdin")

		go func() {
			if err := ingest.Drain(ctx, os.Stdin, s.pipeline); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error().Err(err).Msg("Stdin read failed")
			}
		}()

		return nil
	}

	if _, err := os.Stat(s.cfg.Input); err != nil {
		cancel()
		s.started = false

		return errors.ErrInputNotFound
	}

	if s.cfg.Follow {
		s.log.Info().Msgf("Following %s", s.cfg.Input)

		tailer := watch.NewTailer(s.cfg.Input, s.cfg, s.pipeline, s.bus, s.log)

		go func() {
			if err := tailer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.log.Error().Err(err).Msg("Tail failed")
			}
		}()

		return nil
	}

	s.log.Info().Msgf("Reading %s", s.cfg.Input)

	go func() {
		f, err := os.Open(s.cfg.Input)
		if err != nil {
			s.log.Error().Err(err).Msg("Open failed")
			return
		}
		defer f.Close()

		if err := ingest.Drain(ctx, f, s.pipeline); err != nil && !errors.Is(err, context.Canceled) {
			s.log.Error().Err(err).Msg("Read failed")
		}
	}()

	return nil
}

// Stop cancels the ingestion goroutine
func (s *session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
}
