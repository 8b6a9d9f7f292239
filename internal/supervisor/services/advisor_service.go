// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/fincompass/internal/advisor"
	"github.com/tomtom215/fincompass/internal/advisor/collab"
	"github.com/tomtom215/fincompass/internal/advisor/segment"
	"github.com/tomtom215/fincompass/internal/metrics"
	"github.com/tomtom215/fincompass/internal/store"
)

// AdvisorServiceConfig holds the training lifecycle settings.
type AdvisorServiceConfig struct {
	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool

	// TrainInterval is how often models are retrained. Defaults to 24h.
	TrainInterval time.Duration

	// TrainTimeout bounds a single training run. Defaults to 10m.
	TrainTimeout time.Duration

	// SaveOnTrain persists models after every successful run.
	SaveOnTrain bool

	// LoadOnStartup restores persisted models before first training.
	LoadOnStartup bool
}

// AdvisorService owns the advisory engine's training lifecycle under
// suture supervision: optional restore from disk, training on startup,
// and periodic retraining.
type AdvisorService struct {
	engine *advisor.Engine
	store  *store.Store
	config AdvisorServiceConfig
	logger zerolog.Logger
	name   string
}

// NewAdvisorService creates the training service. store may be nil when
// model persistence is disabled.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAdvisorService(engine *advisor.Engine, st *store.Store, cfg AdvisorServiceConfig, logger zerolog.Logger) *AdvisorService {
	return &AdvisorService{
		engine: engine,
		store:  st,
		config: cfg,
		logger: logger.With().Str("service", "advisor").Logger(),
		name:   "advisor-service",
	}
}

// Serve implements the suture.Service interface. It restores persisted
// models when configured, optionally trains on startup, and then
// retrains on the configured interval until the context is canceled.
func (s *AdvisorService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("train_on_startup", s.config.TrainOnStartup).
		Dur("train_interval", s.config.TrainInterval).
		Msg("advisor service starting")

	if s.config.LoadOnStartup && s.store != nil {
		s.restore()
	}

	if s.config.TrainOnStartup {
		if err := s.train(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial training failed (will retry on schedule)")
		}
	}

	if s.config.TrainInterval <= 0 {
		s.config.TrainInterval = 24 * time.Hour
	}

	ticker := time.NewTicker(s.config.TrainInterval)
	defer ticker.Stop()

	s.logger.Info().Msg("advisor service running")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("advisor service shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.logger.Debug().Msg("scheduled training triggered")
			if err := s.train(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled training failed")
			}
		}
	}
}

// train runs one training cycle, records metrics, and persists the
// trained models when configured.
func (s *AdvisorService) train(ctx context.Context) error {
	timeout := s.config.TrainTimeout
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	trainCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	s.logger.Info().Msg("starting model training")

	err := s.engine.Train(trainCtx)
	metrics.RecordTraining(time.Since(start), err)
	if err != nil {
		if errors.Is(err, advisor.ErrTrainingInProgress) {
			s.logger.Debug().Msg("training already running, skipping cycle")
			return nil
		}
		return err
	}

	status := s.engine.Status()
	metrics.UpdateModelGauges(status.Clusters, status.Users, status.Interactions)

	s.logger.Info().
		Dur("duration", time.Since(start)).
		Int("clusters", status.Clusters).
		Int("users", status.Users).
		Int("interactions", status.Interactions).
		Msg("model training complete")

	if s.config.SaveOnTrain && s.store != nil {
		s.persist()
	}
	return nil
}

// persist writes both model snapshots. Failures are logged, not fatal:
// the in-memory models stay authoritative.
func (s *AdvisorService) persist() {
	if err := s.store.SaveSegments(s.engine.SegmentModel()); err != nil {
		if !errors.Is(err, segment.ErrUntrained) {
			s.logger.Warn().Err(err).Msg("failed to persist segmentation model")
		}
	}
	if err := s.store.SaveCollab(s.engine.CollabModel()); err != nil {
		if !errors.Is(err, collab.ErrUntrained) {
			s.logger.Warn().Err(err).Msg("failed to persist collaborative model")
		}
	}
}

// restore loads persisted snapshots if present. A missing file is the
// normal first-run case and logged at debug.
func (s *AdvisorService) restore() {
	if err := s.store.LoadSegments(s.engine.SegmentModel()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug().Msg("no persisted segmentation model")
		} else {
			s.logger.Warn().Err(err).Msg("failed to restore segmentation model")
		}
	} else {
		s.logger.Info().Msg("restored segmentation model from disk")
	}

	if err := s.store.LoadCollab(s.engine.CollabModel()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.Debug().Msg("no persisted collaborative model")
		} else {
			s.logger.Warn().Err(err).Msg("failed to restore collaborative model")
		}
	} else {
		s.logger.Info().Msg("restored collaborative model from disk")
	}
}

// String returns the service name for logging.
func (s *AdvisorService) String() string {
	return s.name
}
