// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package main is the entry point for the Fincompass server.
//
// Fincompass is a personalized financial advisory engine that combines
// behavioral segmentation, content-based product matching, and
// collaborative filtering into hybrid recommendations served over a
// REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: load settings from defaults, config file, and
//     environment variables (Koanf v2)
//  2. Engine: build the advisory engine and load source data
//  3. Model store: optional persistence directory for trained models
//  4. Supervisor tree: advisory trainer and HTTP server under suture
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (FINCOMPASS_ prefix)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, drains in-flight requests within the
// configured shutdown timeout, and stops the training loop.
//
// # Example Usage
//
//	export FINCOMPASS_SERVER__PORT=8080
//	export FINCOMPASS_ADVISOR__TRAIN_ON_STARTUP=true
//	./fincompass
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/fincompass/internal/advisor"
	"github.com/tomtom215/fincompass/internal/api"
	"github.com/tomtom215/fincompass/internal/config"
	"github.com/tomtom215/fincompass/internal/features"
	"github.com/tomtom215/fincompass/internal/logging"
	"github.com/tomtom215/fincompass/internal/store"
	"github.com/tomtom215/fincompass/internal/supervisor"
	"github.com/tomtom215/fincompass/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use the default logger for config errors.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("listen", cfg.Server.ListenAddr()).
		Bool("train_on_startup", cfg.Advisor.TrainOnStartup).
		Msg("Starting Fincompass")

	engine := advisor.NewEngine(cfg.Advisor)

	// Source data load. Uses the built-in synthetic sources until an
	// external dataset path is wired through configuration.
	if err := engine.Initialize(context.Background(), features.SampleSources(300, cfg.Advisor.Seed)); err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize advisory engine")
	}
	logging.Info().Msg("Advisory engine initialized")

	var modelStore *store.Store
	if cfg.Models.SaveOnTrain || cfg.Models.LoadOnStartup {
		modelStore, err = store.New(cfg.Models.Dir)
		if err != nil {
			logging.Fatal().Err(err).Str("dir", cfg.Models.Dir).Msg("Failed to open model store")
		}
		logging.Info().Str("dir", modelStore.Dir()).Msg("Model persistence enabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog logger; bridge from zerolog.
	tree, err := supervisor.NewTree(logging.Slogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddModelService(services.NewAdvisorService(engine, modelStore, services.AdvisorServiceConfig{
		TrainOnStartup: cfg.Advisor.TrainOnStartup,
		TrainInterval:  cfg.Advisor.TrainInterval,
		TrainTimeout:   cfg.Advisor.TrainTimeout,
		SaveOnTrain:    cfg.Models.SaveOnTrain,
		LoadOnStartup:  cfg.Models.LoadOnStartup,
	}, logging.Logger()))

	handler := api.NewHandler(engine, func(r *http.Request) error {
		if err := engine.Initialize(r.Context(), features.SampleSources(300, cfg.Advisor.Seed)); err != nil {
			return err
		}
		return engine.Train(r.Context())
	})

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      api.NewRouter(cfg.Server, handler),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor stopped with error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Fatal().Err(err).Msg("Supervisor tree failed")
		}
	}

	logging.Info().Msg("Fincompass stopped")
}
