// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package config provides layered configuration for Fincompass:
// struct defaults, then an optional YAML file, then environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Advisor AdvisorConfig `koanf:"advisor"`
	Models  ModelsConfig  `koanf:"models"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// CORSOrigins lists allowed CORS origins. "*" allows all, matching the
	// open advisory API surface.
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the per-client request budget per minute.
	RateLimit int `koanf:"rate_limit"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// AdvisorConfig holds engine tunables.
type AdvisorConfig struct {
	// Seed drives all stochastic initialization for deterministic runs.
	Seed int64 `koanf:"seed"`

	// MaxClusters bounds the segmentation k search.
	MaxClusters int `koanf:"max_clusters"`

	// Components is the latent factor count for the collaborative model.
	Components int `koanf:"components"`

	// FactorizationIterations bounds the NMF update loop.
	FactorizationIterations int `koanf:"factorization_iterations"`

	// MinUsersForCollab is the minimum historical user count before the
	// collaborative model is trained at all.
	MinUsersForCollab int `koanf:"min_users_for_collab"`

	// ContentWeight and CollabWeight blend the hybrid score.
	ContentWeight float64 `koanf:"content_weight"`
	CollabWeight  float64 `koanf:"collab_weight"`

	// TopN is the default recommendation list length.
	TopN int `koanf:"top_n"`

	// SimilarUsers is the neighbor count for collaborative prediction.
	SimilarUsers int `koanf:"similar_users"`

	// ColdStartNeighbors is the profile-similarity neighbor count for the
	// cold-start path.
	ColdStartNeighbors int `koanf:"cold_start_neighbors"`

	// TrainOnStartup triggers training when the service starts.
	TrainOnStartup bool `koanf:"train_on_startup"`

	// TrainInterval is how often models are retrained.
	TrainInterval time.Duration `koanf:"train_interval"`

	// TrainTimeout bounds a single training run.
	TrainTimeout time.Duration `koanf:"train_timeout"`
}

// ModelsConfig holds model persistence settings.
type ModelsConfig struct {
	// Dir is the directory for persisted model blobs.
	Dir string `koanf:"dir"`

	// SaveOnTrain persists models after every successful training run.
	SaveOnTrain bool `koanf:"save_on_train"`

	// LoadOnStartup restores persisted models before first training.
	LoadOnStartup bool `koanf:"load_on_startup"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       120,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Advisor: AdvisorConfig{
			Seed:                    42,
			MaxClusters:             10,
			Components:              10,
			FactorizationIterations: 200,
			MinUsersForCollab:       10,
			ContentWeight:           0.7,
			CollabWeight:            0.3,
			TopN:                    5,
			SimilarUsers:            5,
			ColdStartNeighbors:      3,
			TrainOnStartup:          true,
			TrainInterval:           24 * time.Hour,
			TrainTimeout:            10 * time.Minute,
		},
		Models: ModelsConfig{
			Dir:           "/data/models",
			SaveOnTrain:   false,
			LoadOnStartup: false,
		},
	}
}

// Validate checks the configuration for invalid combinations.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in (0, 65535], got %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("server.rate_limit must be >= 0, got %d", c.Server.RateLimit)
	}
	if c.Advisor.MaxClusters < 2 {
		return fmt.Errorf("advisor.max_clusters must be >= 2, got %d", c.Advisor.MaxClusters)
	}
	if c.Advisor.Components <= 0 {
		return fmt.Errorf("advisor.components must be > 0, got %d", c.Advisor.Components)
	}
	if c.Advisor.TopN <= 0 {
		return fmt.Errorf("advisor.top_n must be > 0, got %d", c.Advisor.TopN)
	}
	if c.Advisor.ContentWeight < 0 || c.Advisor.CollabWeight < 0 {
		return fmt.Errorf("advisor blend weights must be >= 0")
	}
	sum := c.Advisor.ContentWeight + c.Advisor.CollabWeight
	if sum <= 0 {
		return fmt.Errorf("advisor blend weights must not both be zero")
	}
	// Weights are normalized at use, so any positive sum is acceptable.
	if c.Advisor.ColdStartNeighbors <= 0 {
		return fmt.Errorf("advisor.cold_start_neighbors must be > 0, got %d", c.Advisor.ColdStartNeighbors)
	}
	return nil
}

// ListenAddr returns the host:port listen address.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
