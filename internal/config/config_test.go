// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := defaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config failed validation: %v", err)
	}

	if cfg.Advisor.ContentWeight+cfg.Advisor.CollabWeight != 1.0 {
		t.Errorf("default blend weights = %v + %v, want sum 1.0",
			cfg.Advisor.ContentWeight, cfg.Advisor.CollabWeight)
	}
	if cfg.Advisor.Seed != 42 {
		t.Errorf("default seed = %d, want 42", cfg.Advisor.Seed)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, true},
		{"max clusters below 2", func(c *Config) { c.Advisor.MaxClusters = 1 }, true},
		{"zero components", func(c *Config) { c.Advisor.Components = 0 }, true},
		{"zero top_n", func(c *Config) { c.Advisor.TopN = 0 }, true},
		{"negative weight", func(c *Config) { c.Advisor.ContentWeight = -0.1 }, true},
		{"both weights zero", func(c *Config) {
			c.Advisor.ContentWeight = 0
			c.Advisor.CollabWeight = 0
		}, true},
		{"unnormalized weights allowed", func(c *Config) {
			c.Advisor.ContentWeight = 2
			c.Advisor.CollabWeight = 1
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"FINCOMPASS_SERVER__PORT", "server.port"},
		{"FINCOMPASS_ADVISOR__TRAIN_INTERVAL", "advisor.train_interval"},
		{"FINCOMPASS_LOGGING__LEVEL", "logging.level"},
	}

	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 9000\nadvisor:\n  top_n: 7\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("FINCOMPASS_SERVER__PORT", "9100")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Env overrides file, file overrides defaults.
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100 (env override)", cfg.Server.Port)
	}
	if cfg.Advisor.TopN != 7 {
		t.Errorf("Advisor.TopN = %d, want 7 (file override)", cfg.Advisor.TopN)
	}
	if cfg.Advisor.TrainInterval != 24*time.Hour {
		t.Errorf("Advisor.TrainInterval = %v, want default 24h", cfg.Advisor.TrainInterval)
	}
}

func TestListenAddr(t *testing.T) {
	sc := ServerConfig{Host: "127.0.0.1", Port: 8080}
	if got := sc.ListenAddr(); got != "127.0.0.1:8080" {
		t.Errorf("ListenAddr() = %q, want %q", got, "127.0.0.1:8080")
	}
}
