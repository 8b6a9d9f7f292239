// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/fincompass/internal/advisor"
	"github.com/tomtom215/fincompass/internal/config"
	"github.com/tomtom215/fincompass/internal/features"
	"github.com/tomtom215/fincompass/internal/store"
)

func testAdvisorConfig() config.AdvisorConfig {
	return config.AdvisorConfig{
		Seed:                    42,
		MaxClusters:             6,
		Components:              8,
		FactorizationIterations: 100,
		MinUsersForCollab:       10,
		ContentWeight:           0.7,
		CollabWeight:            0.3,
		TopN:                    5,
		SimilarUsers:            5,
		ColdStartNeighbors:      3,
	}
}

func initializedEngine(t *testing.T) *advisor.Engine {
	t.Helper()
	engine := advisor.NewEngine(testAdvisorConfig())
	if err := engine.Initialize(context.Background(), features.SampleSources(30, 7)); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return engine
}

func TestAdvisorService_Interface(t *testing.T) {
	var _ suture.Service = (*AdvisorService)(nil)
}

func TestAdvisorService_TrainCycle(t *testing.T) {
	engine := initializedEngine(t)
	svc := NewAdvisorService(engine, nil, AdvisorServiceConfig{}, zerolog.Nop())

	if err := svc.train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}
	if !engine.Ready() {
		t.Error("engine not ready after training cycle")
	}
}

func TestAdvisorService_TrainUninitialized(t *testing.T) {
	engine := advisor.NewEngine(testAdvisorConfig())
	svc := NewAdvisorService(engine, nil, AdvisorServiceConfig{}, zerolog.Nop())

	if err := svc.train(context.Background()); !errors.Is(err, advisor.ErrNotInitialized) {
		t.Fatalf("train error = %v, want ErrNotInitialized", err)
	}
}

func TestAdvisorService_SaveOnTrain(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	engine := initializedEngine(t)
	svc := NewAdvisorService(engine, st, AdvisorServiceConfig{SaveOnTrain: true}, zerolog.Nop())

	if err := svc.train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "segments.json")); err != nil {
		t.Errorf("segments snapshot not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "collaborative.json")); err != nil {
		t.Errorf("collaborative snapshot not written: %v", err)
	}
}

func TestAdvisorService_RestoreOnStartup(t *testing.T) {
	dir := t.TempDir()
	st, err := store.New(dir)
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}

	// Train one engine and persist its models.
	trained := initializedEngine(t)
	first := NewAdvisorService(trained, st, AdvisorServiceConfig{SaveOnTrain: true}, zerolog.Nop())
	if err := first.train(context.Background()); err != nil {
		t.Fatalf("train: %v", err)
	}

	// A fresh engine restored from disk should report trained segments.
	fresh := initializedEngine(t)
	second := NewAdvisorService(fresh, st, AdvisorServiceConfig{LoadOnStartup: true}, zerolog.Nop())
	second.restore()

	if !fresh.SegmentModel().Trained() {
		t.Error("segmentation model not restored")
	}
	status := fresh.Status()
	if status.Users == 0 {
		t.Error("collaborative model not restored")
	}
}

func TestAdvisorService_RestoreMissingFilesIsQuiet(t *testing.T) {
	st, err := store.New(t.TempDir())
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	engine := initializedEngine(t)
	svc := NewAdvisorService(engine, st, AdvisorServiceConfig{LoadOnStartup: true}, zerolog.Nop())

	// Must not panic or mutate engine state.
	svc.restore()
	if engine.SegmentModel().Trained() {
		t.Error("restore from empty dir marked model trained")
	}
}

func TestAdvisorService_ServeTrainsOnStartup(t *testing.T) {
	engine := initializedEngine(t)
	svc := NewAdvisorService(engine, nil, AdvisorServiceConfig{
		TrainOnStartup: true,
		TrainInterval:  time.Hour,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(5 * time.Second)
	for !engine.Ready() {
		select {
		case <-deadline:
			t.Fatal("engine not trained within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestAdvisorService_String(t *testing.T) {
	svc := NewAdvisorService(nil, nil, AdvisorServiceConfig{}, zerolog.Nop())
	if svc.String() != "advisor-service" {
		t.Errorf("String() = %q, want advisor-service", svc.String())
	}
}
