// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package store persists trained model snapshots as JSON blobs on disk.
// Writes go through a temp file and rename, so a crash mid-save leaves
// the previous snapshot intact.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/fincompass/internal/advisor/collab"
	"github.com/tomtom215/fincompass/internal/advisor/segment"
)

// ErrNotFound means no snapshot exists at the expected path.
var ErrNotFound = errors.New("store: snapshot not found")

// Snapshot file names under the store directory.
const (
	segmentFile = "segments.json"
	collabFile  = "collaborative.json"
)

// envelope wraps a snapshot with versioning metadata.
type envelope struct {
	Version  int             `json:"version"`
	SavedAt  time.Time       `json:"saved_at"`
	Snapshot json.RawMessage `json:"snapshot"`
}

const snapshotVersion = 1

// Store reads and writes model snapshots under one directory.
type Store struct {
	dir string
}

// New creates the directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// SaveSegments persists the segmentation model snapshot.
func (s *Store) SaveSegments(m *segment.Model) error {
	snap, err := m.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshotting segmentation model: %w", err)
	}
	return s.write(segmentFile, snap)
}

// LoadSegments restores the segmentation model from disk.
func (s *Store) LoadSegments(m *segment.Model) error {
	var snap segment.Snapshot
	if err := s.read(segmentFile, &snap); err != nil {
		return err
	}
	if err := m.Restore(&snap); err != nil {
		return fmt.Errorf("restoring segmentation model: %w", err)
	}
	return nil
}

// SaveCollab persists the collaborative model snapshot.
func (s *Store) SaveCollab(m *collab.Model) error {
	snap, err := m.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshotting collaborative model: %w", err)
	}
	return s.write(collabFile, snap)
}

// LoadCollab restores the collaborative model from disk.
func (s *Store) LoadCollab(m *collab.Model) error {
	var snap collab.Snapshot
	if err := s.read(collabFile, &snap); err != nil {
		return err
	}
	if err := m.Restore(&snap); err != nil {
		return fmt.Errorf("restoring collaborative model: %w", err)
	}
	return nil
}

func (s *Store) write(name string, snapshot any) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	data, err := json.Marshal(envelope{
		Version:  snapshotVersion,
		SavedAt:  time.Now().UTC(),
		Snapshot: raw,
	})
	if err != nil {
		return fmt.Errorf("marshaling envelope: %w", err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing snapshot: %w", err)
	}
	return nil
}

func (s *Store) read(name string, snapshot any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("parsing envelope: %w", err)
	}
	if env.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", env.Version)
	}
	if err := json.Unmarshal(env.Snapshot, snapshot); err != nil {
		return fmt.Errorf("parsing snapshot: %w", err)
	}
	return nil
}
