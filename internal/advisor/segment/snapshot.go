// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package segment

import "errors"

// Snapshot is the serializable trained state of a Model.
type Snapshot struct {
	K         int              `json:"k"`
	Columns   []string         `json:"columns"`
	Centroids [][]float64      `json:"centroids"`
	Profiles  []ClusterProfile `json:"profiles"`
}

// ErrBadSnapshot means a snapshot is structurally inconsistent.
var ErrBadSnapshot = errors.New("segment: inconsistent snapshot")

// Snapshot exports the fitted state for persistence.
func (m *Model) Snapshot() (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.trained {
		return nil, ErrUntrained
	}
	return &Snapshot{
		K:         m.k,
		Columns:   m.columns,
		Centroids: m.centroids,
		Profiles:  m.profiles,
	}, nil
}

// Restore replaces the model state with a snapshot.
func (m *Model) Restore(s *Snapshot) error {
	if s == nil || s.K < 1 || len(s.Centroids) != s.K || len(s.Profiles) != s.K || len(s.Columns) == 0 {
		return ErrBadSnapshot
	}
	for _, c := range s.Centroids {
		if len(c) != len(s.Columns) {
			return ErrBadSnapshot
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.k = s.K
	m.columns = s.Columns
	m.centroids = s.Centroids
	m.profiles = s.Profiles
	m.labels = nil
	m.trained = true
	return nil
}
