// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package collab

import "errors"

// Snapshot is the serializable trained state of a Model.
type Snapshot struct {
	UserIDs        []int         `json:"user_ids"`
	ProductIDs     []string      `json:"product_ids"`
	Interactions   []Interaction `json:"interactions"`
	UserFactors    [][]float64   `json:"user_factors"`
	ProductFactors [][]float64   `json:"product_factors"`
	Similarity     [][]float64   `json:"similarity"`
}

// ErrBadSnapshot means a snapshot is structurally inconsistent.
var ErrBadSnapshot = errors.New("collab: inconsistent snapshot")

// Snapshot exports the trained state. Interactions are emitted in index
// order, so identical models produce identical snapshots.
func (m *Model) Snapshot() (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateTrained {
		return nil, ErrUntrained
	}

	var interactions []Interaction
	for ui, userID := range m.matrix.userIDs {
		for pi, productID := range m.matrix.productIDs {
			if r := m.matrix.Rating(ui, pi); r != 0 {
				interactions = append(interactions, Interaction{UserID: userID, ProductID: productID, Rating: r})
			}
		}
	}

	return &Snapshot{
		UserIDs:        m.matrix.UserIDs(),
		ProductIDs:     m.matrix.ProductIDs(),
		Interactions:   interactions,
		UserFactors:    m.userFactors,
		ProductFactors: m.productFactors,
		Similarity:     m.similarity,
	}, nil
}

// Restore replaces the model state with a snapshot, typically loaded from
// disk at startup.
func (m *Model) Restore(s *Snapshot) error {
	if s == nil || len(s.UserIDs) == 0 || len(s.ProductIDs) == 0 {
		return ErrBadSnapshot
	}
	if len(s.UserFactors) != len(s.UserIDs) || len(s.Similarity) != len(s.UserIDs) {
		return ErrBadSnapshot
	}

	matrix := NewInteractionMatrix(s.Interactions)
	if matrix.NumUsers() != len(s.UserIDs) || matrix.NumProducts() != len(s.ProductIDs) {
		return ErrBadSnapshot
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.matrix = matrix
	m.userFactors = s.UserFactors
	m.productFactors = s.ProductFactors
	m.similarity = s.Similarity
	m.state = StateTrained
	return nil
}
