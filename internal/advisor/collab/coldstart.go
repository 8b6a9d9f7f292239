// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package collab

import (
	"sort"

	"github.com/tomtom215/fincompass/internal/profile"
)

// SimilarProfiles ranks known users by cosine similarity between their
// demographic vectors and the target profile. All users are returned,
// ordered by similarity descending with index order breaking ties.
func SimilarProfiles(target *profile.UserProfile, known []*profile.UserProfile) []SimilarUser {
	tv := target.SimilarityVector()
	out := make([]SimilarUser, 0, len(known))
	for id, p := range known {
		out = append(out, SimilarUser{
			UserID:     id,
			Similarity: cosine(tv, p.SimilarityVector()),
		})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Similarity > out[b].Similarity
	})
	return out
}

// ColdStart predicts ratings for a user with no interaction history by
// accumulating similarity-weighted ratings from the top neighbors profile
// similar users. With no usable neighbors the result is empty and the
// caller falls back to content scoring.
func (m *Model) ColdStart(target *profile.UserProfile, known []*profile.UserProfile, neighbors, n int) []PredictedRating {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateTrained {
		return nil
	}

	if neighbors < 1 {
		neighbors = 3
	}
	similar := SimilarProfiles(target, known)
	if len(similar) > neighbors {
		similar = similar[:neighbors]
	}

	scores := make(map[string]float64)
	for _, su := range similar {
		idx, ok := m.matrix.UserIndex(su.UserID)
		if !ok {
			continue
		}
		for pi, productID := range m.matrix.productIDs {
			if r := m.matrix.Rating(idx, pi); r > 0 {
				scores[productID] += su.Similarity * r
			}
		}
	}

	out := make([]PredictedRating, 0, len(scores))
	for _, productID := range m.matrix.productIDs {
		if s, ok := scores[productID]; ok {
			out = append(out, PredictedRating{ProductID: productID, Rating: s})
		}
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Rating > out[b].Rating
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
