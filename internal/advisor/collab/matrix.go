// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package collab implements collaborative filtering over synthesized
// user-product interactions. Ratings are factorized with non-negative
// matrix factorization and predictions come from similarity-weighted
// averages of comparable users.
package collab

import (
	"math"
	"sort"

	"github.com/tomtom215/fincompass/internal/advisor/content"
	"github.com/tomtom215/fincompass/internal/profile"
)

// Interaction is one implicit user-product rating.
type Interaction struct {
	UserID    int     `json:"user_id"`
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"rating"`
}

type cell struct {
	user    int
	product int
}

// InteractionMatrix is a sparse user-product rating matrix with explicit
// id to index tables. Missing cells read as zero, meaning no interaction.
type InteractionMatrix struct {
	userIDs    []int
	productIDs []string
	userIndex  map[int]int
	prodIndex  map[string]int
	ratings    map[cell]float64
}

// NewInteractionMatrix builds the matrix from interactions. User ids are
// indexed in ascending order and product ids lexicographically, so the
// layout is independent of interaction order. Duplicate cells keep the
// last rating.
func NewInteractionMatrix(interactions []Interaction) *InteractionMatrix {
	userSet := make(map[int]struct{})
	prodSet := make(map[string]struct{})
	for _, in := range interactions {
		userSet[in.UserID] = struct{}{}
		prodSet[in.ProductID] = struct{}{}
	}

	userIDs := make([]int, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	sort.Ints(userIDs)

	productIDs := make([]string, 0, len(prodSet))
	for id := range prodSet {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	m := &InteractionMatrix{
		userIDs:    userIDs,
		productIDs: productIDs,
		userIndex:  make(map[int]int, len(userIDs)),
		prodIndex:  make(map[string]int, len(productIDs)),
		ratings:    make(map[cell]float64, len(interactions)),
	}
	for i, id := range userIDs {
		m.userIndex[id] = i
	}
	for i, id := range productIDs {
		m.prodIndex[id] = i
	}
	for _, in := range interactions {
		m.ratings[cell{m.userIndex[in.UserID], m.prodIndex[in.ProductID]}] = in.Rating
	}
	return m
}

// NumUsers returns the number of distinct users.
func (m *InteractionMatrix) NumUsers() int { return len(m.userIDs) }

// NumProducts returns the number of distinct products.
func (m *InteractionMatrix) NumProducts() int { return len(m.productIDs) }

// NumInteractions returns the number of populated cells.
func (m *InteractionMatrix) NumInteractions() int { return len(m.ratings) }

// UserIDs returns user ids in index order.
func (m *InteractionMatrix) UserIDs() []int {
	out := make([]int, len(m.userIDs))
	copy(out, m.userIDs)
	return out
}

// ProductIDs returns product ids in index order.
func (m *InteractionMatrix) ProductIDs() []string {
	out := make([]string, len(m.productIDs))
	copy(out, m.productIDs)
	return out
}

// UserIndex resolves a user id to its row index.
func (m *InteractionMatrix) UserIndex(userID int) (int, bool) {
	i, ok := m.userIndex[userID]
	return i, ok
}

// Rating returns the rating at (userIdx, prodIdx), zero when absent.
func (m *InteractionMatrix) Rating(userIdx, prodIdx int) float64 {
	return m.ratings[cell{userIdx, prodIdx}]
}

// Dense materializes the full matrix for factorization.
func (m *InteractionMatrix) Dense() [][]float64 {
	out := make([][]float64, len(m.userIDs))
	for i := range out {
		out[i] = make([]float64, len(m.productIDs))
	}
	for c, r := range m.ratings {
		out[c.user][c.product] = r
	}
	return out
}

// Synthesize builds implicit interactions by rating every user's content
// recommendations. Suitability maps onto a 1 to 5 rating scale.
func Synthesize(profiles []*profile.UserProfile, rec *content.Recommender, perUser int) []Interaction {
	var out []Interaction
	for userID, p := range profiles {
		for _, r := range rec.RecommendProducts(p, perUser) {
			rating := math.Min(5.0, math.Max(1.0, r.SuitabilityScore*5))
			out = append(out, Interaction{
				UserID:    userID,
				ProductID: r.ProductID,
				Rating:    rating,
			})
		}
	}
	return out
}
