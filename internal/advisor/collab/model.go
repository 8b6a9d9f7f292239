// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package collab

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
)

// Package errors.
var (
	// ErrNoInteractions means training was attempted on an empty matrix.
	ErrNoInteractions = errors.New("collab: no interaction data for training")
	// ErrTrainingInProgress means a concurrent Train call holds the model.
	ErrTrainingInProgress = errors.New("collab: training already in progress")
	// ErrUntrained means prediction was requested before training.
	ErrUntrained = errors.New("collab: model not trained")
	// ErrUnknownUser means the user id is not in the interaction matrix.
	ErrUnknownUser = errors.New("collab: user not in interaction matrix")
)

// State is the model lifecycle state.
type State int32

// Model states.
const (
	StateUntrained State = iota
	StateTraining
	StateTrained
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUntrained:
		return "untrained"
	case StateTraining:
		return "training"
	case StateTrained:
		return "trained"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

const nmfEpsilon = 1e-9

// Config controls factorization.
type Config struct {
	// Components is the requested latent factor count. The effective rank
	// is capped at min(Components, users, products).
	Components int
	// Iterations bounds the multiplicative update loop.
	Iterations int
	// Seed fixes factor initialization.
	Seed int64
}

// SimilarUser pairs a user id with its cosine similarity score.
type SimilarUser struct {
	UserID     int     `json:"user_id"`
	Similarity float64 `json:"similarity_score"`
}

// PredictedRating pairs a product with its predicted rating.
type PredictedRating struct {
	ProductID string  `json:"product_id"`
	Rating    float64 `json:"predicted_rating"`
}

// Model is a trained collaborative filtering model. Train is exclusive;
// readers see either the previous fit or the new one, never a partial
// state.
type Model struct {
	trainMu sync.Mutex

	mu             sync.RWMutex
	state          State
	matrix         *InteractionMatrix
	userFactors    [][]float64
	productFactors [][]float64
	similarity     [][]float64
}

// NewModel returns an untrained model.
func NewModel() *Model {
	return &Model{}
}

// State returns the current lifecycle state.
func (m *Model) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Trained reports whether the model can serve predictions.
func (m *Model) Trained() bool {
	return m.State() == StateTrained
}

// Matrix returns the fitted interaction matrix, nil when untrained.
func (m *Model) Matrix() *InteractionMatrix {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.matrix
}

// Train factorizes the interaction matrix and computes the user-user
// similarity matrix. A second concurrent call fails fast with
// ErrTrainingInProgress instead of queueing.
func (m *Model) Train(matrix *InteractionMatrix, cfg Config) error {
	if matrix == nil || matrix.NumInteractions() == 0 {
		return ErrNoInteractions
	}
	if !m.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer m.trainMu.Unlock()

	m.mu.Lock()
	m.state = StateTraining
	m.mu.Unlock()

	users := matrix.NumUsers()
	products := matrix.NumProducts()
	k := cfg.Components
	if k < 1 {
		k = 1
	}
	if users < k {
		k = users
	}
	if products < k {
		k = products
	}
	iterations := cfg.Iterations
	if iterations < 1 {
		iterations = 200
	}

	w, h := factorize(matrix.Dense(), users, products, k, iterations, cfg.Seed)

	sim := make([][]float64, users)
	for i := range sim {
		sim[i] = make([]float64, users)
		for j := range sim[i] {
			sim[i][j] = cosine(w[i], w[j])
		}
	}

	m.mu.Lock()
	m.matrix = matrix
	m.userFactors = w
	m.productFactors = h
	m.similarity = sim
	m.state = StateTrained
	m.mu.Unlock()
	return nil
}

// SimilarUsers returns up to n users most similar to userID, self
// excluded, ordered by similarity descending with index order breaking
// ties.
func (m *Model) SimilarUsers(userID, n int) ([]SimilarUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != StateTrained {
		return nil, ErrUntrained
	}
	idx, ok := m.matrix.UserIndex(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrUnknownUser, userID)
	}

	ids := m.matrix.UserIDs()
	candidates := make([]SimilarUser, 0, len(ids)-1)
	for i, id := range ids {
		if i == idx {
			continue
		}
		candidates = append(candidates, SimilarUser{UserID: id, Similarity: m.similarity[idx][i]})
	}
	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Similarity > candidates[b].Similarity
	})
	if n > 0 && n < len(candidates) {
		candidates = candidates[:n]
	}
	return candidates, nil
}

// RecommendForUser predicts ratings for products the user has not rated,
// as similarity-weighted averages over the rated neighbors. Products no
// neighbor rated get no prediction.
func (m *Model) RecommendForUser(userID, n, neighbors int) ([]PredictedRating, error) {
	similar, err := m.SimilarUsers(userID, neighbors)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	idx, ok := m.matrix.UserIndex(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrUnknownUser, userID)
	}

	var out []PredictedRating
	for pi, productID := range m.matrix.ProductIDs() {
		if m.matrix.Rating(idx, pi) != 0 {
			continue
		}

		weighted := 0.0
		simSum := 0.0
		for _, su := range similar {
			si, ok := m.matrix.UserIndex(su.UserID)
			if !ok {
				continue
			}
			if r := m.matrix.Rating(si, pi); r > 0 {
				weighted += su.Similarity * r
				simSum += su.Similarity
			}
		}
		if simSum > 0 {
			out = append(out, PredictedRating{ProductID: productID, Rating: weighted / simSum})
		}
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Rating > out[b].Rating
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// factorize runs multiplicative-update NMF on v, returning the user
// factor matrix W (users x k) and the product factor matrix H (k x
// products). Initialization is seeded and strictly positive.
func factorize(v [][]float64, users, products, k, iterations int, seed int64) ([][]float64, [][]float64) {
	rng := rand.New(rand.NewSource(seed))

	w := make([][]float64, users)
	for i := range w {
		w[i] = make([]float64, k)
		for j := range w[i] {
			w[i][j] = rng.Float64() + nmfEpsilon
		}
	}
	h := make([][]float64, k)
	for i := range h {
		h[i] = make([]float64, products)
		for j := range h[i] {
			h[i][j] = rng.Float64() + nmfEpsilon
		}
	}

	for iter := 0; iter < iterations; iter++ {
		// H <- H * (Wt V) / (Wt W H)
		wtv := matMulT(w, v, k, products)
		wtw := gram(w, k)
		wtwh := matMul(wtw, h, k, products)
		for i := 0; i < k; i++ {
			for j := 0; j < products; j++ {
				h[i][j] *= wtv[i][j] / (wtwh[i][j] + nmfEpsilon)
			}
		}

		// W <- W * (V Ht) / (W H Ht)
		vht := matMulBT(v, h, users, k)
		hht := gramT(h, k)
		whht := matMul(w, hht, users, k)
		for i := 0; i < users; i++ {
			for j := 0; j < k; j++ {
				w[i][j] *= vht[i][j] / (whht[i][j] + nmfEpsilon)
			}
		}
	}
	return w, h
}

// matMulT computes At B for A (n x k) and B (n x p).
func matMulT(a, b [][]float64, k, p int) [][]float64 {
	out := zeros(k, p)
	for r := range a {
		for i := 0; i < k; i++ {
			av := a[r][i]
			if av == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				out[i][j] += av * b[r][j]
			}
		}
	}
	return out
}

// matMulBT computes A Bt for A (n x p) and B (k x p).
func matMulBT(a, b [][]float64, n, k int) [][]float64 {
	out := zeros(n, k)
	for i := 0; i < n; i++ {
		for j := 0; j < k; j++ {
			sum := 0.0
			for t := range a[i] {
				sum += a[i][t] * b[j][t]
			}
			out[i][j] = sum
		}
	}
	return out
}

// matMul computes A B for A (n x m) and B (m x p).
func matMul(a, b [][]float64, n, p int) [][]float64 {
	out := zeros(n, p)
	for i := 0; i < n; i++ {
		for t := range a[i] {
			av := a[i][t]
			if av == 0 {
				continue
			}
			for j := 0; j < p; j++ {
				out[i][j] += av * b[t][j]
			}
		}
	}
	return out
}

// gram computes At A for A (n x k).
func gram(a [][]float64, k int) [][]float64 {
	out := zeros(k, k)
	for r := range a {
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				out[i][j] += a[r][i] * a[r][j]
			}
		}
	}
	return out
}

// gramT computes A At for A (k x p).
func gramT(a [][]float64, k int) [][]float64 {
	out := zeros(k, k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			sum := 0.0
			for t := range a[i] {
				sum += a[i][t] * a[j][t]
			}
			out[i][j] = sum
		}
	}
	return out
}

func zeros(n, m int) [][]float64 {
	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, m)
	}
	return out
}

// cosine returns the cosine similarity of two vectors, zero when either
// has zero norm.
func cosine(a, b []float64) float64 {
	dot, na, nb := 0.0, 0.0, 0.0
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
