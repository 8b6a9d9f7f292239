// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package segment groups users into behavioral clusters with k-means over
// the harmonized feature table. The cluster count is selected by silhouette
// score; fitted models expose per-cluster statistics and a rule-based
// profile taxonomy.
package segment

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/tomtom215/fincompass/internal/features"
)

// Package errors.
var (
	// ErrInsufficientData means the table has too few rows to cluster.
	ErrInsufficientData = errors.New("segment: insufficient data for clustering")
	// ErrUntrained means Predict was called before a successful Fit.
	ErrUntrained = errors.New("segment: model not trained")
	// ErrDimensionMismatch means a prediction vector has the wrong length.
	ErrDimensionMismatch = errors.New("segment: feature dimension mismatch")
)

const (
	minRowsForClustering = 4
	fallbackClusters     = 3
	maxIterations        = 100
)

// Config controls cluster selection and determinism.
type Config struct {
	// MaxClusters caps the candidate range for silhouette selection.
	MaxClusters int
	// Seed fixes centroid initialization. Identical seed and data give
	// identical clusters.
	Seed int64
}

// FeatureStats summarizes one feature within one cluster.
type FeatureStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Median float64 `json:"median"`
}

// ClusterProfile is the analyzed and interpreted view of one cluster.
type ClusterProfile struct {
	ID              int                     `json:"cluster_id"`
	Size            int                     `json:"size"`
	Percentage      float64                 `json:"percentage"`
	ProfileType     string                  `json:"profile_type"`
	Characteristics []string                `json:"characteristics"`
	Stats           map[string]FeatureStats `json:"stats"`
}

// Model is a fitted k-means segmentation model. Safe for concurrent use;
// Fit takes the write lock, Predict and accessors take the read lock.
type Model struct {
	mu sync.RWMutex

	trained   bool
	k         int
	columns   []string
	centroids [][]float64
	labels    []int
	profiles  []ClusterProfile
}

// NewModel returns an untrained model.
func NewModel() *Model {
	return &Model{}
}

// Trained reports whether Fit has completed successfully.
func (m *Model) Trained() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.trained
}

// K returns the fitted cluster count, or 0 when untrained.
func (m *Model) K() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.trained {
		return 0
	}
	return m.k
}

// Profiles returns the analyzed cluster profiles in cluster-id order.
func (m *Model) Profiles() []ClusterProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]ClusterProfile, len(m.profiles))
	copy(out, m.profiles)
	return out
}

// Fit selects k by silhouette score over [2, min(MaxClusters, rows-1)],
// runs the final clustering, and computes cluster profiles. Tables with
// fewer than four rows cannot be scored and return ErrInsufficientData.
func (m *Model) Fit(table *features.Table, cfg Config) error {
	rows := table.NumRows()
	if rows < minRowsForClustering {
		return fmt.Errorf("%w: have %d rows, need at least %d", ErrInsufficientData, rows, minRowsForClustering)
	}
	maxK := cfg.MaxClusters
	if maxK < 2 {
		maxK = fallbackClusters
	}

	data := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		data[i] = table.Row(i)
	}

	bestK := fallbackClusters
	bestScore := math.Inf(-1)
	upper := maxK
	if rows-1 < upper {
		upper = rows - 1
	}
	for k := 2; k <= upper; k++ {
		centroids, labels := kmeans(data, k, cfg.Seed)
		score := silhouette(data, centroids, labels, k)
		// Strict greater keeps the lowest k on ties.
		if score > bestScore {
			bestScore = score
			bestK = k
		}
	}

	centroids, labels := kmeans(data, bestK, cfg.Seed)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.k = bestK
	m.columns = table.Columns()
	m.centroids = centroids
	m.labels = labels
	m.profiles = buildProfiles(table, labels, bestK)
	m.trained = true
	return nil
}

// Predict assigns a feature vector to its nearest centroid.
func (m *Model) Predict(vec []float64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.trained {
		return 0, ErrUntrained
	}
	if len(vec) != len(m.columns) {
		return 0, fmt.Errorf("%w: have %d features, want %d", ErrDimensionMismatch, len(vec), len(m.columns))
	}

	best := 0
	bestDist := math.Inf(1)
	for i, c := range m.centroids {
		d := sqDist(vec, c)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best, nil
}

// Profile returns the analyzed profile for one cluster id.
func (m *Model) Profile(id int) (ClusterProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.trained {
		return ClusterProfile{}, ErrUntrained
	}
	if id < 0 || id >= len(m.profiles) {
		return ClusterProfile{}, fmt.Errorf("segment: no cluster %d", id)
	}
	return m.profiles[id], nil
}

// Columns returns the feature columns the model was fitted on.
func (m *Model) Columns() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, len(m.columns))
	copy(out, m.columns)
	return out
}

// kmeans runs seeded Lloyd iterations. Initialization picks k distinct
// rows via the seeded generator, so results are reproducible.
func kmeans(data [][]float64, k int, seed int64) ([][]float64, []int) {
	n := len(data)
	dim := len(data[0])
	rng := rand.New(rand.NewSource(seed))

	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for i := 0; i < k; i++ {
		centroids[i] = make([]float64, dim)
		copy(centroids[i], data[perm[i]])
	}

	labels := make([]int, n)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false
		for i, row := range data {
			best := 0
			bestDist := math.Inf(1)
			for c := range centroids {
				d := sqDist(row, centroids[c])
				if d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, dim)
		}
		for i, row := range data {
			c := labels[i]
			counts[c]++
			for j, v := range row {
				next[c][j] += v
			}
		}
		for c := range next {
			if counts[c] == 0 {
				// Reseat an empty cluster on a random row.
				copy(next[c], data[rng.Intn(n)])
				continue
			}
			for j := range next[c] {
				next[c][j] /= float64(counts[c])
			}
		}
		centroids = next
	}
	return centroids, labels
}

// silhouette computes the mean silhouette coefficient. Singleton clusters
// contribute zero, matching the degenerate-labeling convention.
func silhouette(data [][]float64, _ [][]float64, labels []int, k int) float64 {
	n := len(data)
	counts := make([]int, k)
	for _, l := range labels {
		counts[l]++
	}
	distinct := 0
	for _, c := range counts {
		if c > 0 {
			distinct++
		}
	}
	if distinct < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < n; i++ {
		li := labels[i]
		if counts[li] <= 1 {
			continue
		}

		sums := make([]float64, k)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			sums[labels[j]] += math.Sqrt(sqDist(data[i], data[j]))
		}

		a := sums[li] / float64(counts[li]-1)
		b := math.Inf(1)
		for c := 0; c < k; c++ {
			if c == li || counts[c] == 0 {
				continue
			}
			if mean := sums[c] / float64(counts[c]); mean < b {
				b = mean
			}
		}

		denom := math.Max(a, b)
		if denom > 0 {
			total += (b - a) / denom
		}
	}
	return total / float64(n)
}

func buildProfiles(table *features.Table, labels []int, k int) []ClusterProfile {
	rows := table.NumRows()
	columns := table.Columns()
	profiles := make([]ClusterProfile, k)

	for c := 0; c < k; c++ {
		members := make([]int, 0, rows)
		for i, l := range labels {
			if l == c {
				members = append(members, i)
			}
		}

		stats := make(map[string]FeatureStats, len(columns))
		for ci, col := range columns {
			vals := make([]float64, len(members))
			for mi, r := range members {
				vals[mi] = table.Row(r)[ci]
			}
			stats[col] = summarize(vals)
		}

		p := ClusterProfile{
			ID:         c,
			Size:       len(members),
			Percentage: float64(len(members)) / float64(rows) * 100,
			Stats:      stats,
		}
		p.ProfileType = profileType(stats)
		p.Characteristics = characteristics(stats)
		profiles[c] = p
	}
	return profiles
}

func summarize(vals []float64) FeatureStats {
	n := len(vals)
	if n == 0 {
		return FeatureStats{}
	}

	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(n)

	variance := 0.0
	for _, v := range vals {
		d := v - mean
		variance += d * d
	}
	std := 0.0
	if n > 1 {
		std = math.Sqrt(variance / float64(n-1))
	}

	sorted := make([]float64, n)
	copy(sorted, vals)
	sort.Float64s(sorted)
	var median float64
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}

	return FeatureStats{Mean: mean, Std: std, Median: median}
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
