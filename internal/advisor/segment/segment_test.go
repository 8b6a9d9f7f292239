// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package segment

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/tomtom215/fincompass/internal/features"
)

func twoBlobTable(t *testing.T) *features.Table {
	t.Helper()
	tbl := features.NewTable([]string{"x", "y"})
	// Two well-separated groups.
	for _, v := range [][2]float64{{0.1, 0.1}, {0.12, 0.08}, {0.09, 0.11}, {0.11, 0.12}} {
		tbl.AddRow("a", map[string]float64{"x": v[0], "y": v[1]})
	}
	for _, v := range [][2]float64{{0.9, 0.9}, {0.88, 0.92}, {0.91, 0.89}, {0.93, 0.9}} {
		tbl.AddRow("b", map[string]float64{"x": v[0], "y": v[1]})
	}
	return tbl
}

func TestFitSelectsTwoClustersForTwoBlobs(t *testing.T) {
	m := NewModel()
	if err := m.Fit(twoBlobTable(t), Config{MaxClusters: 5, Seed: 42}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if !m.Trained() {
		t.Fatal("model not trained after Fit")
	}
	if m.K() != 2 {
		t.Fatalf("K() = %d, want 2", m.K())
	}

	profiles := m.Profiles()
	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles))
	}
	for _, p := range profiles {
		if p.Size != 4 {
			t.Errorf("cluster %d size = %d, want 4", p.ID, p.Size)
		}
		if math.Abs(p.Percentage-50) > 1e-9 {
			t.Errorf("cluster %d percentage = %v, want 50", p.ID, p.Percentage)
		}
	}
}

func TestFitDeterministic(t *testing.T) {
	var labels [][]ClusterProfile
	for i := 0; i < 3; i++ {
		m := NewModel()
		if err := m.Fit(twoBlobTable(t), Config{MaxClusters: 5, Seed: 42}); err != nil {
			t.Fatalf("Fit() error = %v", err)
		}
		labels = append(labels, m.Profiles())
	}
	if !reflect.DeepEqual(labels[0], labels[1]) || !reflect.DeepEqual(labels[1], labels[2]) {
		t.Fatal("repeated fits with the same seed produced different profiles")
	}
}

func TestFitInsufficientData(t *testing.T) {
	tbl := features.NewTable([]string{"x"})
	tbl.AddRow("a", map[string]float64{"x": 0.1})
	tbl.AddRow("a", map[string]float64{"x": 0.9})
	tbl.AddRow("a", map[string]float64{"x": 0.5})

	m := NewModel()
	err := m.Fit(tbl, Config{MaxClusters: 5, Seed: 42})
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("Fit() error = %v, want ErrInsufficientData", err)
	}
	if m.Trained() {
		t.Fatal("model reports trained after failed fit")
	}
}

func TestPredictNearestCentroid(t *testing.T) {
	m := NewModel()
	if err := m.Fit(twoBlobTable(t), Config{MaxClusters: 5, Seed: 42}); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	low, err := m.Predict([]float64{0.1, 0.1})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	high, err := m.Predict([]float64{0.9, 0.9})
	if err != nil {
		t.Fatalf("Predict() error = %v", err)
	}
	if low == high {
		t.Fatal("opposite blob members assigned to the same cluster")
	}

	if _, err := m.Predict([]float64{0.5}); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("Predict(short vector) error = %v, want ErrDimensionMismatch", err)
	}
}

func TestPredictUntrained(t *testing.T) {
	m := NewModel()
	if _, err := m.Predict([]float64{0.5, 0.5}); !errors.Is(err, ErrUntrained) {
		t.Fatalf("Predict() error = %v, want ErrUntrained", err)
	}
}

func TestProfileType(t *testing.T) {
	mk := func(pairs map[string]float64) map[string]FeatureStats {
		out := make(map[string]FeatureStats, len(pairs))
		for k, v := range pairs {
			out[k] = FeatureStats{Mean: v}
		}
		return out
	}

	tests := []struct {
		name  string
		stats map[string]FeatureStats
		want  string
	}{
		{
			"high income and savings",
			mk(map[string]float64{"Income": 0.8, "savings_rate": 0.5}),
			ProfileConservativeHighEarner,
		},
		{
			"high income and spending",
			mk(map[string]float64{"total_income": 0.7, "total_expense": 0.8}),
			ProfileAffluentSpender,
		},
		{
			"income savings spending all high prefers saver pairing",
			mk(map[string]float64{"Income": 0.8, "savings_rate": 0.5, "Groceries": 0.9}),
			ProfileConservativeHighEarner,
		},
		{
			"savings only",
			mk(map[string]float64{"Desired_Savings_Percentage": 0.4}),
			ProfilePrudentSaver,
		},
		{
			"spending only",
			mk(map[string]float64{"Total_Trans_Amt": 0.6}),
			ProfileActiveConsumer,
		},
		{
			"nothing elevated",
			mk(map[string]float64{"Income": 0.2, "total_expense": 0.3, "savings_rate": 0.1}),
			ProfileBudgetConscious,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := profileType(tt.stats); got != tt.want {
				t.Errorf("profileType() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCharacteristics(t *testing.T) {
	stats := map[string]FeatureStats{
		"Groceries":             {Mean: 0.5},
		"savings_rate":          {Mean: 0.25},
		"Avg_Utilization_Ratio": {Mean: 0.7},
	}
	got := characteristics(stats)
	want := []string{"High groceries spending", "Good savings rate", "High credit utilization"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("characteristics() = %v, want %v", got, want)
	}

	if got := characteristics(map[string]FeatureStats{"x": {Mean: 0.1}}); !reflect.DeepEqual(got, []string{"Balanced financial behavior"}) {
		t.Errorf("characteristics(flat stats) = %v, want balanced fallback", got)
	}
}

func TestSummarize(t *testing.T) {
	got := summarize([]float64{1, 2, 3, 4})
	if got.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got.Mean)
	}
	if got.Median != 2.5 {
		t.Errorf("Median = %v, want 2.5", got.Median)
	}
	wantStd := math.Sqrt(5.0 / 3.0)
	if math.Abs(got.Std-wantStd) > 1e-12 {
		t.Errorf("Std = %v, want %v", got.Std, wantStd)
	}
}
