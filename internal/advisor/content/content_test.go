// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package content

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/tomtom215/fincompass/internal/catalog"
	"github.com/tomtom215/fincompass/internal/profile"
)

func normalized(t *testing.T, p profile.UserProfile) *profile.UserProfile {
	t.Helper()
	if err := p.Normalize(); err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	return &p
}

func TestRiskCompatibilityTable(t *testing.T) {
	tests := []struct {
		user, product string
		want          float64
	}{
		{"low", "low", 1.0},
		{"low", "medium", 0.7},
		{"low", "high", 0.3},
		{"medium", "low", 0.8},
		{"medium", "medium", 1.0},
		{"medium", "high", 0.8},
		{"high", "low", 0.5},
		{"high", "medium", 0.8},
		{"high", "high", 1.0},
		{"unknown", "low", 0.5},
	}
	for _, tt := range tests {
		if got := riskScore(tt.user, tt.product); got != tt.want {
			t.Errorf("riskScore(%q, %q) = %v, want %v", tt.user, tt.product, got, tt.want)
		}
	}
}

func TestAgeScore(t *testing.T) {
	tests := []struct {
		age  int
		band catalog.AgeBand
		want float64
	}{
		{70, catalog.AgeAll, 1.0},
		{34, catalog.AgeYoung, 1.0},
		{35, catalog.AgeYoung, 0.5},
		{25, catalog.AgeYoungToMiddle, 1.0},
		{49, catalog.AgeYoungToMiddle, 1.0},
		{50, catalog.AgeYoungToMiddle, 0.5},
		{24, catalog.AgeYoungToMiddle, 0.5},
		{40, catalog.AgeMiddleToSenior, 1.0},
		{39, catalog.AgeMiddleToSenior, 0.5},
	}
	for _, tt := range tests {
		if got := ageScore(tt.age, tt.band); got != tt.want {
			t.Errorf("ageScore(%d, %q) = %v, want %v", tt.age, tt.band, got, tt.want)
		}
	}
}

func TestAffordabilityScore(t *testing.T) {
	tests := []struct {
		funds, minInv, want float64
	}{
		{5000, 1000, 1.0},
		{5000, 5000, 1.0},
		{5000, 9000, 0.7},
		{5000, 10000, 0.7},
		{5000, 10001, 0.3},
		{0, 0, 1.0},
		{0, 100, 0.3},
	}
	for _, tt := range tests {
		if got := affordabilityScore(tt.funds, tt.minInv); got != tt.want {
			t.Errorf("affordabilityScore(%v, %v) = %v, want %v", tt.funds, tt.minInv, got, tt.want)
		}
	}
}

func TestSuitabilityBounds(t *testing.T) {
	r := NewRecommender(catalog.Default())
	profiles := []profile.UserProfile{
		{},
		{Age: 22, Income: 20000, RiskTolerance: profile.RiskHigh},
		{Age: 65, Income: 200000, RiskTolerance: profile.RiskLow},
	}
	for _, base := range profiles {
		p := normalized(t, base)
		for i := range r.cat.Products {
			s := r.Suitability(p, &r.cat.Products[i])
			if s <= 0 || s > 1 {
				t.Errorf("Suitability(%+v, %s) = %v, out of (0, 1]", p, r.cat.Products[i].ID, s)
			}
		}
	}
}

func TestRecommendProductsSortedAndLimited(t *testing.T) {
	r := NewRecommender(catalog.Default())
	p := normalized(t, profile.UserProfile{Age: 28, Income: 90000, RiskTolerance: profile.RiskHigh})

	recs := r.RecommendProducts(p, 5)
	if len(recs) != 5 {
		t.Fatalf("recommendations = %d, want 5", len(recs))
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].SuitabilityScore > recs[i-1].SuitabilityScore {
			t.Errorf("recommendations not sorted at %d: %v > %v", i, recs[i].SuitabilityScore, recs[i-1].SuitabilityScore)
		}
	}

	// A young high-risk earner should see the growth ETF near the top.
	found := false
	for _, rec := range recs[:3] {
		if rec.ProductID == "invest_003" {
			found = true
		}
	}
	if !found {
		t.Errorf("invest_003 not in top 3 for young high-risk earner: %+v", recs[:3])
	}
}

func TestRecommendProductsDeterministic(t *testing.T) {
	r := NewRecommender(catalog.Default())
	p := normalized(t, profile.UserProfile{})
	a := r.RecommendProducts(p, 0)
	b := r.RecommendProducts(p, 0)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("repeated scoring produced different orderings")
	}
	if len(a) != 9 {
		t.Fatalf("topN=0 returned %d products, want all 9", len(a))
	}
}

func TestRecommendBudgetingStrategy(t *testing.T) {
	r := NewRecommender(catalog.Default())

	tests := []struct {
		name   string
		p      profile.UserProfile
		wantID string
	}{
		{
			"debt payoff prefers zero-based control",
			profile.UserProfile{PrimaryGoal: "debt_payoff", InvestmentExperience: "advanced"},
			"budget_002",
		},
		{
			"retirement prefers pay yourself first",
			profile.UserProfile{PrimaryGoal: "retirement", Income: 80000},
			"budget_004",
		},
		{
			"beginner default lands on 50/30/20",
			profile.UserProfile{},
			"budget_001",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := normalized(t, tt.p)
			got := r.RecommendBudgetingStrategy(p)
			if got.StrategyID != tt.wantID {
				t.Errorf("strategy = %s (score %d), want %s", got.StrategyID, got.MatchScore, tt.wantID)
			}
			if got.MatchScore <= 0 {
				t.Errorf("match score = %d, want > 0", got.MatchScore)
			}
		})
	}
}

func TestGeneralAdvice(t *testing.T) {
	lowSavings := 0.04
	highDebt := 0.5
	p := normalized(t, profile.UserProfile{Age: 26, SavingsRate: &lowSavings, DebtToIncome: &highDebt})

	advice := GeneralAdvice(p)
	joined := ""
	for _, a := range advice {
		joined += a + "\n"
	}
	for _, want := range []string{"compound interest", "savings rate to at least 10%", "debt reduction"} {
		if !contains(advice, want) {
			t.Errorf("advice missing %q in:\n%s", want, joined)
		}
	}
}

func TestPeerInsights(t *testing.T) {
	if got := PeerInsights("Conservative High Earner"); len(got) != 2 {
		t.Errorf("PeerInsights(conservative) = %d lines, want 2", len(got))
	}
	if got := PeerInsights("Affluent Spender"); len(got) != 2 {
		t.Errorf("PeerInsights(spender) = %d lines, want 2", len(got))
	}
	if got := PeerInsights("Budget Conscious"); got != nil {
		t.Errorf("PeerInsights(budget conscious) = %v, want nil", got)
	}
}

func TestWeightsSumToOne(t *testing.T) {
	if s := weightAge + weightIncome + weightRisk + weightAffordability; math.Abs(s-1.0) > 1e-12 {
		t.Fatalf("weights sum to %v, want 1.0", s)
	}
}

func contains(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
