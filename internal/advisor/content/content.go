// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package content scores catalog products against a user profile with a
// fixed weighted rubric and matches budgeting strategies with additive
// rules. Scoring is pure and deterministic; the package holds no mutable
// model state.
package content

import (
	"sort"

	"github.com/tomtom215/fincompass/internal/catalog"
	"github.com/tomtom215/fincompass/internal/profile"
)

// Rubric weights. They sum to 1.0.
const (
	weightAge           = 0.20
	weightIncome        = 0.25
	weightRisk          = 0.35
	weightAffordability = 0.20
)

// riskCompatibility maps (user tolerance, product risk) to a score.
// Pairs not present score 0.5.
var riskCompatibility = map[[2]string]float64{
	{"low", "low"}:       1.0,
	{"low", "medium"}:    0.7,
	{"low", "high"}:      0.3,
	{"medium", "low"}:    0.8,
	{"medium", "medium"}: 1.0,
	{"medium", "high"}:   0.8,
	{"high", "low"}:      0.5,
	{"high", "medium"}:   0.8,
	{"high", "high"}:     1.0,
}

// Recommendation is one scored product.
type Recommendation struct {
	ProductID        string   `json:"product_id"`
	ProductName      string   `json:"product_name"`
	Category         string   `json:"category"`
	SuitabilityScore float64  `json:"suitability_score"`
	ExpectedReturn   float64  `json:"expected_return"`
	RiskLevel        string   `json:"risk_level"`
	Description      string   `json:"description"`
	Features         []string `json:"features"`
	MinInvestment    float64  `json:"min_investment"`
}

// StrategyMatch is a budgeting strategy with its rule-match score.
type StrategyMatch struct {
	StrategyID  string   `json:"strategy_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SuitableFor []string `json:"suitable_for"`
	Complexity  string   `json:"complexity"`
	MatchScore  int      `json:"match_score"`
}

// Recommender scores products and strategies from a fixed catalog.
type Recommender struct {
	cat *catalog.Catalog
}

// NewRecommender returns a recommender over the given catalog.
func NewRecommender(cat *catalog.Catalog) *Recommender {
	return &Recommender{cat: cat}
}

// Suitability computes the weighted suitability of one product for one
// profile. The result is in (0, 1].
func (r *Recommender) Suitability(p *profile.UserProfile, prod *catalog.Product) float64 {
	age := ageScore(p.Age, prod.TargetAge)
	income := incomeScore(p.Income, prod.TargetIncome)
	risk := riskScore(string(p.RiskTolerance), string(prod.RiskLevel))
	afford := affordabilityScore(p.Income**p.SavingsRate, prod.MinInvestment)

	return age*weightAge + income*weightIncome + risk*weightRisk + afford*weightAffordability
}

// RecommendProducts returns the topN products by suitability. The sort is
// stable, so equal scores keep catalog order.
func (r *Recommender) RecommendProducts(p *profile.UserProfile, topN int) []Recommendation {
	recs := make([]Recommendation, 0, len(r.cat.Products))
	for i := range r.cat.Products {
		prod := &r.cat.Products[i]
		recs = append(recs, Recommendation{
			ProductID:        prod.ID,
			ProductName:      prod.Name,
			Category:         prod.Category,
			SuitabilityScore: r.Suitability(p, prod),
			ExpectedReturn:   prod.ExpectedReturn,
			RiskLevel:        string(prod.RiskLevel),
			Description:      prod.Description,
			Features:         prod.Features,
			MinInvestment:    prod.MinInvestment,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].SuitabilityScore > recs[j].SuitabilityScore
	})

	if topN > 0 && topN < len(recs) {
		recs = recs[:topN]
	}
	return recs
}

// RecommendBudgetingStrategy picks the strategy with the highest additive
// rule score. Income fit and experience fit add one point each, a focus
// matching the primary goal adds two, a balanced focus adds one. No match
// falls back to the 50/30/20 baseline with score zero.
func (r *Recommender) RecommendBudgetingStrategy(p *profile.UserProfile) StrategyMatch {
	var best *catalog.Strategy
	bestScore := 0

	for i := range r.cat.Strategies {
		s := &r.cat.Strategies[i]
		score := strategyScore(p, s)
		if score > bestScore {
			bestScore = score
			best = s
		}
	}

	if best == nil {
		best = r.cat.BaselineStrategy()
	}
	return StrategyMatch{
		StrategyID:  best.ID,
		Name:        best.Name,
		Description: best.Description,
		SuitableFor: best.SuitableFor,
		Complexity:  best.Complexity,
		MatchScore:  bestScore,
	}
}

func strategyScore(p *profile.UserProfile, s *catalog.Strategy) int {
	score := 0

	switch s.IncomeLevel {
	case catalog.IncomeAll:
		score++
	case catalog.IncomeLowToMedium:
		if p.Income < 75000 {
			score++
		}
	case catalog.IncomeMediumToHigh:
		if p.Income >= 40000 {
			score++
		}
	}

	switch {
	case (p.PrimaryGoal == "debt_payoff" || p.PrimaryGoal == "emergency_fund") && s.Focus == "control":
		score += 2
	case (p.PrimaryGoal == "retirement" || p.PrimaryGoal == "investment") && s.Focus == "savings":
		score += 2
	case s.Focus == "balanced":
		score++
	}

	switch p.InvestmentExperience {
	case "beginner":
		if s.Complexity == "low" {
			score++
		}
	case "intermediate":
		if s.Complexity == "low" || s.Complexity == "medium" {
			score++
		}
	case "advanced":
		score++
	}

	return score
}

func ageScore(age int, band catalog.AgeBand) float64 {
	switch {
	case band == catalog.AgeAll:
		return 1.0
	case band == catalog.AgeYoung && age < 35:
		return 1.0
	case band == catalog.AgeYoungToMiddle && age >= 25 && age < 50:
		return 1.0
	case band == catalog.AgeMiddleToSenior && age >= 40:
		return 1.0
	default:
		return 0.5
	}
}

func incomeScore(income float64, band catalog.IncomeBand) float64 {
	switch {
	case band == catalog.IncomeAll:
		return 1.0
	case band == catalog.IncomeLowToMedium && income < 75000:
		return 1.0
	case band == catalog.IncomeMediumToHigh && income >= 40000:
		return 1.0
	default:
		return 0.5
	}
}

func riskScore(userRisk, productRisk string) float64 {
	if s, ok := riskCompatibility[[2]string{userRisk, productRisk}]; ok {
		return s
	}
	return 0.5
}

// affordabilityScore compares the product entry price against the funds a
// user frees up in a year of saving.
func affordabilityScore(availableFunds, minInvestment float64) float64 {
	switch {
	case minInvestment <= availableFunds:
		return 1.0
	case minInvestment <= availableFunds*2:
		return 0.7
	default:
		return 0.3
	}
}
