// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package catalog holds the static financial product and budgeting strategy
// reference data. Loaded once, never mutated by requests; insertion order
// is the tie-break order for equally scored recommendations.
package catalog

// RiskLevel classifies product volatility.
type RiskLevel string

// Risk levels.
const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// AgeBand targets a product at an age range.
type AgeBand string

// Age bands.
const (
	AgeAll            AgeBand = "all"
	AgeYoung          AgeBand = "young"
	AgeYoungToMiddle  AgeBand = "young_to_middle"
	AgeMiddleToSenior AgeBand = "middle_to_senior"
)

// IncomeBand targets a product or strategy at an income range.
type IncomeBand string

// Income bands.
const (
	IncomeAll          IncomeBand = "all"
	IncomeLowToMedium  IncomeBand = "low_to_medium"
	IncomeMediumToHigh IncomeBand = "medium_to_high"
)

// Product is one catalog entry. Static reference data.
type Product struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category"`
	RiskLevel      RiskLevel  `json:"risk_level"`
	ExpectedReturn float64    `json:"expected_return"`
	Liquidity      string     `json:"liquidity"`
	MinInvestment  float64    `json:"min_investment"`
	TargetAge      AgeBand    `json:"target_age_group"`
	TargetIncome   IncomeBand `json:"target_income"`
	Description    string     `json:"description"`
	Features       []string   `json:"features"`
	SuitableFor    []string   `json:"suitable_for"`
}

// Strategy is one budgeting strategy entry. Static reference data.
type Strategy struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Description string     `json:"description"`
	SuitableFor []string   `json:"suitable_for"`
	IncomeLevel IncomeBand `json:"income_level"`
	Complexity  string     `json:"complexity"`
	Focus       string     `json:"focus"`
}

// Catalog bundles the product and strategy tables.
type Catalog struct {
	Products   []Product  `json:"products"`
	Strategies []Strategy `json:"strategies"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return &Catalog{
		Products:   defaultProducts(),
		Strategies: defaultStrategies(),
	}
}

// ProductByID returns the product with the given id.
func (c *Catalog) ProductByID(id string) (*Product, bool) {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i], true
		}
	}
	return nil, false
}

// StrategyByID returns the strategy with the given id.
func (c *Catalog) StrategyByID(id string) (*Strategy, bool) {
	for i := range c.Strategies {
		if c.Strategies[i].ID == id {
			return &c.Strategies[i], true
		}
	}
	return nil, false
}

// BaselineStrategy returns the fixed default recommended when no strategy
// rule matches: the 50/30/20 rule.
func (c *Catalog) BaselineStrategy() *Strategy {
	if s, ok := c.StrategyByID("budget_001"); ok {
		return s
	}
	return &c.Strategies[0]
}

func defaultProducts() []Product {
	return []Product{
		{
			ID: "savings_001", Name: "High-Yield Savings Account", Category: "savings",
			RiskLevel: RiskLow, ExpectedReturn: 2.5, Liquidity: "high", MinInvestment: 100,
			TargetAge: AgeAll, TargetIncome: IncomeLowToMedium,
			Description: "Safe savings option with competitive interest rates",
			Features:    []string{"FDIC insured", "no monthly fees", "online access"},
			SuitableFor: []string{"emergency fund", "short term goals", "conservative investors"},
		},
		{
			ID: "savings_002", Name: "Money Market Account", Category: "savings",
			RiskLevel: RiskLow, ExpectedReturn: 3.0, Liquidity: "medium", MinInvestment: 1000,
			TargetAge: AgeAll, TargetIncome: IncomeMediumToHigh,
			Description: "Higher yield savings with limited transactions",
			Features:    []string{"higher interest rates", "check writing", "FDIC insured"},
			SuitableFor: []string{"emergency fund", "medium term savings"},
		},
		{
			ID: "invest_001", Name: "Index Fund Portfolio", Category: "investment",
			RiskLevel: RiskMedium, ExpectedReturn: 7.0, Liquidity: "medium", MinInvestment: 1000,
			TargetAge: AgeYoungToMiddle, TargetIncome: IncomeMediumToHigh,
			Description: "Diversified portfolio tracking market indices",
			Features:    []string{"low fees", "automatic diversification", "long-term growth"},
			SuitableFor: []string{"retirement planning", "long term wealth building"},
		},
		{
			ID: "invest_002", Name: "Conservative Bond Fund", Category: "investment",
			RiskLevel: RiskLow, ExpectedReturn: 4.5, Liquidity: "medium", MinInvestment: 500,
			TargetAge: AgeMiddleToSenior, TargetIncome: IncomeAll,
			Description: "Stable income through government and corporate bonds",
			Features:    []string{"stable income", "capital preservation", "moderate risk"},
			SuitableFor: []string{"income generation", "capital preservation", "retirement"},
		},
		{
			ID: "invest_003", Name: "Growth Stock ETF", Category: "investment",
			RiskLevel: RiskHigh, ExpectedReturn: 10.0, Liquidity: "high", MinInvestment: 100,
			TargetAge: AgeYoung, TargetIncome: IncomeMediumToHigh,
			Description: "High-growth potential stocks for aggressive investors",
			Features:    []string{"high growth potential", "liquid", "higher volatility"},
			SuitableFor: []string{"wealth building", "long term growth", "young investors"},
		},
		{
			ID: "credit_001", Name: "Cashback Credit Card", Category: "credit",
			RiskLevel: RiskMedium, ExpectedReturn: 2.0, Liquidity: "high", MinInvestment: 0,
			TargetAge: AgeAll, TargetIncome: IncomeMediumToHigh,
			Description: "Earn cashback on everyday purchases",
			Features:    []string{"cashback rewards", "fraud protection", "credit building"},
			SuitableFor: []string{"daily expenses", "reward earning", "credit building"},
		},
		{
			ID: "credit_002", Name: "Low-Interest Personal Loan", Category: "credit",
			RiskLevel: RiskMedium, ExpectedReturn: -5.5, Liquidity: "high", MinInvestment: 1000,
			TargetAge: AgeAll, TargetIncome: IncomeMediumToHigh,
			Description: "Consolidate debt or fund major purchases",
			Features:    []string{"fixed rates", "predictable payments", "debt consolidation"},
			SuitableFor: []string{"debt consolidation", "major purchases", "home improvement"},
		},
		{
			ID: "insurance_001", Name: "Term Life Insurance", Category: "insurance",
			RiskLevel: RiskLow, ExpectedReturn: 0.0, Liquidity: "low", MinInvestment: 200,
			TargetAge: AgeYoungToMiddle, TargetIncome: IncomeAll,
			Description: "Affordable life insurance protection",
			Features:    []string{"affordable premiums", "death benefit", "term coverage"},
			SuitableFor: []string{"family protection", "mortgage protection", "income replacement"},
		},
		{
			ID: "insurance_002", Name: "Disability Insurance", Category: "insurance",
			RiskLevel: RiskLow, ExpectedReturn: 0.0, Liquidity: "low", MinInvestment: 300,
			TargetAge: AgeYoungToMiddle, TargetIncome: IncomeMediumToHigh,
			Description: "Income protection in case of disability",
			Features:    []string{"income replacement", "own occupation coverage", "cost of living adjustments"},
			SuitableFor: []string{"income protection", "career protection", "financial security"},
		},
	}
}

func defaultStrategies() []Strategy {
	return []Strategy{
		{
			ID: "budget_001", Name: "50/30/20 Rule", Category: "budgeting",
			Description: "Allocate 50% needs, 30% wants, 20% savings",
			SuitableFor: []string{"beginners", "stable income", "simple approach"},
			IncomeLevel: IncomeMediumToHigh, Complexity: "low", Focus: "balanced",
		},
		{
			ID: "budget_002", Name: "Zero-Based Budgeting", Category: "budgeting",
			Description: "Every dollar has a purpose, income minus expenses equals zero",
			SuitableFor: []string{"detailed planners", "variable income", "debt payoff"},
			IncomeLevel: IncomeAll, Complexity: "high", Focus: "control",
		},
		{
			ID: "budget_003", Name: "Envelope Method", Category: "budgeting",
			Description: "Cash-based budgeting for specific spending categories",
			SuitableFor: []string{"overspenders", "cash users", "visual learners"},
			IncomeLevel: IncomeLowToMedium, Complexity: "medium", Focus: "spending_control",
		},
		{
			ID: "budget_004", Name: "Pay Yourself First", Category: "budgeting",
			Description: "Prioritize savings before any other expenses",
			SuitableFor: []string{"goal-oriented", "disciplined savers", "automation lovers"},
			IncomeLevel: IncomeMediumToHigh, Complexity: "low", Focus: "savings",
		},
	}
}
