// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package profile defines the inbound user profile, its validation rules,
// and the single place where missing fields receive defaults. Downstream
// scoring code reads the struct directly and never re-applies fallbacks.
package profile

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// RiskTolerance is the user's self-reported risk appetite.
type RiskTolerance string

// Risk tolerance levels.
const (
	RiskLow    RiskTolerance = "low"
	RiskMedium RiskTolerance = "medium"
	RiskHigh   RiskTolerance = "high"
)

// UserProfile is a complete, validated user profile. Optional inbound
// fields use pointers so absence is distinguishable from zero; Normalize
// resolves every pointer to a value.
type UserProfile struct {
	Age                  int           `json:"age" validate:"omitempty,gte=18,lte=100"`
	Income               float64       `json:"income" validate:"omitempty,gte=0"`
	Dependents           int           `json:"dependents" validate:"omitempty,gte=0,lte=20"`
	RiskTolerance        RiskTolerance `json:"risk_tolerance" validate:"omitempty,oneof=low medium high"`
	InvestmentExperience string        `json:"investment_experience" validate:"omitempty,oneof=beginner intermediate advanced"`
	SavingsRate          *float64      `json:"savings_rate" validate:"omitempty"`
	DebtToIncome         *float64      `json:"debt_to_income" validate:"omitempty"`
	PrimaryGoal          string        `json:"primary_goal" validate:"omitempty"`
	TimeHorizon          string        `json:"time_horizon" validate:"omitempty,oneof=short_term medium_term long_term"`
	LiquidityNeeds       string        `json:"liquidity_needs" validate:"omitempty,oneof=low medium high"`
	EmergencyFundMonths  *float64      `json:"emergency_fund_months" validate:"omitempty,gte=0"`
	RetirementSavings    float64       `json:"retirement_savings" validate:"omitempty,gte=0"`
	MonthlyExpenses      float64       `json:"monthly_expenses" validate:"omitempty,gte=0"`
}

// Default field values for unset profile fields.
const (
	DefaultAge                 = 30
	DefaultIncome              = 50000.0
	DefaultDependents          = 0
	DefaultRiskTolerance       = RiskMedium
	DefaultExperience          = "beginner"
	DefaultSavingsRate         = 0.10
	DefaultDebtToIncome        = 0.30
	DefaultPrimaryGoal         = "general_savings"
	DefaultTimeHorizon         = "medium_term"
	DefaultLiquidityNeeds      = "medium"
	DefaultEmergencyFundMonths = 3.0
)

var validate = validator.New()

// Normalize validates the profile and fills every unset field with its
// default. Called once at the API boundary; the returned profile has no
// nil pointers and no zero-valued enums.
func (p *UserProfile) Normalize() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	if p.Age == 0 {
		p.Age = DefaultAge
	}
	if p.Income == 0 {
		p.Income = DefaultIncome
	}
	if p.RiskTolerance == "" {
		p.RiskTolerance = DefaultRiskTolerance
	}
	if p.InvestmentExperience == "" {
		p.InvestmentExperience = DefaultExperience
	}
	if p.SavingsRate == nil {
		p.SavingsRate = ptr(DefaultSavingsRate)
	}
	if p.DebtToIncome == nil {
		p.DebtToIncome = ptr(DefaultDebtToIncome)
	}
	if p.PrimaryGoal == "" {
		p.PrimaryGoal = DefaultPrimaryGoal
	}
	if p.TimeHorizon == "" {
		p.TimeHorizon = DefaultTimeHorizon
	}
	if p.LiquidityNeeds == "" {
		p.LiquidityNeeds = DefaultLiquidityNeeds
	}
	if p.EmergencyFundMonths == nil {
		p.EmergencyFundMonths = ptr(DefaultEmergencyFundMonths)
	}

	if *p.SavingsRate < 0 {
		*p.SavingsRate = 0
	} else if *p.SavingsRate > 1 {
		*p.SavingsRate = 1
	}
	if *p.DebtToIncome < 0 {
		*p.DebtToIncome = 0
	}

	return nil
}

// SimilarityVector returns the five-dimensional vector used for profile
// similarity during cold-start matching. Order is fixed.
func (p *UserProfile) SimilarityVector() []float64 {
	return []float64{
		float64(p.Age),
		p.Income,
		float64(p.Dependents),
		*p.SavingsRate,
		*p.DebtToIncome,
	}
}

// FeatureValues projects the profile onto training table column names.
// Columns absent from the harmonized table are ignored during alignment;
// financial columns the profile cannot state directly use estimates.
func (p *UserProfile) FeatureValues() map[string]float64 {
	sr := *p.SavingsRate
	return map[string]float64{
		"Age":                        float64(p.Age),
		"Customer_Age":               float64(p.Age),
		"Income":                     p.Income,
		"Credit_Limit":               p.Income * 0.3,
		"Dependents":                 float64(p.Dependents),
		"Dependent_count":            float64(p.Dependents),
		"savings_rate":               sr,
		"Desired_Savings_Percentage": sr * 100,
		"total_income":               p.Income,
		"total_expense":              p.Income * (1 - sr),
		"avg_transaction":            150,
		"transaction_count":          20,
	}
}

func ptr(v float64) *float64 { return &v }
