// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package features

import (
	"math/rand"
)

// SampleSources generates a deterministic synthetic historical-user corpus
// for standalone operation when no real dataset loader is wired in. The
// column names mirror the source datasets the harmonizer was built for
// (personal finance aggregates, credit card customers, finance habits),
// so downstream segment interpretation sees its indicator columns.
func SampleSources(usersPerSource int, seed int64) []SourceTable {
	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // deterministic sample data, not crypto

	personal := SourceTable{Name: "personal_finance"}
	for i := 0; i < usersPerSource; i++ {
		income := 2500 + rng.Float64()*7500
		expense := income * (0.45 + rng.Float64()*0.45)
		personal.Rows = append(personal.Rows, map[string]float64{
			"total_income":           income,
			"total_expense":          expense,
			"avg_transaction":        40 + rng.Float64()*260,
			"transaction_count":      float64(10 + rng.Intn(90)),
			"food_spending":          expense * (0.15 + rng.Float64()*0.25),
			"transport_spending":     expense * (0.05 + rng.Float64()*0.15),
			"entertainment_spending": expense * (0.05 + rng.Float64()*0.20),
		})
	}

	credit := SourceTable{Name: "credit_customers"}
	for i := 0; i < usersPerSource; i++ {
		limit := 2000 + rng.Float64()*30000
		credit.Rows = append(credit.Rows, map[string]float64{
			"Customer_Age":          float64(22 + rng.Intn(48)),
			"Dependent_count":       float64(rng.Intn(5)),
			"Credit_Limit":          limit,
			"Total_Revolving_Bal":   limit * rng.Float64() * 0.8,
			"Total_Trans_Amt":       500 + rng.Float64()*15000,
			"Total_Trans_Ct":        float64(10 + rng.Intn(130)),
			"Avg_Utilization_Ratio": rng.Float64(),
		})
	}

	habits := SourceTable{Name: "finance_habits"}
	for i := 0; i < usersPerSource; i++ {
		income := 20000 + rng.Float64()*80000
		savingsPct := 5 + rng.Float64()*30
		habits.Rows = append(habits.Rows, map[string]float64{
			"Income":                     income,
			"Age":                        float64(21 + rng.Intn(44)),
			"Dependents":                 float64(rng.Intn(4)),
			"Groceries":                  income * (0.08 + rng.Float64()*0.12) / 12,
			"Transport":                  income * (0.02 + rng.Float64()*0.08) / 12,
			"Entertainment":              income * (0.01 + rng.Float64()*0.06) / 12,
			"Desired_Savings_Percentage": savingsPct,
			"Disposable_Income":          income * savingsPct / 100,
			"savings_rate":               savingsPct / 100,
		})
	}

	return []SourceTable{personal, credit, habits}
}
