// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package segment

import "strings"

// Profile type names.
const (
	ProfileConservativeHighEarner = "Conservative High Earner"
	ProfileAffluentSpender        = "Affluent Spender"
	ProfilePrudentSaver           = "Prudent Saver"
	ProfileActiveConsumer         = "Active Consumer"
	ProfileBudgetConscious        = "Budget Conscious"
)

// Indicator column groups. Features are min-max scaled to [0,1] before
// fitting, so the fixed thresholds below compare against scaled means.
var (
	incomeIndicators   = []string{"Income", "total_income", "Credit_Limit"}
	spendingIndicators = []string{"total_expense", "Total_Trans_Amt", "Groceries", "Transport"}
	savingsIndicators  = []string{"savings_rate", "Desired_Savings_Percentage", "Disposable_Income"}

	spendingCategories = []string{"Groceries", "Transport", "Entertainment", "food_spending"}
)

const (
	incomeThreshold   = 0.5
	spendingThreshold = 0.5
	savingsThreshold  = 0.3
	categoryThreshold = 0.3
)

// profileType classifies a cluster by its scaled feature means. Combined
// income+savings outranks income+spending, which outranks the single
// indicators.
func profileType(stats map[string]FeatureStats) string {
	highIncome := anyAbove(stats, incomeIndicators, incomeThreshold)
	highSpending := anyAbove(stats, spendingIndicators, spendingThreshold)
	highSavings := anyAbove(stats, savingsIndicators, savingsThreshold)

	switch {
	case highIncome && highSavings:
		return ProfileConservativeHighEarner
	case highIncome && highSpending:
		return ProfileAffluentSpender
	case highSavings:
		return ProfilePrudentSaver
	case highSpending:
		return ProfileActiveConsumer
	default:
		return ProfileBudgetConscious
	}
}

// characteristics extracts notable behaviors from cluster statistics.
func characteristics(stats map[string]FeatureStats) []string {
	var out []string

	for _, cat := range spendingCategories {
		if s, ok := stats[cat]; ok && s.Mean > categoryThreshold {
			out = append(out, "High "+strings.ToLower(cat)+" spending")
		}
	}

	if s, ok := stats["savings_rate"]; ok && s.Mean > 0.2 {
		out = append(out, "Good savings rate")
	}
	if s, ok := stats["Avg_Utilization_Ratio"]; ok && s.Mean > 0.5 {
		out = append(out, "High credit utilization")
	}

	if len(out) == 0 {
		return []string{"Balanced financial behavior"}
	}
	return out
}

func anyAbove(stats map[string]FeatureStats, cols []string, threshold float64) bool {
	for _, col := range cols {
		if s, ok := stats[col]; ok && s.Mean > threshold {
			return true
		}
	}
	return false
}
