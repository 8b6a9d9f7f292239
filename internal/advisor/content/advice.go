// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package content

import (
	"strings"

	"github.com/tomtom215/fincompass/internal/profile"
)

// GeneralAdvice returns narrative advice lines driven by age, savings
// rate, and debt load. Order is stable for a given profile.
func GeneralAdvice(p *profile.UserProfile) []string {
	var advice []string

	switch {
	case p.Age < 30:
		advice = append(advice,
			"Start investing early to take advantage of compound interest",
			"Focus on building an emergency fund of 3-6 months expenses")
	case p.Age < 50:
		advice = append(advice,
			"Maximize retirement contributions and consider tax-advantaged accounts",
			"Review and update your insurance coverage")
	default:
		advice = append(advice,
			"Consider more conservative investments as you approach retirement",
			"Plan for healthcare costs in retirement")
	}

	if *p.SavingsRate < 0.1 {
		advice = append(advice, "Try to increase your savings rate to at least 10% of income")
	} else if *p.SavingsRate > 0.2 {
		advice = append(advice, "Excellent savings rate! Consider optimizing your investment allocation")
	}

	if *p.DebtToIncome > 0.4 {
		advice = append(advice, "Focus on debt reduction using debt avalanche or snowball method")
	}

	return advice
}

// PeerInsights maps a cluster profile type to observations about similar
// users. Unknown profile types return no insights.
func PeerInsights(profileType string) []string {
	switch {
	case strings.Contains(profileType, "Conservative"):
		return []string{
			"Users with similar profiles typically prefer low-risk investments",
			"Consider diversifying with some medium-risk options for better returns",
		}
	case strings.Contains(profileType, "Spender"):
		return []string{
			"Users in your group often benefit from automated savings",
			"Consider the envelope budgeting method to control spending",
		}
	case strings.Contains(profileType, "Saver"):
		return []string{
			"Your peer group typically achieves above-average savings rates",
			"Consider increasing investment allocation for wealth building",
		}
	default:
		return nil
	}
}
