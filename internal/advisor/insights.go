// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package advisor

import (
	"strings"

	"github.com/tomtom215/fincompass/internal/profile"
)

// buildInsights assembles the analytical layer for one profile. Cluster
// recommendations are included only when segmentation resolved.
func buildInsights(p *profile.UserProfile, seg *SegmentInfo) Insights {
	in := Insights{
		FinancialHealthScore: healthScore(p),
		RiskAssessment:       assessRisk(p),
		GoalAnalysis:         analyzeGoals(p),
	}
	in.PriorityActions = priorityActions(in)
	if seg != nil {
		in.KeyRecommendations = clusterRecommendations(seg.ProfileType)
	}
	return in
}

// healthScore computes a 0 to 100 score from a base of 50, adjusted by
// savings rate, debt load, and emergency fund coverage.
func healthScore(p *profile.UserProfile) int {
	score := 50

	switch sr := *p.SavingsRate; {
	case sr >= 0.2:
		score += 20
	case sr >= 0.1:
		score += 10
	case sr < 0.05:
		score -= 10
	}

	switch dr := *p.DebtToIncome; {
	case dr <= 0.2:
		score += 15
	case dr <= 0.3:
		score += 5
	case dr > 0.5:
		score -= 20
	}

	switch ef := *p.EmergencyFundMonths; {
	case ef >= 6:
		score += 15
	case ef >= 3:
		score += 5
	default:
		score -= 10
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func assessRisk(p *profile.UserProfile) RiskAssessment {
	var risks []string

	if *p.DebtToIncome > 0.4 {
		risks = append(risks, "High debt-to-income ratio")
	}
	if *p.SavingsRate < 0.05 {
		risks = append(risks, "Low savings rate")
	}
	if *p.EmergencyFundMonths < 3 {
		risks = append(risks, "Insufficient emergency fund")
	}
	if p.Age > 50 && p.RetirementSavings < p.Income {
		risks = append(risks, "Inadequate retirement savings")
	}

	level := "low"
	if len(risks) >= 3 {
		level = "high"
	} else if len(risks) >= 1 {
		level = "medium"
	}
	return RiskAssessment{RiskLevel: level, IdentifiedRisks: risks}
}

func analyzeGoals(p *profile.UserProfile) GoalAnalysis {
	ga := GoalAnalysis{
		PrimaryGoal: p.PrimaryGoal,
		TimeHorizon: p.TimeHorizon,
		Feasibility: "medium",
	}

	switch p.PrimaryGoal {
	case "retirement":
		ga.RecommendedApproach = []string{
			"Maximize employer 401(k) match",
			"Consider tax-advantaged accounts",
			"Focus on long-term growth investments",
		}
	case "emergency_fund":
		ga.RecommendedApproach = []string{
			"Start with high-yield savings account",
			"Automate savings",
			"Target 3-6 months of expenses",
		}
	case "debt_payoff":
		ga.RecommendedApproach = []string{
			"Use debt avalanche or snowball method",
			"Consider debt consolidation",
			"Avoid new debt while paying off existing",
		}
	}
	return ga
}

// priorityActions derives up to three actions from the computed score and
// the top two identified risks.
func priorityActions(in Insights) []string {
	var actions []string

	switch score := in.FinancialHealthScore; {
	case score < 40:
		actions = append(actions, "Focus on debt reduction and emergency fund building")
	case score < 70:
		actions = append(actions, "Optimize savings rate and investment allocation")
	default:
		actions = append(actions, "Consider advanced investment strategies and tax optimization")
	}

	risks := in.RiskAssessment.IdentifiedRisks
	if len(risks) > 2 {
		risks = risks[:2]
	}
	for _, risk := range risks {
		lower := strings.ToLower(risk)
		switch {
		case strings.Contains(lower, "debt"):
			actions = append(actions, "Create a debt reduction plan")
		case strings.Contains(lower, "savings"):
			actions = append(actions, "Increase automatic savings")
		case strings.Contains(lower, "emergency"):
			actions = append(actions, "Build emergency fund to 3-6 months expenses")
		}
	}

	if len(actions) > 3 {
		actions = actions[:3]
	}
	return actions
}

func clusterRecommendations(profileType string) []string {
	switch {
	case strings.Contains(profileType, "Conservative"):
		return []string{
			"Consider adding some growth investments for better returns",
			"Explore tax-advantaged savings accounts",
			"Review insurance coverage for complete protection",
		}
	case strings.Contains(profileType, "Spender"):
		return []string{
			"Implement automated savings to build wealth",
			"Use budgeting apps to track expenses",
			"Consider the 24-hour rule before major purchases",
		}
	case strings.Contains(profileType, "Saver"):
		return []string{
			"Optimize investment allocation for growth",
			"Consider real estate or alternative investments",
			"Review and rebalance portfolio regularly",
		}
	default:
		return nil
	}
}
