// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package advisor orchestrates the recommendation engine: user
// segmentation, content scoring, collaborative filtering, and the
// insights layer, combined behind one engine facade. Component failures
// degrade the response here instead of propagating; a missing
// segmentation model still yields content-based advice.
package advisor

import (
	"errors"
	"time"

	"github.com/tomtom215/fincompass/internal/advisor/collab"
	"github.com/tomtom215/fincompass/internal/advisor/content"
	"github.com/tomtom215/fincompass/internal/profile"
)

// Package errors.
var (
	// ErrNotInitialized means advice was requested before Initialize.
	ErrNotInitialized = errors.New("advisor: engine not initialized")
	// ErrTrainingInProgress means a concurrent Train call holds the engine.
	ErrTrainingInProgress = errors.New("advisor: training already in progress")
)

// Provenance labels where a recommendation score came from.
type Provenance string

// Provenance values.
const (
	ProvenanceContent       Provenance = "content"
	ProvenanceCollaborative Provenance = "collaborative"
	ProvenanceHybrid        Provenance = "hybrid"
	ProvenanceColdStart     Provenance = "cold_start"
)

// HybridRecommendation is a product scored by the blended ranker.
type HybridRecommendation struct {
	content.Recommendation
	CollaborativeScore float64    `json:"collaborative_score"`
	HybridScore        float64    `json:"hybrid_score"`
	Provenance         Provenance `json:"provenance"`
}

// SegmentInfo describes the behavioral cluster a user falls into.
type SegmentInfo struct {
	ClusterID       int      `json:"cluster_id"`
	ProfileType     string   `json:"profile_type"`
	Characteristics []string `json:"characteristics"`
	ClusterSize     int      `json:"cluster_size"`
	ClusterPercent  float64  `json:"cluster_percentage"`
}

// Recommendations groups every recommendation surface of one advice
// response.
type Recommendations struct {
	ContentBased      []content.Recommendation `json:"content_based"`
	Collaborative     []collab.PredictedRating `json:"collaborative,omitempty"`
	Hybrid            []HybridRecommendation   `json:"hybrid,omitempty"`
	BudgetingStrategy content.StrategyMatch    `json:"budgeting_strategy"`
	GeneralAdvice     []string                 `json:"general_advice"`
	PeerInsights      []string                 `json:"peer_insights,omitempty"`
}

// RiskAssessment summarizes identified financial risks.
type RiskAssessment struct {
	RiskLevel       string   `json:"risk_level"`
	IdentifiedRisks []string `json:"identified_risks"`
}

// GoalAnalysis maps the user's stated goal onto an approach.
type GoalAnalysis struct {
	PrimaryGoal         string   `json:"primary_goal"`
	TimeHorizon         string   `json:"time_horizon"`
	Feasibility         string   `json:"feasibility"`
	RecommendedApproach []string `json:"recommended_approach"`
}

// Insights is the analytical layer of an advice response.
type Insights struct {
	FinancialHealthScore int            `json:"financial_health_score"`
	KeyRecommendations   []string       `json:"key_recommendations"`
	RiskAssessment       RiskAssessment `json:"risk_assessment"`
	GoalAnalysis         GoalAnalysis   `json:"goal_analysis"`
	PriorityActions      []string       `json:"priority_actions"`
}

// AdviceResult is the full personalized advice response.
type AdviceResult struct {
	UserProfile     *profile.UserProfile `json:"user_profile"`
	Timestamp       time.Time            `json:"timestamp"`
	SegmentInfo     *SegmentInfo         `json:"cluster_info"`
	Recommendations Recommendations      `json:"recommendations"`
	Insights        Insights             `json:"insights"`
}

// Status reports the engine's operational state.
type Status struct {
	Initialized          bool      `json:"initialized"`
	SegmentsTrained      bool      `json:"segments_trained"`
	Clusters             int       `json:"clusters"`
	CollabState          string    `json:"collaborative_state"`
	Users                int       `json:"users"`
	Products             int       `json:"products"`
	Interactions         int       `json:"interactions"`
	LastTrained          time.Time `json:"last_trained"`
	TrainDurationSeconds float64   `json:"train_duration_seconds"`
}
