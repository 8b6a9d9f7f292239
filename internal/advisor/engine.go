// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package advisor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/fincompass/internal/advisor/collab"
	"github.com/tomtom215/fincompass/internal/advisor/content"
	"github.com/tomtom215/fincompass/internal/advisor/segment"
	"github.com/tomtom215/fincompass/internal/catalog"
	"github.com/tomtom215/fincompass/internal/config"
	"github.com/tomtom215/fincompass/internal/features"
	"github.com/tomtom215/fincompass/internal/logging"
	"github.com/tomtom215/fincompass/internal/profile"
)

// Engine combines segmentation, content scoring, and collaborative
// filtering behind one facade. It owns all model state explicitly; there
// is no package-level singleton, and callers hold a reference from
// construction through shutdown.
type Engine struct {
	cfg config.AdvisorConfig
	log zerolog.Logger

	cat      *catalog.Catalog
	content  *content.Recommender
	segments *segment.Model
	collab   *collab.Model

	trainMu sync.Mutex

	mu          sync.RWMutex
	initialized bool
	table       *features.Table

	// sourceProfiles is the staged generation from the latest Initialize;
	// trainProfiles is the generation the collaborative matrix was trained
	// on. They swap together at the end of Train so cold-start lookups
	// never mix profile indices with a matrix from another generation.
	sourceProfiles []*profile.UserProfile
	trainProfiles  []*profile.UserProfile

	lastTrained   time.Time
	trainDuration time.Duration
}

// NewEngine builds an engine over the default catalog.
func NewEngine(cfg config.AdvisorConfig) *Engine {
	cat := catalog.Default()
	return &Engine{
		cfg:      cfg,
		log:      logging.Logger().With().Str("component", "advisor").Logger(),
		cat:      cat,
		content:  content.NewRecommender(cat),
		segments: segment.NewModel(),
		collab:   collab.NewModel(),
	}
}

// Catalog returns the product catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// SegmentModel exposes the segmentation model for persistence.
func (e *Engine) SegmentModel() *segment.Model { return e.segments }

// CollabModel exposes the collaborative model for persistence.
func (e *Engine) CollabModel() *collab.Model { return e.collab }

// Initialize harmonizes the source tables into the training table and
// derives the historical user profiles used for interaction synthesis
// and cold-start matching. Must be called before Train or advice.
func (e *Engine) Initialize(ctx context.Context, sources []features.SourceTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	profiles := deriveProfiles(sources)

	table, err := features.Harmonize(sources)
	if err != nil {
		return fmt.Errorf("harmonizing sources: %w", err)
	}

	e.mu.Lock()
	e.table = table
	e.sourceProfiles = profiles
	e.initialized = true
	e.mu.Unlock()

	e.log.Info().
		Int("rows", table.NumRows()).
		Int("columns", table.NumColumns()).
		Int("sources", len(sources)).
		Int("profiles", len(profiles)).
		Msg("engine initialized")
	return nil
}

// Initialized reports whether source data has been loaded.
func (e *Engine) Initialized() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.initialized
}

// Ready reports whether the engine can serve personalized advice.
// Content scoring needs only initialization; trained models improve the
// response but are not required.
func (e *Engine) Ready() bool {
	return e.Initialized()
}

// Train fits the segmentation model and the collaborative model on the
// initialized data. Concurrent calls fail fast with
// ErrTrainingInProgress. Segmentation failure on sparse data is degraded
// to a warning; advice then proceeds without cluster context.
func (e *Engine) Train(ctx context.Context) error {
	if !e.trainMu.TryLock() {
		return ErrTrainingInProgress
	}
	defer e.trainMu.Unlock()

	e.mu.RLock()
	initialized := e.initialized
	table := e.table
	profiles := e.sourceProfiles
	e.mu.RUnlock()
	if !initialized {
		return ErrNotInitialized
	}

	start := time.Now()

	if err := ctx.Err(); err != nil {
		return err
	}
	err := e.segments.Fit(table, segment.Config{
		MaxClusters: e.cfg.MaxClusters,
		Seed:        e.cfg.Seed,
	})
	switch {
	case errors.Is(err, segment.ErrInsufficientData):
		e.log.Warn().Err(err).Msg("skipping segmentation, continuing without cluster context")
	case err != nil:
		return fmt.Errorf("fitting segmentation model: %w", err)
	default:
		e.log.Info().Int("clusters", e.segments.K()).Msg("segmentation model fitted")
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(profiles) < e.cfg.MinUsersForCollab {
		e.log.Warn().
			Int("users", len(profiles)).
			Int("min_users", e.cfg.MinUsersForCollab).
			Msg("too few users for collaborative filtering, content scoring only")
	} else {
		interactions := collab.Synthesize(profiles, e.content, e.cfg.TopN)
		matrix := collab.NewInteractionMatrix(interactions)
		if err := e.collab.Train(matrix, collab.Config{
			Components: e.cfg.Components,
			Iterations: e.cfg.FactorizationIterations,
			Seed:       e.cfg.Seed,
		}); err != nil {
			return fmt.Errorf("training collaborative model: %w", err)
		}
		e.log.Info().
			Int("users", matrix.NumUsers()).
			Int("products", matrix.NumProducts()).
			Int("interactions", matrix.NumInteractions()).
			Msg("collaborative model trained")
	}

	e.mu.Lock()
	e.trainProfiles = profiles
	e.lastTrained = time.Now()
	e.trainDuration = time.Since(start)
	e.mu.Unlock()

	e.log.Info().Dur("duration", time.Since(start)).Msg("training complete")
	return nil
}

// GetPersonalizedAdvice produces the full advice response for a profile.
// The profile must already be normalized. Model-level failures degrade
// the response; only an uninitialized engine is an error.
func (e *Engine) GetPersonalizedAdvice(ctx context.Context, p *profile.UserProfile, useCollaborative bool) (*AdviceResult, error) {
	if !e.Initialized() {
		return nil, ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &AdviceResult{
		UserProfile: p,
		Timestamp:   time.Now().UTC(),
	}

	result.SegmentInfo = e.segmentInfo(p)

	contentRecs := e.content.RecommendProducts(p, e.cfg.TopN)
	result.Recommendations.ContentBased = contentRecs
	result.Recommendations.BudgetingStrategy = e.content.RecommendBudgetingStrategy(p)
	result.Recommendations.GeneralAdvice = content.GeneralAdvice(p)

	if useCollaborative && e.collab.Trained() {
		e.mu.RLock()
		known := e.trainProfiles
		e.mu.RUnlock()

		coldRecs := e.collab.ColdStart(p, known, e.cfg.ColdStartNeighbors, e.cfg.TopN)
		result.Recommendations.Collaborative = coldRecs
		result.Recommendations.Hybrid = e.blendHybrid(
			e.content.RecommendProducts(p, e.cfg.TopN*2), coldRecs, ProvenanceColdStart)
	}

	if result.SegmentInfo != nil {
		result.Recommendations.PeerInsights = content.PeerInsights(result.SegmentInfo.ProfileType)
	}
	result.Insights = buildInsights(p, result.SegmentInfo)

	logging.Ctx(ctx).Debug().
		Int("content_recs", len(result.Recommendations.ContentBased)).
		Int("hybrid_recs", len(result.Recommendations.Hybrid)).
		Bool("segmented", result.SegmentInfo != nil).
		Msg("advice generated")
	return result, nil
}

// RecommendProducts returns content-based product recommendations only.
func (e *Engine) RecommendProducts(p *profile.UserProfile, topN int) ([]content.Recommendation, error) {
	if !e.Initialized() {
		return nil, ErrNotInitialized
	}
	if topN <= 0 {
		topN = e.cfg.TopN
	}
	return e.content.RecommendProducts(p, topN), nil
}

// RecommendBudgetingStrategy returns the best-matching budgeting
// strategy.
func (e *Engine) RecommendBudgetingStrategy(p *profile.UserProfile) (content.StrategyMatch, error) {
	if !e.Initialized() {
		return content.StrategyMatch{}, ErrNotInitialized
	}
	return e.content.RecommendBudgetingStrategy(p), nil
}

// HybridForUser blends content and collaborative scores for a user that
// exists in the interaction matrix, using that user's own prediction row
// instead of the cold-start path.
func (e *Engine) HybridForUser(userID int, p *profile.UserProfile) ([]HybridRecommendation, error) {
	if !e.Initialized() {
		return nil, ErrNotInitialized
	}
	collabRecs, err := e.collab.RecommendForUser(userID, e.cfg.TopN*2, e.cfg.SimilarUsers)
	if err != nil {
		return nil, err
	}
	return e.blendHybrid(e.content.RecommendProducts(p, e.cfg.TopN*2), collabRecs, ProvenanceCollaborative), nil
}

// Segments returns the fitted cluster profiles.
func (e *Engine) Segments() ([]segment.ClusterProfile, error) {
	if !e.segments.Trained() {
		return nil, segment.ErrUntrained
	}
	return e.segments.Profiles(), nil
}

// Status reports the engine state for the status endpoint.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := Status{
		Initialized:          e.initialized,
		SegmentsTrained:      e.segments.Trained(),
		Clusters:             e.segments.K(),
		CollabState:          e.collab.State().String(),
		LastTrained:          e.lastTrained,
		TrainDurationSeconds: e.trainDuration.Seconds(),
	}
	if m := e.collab.Matrix(); m != nil {
		st.Users = m.NumUsers()
		st.Products = m.NumProducts()
		st.Interactions = m.NumInteractions()
	}
	return st
}

// segmentInfo resolves the user's cluster, or nil when segmentation is
// unavailable. Prediction failures degrade to nil with a warning.
func (e *Engine) segmentInfo(p *profile.UserProfile) *SegmentInfo {
	if !e.segments.Trained() {
		return nil
	}

	e.mu.RLock()
	table := e.table
	e.mu.RUnlock()
	if table == nil {
		return nil
	}

	vec, err := table.Align(table.ScaleValues(p.FeatureValues()))
	if err != nil {
		e.log.Warn().Err(err).Msg("could not align profile to training schema")
		return nil
	}
	clusterID, err := e.segments.Predict(vec)
	if err != nil {
		e.log.Warn().Err(err).Msg("cluster prediction failed")
		return nil
	}
	cp, err := e.segments.Profile(clusterID)
	if err != nil {
		e.log.Warn().Err(err).Msg("cluster profile lookup failed")
		return nil
	}

	return &SegmentInfo{
		ClusterID:       cp.ID,
		ProfileType:     cp.ProfileType,
		Characteristics: cp.Characteristics,
		ClusterSize:     cp.Size,
		ClusterPercent:  cp.Percentage,
	}
}

// blendHybrid merges content and collaborative scores. Blend weights are
// normalized by their sum, so the hybrid score stays within [0, 1] for
// any positive weight pair. Predicted ratings normalize onto [0, 1]
// against the rating ceiling; cold-start accumulations above the ceiling
// clamp to 1. Products only the collaborative side knows contribute the
// weighted collaborative score alone and carry collabProv, naming the
// prediction path that produced them. The sort is stable, so ties keep
// content rank order.
func (e *Engine) blendHybrid(contentRecs []content.Recommendation, collabRecs []collab.PredictedRating, collabProv Provenance) []HybridRecommendation {
	cw, kw := e.cfg.ContentWeight, e.cfg.CollabWeight
	if sum := cw + kw; sum > 0 {
		cw /= sum
		kw /= sum
	}

	collabScores := make(map[string]float64, len(collabRecs))
	for _, cr := range collabRecs {
		s := cr.Rating / 5.0
		if s > 1 {
			s = 1
		}
		collabScores[cr.ProductID] = s
	}

	out := make([]HybridRecommendation, 0, len(contentRecs)+len(collabRecs))
	seen := make(map[string]bool, len(contentRecs))
	for _, rec := range contentRecs {
		seen[rec.ProductID] = true
		cs := collabScores[rec.ProductID]
		prov := ProvenanceContent
		if cs > 0 {
			prov = ProvenanceHybrid
		}
		out = append(out, HybridRecommendation{
			Recommendation:     rec,
			CollaborativeScore: cs,
			HybridScore:        cw*rec.SuitabilityScore + kw*cs,
			Provenance:         prov,
		})
	}

	for _, cr := range collabRecs {
		if seen[cr.ProductID] {
			continue
		}
		cs := collabScores[cr.ProductID]
		rec := content.Recommendation{ProductID: cr.ProductID}
		if prod, ok := e.cat.ProductByID(cr.ProductID); ok {
			rec.ProductName = prod.Name
			rec.Category = prod.Category
			rec.ExpectedReturn = prod.ExpectedReturn
			rec.RiskLevel = string(prod.RiskLevel)
			rec.Description = prod.Description
			rec.Features = prod.Features
			rec.MinInvestment = prod.MinInvestment
		}
		out = append(out, HybridRecommendation{
			Recommendation:     rec,
			CollaborativeScore: cs,
			HybridScore:        kw * cs,
			Provenance:         collabProv,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].HybridScore > out[b].HybridScore
	})
	if e.cfg.TopN > 0 && e.cfg.TopN < len(out) {
		out = out[:e.cfg.TopN]
	}
	return out
}

// deriveProfiles reconstructs approximate user profiles from raw source
// rows, for interaction synthesis and cold-start matching. Values outside
// validation bounds clamp to the nearest valid value.
func deriveProfiles(sources []features.SourceTable) []*profile.UserProfile {
	var out []*profile.UserProfile
	for _, src := range sources {
		for _, row := range src.Rows {
			p := &profile.UserProfile{
				Age:        clampInt(intFrom(row, 0, "Customer_Age", "Age"), 18, 100),
				Income:     firstOf(row, 0, "Income", "total_income", "Credit_Limit"),
				Dependents: clampInt(intFrom(row, 0, "Dependent_count", "Dependents"), 0, 20),
			}
			if sr, ok := savingsRateFrom(row); ok {
				p.SavingsRate = &sr
			}
			if err := p.Normalize(); err != nil {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

func firstOf(row map[string]float64, def float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			return v
		}
	}
	return def
}

func intFrom(row map[string]float64, def int, keys ...string) int {
	for _, k := range keys {
		if v, ok := row[k]; ok {
			return int(v)
		}
	}
	return def
}

func savingsRateFrom(row map[string]float64) (float64, bool) {
	if v, ok := row["savings_rate"]; ok {
		return v, true
	}
	if v, ok := row["Desired_Savings_Percentage"]; ok {
		return v / 100, true
	}
	return 0, false
}

func clampInt(v, lo, hi int) int {
	if v != 0 && v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
