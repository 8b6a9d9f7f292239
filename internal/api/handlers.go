// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/fincompass/internal/advisor"
	"github.com/tomtom215/fincompass/internal/advisor/segment"
	"github.com/tomtom215/fincompass/internal/logging"
	"github.com/tomtom215/fincompass/internal/metrics"
	"github.com/tomtom215/fincompass/internal/profile"
)

// Initializer triggers the engine's data load. Wired by the server so the
// initialize endpoint can rebuild from source data on demand.
type Initializer func(r *http.Request) error

// Handler holds the HTTP handlers over the advisory engine.
type Handler struct {
	engine     *advisor.Engine
	initialize Initializer
}

// NewHandler builds the handler set.
func NewHandler(engine *advisor.Engine, initialize Initializer) *Handler {
	return &Handler{engine: engine, initialize: initialize}
}

// adviceRequest is the advice endpoint payload. use_collaborative
// defaults to true when omitted.
type adviceRequest struct {
	UserProfile      *profile.UserProfile `json:"user_profile"`
	UseCollaborative *bool                `json:"use_collaborative"`
}

// profileRequest wraps endpoints that need only a profile.
type profileRequest struct {
	UserProfile *profile.UserProfile `json:"user_profile"`
	TopN        int                  `json:"top_n"`
}

// Status reports engine state.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.engine.Status())
}

// Health is the liveness endpoint.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"ready":  h.engine.Ready(),
	})
}

// Initialize loads source data and trains the models.
func (h *Handler) Initialize(w http.ResponseWriter, r *http.Request) {
	if err := h.initialize(r); err != nil {
		if errors.Is(err, advisor.ErrTrainingInProgress) {
			respondError(w, http.StatusConflict, codeTrainingBusy, "training already in progress", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to initialize system", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "system initialized successfully"})
}

// Advice returns the full personalized advice response.
func (h *Handler) Advice(w http.ResponseWriter, r *http.Request) {
	var req adviceRequest
	if !decodeProfileBody(w, r, &req, &req.UserProfile) {
		return
	}

	useCollaborative := true
	if req.UseCollaborative != nil {
		useCollaborative = *req.UseCollaborative
	}

	start := time.Now()
	advice, err := h.engine.GetPersonalizedAdvice(r.Context(), req.UserProfile, useCollaborative)
	if err != nil {
		if errors.Is(err, advisor.ErrNotInitialized) {
			respondError(w, http.StatusServiceUnavailable, codeNotReady, "system not initialized", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to generate advice", err)
		return
	}

	metrics.RecordAdvice(useCollaborative, advice.SegmentInfo != nil, time.Since(start))
	metrics.RecordRecommendations("content", len(advice.Recommendations.ContentBased))
	if useCollaborative {
		metrics.RecordRecommendations("collaborative", len(advice.Recommendations.Collaborative))
		metrics.RecordRecommendations("hybrid", len(advice.Recommendations.Hybrid))
	}
	respondJSON(w, http.StatusOK, advice)
}

// ContentRecommendations returns content-based product recommendations.
func (h *Handler) ContentRecommendations(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeProfileBody(w, r, &req, &req.UserProfile) {
		return
	}

	recs, err := h.engine.RecommendProducts(req.UserProfile, req.TopN)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "system not initialized", nil)
		return
	}
	metrics.RecordRecommendations("content", len(recs))
	respondJSON(w, http.StatusOK, recs)
}

// BudgetingStrategy returns the best-matching budgeting strategy.
func (h *Handler) BudgetingStrategy(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if !decodeProfileBody(w, r, &req, &req.UserProfile) {
		return
	}

	match, err := h.engine.RecommendBudgetingStrategy(req.UserProfile)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, codeNotReady, "system not initialized", nil)
		return
	}
	respondJSON(w, http.StatusOK, match)
}

// Segments returns the fitted behavioral clusters.
func (h *Handler) Segments(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.engine.Segments()
	if err != nil {
		if errors.Is(err, segment.ErrUntrained) {
			respondError(w, http.StatusServiceUnavailable, codeNotReady, "segmentation model not trained", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, codeInternal, "failed to load segments", err)
		return
	}
	respondJSON(w, http.StatusOK, profiles)
}

// SaveProfile acknowledges a submitted profile with a generated id.
// Profiles are not persisted server side.
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var p profile.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid profile payload", nil)
		return
	}
	if err := p.Normalize(); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"profile_id": "user_" + uuid.NewString(),
		"message":    "profile saved successfully",
	})
}

// decodeProfileBody decodes the request body, requires a user_profile
// field, and normalizes it. On failure it writes the error response and
// returns false.
func decodeProfileBody(w http.ResponseWriter, r *http.Request, dst any, p **profile.UserProfile) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "invalid JSON payload", nil)
		return false
	}
	if *p == nil {
		respondError(w, http.StatusBadRequest, codeInvalidRequest, "user_profile is required", nil)
		return false
	}
	if err := (*p).Normalize(); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("profile validation failed")
		respondError(w, http.StatusBadRequest, codeInvalidRequest, err.Error(), nil)
		return false
	}
	return true
}
