// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package metrics provides Prometheus instrumentation: HTTP request
// latency and throughput, advice generation timing, training runs, and
// trained model shape. Metrics are exposed at /metrics in Prometheus
// text format.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Advice Generation Metrics
	AdviceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "advice_requests_total",
			Help: "Total number of personalized advice requests",
		},
		[]string{"collaborative", "segmented"},
	)

	AdviceGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "advice_generation_duration_seconds",
			Help:    "Time to assemble one advice response",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	RecommendationsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{1, 3, 5, 10, 20},
		},
		[]string{"surface"}, // "content", "collaborative", "hybrid"
	)

	// Training Metrics
	TrainingRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "training_runs_total",
			Help: "Total number of model training runs",
		},
		[]string{"outcome"}, // "success", "failure"
	)

	TrainingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Duration of full training runs",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
	)

	TrainingLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "training_last_success_timestamp",
			Help: "Unix timestamp of last successful training run",
		},
	)

	// Model State Metrics
	SegmentClusters = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "segment_clusters",
			Help: "Number of fitted behavioral clusters",
		},
	)

	InteractionMatrixUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_matrix_users",
			Help: "User rows in the collaborative interaction matrix",
		},
	)

	InteractionMatrixEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_matrix_entries",
			Help: "Populated cells in the collaborative interaction matrix",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordAdvice records one advice generation.
func RecordAdvice(collaborative, segmented bool, duration time.Duration) {
	AdviceRequestsTotal.WithLabelValues(strconv.FormatBool(collaborative), strconv.FormatBool(segmented)).Inc()
	AdviceGenerationDuration.Observe(duration.Seconds())
}

// RecordRecommendations records the size of one recommendation surface.
func RecordRecommendations(surface string, count int) {
	RecommendationsReturned.WithLabelValues(surface).Observe(float64(count))
}

// RecordTraining records the outcome of one training run.
func RecordTraining(duration time.Duration, err error) {
	if err != nil {
		TrainingRuns.WithLabelValues("failure").Inc()
		return
	}
	TrainingRuns.WithLabelValues("success").Inc()
	TrainingDuration.Observe(duration.Seconds())
	TrainingLastSuccess.SetToCurrentTime()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// UpdateModelGauges refreshes gauges describing trained model shape.
func UpdateModelGauges(clusters, users, interactions int) {
	SegmentClusters.Set(float64(clusters))
	InteractionMatrixUsers.Set(float64(users))
	InteractionMatrixEntries.Set(float64(interactions))
}
