// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/advice", "200"))
	RecordAPIRequest("POST", "/api/advice", 200, 25*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("POST", "/api/advice", "200"))
	if after != before+1 {
		t.Fatalf("counter = %v, want %v", after, before+1)
	}
}

func TestRecordTrainingOutcomes(t *testing.T) {
	successBefore := testutil.ToFloat64(TrainingRuns.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(TrainingRuns.WithLabelValues("failure"))

	RecordTraining(time.Second, nil)
	RecordTraining(time.Second, errors.New("boom"))

	if got := testutil.ToFloat64(TrainingRuns.WithLabelValues("success")); got != successBefore+1 {
		t.Errorf("success counter = %v, want %v", got, successBefore+1)
	}
	if got := testutil.ToFloat64(TrainingRuns.WithLabelValues("failure")); got != failureBefore+1 {
		t.Errorf("failure counter = %v, want %v", got, failureBefore+1)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Fatalf("gauge after inc = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base {
		t.Fatalf("gauge after dec = %v, want %v", got, base)
	}
}

func TestUpdateModelGauges(t *testing.T) {
	UpdateModelGauges(4, 90, 450)
	if got := testutil.ToFloat64(SegmentClusters); got != 4 {
		t.Errorf("SegmentClusters = %v, want 4", got)
	}
	if got := testutil.ToFloat64(InteractionMatrixUsers); got != 90 {
		t.Errorf("InteractionMatrixUsers = %v, want 90", got)
	}
	if got := testutil.ToFloat64(InteractionMatrixEntries); got != 450 {
		t.Errorf("InteractionMatrixEntries = %v, want 450", got)
	}
}
