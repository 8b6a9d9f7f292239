// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package api exposes the advisory engine over HTTP.
//
// Responses use a uniform envelope with a status field, a data payload
// on success, and a structured error on failure. All endpoints are
// JSON, routed with chi, and instrumented with Prometheus metrics and
// per-request structured logging.
package api
