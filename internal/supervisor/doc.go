// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

// Package supervisor builds the suture supervision tree that runs the
// application: a models layer for the advisory trainer and an api layer
// for the HTTP server, with failure isolation between them.
package supervisor
