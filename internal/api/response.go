// Fincompass - Personalized Financial Advisory and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fincompass

package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/fincompass/internal/logging"
)

// APIResponse is the uniform response envelope.
type APIResponse struct {
	Status    string    `json:"status"`
	Data      any       `json:"data,omitempty"`
	Error     *APIError `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// APIError carries a machine code and human message.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes.
const (
	codeInvalidRequest = "INVALID_REQUEST"
	codeNotReady       = "NOT_READY"
	codeInternal       = "INTERNAL_ERROR"
	codeTrainingBusy   = "TRAINING_IN_PROGRESS"
)

// respondJSON writes the envelope with proper headers.
func respondJSON(w http.ResponseWriter, status int, data any) {
	writeEnvelope(w, status, &APIResponse{
		Status:    "success",
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

// respondError writes an error envelope. Internal details go to the log,
// not the client.
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().Str("code", code).Err(err).Msg("api error")
	}
	writeEnvelope(w, status, &APIResponse{
		Status:    "error",
		Error:     &APIError{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	})
}

func writeEnvelope(w http.ResponseWriter, status int, resp *APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(resp)
	if err != nil {
		logging.Error().Err(err).Msg("failed to marshal response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("failed to write response")
	}
}
