// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP handlers for the BetterIDN
// API. Success responses carry {message, data}; failures carry the
// apperr envelope {status, statusCode, error, message}.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"betteridn/internal/apperr"
)

// response is the success envelope.
type response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// respondJSON writes a success response with the given status, message,
// and optional data payload.
func respondJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Message: message, Data: data}); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// respondError maps an error onto the JSON error envelope. Typed
// application errors pass through verbatim; anything else is logged and
// collapsed to a generic 500 so storage detail never reaches the client.
func respondError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		apperr.Write(w, appErr)
		return
	}

	slog.Error("unexpected error", "error", err)
	apperr.Write(w, apperr.Internal())
}

// decodeJSON parses a JSON request body into dst, returning a 400-class
// error on malformed input.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.BadRequest("Invalid JSON format")
	}
	return nil
}
