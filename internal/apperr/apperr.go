// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apperr defines the typed application error carried from the
// service layer to the HTTP boundary, and the JSON envelope it is
// serialized into. Every error response shares the shape
// {status, statusCode, error, message}.
package apperr

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error is an application error with an HTTP status code and a short
// label surfaced verbatim to the client.
type Error struct {
	StatusCode int
	Label      string
	Message    string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// New creates an Error with the standard label for the given status code.
func New(statusCode int, message string) *Error {
	return &Error{
		StatusCode: statusCode,
		Label:      http.StatusText(statusCode),
		Message:    message,
	}
}

// BadRequest returns a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 error.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Internal returns a 500 error. Raw storage error detail must never
// reach the client; callers log the cause and send this instead.
func Internal() *Error {
	return New(http.StatusInternalServerError, "Internal server error")
}

// envelope is the wire shape of every error response.
type envelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	ErrorLabel string `json:"error"`
	Message    string `json:"message"`
}

// Write serializes e as the JSON error envelope.
func Write(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)

	if err := json.NewEncoder(w).Encode(envelope{
		Status:     "error",
		StatusCode: e.StatusCode,
		ErrorLabel: e.Label,
		Message:    e.Message,
	}); err != nil {
		slog.Error("failed to write error response", "error", err)
	}
}
