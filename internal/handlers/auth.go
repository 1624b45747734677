// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"betteridn/internal/apperr"
	"betteridn/internal/middleware"
	"betteridn/internal/models"
	"betteridn/internal/session"
	"betteridn/internal/store"
)

// Auth groups the account and session HTTP handlers.
type Auth struct {
	sessions *session.Store
	users    *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, users *store.UserStore) *Auth {
	return &Auth{
		sessions: sessions,
		users:    users,
	}
}

// signupRequest is the POST /auth/signup body.
type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup creates a new account. Duplicate email or username is a 409;
// the password is argon2id-hashed and never logged.
func (a *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validateSignup(req.Email, req.Username, req.Password); msg != "" {
		respondError(w, apperr.BadRequest(msg))
		return
	}

	user, err := a.users.Create(req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) || errors.Is(err, store.ErrDuplicateUsername) {
			respondError(w, apperr.Conflict("User already exists"))
			return
		}
		respondError(w, err)
		return
	}

	slog.Info("account created", "user_id", user.ID, "username", user.Username)
	respondJSON(w, http.StatusCreated, "User created successfully", user.Public())
}

// signinRequest is the POST /auth/signin body.
type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signin verifies credentials and issues a session cookie. Missing user
// and wrong password produce the identical 401.
func (a *Auth) Signin(w http.ResponseWriter, r *http.Request) {
	var req signinRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validateSignin(req.Email, req.Password); msg != "" {
		respondError(w, apperr.BadRequest(msg))
		return
	}

	user, err := a.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCredentials) {
			respondError(w, apperr.Unauthorized("Invalid credentials"))
			return
		}
		respondError(w, err)
		return
	}

	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Logged in successfully", nil)
}

// Signout destroys the current session and clears the cookie.
func (a *Auth) Signout(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.Destroy(r.Context(), w, r); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, "Successfully signed out", nil)
}

// Session returns the current principal.
func (a *Auth) Session(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	respondJSON(w, http.StatusOK, "Successfully got current user data", map[string]any{
		"user": models.PublicUser{ID: sess.UserID, Username: sess.Username},
	})
}
