// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by the stores. Handlers map these onto HTTP
// statuses; raw storage errors never leave this package unwrapped.
var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidVote        = errors.New("invalid vote type: use 1 for upvote or -1 for downvote")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
)

// UnknownCategoryError reports every requested category name with no
// matching registry row — batch validation, not fail-fast.
type UnknownCategoryError struct {
	Names []string
}

// Error implements the error interface.
func (e *UnknownCategoryError) Error() string {
	return "the following categories do not exist: " + strings.Join(e.Names, ", ")
}
