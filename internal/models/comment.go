// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a row in the comments table.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"postId"`
	UserID    uuid.UUID `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentView is a comment with its author and vote tally.
type CommentView struct {
	ID         uuid.UUID  `json:"id"`
	PostID     uuid.UUID  `json:"postId"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	User       PublicUser `json:"user"`
	VoteCounts VoteCounts `json:"voteCounts"`
}

// PostMetadata tracks a post's first and last comment. It is a
// materialized projection maintained in the same transaction as comment
// insertion, never recomputed on read.
type PostMetadata struct {
	PostID           uuid.UUID  `json:"postId"`
	FirstCommentID   *uuid.UUID `json:"firstCommentId"`
	LastCommentID    *uuid.UUID `json:"lastCommentId"`
	FirstCommentedAt *time.Time `json:"firstCommentedAt"`
	LastCommentedAt  *time.Time `json:"lastCommentedAt"`
}
