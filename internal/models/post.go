// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a row in the posts table. Title and content are mutable by the
// author; everything else is fixed at creation.
type Post struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PostView is the composed read shape: the post with its author, its
// linked category names, and the vote tally. The same shape serves
// single fetch, the paginated listing, and the per-user listing.
type PostView struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	Categories []string   `json:"categories"`
	User       PublicUser `json:"user"`
	VoteCounts VoteCounts `json:"voteCounts"`
}

// ComposePost builds a PostView from a loaded post, its author, its
// category names, and its raw vote values. Category order is whatever
// the underlying join produced; it is not significant.
func ComposePost(p *Post, author PublicUser, categories []string, votes []int) *PostView {
	if categories == nil {
		categories = []string{}
	}
	return &PostView{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Categories: categories,
		User:       author,
		VoteCounts: TallyVotes(votes),
	}
}
