// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"betteridn/internal/models"
)

// VoteStore is the vote ledger: at most one vote row per (subject, voter)
// pair, with the value constrained to +1/-1. Casting again overwrites the
// existing vote — it never creates a second row and never toggles.
type VoteStore struct {
	db *sql.DB
}

// NewVoteStore returns a new VoteStore.
func NewVoteStore(db *sql.DB) *VoteStore {
	return &VoteStore{db: db}
}

// CastPostVote records a user's vote on a post. The value is validated
// before any storage access; the write is a single atomic upsert keyed by
// the (post_id, user_id) uniqueness constraint, so concurrent votes from
// the same voter cannot race into duplicate rows or lost updates.
func (s *VoteStore) CastPostVote(postID, userID uuid.UUID, value int) error {
	if !models.ValidVote(value) {
		return ErrInvalidVote
	}

	_, err := s.db.Exec(`
		INSERT INTO post_votes (post_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id) DO UPDATE SET vote_type = EXCLUDED.vote_type
	`, postID, userID, value)
	if err != nil {
		return fmt.Errorf("cast post vote: %w", err)
	}
	return nil
}

// CastCommentVote records a user's vote on a comment, with the same
// upsert semantics as CastPostVote.
func (s *VoteStore) CastCommentVote(commentID, userID uuid.UUID, value int) error {
	if !models.ValidVote(value) {
		return ErrInvalidVote
	}

	_, err := s.db.Exec(`
		INSERT INTO comment_votes (comment_id, user_id, vote_type)
		VALUES ($1, $2, $3)
		ON CONFLICT (comment_id, user_id) DO UPDATE SET vote_type = EXCLUDED.vote_type
	`, commentID, userID, value)
	if err != nil {
		return fmt.Errorf("cast comment vote: %w", err)
	}
	return nil
}

// PostVoteValues returns the raw vote values recorded for a post.
func (s *VoteStore) PostVoteValues(postID uuid.UUID) ([]int, error) {
	return s.voteValues(`SELECT vote_type FROM post_votes WHERE post_id = $1`, postID)
}

// CommentVoteValues returns the raw vote values recorded for a comment.
func (s *VoteStore) CommentVoteValues(commentID uuid.UUID) ([]int, error) {
	return s.voteValues(`SELECT vote_type FROM comment_votes WHERE comment_id = $1`, commentID)
}

func (s *VoteStore) voteValues(query string, subjectID uuid.UUID) ([]int, error) {
	rows, err := s.db.Query(query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
	}
	defer rows.Close()

	var values []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
