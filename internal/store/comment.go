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

// CommentStore handles comment rows and the per-post first/last comment
// metadata projection.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore returns a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, user_id, content, created_at, updated_at`

// Create inserts a comment and advances the post's metadata projection
// in the same transaction: the first-comment pointer is written once and
// kept, the last-comment pointer always moves to the new row.
func (s *CommentStore) Create(postID, userID uuid.UUID, content string) (*models.Comment, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var c models.Comment
	err = tx.QueryRow(`
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING `+commentColumns,
		postID, userID, content,
	).Scan(&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO post_metadata
			(post_id, first_comment_id, last_comment_id, first_commented_at, last_commented_at)
		VALUES ($1, $2, $2, $3, $3)
		ON CONFLICT (post_id) DO UPDATE SET
			last_comment_id = EXCLUDED.last_comment_id,
			last_commented_at = EXCLUDED.last_commented_at
	`, c.PostID, c.ID, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("update post metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit comment: %w", err)
	}
	return &c, nil
}

// Exists reports whether a comment row exists.
func (s *CommentStore) Exists(id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("comment exists: %w", err)
	}
	return exists, nil
}

// ListViewsByPost returns a post's comments with authors and vote
// tallies, oldest first.
func (s *CommentStore) ListViewsByPost(postID uuid.UUID) ([]models.CommentView, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.post_id, c.content, c.created_at, c.updated_at, c.user_id, u.username
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var views []models.CommentView
	var ids []string
	for rows.Next() {
		var v models.CommentView
		err := rows.Scan(
			&v.ID, &v.PostID, &v.Content, &v.CreatedAt, &v.UpdatedAt,
			&v.User.ID, &v.User.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		views = append(views, v)
		ids = append(ids, v.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	if len(views) == 0 {
		return []models.CommentView{}, nil
	}

	votes, err := s.votesByComment(ids)
	if err != nil {
		return nil, err
	}
	for i := range views {
		views[i].VoteCounts = models.TallyVotes(votes[views[i].ID])
	}
	return views, nil
}

// Metadata returns the first/last comment projection for a post, or nil
// when the post has never been commented on.
func (s *CommentStore) Metadata(postID uuid.UUID) (*models.PostMetadata, error) {
	var m models.PostMetadata
	err := s.db.QueryRow(`
		SELECT post_id, first_comment_id, last_comment_id, first_commented_at, last_commented_at
		FROM post_metadata WHERE post_id = $1
	`, postID).Scan(
		&m.PostID, &m.FirstCommentID, &m.LastCommentID,
		&m.FirstCommentedAt, &m.LastCommentedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load post metadata: %w", err)
	}
	return &m, nil
}

// votesByComment loads raw vote values for a set of comments.
func (s *CommentStore) votesByComment(commentIDs []string) (map[uuid.UUID][]int, error) {
	rows, err := s.db.Query(`
		SELECT comment_id, vote_type FROM comment_votes WHERE comment_id = ANY($1::uuid[])
	`, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("load comment votes: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]int)
	for rows.Next() {
		var commentID uuid.UUID
		var value int
		if err := rows.Scan(&commentID, &value); err != nil {
			return nil, fmt.Errorf("scan comment vote: %w", err)
		}
		result[commentID] = append(result[commentID], value)
	}
	return result, rows.Err()
}
