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

// PostStore handles post rows and the composed PostView read shape.
type PostStore struct {
	db *sql.DB
}

// NewPostStore returns a new PostStore.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, user_id, title, content, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new post and returns it.
func (s *PostStore) Create(userID uuid.UUID, title, content string) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (user_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns,
		userID, title, content,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

// FindByID retrieves a post by ID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Exists reports whether a post row exists.
func (s *PostStore) Exists(id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("post exists: %w", err)
	}
	return exists, nil
}

// Update modifies a post's title and/or content. A nil field keeps the
// stored value. Returns ErrPostNotFound when no row matches.
func (s *PostStore) Update(id uuid.UUID, title, content *string) (*models.Post, error) {
	row := s.db.QueryRow(`
		UPDATE posts SET
			title = COALESCE($1, title),
			content = COALESCE($2, content),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+postColumns,
		title, content, id,
	)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

// GetView loads a single post with its author, category names, and vote
// tally. Returns nil if the post does not exist.
func (s *PostStore) GetView(id uuid.UUID) (*models.PostView, error) {
	views, err := s.queryViews(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, nil
	}
	return &views[0], nil
}

// ListViews returns composed post views ordered by creation time
// descending, with offset-based pagination.
func (s *PostStore) ListViews(limit, offset int) ([]models.PostView, error) {
	return s.queryViews(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
}

// ListViewsByUser returns all of a user's posts as composed views,
// newest first.
func (s *PostStore) ListViewsByUser(userID uuid.UUID) ([]models.PostView, error) {
	return s.queryViews(`
		SELECT p.id, p.user_id, p.title, p.content, p.created_at, p.updated_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC
	`, userID)
}

// queryViews runs a post+author query and composes PostViews, loading
// category names and vote values for the whole result set in two batch
// queries rather than per row.
func (s *PostStore) queryViews(query string, args ...any) ([]models.PostView, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	type loaded struct {
		post   models.Post
		author models.PublicUser
	}
	var posts []loaded
	var ids []string
	for rows.Next() {
		var l loaded
		err := rows.Scan(
			&l.post.ID, &l.post.UserID, &l.post.Title, &l.post.Content,
			&l.post.CreatedAt, &l.post.UpdatedAt, &l.author.Username,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		l.author.ID = l.post.UserID
		posts = append(posts, l)
		ids = append(ids, l.post.ID.String())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query posts: %w", err)
	}

	if len(posts) == 0 {
		return []models.PostView{}, nil
	}

	categories, err := s.categoriesByPost(ids)
	if err != nil {
		return nil, err
	}
	votes, err := s.votesByPost(ids)
	if err != nil {
		return nil, err
	}

	views := make([]models.PostView, 0, len(posts))
	for _, l := range posts {
		view := models.ComposePost(&l.post, l.author, categories[l.post.ID], votes[l.post.ID])
		views = append(views, *view)
	}
	return views, nil
}

// categoriesByPost loads linked category names for a set of posts.
func (s *PostStore) categoriesByPost(postIDs []string) (map[uuid.UUID][]string, error) {
	rows, err := s.db.Query(`
		SELECT pc.post_id, c.name
		FROM posts_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = ANY($1::uuid[])
	`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load post categories: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]string)
	for rows.Next() {
		var postID uuid.UUID
		var name string
		if err := rows.Scan(&postID, &name); err != nil {
			return nil, fmt.Errorf("scan post category: %w", err)
		}
		result[postID] = append(result[postID], name)
	}
	return result, rows.Err()
}

// votesByPost loads raw vote values for a set of posts.
func (s *PostStore) votesByPost(postIDs []string) (map[uuid.UUID][]int, error) {
	rows, err := s.db.Query(`
		SELECT post_id, vote_type FROM post_votes WHERE post_id = ANY($1::uuid[])
	`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("load post votes: %w", err)
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]int)
	for rows.Next() {
		var postID uuid.UUID
		var value int
		if err := rows.Scan(&postID, &value); err != nil {
			return nil, fmt.Errorf("scan post vote: %w", err)
		}
		result[postID] = append(result[postID], value)
	}
	return result, rows.Err()
}
