// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"betteridn/internal/apperr"
	"betteridn/internal/middleware"
	"betteridn/internal/store"
)

// Default pagination for the post listing.
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Posts groups the post, comment, and vote HTTP handlers.
type Posts struct {
	posts      *store.PostStore
	comments   *store.CommentStore
	votes      *store.VoteStore
	categories *store.CategoryStore
	users      *store.UserStore
}

// NewPosts creates a new Posts handler group.
func NewPosts(posts *store.PostStore, comments *store.CommentStore, votes *store.VoteStore, categories *store.CategoryStore, users *store.UserStore) *Posts {
	return &Posts{
		posts:      posts,
		comments:   comments,
		votes:      votes,
		categories: categories,
		users:      users,
	}
}

// createPostRequest is the POST /posts body. An empty category list is
// legal and produces a post with no tags.
type createPostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Categories []string `json:"categories"`
}

// Create inserts a new post for the authenticated user. Category names
// are validated against the registry before the post row is written, so
// an unknown name creates nothing.
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	var req createPostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validatePostCreate(req.Title, req.Content); msg != "" {
		respondError(w, apperr.BadRequest(msg))
		return
	}

	if _, err := h.categories.ResolveNames(req.Categories); err != nil {
		respondError(w, mapCategoryErr(err))
		return
	}

	post, err := h.posts.Create(sess.UserID, req.Title, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.categories.Reconcile(post.ID, req.Categories); err != nil {
		respondError(w, mapCategoryErr(err))
		return
	}

	respondJSON(w, http.StatusCreated, "Post created successfully", map[string]any{
		"id": post.ID,
	})
}

// Get returns a single composed post view.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	postID, err := parseUUIDParam(r, "postID")
	if err != nil {
		respondError(w, err)
		return
	}

	view, err := h.posts.GetView(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if view == nil {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	respondJSON(w, http.StatusOK, "Post retrieved successfully", view)
}

// List returns composed post views, newest first, with offset-based
// pagination (default page size 10).
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		respondError(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		respondError(w, err)
		return
	}
	if limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}

	views, err := h.posts.ListViews(limit, offset)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Posts retrieved successfully", views)
}

// ListByUser returns all posts authored by a user, newest first.
func (h *Posts) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := parseUUIDParam(r, "userID")
	if err != nil {
		respondError(w, err)
		return
	}

	user, err := h.users.FindByID(userID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		respondError(w, apperr.NotFound("User not found"))
		return
	}

	views, err := h.posts.ListViewsByUser(userID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Posts retrieved successfully", views)
}

// updatePostRequest is the PUT /posts/{postID} body. Nil fields are left
// unchanged; a nil category list keeps the existing links.
type updatePostRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	Categories []string `json:"categories"`
}

// Update edits a post's title/content and reconciles its category links.
// Only the author may edit their post.
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	postID, err := parseUUIDParam(r, "postID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req updatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validatePostUpdate(req.Title, req.Content, req.Categories); msg != "" {
		respondError(w, apperr.BadRequest(msg))
		return
	}

	post, err := h.posts.FindByID(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if post == nil {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}
	if post.UserID != sess.UserID {
		respondError(w, apperr.Forbidden("You can only edit your own posts"))
		return
	}

	if _, err := h.posts.Update(postID, req.Title, req.Content); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			respondError(w, apperr.NotFound("Post not found"))
			return
		}
		respondError(w, err)
		return
	}

	if req.Categories != nil {
		if err := h.categories.Reconcile(postID, req.Categories); err != nil {
			respondError(w, mapCategoryErr(err))
			return
		}
	}

	respondJSON(w, http.StatusOK, "Post updated successfully", map[string]any{
		"id": postID,
	})
}

// voteRequest is the body for vote endpoints.
type voteRequest struct {
	VoteType int `json:"voteType"`
}

// Vote records the authenticated user's vote on a post. A second vote
// from the same user replaces the first.
func (h *Posts) Vote(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	postID, err := parseUUIDParam(r, "postID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	exists, err := h.posts.Exists(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	if err := h.votes.CastPostVote(postID, sess.UserID, req.VoteType); err != nil {
		if errors.Is(err, store.ErrInvalidVote) {
			respondError(w, apperr.BadRequest("Invalid vote type. Use 1 for upvote or -1 for downvote."))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Vote recorded successfully", nil)
}

// VoteComment records the authenticated user's vote on a comment.
func (h *Posts) VoteComment(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	commentID, err := parseUUIDParam(r, "commentID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req voteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	exists, err := h.comments.Exists(commentID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.NotFound("Comment not found"))
		return
	}

	if err := h.votes.CastCommentVote(commentID, sess.UserID, req.VoteType); err != nil {
		if errors.Is(err, store.ErrInvalidVote) {
			respondError(w, apperr.BadRequest("Invalid vote type. Use 1 for upvote or -1 for downvote."))
			return
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Vote recorded successfully", nil)
}

// createCommentRequest is the POST /posts/{postID}/comments body.
type createCommentRequest struct {
	Content string `json:"content"`
}

// CreateComment adds a comment to a post.
func (h *Posts) CreateComment(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	postID, err := parseUUIDParam(r, "postID")
	if err != nil {
		respondError(w, err)
		return
	}

	var req createCommentRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if msg := validateComment(req.Content); msg != "" {
		respondError(w, apperr.BadRequest(msg))
		return
	}

	exists, err := h.posts.Exists(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	comment, err := h.comments.Create(postID, sess.UserID, req.Content)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, "Comment created successfully", map[string]any{
		"id": comment.ID,
	})
}

// ListComments returns a post's comments, oldest first.
func (h *Posts) ListComments(w http.ResponseWriter, r *http.Request) {
	postID, err := parseUUIDParam(r, "postID")
	if err != nil {
		respondError(w, err)
		return
	}

	exists, err := h.posts.Exists(postID)
	if err != nil {
		respondError(w, err)
		return
	}
	if !exists {
		respondError(w, apperr.NotFound("Post not found"))
		return
	}

	views, err := h.comments.ListViewsByPost(postID)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, "Comments retrieved successfully", views)
}

// mapCategoryErr converts an unknown-category failure into a 400 with
// every unresolved name in the message; other errors pass through.
func mapCategoryErr(err error) error {
	var unknown *store.UnknownCategoryError
	if errors.As(err, &unknown) {
		return apperr.BadRequest("The following categories do not exist: " + strings.Join(unknown.Names, ", "))
	}
	return err
}

// parseUUIDParam reads a UUID path parameter or fails with a 400.
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid UUID")
	}
	return id, nil
}

// queryInt reads an optional integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, apperr.BadRequest("Invalid " + name + " parameter")
	}
	return v, nil
}
