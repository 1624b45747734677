// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// createPostViaHandler drives the Create handler and returns the new post ID.
func createPostViaHandler(t *testing.T, env *testEnv, sess *sessionOwner, title string, categories []string) uuid.UUID {
	t.Helper()

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/v1/posts", map[string]any{
		"title":      title,
		"content":    "Content for " + title,
		"categories": categories,
	})
	req = req.WithContext(ctxWithSession(req.Context(), sess.data))
	env.Posts.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create post: got %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	id, err := uuid.Parse(data["id"].(string))
	if err != nil {
		t.Fatalf("parse post id: %v", err)
	}
	return id
}

func TestPostCreateAndGet(t *testing.T) {
	env := newTestEnv(t)
	owner := newSessionOwner(t, env)

	postID := createPostViaHandler(t, env, owner, "Tax reform take", []string{"Economy", "Politics"})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+postID.String(), nil)
	req = withChiURLParam(req, "postID", postID.String())
	env.Posts.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("get post: got %d\nbody: %s", rec.Code, rec.Body.String())
	}
	data := decodeBody(t, rec)["data"].(map[string]any)
	if data["title"] != "Tax reform take" {
		t.Errorf("title: got %v", data["title"])
	}

	user := data["user"].(map[string]any)
	if user["username"] != owner.user.Username {
		t.Errorf("author: got %v", user["username"])
	}

	raw := data["categories"].([]any)
	var names []string
	for _, c := range raw {
		names = append(names, c.(string))
	}
	sort.Strings(names)
	if len(names) != 2 || names[0] != "Economy" || names[1] != "Politics" {
		t.Errorf("categories: got %v", names)
	}

	counts := data["voteCounts"].(map[string]any)
	if counts["upvotes"] != float64(0) || counts["downvotes"] != float64(0) {
		t.Errorf("vote counts: got %v", counts)
	}
}

func TestPostCreateUnknownCategories(t *testing.T) {
	env := newTestEnv(t)
	owner := newSessionOwner(t, env)

	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/v1/posts", map[string]any{
		"title":      "Doomed post",
		"content":    "Never lands.",
		"categories": []string{"Economy", "Dragons", "Aliens"},
	})
	req = req.WithContext(ctxWithSession(req.Context(), owner.data))
	env.Posts.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
	msg := decodeBody(t, rec)["message"].(string)
	// Every unresolved name is reported, not just the first.
	if !strings.Contains(msg, "Aliens") || !strings.Contains(msg, "Dragons") {
		t.Errorf("message missing unknown names: %q", msg)
	}

	// The failed request created no post row.
	views, err := env.PostStore.ListViewsByUser(owner.user.ID)
	if err != nil {
		t.Fatalf("ListViewsByUser: %v", err)
	}
	if len(views) != 0 {
		t.Errorf("a post row was created despite the category failure: %d rows", len(views))
	}
}

func TestPostGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	id := uuid.New().String()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+id, nil), "postID", id)
	env.Posts.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestPostGetInvalidUUID(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/posts/nope", nil), "postID", "nope")
	env.Posts.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Invalid UUID" {
		t.Error("unexpected message for malformed UUID")
	}
}

func TestPostUpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	owner := newSessionOwner(t, env)
	intruder := newSessionOwner(t, env)

	postID := createPostViaHandler(t, env, owner, "Original title", nil)

	// A non-author gets a 403 and the post is unchanged.
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPut, "/api/v1/posts/"+postID.String(), map[string]any{
		"title": "Hijacked title",
	})
	req = withChiURLParamAndSession(req, "postID", postID.String(), intruder.data)
	env.Posts.Update(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status: got %d, want 403", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "You can only edit your own posts" {
		t.Error("unexpected forbidden message")
	}

	p, _ := env.PostStore.FindByID(postID)
	if p.Title != "Original title" {
		t.Errorf("title changed by non-author: %q", p.Title)
	}

	// The author can update; omitted content stays.
	rec = httptest.NewRecorder()
	req = jsonRequest(t, http.MethodPut, "/api/v1/posts/"+postID.String(), map[string]any{
		"title":      "Revised title",
		"categories": []string{"Tech"},
	})
	req = withChiURLParamAndSession(req, "postID", postID.String(), owner.data)
	env.Posts.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("author update: got %d\nbody: %s", rec.Code, rec.Body.String())
	}

	p, _ = env.PostStore.FindByID(postID)
	if p.Title != "Revised title" {
		t.Errorf("title: got %q", p.Title)
	}
	if p.Content != "Content for Original title" {
		t.Errorf("content changed on a title-only update: %q", p.Content)
	}

	view, _ := env.PostStore.GetView(postID)
	if len(view.Categories) != 1 || view.Categories[0] != "Tech" {
		t.Errorf("categories after update: %v", view.Categories)
	}
}

func TestPostVoteFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := newSessionOwner(t, env)
	voter := newSessionOwner(t, env)

	postID := createPostViaHandler(t, env, owner, "Vote on me", nil)

	vote := func(sess *sessionOwner, value int) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/v1/posts/"+postID.String()+"/vote", map[string]int{
			"voteType": value,
		})
		req = withChiURLParamAndSession(req, "postID", postID.String(), sess.data)
		env.Posts.Vote(rec, req)
		return rec
	}

	if rec := vote(owner, 1); rec.Code != http.StatusOK {
		t.Fatalf("owner upvote: got %d\nbody: %s", rec.Code, rec.Body.String())
	}
	if rec := vote(voter, 1); rec.Code != http.StatusOK {
		t.Fatalf("voter upvote: got %d", rec.Code)
	}

	// Re-voting replaces the previous vote rather than stacking.
	if rec := vote(voter, -1); rec.Code != http.StatusOK {
		t.Fatalf("voter revote: got %d", rec.Code)
	}

	view, err := env.PostStore.GetView(postID)
	if err != nil {
		t.Fatalf("GetView: %v", err)
	}
	if view.VoteCounts.Upvotes != 1 || view.VoteCounts.Downvotes != 1 {
		t.Errorf("vote counts: %+v", view.VoteCounts)
	}

	// Out-of-range values are a 400 with a helpful message.
	rec := vote(voter, 7)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid vote: got %d, want 400", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Invalid vote type. Use 1 for upvote or -1 for downvote." {
		t.Error("unexpected invalid-vote message")
	}
}

func TestPostVoteMissingPost(t *testing.T) {
	env := newTestEnv(t)
	voter := newSessionOwner(t, env)

	id := uuid.New().String()
	rec := httptest.NewRecorder()
	req := jsonRequest(t, http.MethodPost, "/api/v1/posts/"+id+"/vote", map[string]int{"voteType": 1})
	req = withChiURLParamAndSession(req, "postID", id, voter.data)
	env.Posts.Vote(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestCommentFlow(t *testing.T) {
	env := newTestEnv(t)
	owner := newSessionOwner(t, env)
	commenter := newSessionOwner(t, env)

	postID := createPostViaHandler(t, env, owner, "Discuss below", nil)

	comment := func(sess *sessionOwner, content string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := jsonRequest(t, http.MethodPost, "/api/v1/posts/"+postID.String()+"/comments", map[string]string{
			"content": content,
		})
		req = withChiURLParamAndSession(req, "postID", postID.String(), sess.data)
		env.Posts.CreateComment(rec, req)
		return rec
	}

	if rec := comment(commenter, "First reply."); rec.Code != http.StatusCreated {
		t.Fatalf("create comment: got %d\nbody: %s", rec.Code, rec.Body.String())
	}
	if rec := comment(owner, "Author replies."); rec.Code != http.StatusCreated {
		t.Fatalf("second comment: got %d", rec.Code)
	}

	// Blank content is rejected.
	if rec := comment(commenter, "   "); rec.Code != http.StatusBadRequest {
		t.Errorf("blank comment: got %d, want 400", rec.Code)
	}

	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/posts/"+postID.String()+"/comments", nil), "postID", postID.String())
	env.Posts.ListComments(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("list comments: got %d", rec.Code)
	}
	items := decodeBody(t, rec)["data"].([]any)
	if len(items) != 2 {
		t.Fatalf("got %d comments, want 2", len(items))
	}

	// Oldest first.
	first := items[0].(map[string]any)
	if first["content"] != "First reply." {
		t.Errorf("first comment: got %v", first["content"])
	}
	if first["user"].(map[string]any)["username"] != commenter.user.Username {
		t.Errorf("first comment author: %v", first["user"])
	}
}

func TestListByUserMissingUser(t *testing.T) {
	env := newTestEnv(t)

	id := uuid.New().String()
	rec := httptest.NewRecorder()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/users/"+id+"/posts", nil), "userID", id)
	env.Posts.ListByUser(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "User not found" {
		t.Error("unexpected message for missing user")
	}
}

func TestListPostsEmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	u := createTestUser(t, env)

	rec := httptest.NewRecorder()
	id := u.ID.String()
	req := withChiURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/users/"+id+"/posts", nil), "userID", id)
	env.Posts.ListByUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	// JSON array, not null.
	if _, ok := decodeBody(t, rec)["data"].([]any); !ok {
		t.Errorf("data is not an array: %s", rec.Body.String())
	}
}

func TestListPostsInvalidPagination(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Posts.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts?offset=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("non-numeric offset: got %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	env.Posts.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts?limit=-3", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative limit: got %d, want 400", rec.Code)
	}

	// An oversized limit falls back to the default rather than erroring.
	rec = httptest.NewRecorder()
	env.Posts.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/posts?limit=5000", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("oversized limit: got %d, want 200", rec.Code)
	}
}

func TestCategoriesList(t *testing.T) {
	env := newTestEnv(t)

	rec := httptest.NewRecorder()
	env.Categories.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Categories retrieved successfully" {
		t.Errorf("message: got %v", body["message"])
	}
	items := body["data"].([]any)
	if len(items) < 4 {
		t.Errorf("expected the seeded registry, got %d categories", len(items))
	}
}
