// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"betteridn/internal/database"
	"betteridn/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "betteridn")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "betteridn")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser inserts a throwaway user with a unique email/username.
// Deleting the user on cleanup cascades its posts, comments, and votes.
func createTestUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	users := NewUserStore(db)
	u, err := users.Create("test-"+suffix+"@example.com", "tester_"+suffix, "test-password-1")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { users.Delete(u.ID) })
	return u
}

// createTestPost inserts a post owned by the given user. The row goes
// away with the user's cascade delete.
func createTestPost(t *testing.T, db *sql.DB, userID uuid.UUID) *models.Post {
	t.Helper()

	posts := NewPostStore(db)
	p, err := posts.Create(userID, "Test post title", "Test post content.")
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}

// postCategoryNames returns the category names linked to a post.
func postCategoryNames(t *testing.T, db *sql.DB, postID uuid.UUID) []string {
	t.Helper()

	rows, err := db.Query(`
		SELECT c.name
		FROM posts_categories pc
		JOIN categories c ON c.id = pc.category_id
		WHERE pc.post_id = $1
		ORDER BY c.name
	`, postID)
	if err != nil {
		t.Fatalf("load post categories: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan category name: %v", err)
		}
		names = append(names, name)
	}
	return names
}

// countRows returns the number of rows matching a single-parameter query.
func countRows(t *testing.T, db *sql.DB, query string, arg any) int {
	t.Helper()

	var n int
	if err := db.QueryRow(query, arg).Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}
