// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"quire/internal/database"
	"quire/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "quire")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "quire")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testUser inserts a uniquely named user and removes it, along with its
// posts and comments, when the test finishes.
func testUser(t *testing.T, db *sql.DB) *models.User {
	t.Helper()

	tag := uuid.NewString()[:8]
	u, err := NewUserStore(db).Create(context.Background(),
		"user-"+tag, "user-"+tag+"@store-test.local", "hash")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() { cleanUser(db, u.ID) })
	return u
}

// cleanUser removes a user and everything that references it.
func cleanUser(db *sql.DB, id int64) {
	db.Exec("DELETE FROM comments WHERE author_id = $1", id)
	db.Exec("DELETE FROM blog_posts WHERE author_id = $1", id)
	db.Exec("DELETE FROM users WHERE id = $1", id)
}

// testPost inserts a uniquely titled post by author.
func testPost(t *testing.T, db *sql.DB, author *models.User) *models.Post {
	t.Helper()

	p, err := NewPostStore(db).Create(context.Background(), &models.Post{
		Title:    "Post " + uuid.NewString()[:8],
		Subtitle: "A subtitle",
		Date:     "March 04, 2026",
		Body:     "Some *markdown* body.",
		Author:   author.Name,
		ImgURL:   "https://example.com/cover.jpg",
		AuthorID: author.ID,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	return p
}
