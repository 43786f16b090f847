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

	"inkwell/internal/database"
	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
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

// newTestUser inserts a user and registers cleanup. Email is made unique
// per call so parallel test packages don't collide.
func newTestUser(t *testing.T, db *sql.DB, role models.Role) *models.User {
	t.Helper()

	email := "test-" + uuid.NewString() + "@example.com"
	u, err := NewUserStore(db).Create("Test User", email, "password123", role)
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE author_id = $1", u.ID)
		db.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// newTestCategory inserts a category with a unique name and registers cleanup.
func newTestCategory(t *testing.T, db *sql.DB, name string) *models.Category {
	t.Helper()

	unique := name + " " + uuid.NewString()[:8]
	c, err := NewCategoryStore(db).Create(&models.Category{
		Name:        unique,
		Slug:        slug.Generate(unique),
		Description: "test category",
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE category_id = $1", c.ID)
		db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// newTestPost inserts a post owned by the given author and registers cleanup.
func newTestPost(t *testing.T, db *sql.DB, title string, author *models.User, cat *models.Category, published bool) *models.Post {
	t.Helper()

	s := NewPostStore(db)
	unique := title + " " + uuid.NewString()[:8]
	id, err := s.Create(&models.Post{
		Title:         unique,
		Slug:          slug.Generate(unique),
		Content:       "Body of " + unique,
		FeaturedImage: models.DefaultFeaturedImage,
		AuthorID:      author.ID,
		CategoryID:    cat.ID,
		IsPublished:   published,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM posts WHERE id = $1", id)
	})

	p, err := s.FindByID(id)
	if err != nil {
		t.Fatalf("load test post: %v", err)
	}
	if p == nil {
		t.Fatal("test post vanished after create")
	}
	return p
}
