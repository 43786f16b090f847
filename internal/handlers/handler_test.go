// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable.
package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/auth"
	"inkwell/internal/database"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/router"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

const testJWTSecret = "integration-test-signing-secret"

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	db     *sql.DB
	router chi.Router
	tokens *auth.Tokens
	users  *store.UserStore
	posts  *store.PostStore
	cats   *store.CategoryStore
}

// newTestEnv builds the full router with real stores against the test
// database. The rate limiter is left out: its behavior has its own tests.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)

	tokens, err := auth.NewTokens(testJWTSecret, auth.DefaultTTL)
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}

	users := store.NewUserStore(db)
	cats := store.NewCategoryStore(db)
	posts := store.NewPostStore(db)

	r := router.New(
		handlers.NewPosts(posts, cats),
		handlers.NewCategories(cats),
		handlers.NewAuth(users, tokens),
		middleware.Authenticate(tokens, users),
		nil,
	)

	return &testEnv{db: db, router: r, tokens: tokens, users: users, posts: posts, cats: cats}
}

// newUser inserts a user and registers cleanup.
func (e *testEnv) newUser(t *testing.T, role models.Role) *models.User {
	t.Helper()

	email := "handler-" + uuid.NewString() + "@example.com"
	u, err := e.users.Create("Handler Test", email, "password123", role)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM posts WHERE author_id = $1", u.ID)
		e.db.Exec("DELETE FROM comments WHERE user_id = $1", u.ID)
		e.db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})
	return u
}

// tokenFor issues a bearer token for the user.
func (e *testEnv) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, err := e.tokens.Issue(u.ID, string(u.Role))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// newCategory inserts a category and registers cleanup.
func (e *testEnv) newCategory(t *testing.T, name string) *models.Category {
	t.Helper()

	unique := name + " " + uuid.NewString()[:8]
	c, err := e.cats.Create(&models.Category{
		Name: unique,
		Slug: slug.Generate(unique),
	})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM posts WHERE category_id = $1", c.ID)
		e.db.Exec("DELETE FROM categories WHERE id = $1", c.ID)
	})
	return c
}

// newPost inserts a post and registers cleanup.
func (e *testEnv) newPost(t *testing.T, author *models.User, cat *models.Category, published bool) *models.Post {
	t.Helper()

	title := "Handler Post " + uuid.NewString()[:8]
	id, err := e.posts.Create(&models.Post{
		Title:         title,
		Slug:          slug.Generate(title),
		Content:       "Body of " + title,
		FeaturedImage: models.DefaultFeaturedImage,
		AuthorID:      author.ID,
		CategoryID:    cat.ID,
		IsPublished:   published,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() {
		e.db.Exec("DELETE FROM posts WHERE id = $1", id)
	})

	p, err := e.posts.FindByID(id)
	if err != nil || p == nil {
		t.Fatalf("load post: %v", err)
	}
	return p
}

// do performs a request against the test router. A non-empty token is sent
// as a bearer Authorization header; body may be nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// decodeEnvelope parses a response body into a generic envelope map.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var env map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rr.Body.String())
	}
	return env
}
