// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
)

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	email := "flow-" + uuid.NewString() + "@example.com"
	t.Cleanup(func() {
		env.db.Exec("DELETE FROM users WHERE email = $1", email)
	})

	rr := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Flow Tester",
		"email":    email,
		"password": "password123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d, want 201 (body: %s)", rr.Code, rr.Body.String())
	}
	body := decodeEnvelope(t, rr)
	if body["token"] == nil || body["token"] == "" {
		t.Fatal("register should return a token")
	}
	data := body["data"].(map[string]any)
	if data["role"] != "user" {
		t.Errorf("role = %v, want user (registration never grants admin)", data["role"])
	}
	if _, ok := data["password_hash"]; ok {
		t.Error("password hash must never appear in responses")
	}

	// Duplicate registration is rejected.
	rr = env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Flow Tester",
		"email":    email,
		"password": "password123",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register status = %d, want 400", rr.Code)
	}

	rr = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": "password123",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}
	token := decodeEnvelope(t, rr)["token"].(string)

	rr = env.do(t, http.MethodGet, "/api/auth/me", token, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("me status = %d, want 200", rr.Code)
	}
	me := decodeEnvelope(t, rr)["data"].(map[string]any)
	if me["email"] != email {
		t.Errorf("me email = %v, want %v", me["email"], email)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)

	email := "badcred-" + uuid.NewString() + "@example.com"
	t.Cleanup(func() {
		env.db.Exec("DELETE FROM users WHERE email = $1", email)
	})

	rr := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Bad Cred",
		"email":    email,
		"password": "password123",
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("register status = %d", rr.Code)
	}

	// Wrong password and unknown email produce the same answer.
	for _, creds := range []map[string]any{
		{"email": email, "password": "wrong-password"},
		{"email": "nobody-" + uuid.NewString() + "@example.com", "password": "password123"},
	} {
		rr = env.do(t, http.MethodPost, "/api/auth/login", "", creds)
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("login %v status = %d, want 401", creds["email"], rr.Code)
		}
		if msg := decodeEnvelope(t, rr)["error"]; msg != "Invalid credentials" {
			t.Errorf("error = %v, want Invalid credentials", msg)
		}
	}
}

func TestMeRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodGet, "/api/auth/me", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous me status = %d, want 401", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/api/auth/me", "garbage.token.here", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("garbage token me status = %d, want 401", rr.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     "Short",
		"email":    "short-" + uuid.NewString() + "@example.com",
		"password": "123",
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	errs := decodeEnvelope(t, rr)["errors"].(map[string]any)
	if errs["password"] != "Password must be at least 6 characters" {
		t.Errorf("password error = %v", errs["password"])
	}
}
