// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package config

import "testing"

// TestLoad_Defaults verifies that Load returns sensible development defaults
// when no environment variables are set.
func TestLoad_Defaults(t *testing.T) {
	envVars := []string{
		"APP_HOST", "APP_PORT", "APP_ENV",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"VALKEY_HOST", "VALKEY_PORT", "VALKEY_PASSWORD",
		"JWT_SECRET",
	}
	// envOrDefault treats empty the same as unset, so blanking the vars is
	// enough to exercise the defaults. t.Setenv restores them afterwards.
	for _, key := range envVars {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	check := func(field, got, want string) {
		t.Helper()
		if got != want {
			t.Errorf("%s = %q, want %q", field, got, want)
		}
	}

	check("Host", cfg.Host, "0.0.0.0")
	check("Port", cfg.Port, "8080")
	check("Env", cfg.Env, "development")
	check("DBHost", cfg.DBHost, "localhost")
	check("DBPort", cfg.DBPort, "5432")
	check("DBUser", cfg.DBUser, "inkwell")
	check("DBPassword", cfg.DBPassword, "changeme")
	check("DBName", cfg.DBName, "inkwell")
	check("ValkeyHost", cfg.ValkeyHost, "localhost")
	check("ValkeyPort", cfg.ValkeyPort, "6379")
	check("ValkeyPassword", cfg.ValkeyPassword, "")
	check("JWTSecret", cfg.JWTSecret, "dev-secret-change-me")
}

// TestLoad_EnvOverrides verifies that explicit environment values win over
// the defaults.
func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("POSTGRES_USER", "blog")
	t.Setenv("JWT_SECRET", "s3cret-signing-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if cfg.DBUser != "blog" {
		t.Errorf("DBUser = %q, want %q", cfg.DBUser, "blog")
	}
	if cfg.JWTSecret != "s3cret-signing-key" {
		t.Errorf("JWTSecret = %q, want %q", cfg.JWTSecret, "s3cret-signing-key")
	}
}

// TestLoad_ProductionGuards verifies that production mode refuses to start
// with default credentials.
func TestLoad_ProductionGuards(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("POSTGRES_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() in production with default password should fail")
	}

	t.Setenv("POSTGRES_PASSWORD", "real-password")
	if _, err := Load(); err == nil {
		t.Fatal("Load() in production with default JWT secret should fail")
	}

	t.Setenv("JWT_SECRET", "real-signing-key")
	if _, err := Load(); err != nil {
		t.Fatalf("Load() with production credentials set: %v", err)
	}
}

// TestDSN verifies the PostgreSQL connection string format.
func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "u", DBPassword: "p", DBName: "blog",
	}
	want := "postgres://u:p@db:5433/blog?sslmode=disable"
	if got := cfg.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}

// TestAddr verifies the listen address helpers.
func TestAddr(t *testing.T) {
	cfg := &Config{Host: "127.0.0.1", Port: "8081", ValkeyHost: "cache", ValkeyPort: "6380"}
	if got := cfg.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8081")
	}
	if got := cfg.ValkeyAddr(); got != "cache:6380" {
		t.Errorf("ValkeyAddr() = %q, want %q", got, "cache:6380")
	}
}
