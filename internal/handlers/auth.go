// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"inkwell/internal/auth"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/store"
)

// Auth bundles the account endpoints: register, login, and current-user.
type Auth struct {
	users  *store.UserStore
	tokens *auth.Tokens
}

// NewAuth creates the auth handler group.
func NewAuth(users *store.UserStore, tokens *auth.Tokens) *Auth {
	return &Auth{users: users, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register. New accounts always get the
// regular user role; admins are promoted out of band.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validateRegistration(req.Name, req.Email, req.Password); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	existing, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondServerError(w, "check email", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusBadRequest, "Email already registered")
		return
	}

	user, err := h.users.Create(req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		respondServerError(w, "create user", err)
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Wrong email and wrong password get
// the same answer.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		respondServerError(w, "find user", err)
		return
	}
	if user == nil || !h.users.CheckPassword(user, req.Password) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Me handles GET /api/auth/me (authenticated).
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, middleware.UserFromCtx(r.Context()))
}

// respondWithToken issues a token for the user and writes it alongside the
// user record.
func (h *Auth) respondWithToken(w http.ResponseWriter, status int, user *models.User) {
	token, err := h.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		respondServerError(w, "issue token", err)
		return
	}

	respondJSON(w, status, envelope{
		"success": true,
		"token":   token,
		"data":    user,
	})
}
