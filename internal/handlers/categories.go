// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Categories bundles the category endpoints. List and Get are public;
// create, update, and delete are admin-only, enforced by router middleware.
type Categories struct {
	categories *store.CategoryStore
}

// NewCategories creates the category handler group.
func NewCategories(categories *store.CategoryStore) *Categories {
	return &Categories{categories: categories}
}

// List handles GET /api/categories.
func (h *Categories) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.categories.List()
	if err != nil {
		respondServerError(w, "list categories", err)
		return
	}
	if items == nil {
		items = []models.Category{}
	}

	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}

// Get handles GET /api/categories/{id}.
func (h *Categories) Get(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}
	respondData(w, http.StatusOK, cat)
}

// categoryRequest is the create/update body.
type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Create handles POST /api/categories (admin).
func (h *Categories) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if errs := validateCategory(req.Name, req.Description); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	newSlug := slug.Generate(req.Name)
	existing, err := h.categories.FindBySlug(newSlug)
	if err != nil {
		respondServerError(w, "check slug", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusBadRequest, "A category with this name already exists")
		return
	}

	created, err := h.categories.Create(&models.Category{
		Name:        req.Name,
		Slug:        newSlug,
		Description: req.Description,
	})
	if err != nil {
		respondServerError(w, "create category", err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// Update handles PUT /api/categories/{id} (admin). The slug follows the
// name on every write.
func (h *Categories) Update(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	var req categoryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name = strings.TrimSpace(req.Name); req.Name != "" {
		cat.Name = req.Name
		cat.Slug = slug.Generate(req.Name)
	}
	if req.Description != "" {
		cat.Description = req.Description
	}

	if errs := validateCategory(cat.Name, cat.Description); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	if req.Name != "" {
		existing, err := h.categories.FindBySlug(cat.Slug)
		if err != nil {
			respondServerError(w, "check slug", err)
			return
		}
		if existing != nil && existing.ID != cat.ID {
			respondError(w, http.StatusBadRequest, "A category with this name already exists")
			return
		}
	}

	if err := h.categories.Update(cat); err != nil {
		respondServerError(w, "update category", err)
		return
	}

	updated, err := h.categories.FindByID(cat.ID)
	if err != nil {
		respondServerError(w, "load updated category", err)
		return
	}

	respondData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/categories/{id} (admin). Deletion is denied
// while posts still reference the category.
func (h *Categories) Delete(w http.ResponseWriter, r *http.Request) {
	cat, ok := h.loadCategory(w, r)
	if !ok {
		return
	}

	if err := h.categories.Delete(cat.ID); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			respondError(w, http.StatusBadRequest, "Category has posts and cannot be deleted")
			return
		}
		respondServerError(w, "delete category", err)
		return
	}

	respondData(w, http.StatusOK, struct{}{})
}

// loadCategory resolves the {id} URL parameter, writing a 404 when the
// identifier is malformed or doesn't resolve.
func (h *Categories) loadCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}

	cat, err := h.categories.FindByID(id)
	if err != nil {
		respondServerError(w, "find category", err)
		return nil, false
	}
	if cat == nil {
		respondError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	return cat, true
}
