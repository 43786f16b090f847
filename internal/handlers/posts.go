// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Posts bundles the post endpoints with their store dependencies.
type Posts struct {
	posts      *store.PostStore
	categories *store.CategoryStore
}

// NewPosts creates the post handler group.
func NewPosts(posts *store.PostStore, categories *store.CategoryStore) *Posts {
	return &Posts{posts: posts, categories: categories}
}

// List handles GET /api/posts. Anonymous callers see published posts only
// unless they pass an explicit published filter; authenticated callers with
// no filter see drafts as well.
func (h *Posts) List(w http.ResponseWriter, r *http.Request) {
	page := parsePagination(r)
	q := r.URL.Query()

	filter := store.ListFilter{
		Search: q.Get("search"),
		Limit:  page.Limit,
		Offset: page.Offset(),
	}

	if raw := q.Get("category"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			// An unparseable category can't match any post.
			respondPage(w, nil, 0, page)
			return
		}
		filter.CategoryID = &id
	}

	if raw := q.Get("published"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Published = &v
		}
	}
	if filter.Published == nil && middleware.UserFromCtx(r.Context()) == nil {
		published := true
		filter.Published = &published
	}

	items, total, err := h.posts.List(filter)
	if err != nil {
		respondServerError(w, "list posts", err)
		return
	}

	// Listings always carry an excerpt, falling back to truncated content.
	for i := range items {
		excerpt := items[i].DisplayExcerpt()
		items[i].Excerpt = &excerpt
	}

	respondPage(w, items, total, page)
}

// respondPage writes the list envelope with its pagination fields.
func respondPage(w http.ResponseWriter, items []models.Post, total int, page pageParams) {
	if items == nil {
		items = []models.Post{}
	}
	respondJSON(w, http.StatusOK, envelope{
		"success": true,
		"count":   len(items),
		"total":   total,
		"page":    page.Page,
		"pages":   totalPages(total, page.Limit),
		"data":    items,
	})
}

// Get handles GET /api/posts/{id}. Every successful fetch counts as a view:
// the counter is bumped atomically and the response carries the new value.
func (h *Posts) Get(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	count, err := h.posts.IncrementViewCount(post.ID)
	if err != nil {
		respondServerError(w, "increment view count", err)
		return
	}
	post.ViewCount = count

	respondData(w, http.StatusOK, post)
}

// createPostRequest is the POST /api/posts body. The author is never
// caller-suppliable — it comes from the authenticated actor.
type createPostRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Excerpt       *string  `json:"excerpt"`
	FeaturedImage string   `json:"featured_image"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	IsPublished   bool     `json:"is_published"`
}

// Create handles POST /api/posts (authenticated).
func (h *Posts) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromCtx(r.Context())

	var req createPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	errs := validatePost(req.Title, req.Content, req.Excerpt)
	categoryID, catErr, err := h.resolveCategory(req.Category)
	if err != nil {
		respondServerError(w, "resolve category", err)
		return
	}
	if catErr != "" {
		errs["category"] = catErr
	}
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	post := &models.Post{
		Title:         req.Title,
		Slug:          slug.Generate(req.Title),
		Content:       req.Content,
		Excerpt:       req.Excerpt,
		FeaturedImage: req.FeaturedImage,
		AuthorID:      user.ID,
		CategoryID:    categoryID,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
	}
	if post.FeaturedImage == "" {
		post.FeaturedImage = models.DefaultFeaturedImage
	}

	taken, err := h.posts.SlugExists(post.Slug, uuid.Nil)
	if err != nil {
		respondServerError(w, "check slug", err)
		return
	}
	if taken {
		respondError(w, http.StatusBadRequest, "A post with this title already exists")
		return
	}

	id, err := h.posts.Create(post)
	if err != nil {
		respondServerError(w, "create post", err)
		return
	}

	created, err := h.posts.FindByID(id)
	if err != nil {
		respondServerError(w, "load created post", err)
		return
	}

	respondData(w, http.StatusCreated, created)
}

// updatePostRequest is the PUT /api/posts/{id} body. Nil fields are left
// untouched; the author reference can never change.
type updatePostRequest struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Excerpt       *string   `json:"excerpt"`
	FeaturedImage *string   `json:"featured_image"`
	Category      *string   `json:"category"`
	Tags          *[]string `json:"tags"`
	IsPublished   *bool     `json:"is_published"`
}

// Update handles PUT /api/posts/{id} (author or admin).
func (h *Posts) Update(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if !user.CanModify(post.AuthorID) {
		respondError(w, http.StatusUnauthorized, "Not authorized to update this post")
		return
	}

	var req updatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Title != nil {
		post.Title = strings.TrimSpace(*req.Title)
		// The slug follows the title on every write path.
		post.Slug = slug.Generate(post.Title)
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.FeaturedImage != nil {
		post.FeaturedImage = *req.FeaturedImage
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	errs := validatePost(post.Title, post.Content, post.Excerpt)
	if req.Category != nil {
		categoryID, catErr, err := h.resolveCategory(*req.Category)
		if err != nil {
			respondServerError(w, "resolve category", err)
			return
		}
		if catErr != "" {
			errs["category"] = catErr
		} else {
			post.CategoryID = categoryID
		}
	}
	if len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	if req.Title != nil {
		taken, err := h.posts.SlugExists(post.Slug, post.ID)
		if err != nil {
			respondServerError(w, "check slug", err)
			return
		}
		if taken {
			respondError(w, http.StatusBadRequest, "A post with this title already exists")
			return
		}
	}

	if err := h.posts.Update(post); err != nil {
		respondServerError(w, "update post", err)
		return
	}

	updated, err := h.posts.FindByID(post.ID)
	if err != nil {
		respondServerError(w, "load updated post", err)
		return
	}

	respondData(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/posts/{id} (author or admin). Comments are
// removed with the post.
func (h *Posts) Delete(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())
	if !user.CanModify(post.AuthorID) {
		respondError(w, http.StatusUnauthorized, "Not authorized to delete this post")
		return
	}

	if err := h.posts.Delete(post.ID); err != nil {
		respondServerError(w, "delete post", err)
		return
	}

	respondData(w, http.StatusOK, struct{}{})
}

// commentRequest is the POST /api/posts/{id}/comments body.
type commentRequest struct {
	Content string `json:"content"`
}

// AddComment handles POST /api/posts/{id}/comments. Any authenticated user
// may comment on any post.
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	post, ok := h.loadPost(w, r)
	if !ok {
		return
	}

	user := middleware.UserFromCtx(r.Context())

	var req commentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if errs := validateComment(req.Content); len(errs) > 0 {
		respondFieldErrors(w, errs)
		return
	}

	if _, err := h.posts.AddComment(post.ID, user.ID, req.Content); err != nil {
		respondServerError(w, "add comment", err)
		return
	}

	updated, err := h.posts.FindByID(post.ID)
	if err != nil {
		respondServerError(w, "load commented post", err)
		return
	}

	respondData(w, http.StatusCreated, updated)
}

// loadPost resolves the {id} URL parameter to a post, writing a 404 when
// the identifier is malformed or doesn't resolve.
func (h *Posts) loadPost(w http.ResponseWriter, r *http.Request) (*models.Post, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		respondServerError(w, "find post", err)
		return nil, false
	}
	if post == nil {
		respondError(w, http.StatusNotFound, "Post not found")
		return nil, false
	}
	return post, true
}

// resolveCategory parses and verifies a category reference. A bad reference
// yields a field-error message; a failed lookup yields the store error.
func (h *Posts) resolveCategory(raw string) (uuid.UUID, string, error) {
	if raw == "" {
		return uuid.Nil, "Please provide a category", nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "Please provide a valid category", nil
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		return uuid.Nil, "", err
	}
	if cat == nil {
		return uuid.Nil, "Please provide a valid category", nil
	}
	return id, "", nil
}
