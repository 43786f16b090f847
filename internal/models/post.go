// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultFeaturedImage is the placeholder image for posts created without one.
const DefaultFeaturedImage = "default-post.jpg"

// excerptFallbackLen is how much content the display excerpt falls back to
// when no explicit excerpt was provided.
const excerptFallbackLen = 200

// Post represents a blog post. The slug is derived from the title on every
// write path, the author is fixed at creation time, and comments are
// append-only child rows removed together with the post.
type Post struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Content       string    `json:"content"`
	Excerpt       *string   `json:"excerpt,omitempty"`
	FeaturedImage string    `json:"featured_image"`
	AuthorID      uuid.UUID `json:"author_id"`
	CategoryID    uuid.UUID `json:"category_id"`
	Tags          []string  `json:"tags"`
	IsPublished   bool      `json:"is_published"`
	ViewCount     int       `json:"view_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Denormalized fields populated by store queries.
	Author   AuthorRef   `json:"author"`
	Category CategoryRef `json:"category"`
	Comments []Comment   `json:"comments,omitempty"`
}

// AuthorRef is the denormalized author shape embedded in post responses.
type AuthorRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
}

// Comment is a reader comment attached to a post. Comments have no
// independent lifecycle: they are appended through the post and deleted
// with it.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	PostID    uuid.UUID `json:"post_id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`

	// Denormalized commenter, populated on detail fetches.
	User CommenterRef `json:"user"`
}

// CommenterRef is the denormalized commenter shape on detail responses.
type CommenterRef struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// DisplayExcerpt returns the excerpt for listings. When no explicit excerpt
// was set it falls back to the leading content, truncated with an ellipsis.
func (p *Post) DisplayExcerpt() string {
	if p.Excerpt != nil && strings.TrimSpace(*p.Excerpt) != "" {
		return *p.Excerpt
	}
	runes := []rune(p.Content)
	if len(runes) <= excerptFallbackLen {
		return p.Content
	}
	return string(runes[:excerptFallbackLen]) + "..."
}
