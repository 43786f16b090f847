// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// PostStore handles all post-related database operations, including the
// comment child rows that live and die with their post.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// ListFilter narrows a post listing. Zero values mean "no restriction":
// a nil Published pointer returns both drafts and published posts.
type ListFilter struct {
	CategoryID *uuid.UUID
	Search     string
	Published  *bool
	Limit      int
	Offset     int
}

// postColumns is the joined select list shared by List and FindByID.
// Author and category are denormalized in the same query.
const postColumns = `
	p.id, p.title, p.slug, p.content, p.excerpt, p.featured_image,
	p.author_id, p.category_id, p.tags, p.is_published, p.view_count,
	p.created_at, p.updated_at,
	u.name, u.email, u.avatar,
	c.name, c.slug`

const postJoins = `
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id`

// scanPost scans one joined post row.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	var tags []byte
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Content, &p.Excerpt, &p.FeaturedImage,
		&p.AuthorID, &p.CategoryID, &tags, &p.IsPublished, &p.ViewCount,
		&p.CreatedAt, &p.UpdatedAt,
		&p.Author.Name, &p.Author.Email, &p.Author.Avatar,
		&p.Category.Name, &p.Category.Slug,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(tags, &p.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	p.Author.ID = p.AuthorID
	p.Category.ID = p.CategoryID
	return &p, nil
}

// buildWhere builds the WHERE fragment and argument list for a filter.
// Search is a case-insensitive substring match over title OR content.
func buildWhere(f ListFilter) (string, []any) {
	var conds []string
	var args []any

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		conds = append(conds, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(p.title ILIKE $%d OR p.content ILIKE $%d)", n, n))
	}
	if f.Published != nil {
		args = append(args, *f.Published)
		conds = append(conds, fmt.Sprintf("p.is_published = $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns a page of posts matching the filter, newest first, along
// with the total number of matching posts.
func (s *PostStore) List(f ListFilter) ([]models.Post, int, error) {
	where, args := buildWhere(f)

	var total int
	countQuery := `SELECT COUNT(*)` + postJoins + where
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	args = append(args, f.Limit, f.Offset)
	query := `SELECT` + postColumns + postJoins + where +
		fmt.Sprintf(" ORDER BY p.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, total, rows.Err()
}

// FindByID retrieves a post with its author, category, and comments
// denormalized. Returns nil if not found. The view count is NOT touched;
// callers that serve the detail view use IncrementViewCount.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`SELECT`+postColumns+postJoins+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	comments, err := s.listComments(id)
	if err != nil {
		return nil, err
	}
	p.Comments = comments
	return p, nil
}

// listComments loads a post's comments in insertion order with the
// commenter denormalized.
func (s *PostStore) listComments(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT cm.id, cm.post_id, cm.user_id, cm.content, cm.created_at,
		       u.name, u.avatar
		FROM comments cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.post_id = $1
		ORDER BY cm.created_at ASC, cm.id ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(
			&c.ID, &c.PostID, &c.UserID, &c.Content, &c.CreatedAt,
			&c.User.Name, &c.User.Avatar,
		); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.User.ID = c.UserID
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// IncrementViewCount bumps a post's view counter by one in a single atomic
// UPDATE and returns the new count. Concurrent detail fetches therefore
// never lose an increment.
func (s *PostStore) IncrementViewCount(id uuid.UUID) (int, error) {
	var count int
	err := s.db.QueryRow(`
		UPDATE posts SET view_count = view_count + 1 WHERE id = $1
		RETURNING view_count
	`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment view count: %w", err)
	}
	return count, nil
}

// SlugExists reports whether a post other than exclude already uses the
// slug. Pass uuid.Nil when creating.
func (s *PostStore) SlugExists(slug string, exclude uuid.UUID) (bool, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts WHERE slug = $1 AND id <> $2
	`, slug, exclude).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new post and returns its generated ID.
func (s *PostStore) Create(p *models.Post) (uuid.UUID, error) {
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return uuid.Nil, fmt.Errorf("encode tags: %w", err)
	}

	var id uuid.UUID
	err = s.db.QueryRow(`
		INSERT INTO posts (title, slug, content, excerpt, featured_image,
		                   author_id, category_id, tags, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`, p.Title, p.Slug, p.Content, p.Excerpt, p.FeaturedImage,
		p.AuthorID, p.CategoryID, tags, p.IsPublished,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("create post: %w", err)
	}
	return id, nil
}

// Update writes a post's mutable fields. The author reference is fixed at
// creation time and never updated.
func (s *PostStore) Update(p *models.Post) error {
	tags, err := json.Marshal(tagsOrEmpty(p.Tags))
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	_, err = s.db.Exec(`
		UPDATE posts SET
			title = $1, slug = $2, content = $3, excerpt = $4,
			featured_image = $5, category_id = $6, tags = $7,
			is_published = $8, updated_at = NOW()
		WHERE id = $9
	`, p.Title, p.Slug, p.Content, p.Excerpt,
		p.FeaturedImage, p.CategoryID, tags, p.IsPublished, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. Its comments go with it (ON DELETE CASCADE).
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// AddComment appends a comment to a post and returns its generated ID.
// Comments are append-only: there is no edit or delete operation.
func (s *PostStore) AddComment(postID, userID uuid.UUID, content string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id
	`, postID, userID, content).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("add comment: %w", err)
	}
	return id, nil
}

// tagsOrEmpty normalizes a nil tag slice so it encodes as [] not null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
