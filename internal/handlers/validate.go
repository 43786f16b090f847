package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for blog entities.
const (
	maxTitleLen        = 100
	maxExcerptLen      = 200
	maxCategoryNameLen = 50
	maxDescriptionLen  = 200
	minPasswordLen     = 6
)

// validatePost checks post fields and returns per-field messages.
// An empty map means the input is valid.
func validatePost(title, content string, excerpt *string) map[string]string {
	errs := map[string]string{}

	title = strings.TrimSpace(title)
	if title == "" {
		errs["title"] = "Please provide a title"
	} else if utf8.RuneCountInString(title) > maxTitleLen {
		errs["title"] = "Title cannot be more than 100 characters"
	}

	if strings.TrimSpace(content) == "" {
		errs["content"] = "Please provide content"
	}

	if excerpt != nil && utf8.RuneCountInString(*excerpt) > maxExcerptLen {
		errs["excerpt"] = "Excerpt cannot be more than 200 characters"
	}

	return errs
}

// validateCategory checks category fields and returns per-field messages.
func validateCategory(name, description string) map[string]string {
	errs := map[string]string{}

	name = strings.TrimSpace(name)
	if name == "" {
		errs["name"] = "Please provide a category name"
	} else if utf8.RuneCountInString(name) > maxCategoryNameLen {
		errs["name"] = "Category name cannot be more than 50 characters"
	}

	if utf8.RuneCountInString(description) > maxDescriptionLen {
		errs["description"] = "Description cannot be more than 200 characters"
	}

	return errs
}

// validateComment checks a comment body.
func validateComment(content string) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(content) == "" {
		errs["content"] = "Please provide comment content"
	}
	return errs
}

// validateRegistration checks new-account fields.
func validateRegistration(name, email, password string) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = "Please provide a name"
	}
	email = strings.TrimSpace(email)
	if email == "" {
		errs["email"] = "Please provide an email"
	} else if !strings.Contains(email, "@") {
		errs["email"] = "Please provide a valid email"
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		errs["password"] = "Password must be at least 6 characters"
	}

	return errs
}
