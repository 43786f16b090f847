// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation from post titles
// and category names.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that isn't a word character or a space.
	// Underscores count as word characters and survive the transform.
	nonWord = regexp.MustCompile(`[^\w ]+`)
	// spaceRuns collapses consecutive spaces into a single separator.
	spaceRuns = regexp.MustCompile(` +`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World!" → "hello-world"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonWord.ReplaceAllString(result, "")
	result = spaceRuns.ReplaceAllString(result, "-")
	return result
}
