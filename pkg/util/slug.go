package util

import (
	"regexp"
	"strings"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^\w\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe identifier from a business or category name.
// The transform is deterministic and idempotent: lower-case, drop everything
// outside word characters/whitespace/hyphens, trim, then collapse whitespace
// runs into single hyphens.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	return slug
}
