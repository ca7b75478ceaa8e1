package models

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slugify lowercases title, turns each run of whitespace into a hyphen and
// drops everything that is not a lowercase letter, digit or hyphen.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}
