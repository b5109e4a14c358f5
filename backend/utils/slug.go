package utils

import (
	"math"
	"regexp"
	"strings"
)

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDashes   = regexp.MustCompile(`(^-|-$)`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Slugify derives a URL-safe lookup key from a title or name.
func Slugify(s string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(s), "-")
	return edgeDashes.ReplaceAllString(slug, "")
}

// Excerpt truncates content to 200 characters for the article preview.
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= 200 {
		return content
	}
	return string(runes[:200]) + "..."
}

// ReadingTime estimates minutes to read at 200 words per minute.
func ReadingTime(content string) int {
	words := whitespace.Split(strings.TrimSpace(content), -1)
	if len(words) == 1 && words[0] == "" {
		return 0
	}
	return int(math.Ceil(float64(len(words)) / 200.0))
}
