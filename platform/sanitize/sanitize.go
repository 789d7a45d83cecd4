// Package sanitize provides text sanitization for user-provided offer fields.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`[ \t]+`)
	entityReplacer  = strings.NewReplacer("&lt;", "<", "&gt;", ">", "&amp;", "&", "&quot;", "\"", "&#39;", "'")
)

// StripHTML removes HTML tags, decodes the common entities and strips again
// so encoded tags do not survive.
func StripHTML(s string) string {
	result := htmlTagRegex.ReplaceAllString(s, "")
	result = entityReplacer.Replace(result)
	result = htmlTagRegex.ReplaceAllString(result, "")
	return strings.TrimSpace(result)
}

// Text sanitizes multi-line free text such as notes and descriptions.
// Line breaks are kept.
func Text(s string) string {
	return StripHTML(s)
}

// Line sanitizes a single-line field (names, part numbers) and collapses
// runs of spaces and tabs.
func Line(s string) string {
	s = strings.ReplaceAll(StripHTML(s), "\n", " ")
	return whitespaceRegex.ReplaceAllString(s, " ")
}

// TextPtr is Text for optional values.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}

// LinePtr is Line for optional values.
func LinePtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Line(*s)
	return &result
}
