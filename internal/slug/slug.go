// Package slug derives URL-safe identifiers from article titles.
package slug

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Make lowercases the title, collapses every run of non-alphanumeric
// characters into a single hyphen and trims hyphens from both ends.
// It is deterministic and does not disambiguate: titles differing only in
// case or punctuation produce the same slug, and the caller is expected to
// reject the collision rather than suffix its way around it.
func Make(title string) string {
	s := strings.ToLower(title)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
