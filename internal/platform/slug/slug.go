package slug

import (
	"path"
	"regexp"
	"strings"
)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

func Make(input string) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = nonAlphaNum.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "untitled"
	}
	return s
}

// FromLocation derives a stable book identifier from a file path or URL:
// the last path element without query, fragment or extension. Books with
// the same file name in different directories share an identifier.
func FromLocation(location string) string {
	loc := strings.TrimSpace(location)
	if i := strings.IndexAny(loc, "?#"); i >= 0 {
		loc = loc[:i]
	}
	loc = strings.TrimRight(strings.ReplaceAll(loc, "\\", "/"), "/")
	base := path.Base(loc)
	base = strings.TrimSuffix(base, path.Ext(base))
	return Make(base)
}
