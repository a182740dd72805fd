// Package slug derives URL-safe names for article assets.
package slug

import (
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Slug converts a string into a URL-friendly slug.
// It NFD-normalizes, strips combining marks, lowercases,
// turns whitespace and underscores into dashes, drops every other
// non-alphanumeric character, and collapses consecutive dashes.
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range norm.NFD.String(s) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(unicode.ToLower(r))
		case r == '-' || r == '_' || unicode.IsSpace(r):
			dash = true
		}
	}
	return b.String()
}

// Filename suggests a web-safe replacement for an image filename. The
// extension is kept (lower-cased) and the base name is slugged. Any
// directory prefix is preserved as written. When the base name slugs to
// nothing the input is returned unchanged.
func Filename(name string) string {
	dir, file := path.Split(name)
	ext := path.Ext(file)
	base := Slug(strings.TrimSuffix(file, ext))
	if base == "" {
		return name
	}
	return dir + base + strings.ToLower(ext)
}
