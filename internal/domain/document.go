// Package domain holds the article model and the pure formatting rules.
package domain

// Document is the content file of one article, read fully into memory.
type Document struct {
	Article string
	Path    string
	Text    string
}

// Meta maps lower-cased front matter keys to their declared values, in order.
type Meta map[string][]string

// First returns the first value declared for key. The boolean is false when
// the key is absent or has no values.
func (m Meta) First(key string) (string, bool) {
	values := m[key]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
