package domain

import (
	"strings"
	"unicode/utf8"
)

// DefaultTerminals is the set of characters a heading or list line may end with.
const DefaultTerminals = ".:);!?"

// TerminalSet is a flat set of allowed final characters. It is not a regular
// expression class; every rune in the string is a literal member.
type TerminalSet string

// Contains reports whether r is a member of the set.
func (ts TerminalSet) Contains(r rune) bool {
	return strings.ContainsRune(string(ts), r)
}

// Terminates reports whether the last character of line is in the set.
// An empty line never terminates.
func (ts TerminalSet) Terminates(line string) bool {
	r, size := utf8.DecodeLastRuneInString(line)
	if size == 0 {
		return false
	}
	return ts.Contains(r)
}

// Normalize removes duplicate members, keeping first occurrences.
func (ts TerminalSet) Normalize() TerminalSet {
	var b strings.Builder
	for _, r := range string(ts) {
		if !strings.ContainsRune(b.String(), r) {
			b.WriteRune(r)
		}
	}
	return TerminalSet(b.String())
}
