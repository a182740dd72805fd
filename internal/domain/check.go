package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCheck is returned when a check name is not recognised.
var ErrUnknownCheck = errors.New("unknown check")

// CheckKind names one of the independent validation passes.
type CheckKind string

const (
	// CheckHeadings verifies heading lines end in terminal punctuation.
	CheckHeadings CheckKind = "headings"
	// CheckLists verifies list-item lines end in terminal punctuation.
	CheckLists CheckKind = "lists"
	// CheckImages verifies the featured image filename has no spaces.
	CheckImages CheckKind = "images"
)

// AllChecks returns every check in the order they run by default.
func AllChecks() []CheckKind {
	return []CheckKind{CheckHeadings, CheckLists, CheckImages}
}

// ParseCheckKind converts a user-supplied name into a CheckKind.
func ParseCheckKind(s string) (CheckKind, error) {
	switch k := CheckKind(strings.ToLower(strings.TrimSpace(s))); k {
	case CheckHeadings, CheckLists, CheckImages:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q (want one of headings, lists, images)", ErrUnknownCheck, s)
}

// Description returns the short human label used in progress output.
func (k CheckKind) Description() string {
	switch k {
	case CheckHeadings:
		return "article headings"
	case CheckLists:
		return "article lists"
	case CheckImages:
		return "featured image names"
	}
	return string(k)
}
