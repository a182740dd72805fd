package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Line patterns are searched for anywhere in the trimmed line, not anchored
// at its start, so "Note: ## still counts." is inspected as a heading.
var (
	headingPattern  = regexp.MustCompile(`#{2,}.*`)
	listItemPattern = regexp.MustCompile(`\* .*`)
)

// ImageKey is the front matter key holding the featured image filename.
const ImageKey = "image"

// HeadingFindings returns a finding for every heading line of doc whose last
// character is not in ts.
func HeadingFindings(doc Document, ts TerminalSet) []Finding {
	return checkLineEndings(doc, ts, headingPattern, FindingHeadingPunctuation, "heading")
}

// ListFindings returns a finding for every list-item line of doc whose last
// character is not in ts.
func ListFindings(doc Document, ts TerminalSet) []Finding {
	return checkLineEndings(doc, ts, listItemPattern, FindingListPunctuation, "list item")
}

func checkLineEndings(doc Document, ts TerminalSet, pattern *regexp.Regexp, findingType, noun string) []Finding {
	var findings []Finding
	for i, raw := range strings.Split(doc.Text, "\n") {
		line := strings.TrimSpace(raw)
		if !pattern.MatchString(line) || ts.Terminates(line) {
			continue
		}
		findings = append(findings, Finding{
			Type:     findingType,
			Severity: SeverityError,
			Article:  doc.Article,
			Path:     doc.Path,
			Line:     i + 1,
			Text:     line,
			Message:  fmt.Sprintf("%s %q does not end in one of %q", noun, line, string(ts)),
		})
	}
	return findings
}

// CheckImage validates the featured image declared in meta. A missing or
// empty image field is reported rather than ignored.
func CheckImage(doc Document, meta Meta) []Finding {
	name, ok := meta.First(ImageKey)
	if !ok || strings.TrimSpace(name) == "" {
		return []Finding{{
			Type:     FindingMissingImage,
			Severity: SeverityError,
			Article:  doc.Article,
			Path:     doc.Path,
			Message:  fmt.Sprintf("front matter has no %q value", ImageKey),
		}}
	}
	if !strings.Contains(name, " ") {
		return nil
	}
	return []Finding{{
		Type:     FindingImageFilenameSpace,
		Severity: SeverityError,
		Article:  doc.Article,
		Path:     doc.Path,
		Text:     name,
		Message:  fmt.Sprintf("featured image %q contains a space", name),
	}}
}

// MalformedFrontmatter builds the finding reported when the front matter of
// doc cannot be decoded.
func MalformedFrontmatter(doc Document, err error) Finding {
	return Finding{
		Type:     FindingMalformedFrontmatter,
		Severity: SeverityError,
		Article:  doc.Article,
		Path:     doc.Path,
		Message:  err.Error(),
	}
}
