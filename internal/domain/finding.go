package domain

// FindingSeverity indicates how severe a finding is.
type FindingSeverity string

const (
	// SeverityError indicates a finding that must be resolved.
	SeverityError FindingSeverity = "error"
	// SeverityWarning indicates a finding that should be reviewed.
	SeverityWarning FindingSeverity = "warning"
)

// Finding type constants identify the kind of issue found.
const (
	FindingHeadingPunctuation   = "heading_punctuation"
	FindingListPunctuation      = "list_punctuation"
	FindingImageFilenameSpace   = "image_filename_space"
	FindingMissingImage         = "missing_image"
	FindingMalformedFrontmatter = "malformed_frontmatter"
)

// Finding represents a formatting violation discovered in an article.
type Finding struct {
	Type     string
	Severity FindingSeverity
	Article  string
	Path     string
	// Line is the 1-based line number, or 0 for findings about front matter fields.
	Line       int
	Text       string
	Message    string
	Suggestion string
}
