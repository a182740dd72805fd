// Package lint provides the application service that runs formatting checks
// over the articles of a content directory.
package lint

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/eykd/articlelint/internal/domain"
)

// ArticleLister abstracts enumerating the articles to validate. Excluded
// articles are never returned.
type ArticleLister interface {
	ListArticles(ctx context.Context) ([]string, error)
}

// DocumentReader abstracts reading the content document of an article.
type DocumentReader interface {
	ReadDocument(ctx context.Context, article string) (domain.Document, error)
}

// MetaParser abstracts extracting front matter metadata from document text.
type MetaParser interface {
	Parse(input string) (domain.Meta, error)
}

// Slugifier abstracts suggesting a web-safe replacement for a filename.
type Slugifier interface {
	Filename(name string) string
}

// ArticleError reports a failure to read an article. It aborts the run.
type ArticleError struct {
	Article string
	Err     error
}

// Error implements the error interface.
func (e *ArticleError) Error() string {
	return fmt.Sprintf("article %s: %v", e.Article, e.Err)
}

// Unwrap returns the underlying error.
func (e *ArticleError) Unwrap() error {
	return e.Err
}

// Result holds the outcome of one check pass.
type Result struct {
	Check    domain.CheckKind
	Articles int
	Findings []domain.Finding
	// Aborted is true when a fail-fast run stopped at its first finding.
	Aborted bool
}

// Option configures a Service.
type Option func(*Service)

// WithTerminals overrides the allowed final characters.
func WithTerminals(ts domain.TerminalSet) Option {
	return func(s *Service) { s.terminals = ts.Normalize() }
}

// WithSlugifier enables filename suggestions on image findings.
func WithSlugifier(sl Slugifier) Option {
	return func(s *Service) { s.slugifier = sl }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFailFast makes every check stop at its first finding.
func WithFailFast(v bool) Option {
	return func(s *Service) { s.failFast = v }
}

// Service runs the independent check passes over a content directory.
type Service struct {
	lister    ArticleLister
	reader    DocumentReader
	meta      MetaParser
	slugifier Slugifier
	terminals domain.TerminalSet
	failFast  bool
	logger    *slog.Logger
}

// NewService creates a Service with the given dependencies.
func NewService(lister ArticleLister, reader DocumentReader, meta MetaParser, opts ...Option) *Service {
	s := &Service{
		lister:    lister,
		reader:    reader,
		meta:      meta,
		terminals: domain.DefaultTerminals,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one check over every article. Each run lists and reads the
// articles afresh; there is no state shared between runs.
func (s *Service) Run(ctx context.Context, kind domain.CheckKind) (*Result, error) {
	inspect, err := s.inspector(kind)
	if err != nil {
		return nil, err
	}

	articles, err := s.lister.ListArticles(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Check: kind}
	for _, article := range articles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc, err := s.reader.ReadDocument(ctx, article)
		if err != nil {
			return nil, &ArticleError{Article: article, Err: err}
		}
		result.Articles++

		findings := inspect(doc)
		s.logger.Debug("inspected article",
			slog.String("check", string(kind)),
			slog.String("article", article),
			slog.Int("findings", len(findings)))

		if s.failFast && len(findings) > 0 {
			result.Findings = append(result.Findings, findings[0])
			result.Aborted = true
			break
		}
		result.Findings = append(result.Findings, findings...)
	}

	s.logger.Debug("check finished",
		slog.String("check", string(kind)),
		slog.Int("articles", result.Articles),
		slog.Int("findings", len(result.Findings)),
		slog.Bool("aborted", result.Aborted))
	return result, nil
}

func (s *Service) inspector(kind domain.CheckKind) (func(domain.Document) []domain.Finding, error) {
	switch kind {
	case domain.CheckHeadings:
		return func(doc domain.Document) []domain.Finding {
			return domain.HeadingFindings(doc, s.terminals)
		}, nil
	case domain.CheckLists:
		return func(doc domain.Document) []domain.Finding {
			return domain.ListFindings(doc, s.terminals)
		}, nil
	case domain.CheckImages:
		return s.inspectImage, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownCheck, string(kind))
}

func (s *Service) inspectImage(doc domain.Document) []domain.Finding {
	meta, err := s.meta.Parse(doc.Text)
	if err != nil {
		return []domain.Finding{domain.MalformedFrontmatter(doc, err)}
	}

	findings := domain.CheckImage(doc, meta)
	if s.slugifier == nil {
		return findings
	}
	for i, f := range findings {
		if f.Type == domain.FindingImageFilenameSpace {
			findings[i].Suggestion = s.slugifier.Filename(f.Text)
		}
	}
	return findings
}
