// Package fs provides filesystem adapters that implement lint service interfaces.
package fs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/natefinch/atomic"
	"golang.org/x/text/unicode/norm"

	"github.com/eykd/articlelint/internal/domain"
	"github.com/eykd/articlelint/internal/frontmatter"
	"github.com/eykd/articlelint/internal/lock"
	"github.com/eykd/articlelint/internal/slug"
)

// OSArticleLister implements lint.ArticleLister using os.ReadDir.
type OSArticleLister struct {
	Root string
	// Exclude holds doublestar patterns matched against article directory names.
	Exclude []string
}

// ListArticlesImpl returns the names of article directories under Root that
// match no exclusion pattern. Regular files in Root are ignored.
func (l *OSArticleLister) ListArticlesImpl(_ context.Context) ([]string, error) {
	for _, p := range l.Exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}

	entries, err := os.ReadDir(l.Root)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", l.Root, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() || l.excluded(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// ListArticles delegates to ListArticlesImpl.
func (l *OSArticleLister) ListArticles(ctx context.Context) ([]string, error) {
	return l.ListArticlesImpl(ctx)
}

func (l *OSArticleLister) excluded(name string) bool {
	for _, p := range l.Exclude {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}

// OSDocumentReader implements lint.DocumentReader using os.ReadFile.
type OSDocumentReader struct {
	Root     string
	Document string
}

// ReadDocumentImpl reads the content file of an article. The text is
// NFC-normalized so a composed final character is inspected as one rune.
func (r *OSDocumentReader) ReadDocumentImpl(_ context.Context, article string) (domain.Document, error) {
	data, err := os.ReadFile(filepath.Join(r.Root, article, r.Document))
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{
		Article: article,
		Path:    filepath.ToSlash(filepath.Join(article, r.Document)),
		Text:    norm.NFC.String(string(data)),
	}, nil
}

// ReadDocument delegates to ReadDocumentImpl.
func (r *OSDocumentReader) ReadDocument(ctx context.Context, article string) (domain.Document, error) {
	return r.ReadDocumentImpl(ctx, article)
}

// FMAdapter implements lint.MetaParser using the frontmatter package.
type FMAdapter struct{}

// Parse extracts front matter metadata from document text.
func (FMAdapter) Parse(input string) (domain.Meta, error) {
	meta, err := frontmatter.Parse(input)
	if err != nil {
		return nil, err
	}
	return domain.Meta(meta), nil
}

// SlugAdapter implements lint.Slugifier using the slug package.
type SlugAdapter struct{}

// Filename suggests a web-safe replacement for an image filename.
func (SlugAdapter) Filename(name string) string { return slug.Filename(name) }

// ReportWriter writes report files atomically while holding an advisory
// lock next to the target.
type ReportWriter struct{}

// WriteReportImpl replaces the file at path with data.
func (ReportWriter) WriteReportImpl(ctx context.Context, path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return lock.NewFromPath(path+".lock").With(ctx, func() error {
		if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("writing report %s: %w", path, err)
		}
		return nil
	})
}

// WriteReport delegates to WriteReportImpl.
func (w ReportWriter) WriteReport(ctx context.Context, path string, data []byte) error {
	return w.WriteReportImpl(ctx, path, data)
}
