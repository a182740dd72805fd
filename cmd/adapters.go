package cmd

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/eykd/articlelint/internal/config"
	"github.com/eykd/articlelint/internal/domain"
	"github.com/eykd/articlelint/internal/fs"
	"github.com/eykd/articlelint/internal/lint"
)

// linter abstracts the lint.Service method used by the runner.
type linter interface {
	Run(ctx context.Context, kind domain.CheckKind) (*lint.Result, error)
}

// wiring is what wireService produces for one check pass.
type wiring struct {
	svc    linter
	config *config.Config
}

// serviceRunner implements CheckRunner by wiring a lint.Service from the
// resolved configuration on every request.
type serviceRunner struct {
	opts *GlobalOptions
	wire func(opts *GlobalOptions, failFast *bool, logger *slog.Logger) (*wiring, error)
}

func (r *serviceRunner) Check(ctx context.Context, req CheckRequest) (*CheckResult, error) {
	var stderr io.Writer = os.Stderr
	if r.opts.Stderr != nil {
		stderr = r.opts.Stderr
	}
	w, err := r.wire(r.opts, req.FailFast, newLogger(stderr))
	if err != nil {
		return nil, err
	}

	svcResult, err := w.svc.Run(ctx, req.Check)
	if err != nil {
		var articleErr *lint.ArticleError
		if errors.As(err, &articleErr) {
			path := filepath.Join(w.config.Root, articleErr.Article, w.config.Document)
			cause := articleErr.Err
			// The path is already in the ContextError.
			var pathErr *iofs.PathError
			if errors.As(cause, &pathErr) {
				cause = pathErr.Err
			}
			return nil, &ContextError{Op: "read", Path: path, Err: cause}
		}
		return nil, err
	}

	findings := make([]CheckFinding, len(svcResult.Findings))
	for i, f := range svcResult.Findings {
		findings[i] = convertFinding(f)
	}
	return &CheckResult{
		Check:    svcResult.Check,
		Articles: svcResult.Articles,
		Aborted:  svcResult.Aborted,
		Findings: findings,
	}, nil
}

// resolveConfig loads the config file and applies explicitly set flags on top.
func resolveConfig(opts *GlobalOptions, failFast *bool, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.NewLoader(logger).Load(opts.ConfigPath)
	if err != nil {
		return nil, &ContextError{Op: "load config", Path: opts.ConfigPath, Err: err}
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.Document != "" {
		cfg.Document = opts.Document
	}
	if opts.ExcludeSet {
		cfg.Exclude = opts.Exclude
	}
	if failFast != nil {
		cfg.FailFast = *failFast
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// wireService builds a lint.Service backed by the filesystem adapters.
func wireService(opts *GlobalOptions, failFast *bool, logger *slog.Logger) (*wiring, error) {
	cfg, err := resolveConfig(opts, failFast, logger)
	if err != nil {
		return nil, err
	}

	svc := lint.NewService(
		&fs.OSArticleLister{Root: cfg.Root, Exclude: cfg.Exclude},
		&fs.OSDocumentReader{Root: cfg.Root, Document: cfg.Document},
		fs.FMAdapter{},
		lint.WithTerminals(domain.TerminalSet(cfg.Terminals)),
		lint.WithSlugifier(fs.SlugAdapter{}),
		lint.WithFailFast(cfg.FailFast),
		lint.WithLogger(logger),
	)
	return &wiring{svc: svc, config: cfg}, nil
}

// convertFinding converts a domain.Finding to a cmd.CheckFinding.
func convertFinding(f domain.Finding) CheckFinding {
	return CheckFinding{
		Type:       FindingType(f.Type),
		Severity:   Severity(f.Severity),
		Article:    f.Article,
		Path:       f.Path,
		Line:       f.Line,
		Text:       f.Text,
		Message:    f.Message,
		Suggestion: f.Suggestion,
	}
}
