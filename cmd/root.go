// Package cmd contains the CLI commands for the articlelint application.
package cmd

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/eykd/articlelint/internal/domain"
	"github.com/eykd/articlelint/internal/fs"
)

var rootCmd *cobra.Command

// verbose holds the global --verbose flag state.
var verbose bool

// jsonOutput holds the global --json flag state.
var jsonOutput bool

// GlobalOptions holds the persistent flags that select and shape the content tree.
type GlobalOptions struct {
	ConfigPath string
	Root       string
	Document   string
	Exclude    []string
	// ExcludeSet is true when --exclude was given, even with an empty value.
	ExcludeSet bool
	// Stderr receives log output; nil means os.Stderr.
	Stderr io.Writer
}

// globals holds the persistent flag values of the most recently built root command.
var globals = &GlobalOptions{}

func init() {
	rootCmd = NewRootCmd()
}

// GetVerbose returns the current verbose flag state.
// This is used by other packages to check if debug logging is enabled.
func GetVerbose() bool {
	return verbose
}

// GetJSON returns the current global --json flag state.
func GetJSON() bool {
	return jsonOutput
}

// newLogger builds the stderr logger. Debug output is enabled by --verbose.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if GetVerbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCmd creates a new root command instance wired to the filesystem.
// This is useful for testing to get a fresh command tree.
func NewRootCmd() *cobra.Command {
	runner := &serviceRunner{opts: globals, wire: wireService}
	return BuildCommandTree(runner, fs.ReportWriter{})
}

// BuildCommandTree creates the root command and registers every subcommand
// against the given runner and report writer.
func BuildCommandTree(runner CheckRunner, reports ReportWriter) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "articlelint",
		Short:         "Validate formatting conventions of Markdown articles",
		Long:          "articlelint checks the Markdown articles of a static-site content directory for heading and list punctuation and featured image filenames.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			globals.ExcludeSet = cmd.Flags().Changed("exclude")
			globals.Stderr = cmd.ErrOrStderr()
		},
	}

	// Add persistent flags (available to all subcommands)
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging to stderr")
	pf.BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	pf.StringVar(&globals.ConfigPath, "config", "", "Config file (default .articlelint.yaml when present)")
	pf.StringVarP(&globals.Root, "root", "C", "", "Content directory holding one subdirectory per article")
	pf.StringVar(&globals.Document, "document", "", "Document filename inside each article directory")
	pf.StringSliceVar(&globals.Exclude, "exclude", nil, "Article directory patterns to skip (repeatable)")

	cmd.AddCommand(NewCheckCmd(runner, reports))
	for _, kind := range domain.AllChecks() {
		cmd.AddCommand(NewSingleCheckCmd(kind, runner))
	}

	return cmd
}

// ExecuteContext runs the root command with the given context.
// This enables graceful shutdown via context cancellation (e.g., on SIGINT).
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
