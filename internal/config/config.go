// Package config loads articlelint settings from an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eykd/articlelint/internal/domain"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = ".articlelint.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings of one validation run.
type Config struct {
	// Root is the content directory holding one subdirectory per article.
	Root string `yaml:"root"`
	// Document is the content filename inside each article directory.
	Document string `yaml:"document"`
	// Exclude lists doublestar patterns of article directories to skip.
	Exclude []string `yaml:"exclude"`
	// Terminals lists the characters a heading or list line may end with.
	Terminals string `yaml:"terminals"`
	// FailFast stops each check at its first finding.
	FailFast bool `yaml:"fail_fast"`
}

// Default returns the built-in configuration for a Hugo site.
func Default() *Config {
	return &Config{
		Root:      "hugo/content",
		Document:  "index.md",
		Exclude:   []string{"authors"},
		Terminals: domain.DefaultTerminals,
	}
}

// Validate checks the configuration for values no run could use.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return fmt.Errorf("%w: root is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Document) == "" {
		return fmt.Errorf("%w: document is required", ErrInvalid)
	}
	if strings.ContainsAny(c.Document, `/\`) {
		return fmt.Errorf("%w: document %q must be a filename, not a path", ErrInvalid, c.Document)
	}
	if c.Terminals == "" {
		return fmt.Errorf("%w: terminals must not be empty", ErrInvalid)
	}
	return nil
}

// LoadFromFile reads a YAML config file on top of the defaults. Unknown
// keys are rejected.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Loader resolves which config file applies and loads it.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load returns the configuration for a run. An explicit path must exist.
// With an empty path, DefaultFile is used when present and the built-in
// defaults otherwise.
func (l *Loader) Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg, err := LoadFromFile(path)
	switch {
	case err == nil:
		l.logger.Debug("Loaded config", slog.String("path", path))
	case !explicit && errors.Is(err, os.ErrNotExist):
		l.logger.Debug("No config file found, using defaults")
		cfg = Default()
	default:
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
