// Package config loads the optional YAML configuration of the mdpdf CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// AppDirName is the directory under the user config dir searched for named configs.
const AppDirName = "go-mdpdf"

// Field limits.
const (
	MaxTimeoutLength  = 20 // "1m30s"
	MaxStyleLength    = 50 // chroma style names are short
	MaxTOCTitleLength = 100
	MaxTimeout        = 10 * time.Minute
)

// Config holds every setting that can come from a config file.
// Zero values mean "use the converter default".
type Config struct {
	Timeout  string         `yaml:"timeout"` // Go duration, e.g. "45s"
	Markdown MarkdownConfig `yaml:"markdown"`
	Code     CodeConfig     `yaml:"code"`
	TOC      TOCConfig      `yaml:"toc"`
}

// MarkdownConfig controls how the Markdown source is parsed.
type MarkdownConfig struct {
	SafeHTML bool `yaml:"safeHTML"` // omit inline HTML (off = passed through)
}

// CodeConfig controls code block rendering.
type CodeConfig struct {
	Highlight bool   `yaml:"highlight"`
	Style     string `yaml:"style"` // chroma style name
}

// TOCConfig defines table of contents options.
type TOCConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Title    string `yaml:"title"`    // empty = no heading above the list
	MinDepth int    `yaml:"minDepth"` // 1-6, 0 = default
	MaxDepth int    `yaml:"maxDepth"` // 1-6, 0 = default
}

// Validate checks lengths and ranges.
// Called by LoadConfig; also useful after flags and env vars were merged in.
func (c *Config) Validate() error {
	if err := validateFieldLength("timeout", c.Timeout, MaxTimeoutLength); err != nil {
		return err
	}
	if c.Timeout != "" {
		if _, err := ParseTimeout(c.Timeout); err != nil {
			return fmt.Errorf("timeout: %w", err)
		}
	}

	if err := validateFieldLength("code.style", c.Code.Style, MaxStyleLength); err != nil {
		return err
	}

	if err := validateFieldLength("toc.title", c.TOC.Title, MaxTOCTitleLength); err != nil {
		return err
	}
	if err := validateDepth("toc.minDepth", c.TOC.MinDepth); err != nil {
		return err
	}
	if err := validateDepth("toc.maxDepth", c.TOC.MaxDepth); err != nil {
		return err
	}
	if c.TOC.MinDepth != 0 && c.TOC.MaxDepth != 0 && c.TOC.MinDepth > c.TOC.MaxDepth {
		return fmt.Errorf("%w: toc.minDepth (%d) > toc.maxDepth (%d)", ErrInvalidField, c.TOC.MinDepth, c.TOC.MaxDepth)
	}

	return nil
}

// TimeoutDuration returns the parsed timeout, or 0 when unset.
// Validate must have succeeded.
func (c *Config) TimeoutDuration() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, _ := ParseTimeout(c.Timeout)
	return d
}

// ParseTimeout parses a positive duration no larger than MaxTimeout.
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a duration (e.g. 30s, 2m)", ErrInvalidField, s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidField, s)
	}
	if d > MaxTimeout {
		return 0, fmt.Errorf("%w: %q exceeds %s", ErrInvalidField, s, MaxTimeout)
	}
	return d, nil
}

func validateDepth(field string, depth int) error {
	if depth == 0 {
		return nil
	}
	if depth < 1 || depth > 6 {
		return fmt.Errorf("%w: %s must be between 1 and 6, got %d", ErrInvalidField, field, depth)
	}
	return nil
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration with every optional feature off.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched with SearchPaths. A missing file is an error, never a silent fallback.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	return &cfg, nil
}

// SearchPaths lists, in lookup order, the files tried for a config name:
// <name>.yaml and <name>.yml in the working directory, then in the user
// config directory under AppDirName.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
