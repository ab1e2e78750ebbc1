// Package config loads the YAML configuration of rfd2pdf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/fileutil"
	"github.com/alnah/go-rfd2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxOwnerLength  = 39   // GitHub login limit
	MaxRepoLength   = 100  // GitHub repository name limit
	MaxBranchLength = 255  // git ref limit in practice
	MaxTokenLength  = 255  // fine-grained tokens are ~93 chars
	MaxURLLength    = 2048 // browser limit
	MaxPathLength   = 4096 // PATH_MAX on Linux
)

// MaxWorkers caps render.workers.
const MaxWorkers = 32

// appDir is the folder under the user config directory searched for configs.
const appDir = "rfd2pdf"

// Config holds all configuration for rendering RFDs.
type Config struct {
	GitHub GitHubConfig `yaml:"github"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// GitHubConfig locates the RFD repository.
type GitHubConfig struct {
	Owner  string `yaml:"owner"`
	Repo   string `yaml:"repo"`
	Branch string `yaml:"branch"`
	Token  string `yaml:"token"`  // prefer RFD2PDF_GITHUB_TOKEN over storing it here
	APIURL string `yaml:"apiURL"` // empty = https://api.github.com
}

// RenderConfig controls PDF and HTML generation.
type RenderConfig struct {
	Backend        string `yaml:"backend"`        // "asciidoctor" or "chrome"
	WorkspaceRoot  string `yaml:"workspaceRoot"`  // empty = system temp dir
	Timeout        string `yaml:"timeout"`        // Go duration, e.g. "5m"
	AsciidoctorPDF string `yaml:"asciidoctorPDF"` // executable name or path
	Asciidoctor    string `yaml:"asciidoctor"`    // executable name or path
	OutputDir      string `yaml:"outputDir"`      // empty = current directory
	Workers        int    `yaml:"workers"`        // 0 = auto
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			Owner:  "oxidecomputer",
			Repo:   "rfd",
			Branch: "master",
		},
		Render: RenderConfig{
			Backend:        "asciidoctor",
			Timeout:        "5m",
			AsciidoctorPDF: "asciidoctor-pdf",
			Asciidoctor:    "asciidoctor",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// TimeoutDuration parses render.timeout. Empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// Validate checks field lengths and enumerated values. Called by
// LoadConfig, and again by the CLI after env and flag overrides.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"github.owner", c.GitHub.Owner, MaxOwnerLength},
		{"github.repo", c.GitHub.Repo, MaxRepoLength},
		{"github.branch", c.GitHub.Branch, MaxBranchLength},
		{"github.token", c.GitHub.Token, MaxTokenLength},
		{"github.apiURL", c.GitHub.APIURL, MaxURLLength},
		{"render.workspaceRoot", c.Render.WorkspaceRoot, MaxPathLength},
		{"render.asciidoctorPDF", c.Render.AsciidoctorPDF, MaxPathLength},
		{"render.asciidoctor", c.Render.Asciidoctor, MaxPathLength},
		{"render.outputDir", c.Render.OutputDir, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	switch strings.ToLower(c.Render.Backend) {
	case "", "asciidoctor", "chrome":
	default:
		return fmt.Errorf("%w: render.backend %q (must be asciidoctor or chrome)", ErrInvalidValue, c.Render.Backend)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.Render.Workers < 0 || c.Render.Workers > MaxWorkers {
		return fmt.Errorf("%w: render.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Render.Workers)
	}

	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level)
		}
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json", "logfmt":
	default:
		return fmt.Errorf("%w: log.format %q (must be text, json, or logfmt)", ErrInvalidValue, c.Log.Format)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is a file path; anything else is a
// name searched in standard locations. Fields absent from the file keep
// their DefaultConfig values. A missing file is an error.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
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

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// resolveConfigPath searches for a config file by name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/rfd2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
