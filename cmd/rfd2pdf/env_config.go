package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/config"
)

// envPrefix marks the environment variables read by rfd2pdf.
const envPrefix = "RFD2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // RFD2PDF_CONFIG: config file name or path

	// GitHub
	Token  string // RFD2PDF_GITHUB_TOKEN, falling back to GITHUB_TOKEN
	Owner  string // RFD2PDF_GITHUB_OWNER
	Repo   string // RFD2PDF_GITHUB_REPO
	Branch string // RFD2PDF_GITHUB_BRANCH
	APIURL string // RFD2PDF_GITHUB_API_URL

	// Render
	Backend       string // RFD2PDF_BACKEND
	WorkspaceRoot string // RFD2PDF_WORKSPACE_ROOT
	Timeout       string // RFD2PDF_TIMEOUT
	OutputDir     string // RFD2PDF_OUTPUT_DIR
	Workers       string // RFD2PDF_WORKERS

	// Log
	LogLevel  string // RFD2PDF_LOG_LEVEL
	LogFormat string // RFD2PDF_LOG_FORMAT
}

// knownEnvVars lists valid RFD2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"RFD2PDF_CONFIG":         true,
	"RFD2PDF_GITHUB_TOKEN":   true,
	"RFD2PDF_GITHUB_OWNER":   true,
	"RFD2PDF_GITHUB_REPO":    true,
	"RFD2PDF_GITHUB_BRANCH":  true,
	"RFD2PDF_GITHUB_API_URL": true,
	"RFD2PDF_BACKEND":        true,
	"RFD2PDF_WORKSPACE_ROOT": true,
	"RFD2PDF_TIMEOUT":        true,
	"RFD2PDF_OUTPUT_DIR":     true,
	"RFD2PDF_WORKERS":        true,
	"RFD2PDF_LOG_LEVEL":      true,
	"RFD2PDF_LOG_FORMAT":     true,
	"RFD2PDF_CONTAINER":      true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	token := os.Getenv("RFD2PDF_GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}

	return &envConfig{
		ConfigPath:    os.Getenv("RFD2PDF_CONFIG"),
		Token:         token,
		Owner:         os.Getenv("RFD2PDF_GITHUB_OWNER"),
		Repo:          os.Getenv("RFD2PDF_GITHUB_REPO"),
		Branch:        os.Getenv("RFD2PDF_GITHUB_BRANCH"),
		APIURL:        os.Getenv("RFD2PDF_GITHUB_API_URL"),
		Backend:       os.Getenv("RFD2PDF_BACKEND"),
		WorkspaceRoot: os.Getenv("RFD2PDF_WORKSPACE_ROOT"),
		Timeout:       os.Getenv("RFD2PDF_TIMEOUT"),
		OutputDir:     os.Getenv("RFD2PDF_OUTPUT_DIR"),
		Workers:       os.Getenv("RFD2PDF_WORKERS"),
		LogLevel:      os.Getenv("RFD2PDF_LOG_LEVEL"),
		LogFormat:     os.Getenv("RFD2PDF_LOG_FORMAT"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized RFD2PDF_* variables.
// Helps catch typos like RFD2PDF_WORKER instead of RFD2PDF_WORKERS.
func warnUnknownEnvVars(logger *log.Logger) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("Unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies set environment variables over cfg.
// Precedence is: CLI flags > env vars > config file > defaults
// (CLI flags are applied later by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	setIf := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	setIf(&cfg.GitHub.Token, env.Token)
	setIf(&cfg.GitHub.Owner, env.Owner)
	setIf(&cfg.GitHub.Repo, env.Repo)
	setIf(&cfg.GitHub.Branch, env.Branch)
	setIf(&cfg.GitHub.APIURL, env.APIURL)
	setIf(&cfg.Render.Backend, env.Backend)
	setIf(&cfg.Render.WorkspaceRoot, env.WorkspaceRoot)
	setIf(&cfg.Render.Timeout, env.Timeout)
	setIf(&cfg.Render.OutputDir, env.OutputDir)
	setIf(&cfg.Log.Level, env.LogLevel)
	setIf(&cfg.Log.Format, env.LogFormat)

	if env.Workers != "" {
		w, err := strconv.Atoi(env.Workers)
		if err != nil {
			return fmt.Errorf("%w: RFD2PDF_WORKERS %q is not a number", config.ErrInvalidValue, env.Workers)
		}
		cfg.Render.Workers = w
	}

	return nil
}

// resolveConfig loads the config named by --config or RFD2PDF_CONFIG, then
// applies environment overrides. Flags are merged by the caller.
func resolveConfig(configFlag string) (*config.Config, error) {
	env := loadEnvConfig()

	name := configFlag
	if name == "" {
		name = env.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := applyEnvConfig(env, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
