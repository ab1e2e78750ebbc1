package main

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod/lib/launcher"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
	"github.com/alnah/go-rfd2pdf/internal/config"
	"github.com/alnah/go-rfd2pdf/internal/github"
)

// Source reads RFD documents and the images stored next to them.
type Source interface {
	rfd2pdf.ImageSource
	FetchDocument(ctx context.Context, number rfd2pdf.Number, location rfd2pdf.Location) (*rfd2pdf.RenderableRFD, error)
}

// Compile-time interface implementation check.
var _ Source = (*github.Client)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the RFD source and tool discovery.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer

	// NewSource builds the RFD source from the resolved configuration.
	NewSource func(cfg *config.Config, logger *log.Logger) Source

	// RendererOptions are appended after the options derived from config.
	RendererOptions []rfd2pdf.Option

	// LookPath, ChromePath and ToolVersion back the doctor checks.
	LookPath    func(file string) (string, error)
	ChromePath  func() (string, bool)
	ToolVersion func(path string) (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:         time.Now,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		NewSource:   newGitHubSource,
		LookPath:    exec.LookPath,
		ChromePath:  launcher.LookPath,
		ToolVersion: toolVersion,
	}
}

// newGitHubSource builds a GitHub client for the configured repository.
func newGitHubSource(cfg *config.Config, logger *log.Logger) Source {
	opts := []github.Option{github.WithLogger(logger)}
	if cfg.GitHub.APIURL != "" {
		opts = append(opts, github.WithBaseURL(cfg.GitHub.APIURL))
	}
	return github.NewClient(cfg.GitHub.Token, opts...)
}

// toolVersion returns the first line printed by `<path> --version`.
func toolVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from PATH lookup
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}
