package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
	"github.com/alnah/go-rfd2pdf/internal/config"
	"github.com/alnah/go-rfd2pdf/internal/github"
	"github.com/alnah/go-rfd2pdf/internal/hints"
)

// Exit codes for rfd2pdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0   // Successful render
	ExitGeneral     = 1   // General/unexpected error
	ExitUsage       = 2   // Invalid flags, config, or validation
	ExitIO          = 3   // File not found, permission denied
	ExitBrowser     = 4   // Browser/Chrome errors
	ExitSource      = 5   // GitHub errors
	ExitRender      = 6   // asciidoctor failures
	ExitInterrupted = 130 // SIGINT/SIGTERM
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}

	// Browser errors (exit 4)
	if errors.Is(err, rfd2pdf.ErrBrowserConnect) ||
		errors.Is(err, rfd2pdf.ErrPageCreate) ||
		errors.Is(err, rfd2pdf.ErrPageLoad) ||
		errors.Is(err, rfd2pdf.ErrPDFGeneration) {
		return ExitBrowser
	}

	// GitHub errors (exit 5)
	var apiErr *github.APIError
	if errors.Is(err, rfd2pdf.ErrSourceControl) || errors.As(err, &apiErr) {
		return ExitSource
	}

	// Renderer command errors (exit 6)
	if errors.Is(err, rfd2pdf.ErrCommand) ||
		errors.Is(err, rfd2pdf.ErrParserFailed) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, rfd2pdf.ErrFileIO) ||
		errors.Is(err, rfd2pdf.ErrOutputFile) ||
		errors.Is(err, rfd2pdf.ErrOutputIO) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, rfd2pdf.ErrInvalidNumber) ||
		errors.Is(err, rfd2pdf.ErrUnknownFormat) ||
		errors.Is(err, rfd2pdf.ErrUnknownBackend) ||
		errors.Is(err, rfd2pdf.ErrFormatNotSupported) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrWriteRemote) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "". bin is the executable
// the failed command was expected to run.
func hintFor(err error, bin string) string {
	var apiErr *github.APIError
	switch {
	case errors.Is(err, rfd2pdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, rfd2pdf.ErrFormatNotSupported):
		return hints.ForMarkdownPDF()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, exec.ErrNotFound):
		return hints.ForMissingTool(bin)
	case errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden):
		return hints.ForGitHubAuth()
	case errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if dir, derr := os.UserConfigDir(); derr == nil {
			searched = append(searched, filepath.Join(dir, "rfd2pdf", "<name>.yaml"))
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
