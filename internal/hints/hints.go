// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-rfd2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// installCommands maps renderer executables to their install command.
var installCommands = map[string]string{
	"asciidoctor-pdf": "gem install asciidoctor-pdf",
	"asciidoctor":     "gem install asciidoctor",
}

// ForBrowserConnect returns hints for browser connection errors with the
// chrome backend.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// The sandbox is only disabled for CI=true or a custom browser
	if (inCI || IsInContainer()) && os.Getenv("CI") != "true" && os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set CI=true to run Chrome without sandbox in Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	hints = append(hints, "use --backend asciidoctor to skip Chrome")

	return formatHints(hints)
}

// ForMissingTool returns a hint for a renderer executable that could not
// be started.
func ForMissingTool(bin string) string {
	name := strings.TrimSuffix(bin[strings.LastIndexAny(bin, "/\\")+1:], ".exe")
	if cmd, ok := installCommands[name]; ok {
		return format("install it with `" + cmd + "` or point --" + name + " at the executable")
	}
	return format("check that " + bin + " is installed and on PATH")
}

// ForGitHubAuth returns hints for authentication and permission failures.
func ForGitHubAuth() string {
	if os.Getenv("RFD2PDF_GITHUB_TOKEN") == "" && os.Getenv("GITHUB_TOKEN") == "" {
		return format("set RFD2PDF_GITHUB_TOKEN to a token that can read the RFD repository")
	}
	return format("check the token can read the RFD repository")
}

// ForMarkdownPDF returns a hint for PDF requests on Markdown RFDs.
func ForMarkdownPDF() string {
	return format("Markdown RFDs can only be rendered with --html")
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large RFDs, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "rfd2pdf") && strings.ContainsAny(p, "/\\") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
