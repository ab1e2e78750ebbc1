package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	flag "github.com/spf13/pflag"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
	"github.com/alnah/go-rfd2pdf/internal/config"
	"github.com/alnah/go-rfd2pdf/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status         string     `json:"status"` // "ready", "warnings", "errors"
	Backend        string     `json:"backend"`
	AsciidoctorPDF toolInfo   `json:"asciidoctor_pdf"`
	Asciidoctor    toolInfo   `json:"asciidoctor"`
	Chrome         toolInfo   `json:"chrome"`
	GitHub         githubInfo `json:"github"`
	Env            envInfo    `json:"environment"`
	System         systemInfo `json:"system"`
	Warnings       []string   `json:"warnings,omitempty"`
	Errors         []string   `json:"errors,omitempty"`
}

// toolInfo holds detection results for an external program.
type toolInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// githubInfo holds repository settings.
type githubInfo struct {
	Repository string `json:"repository"`
	Token      bool   `json:"token"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	BrowserBin    string `json:"rod_browser_bin"`
}

// systemInfo holds system check results.
type systemInfo struct {
	WorkspaceRoot     string `json:"workspace_root"`
	WorkspaceWritable bool   `json:"workspace_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitUsage
	}

	cfg, err := resolveConfig(flags.common.config)
	if err != nil {
		return reportError(env, err, "")
	}
	mergeBackendFlags(&flags.backend, cfg)
	if err := cfg.Validate(); err != nil {
		return reportError(env, err, "")
	}

	result := runDoctor(cfg, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	backend, _ := rfd2pdf.ParseBackend(cfg.Render.Backend)

	result := &doctorResult{
		Status:  "ready",
		Backend: string(backend),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	// The active backend's tools are errors when missing, the others warnings
	pdfRequired := backend == rfd2pdf.BackendAsciidoctor
	chromeRequired := backend == rfd2pdf.BackendChrome

	result.AsciidoctorPDF = checkTool(result, env, cfg.Render.AsciidoctorPDF, pdfRequired)
	result.Asciidoctor = checkTool(result, env, cfg.Render.Asciidoctor, chromeRequired)
	checkChrome(result, env, chromeRequired)
	checkGitHub(result, cfg)
	checkEnvironment(result)
	checkSystem(result, cfg.Render.WorkspaceRoot)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkTool locates an executable and reads its version.
func checkTool(result *doctorResult, env *Environment, bin string, required bool) toolInfo {
	var info toolInfo

	path, err := env.LookPath(bin)
	if err != nil {
		msg := fmt.Sprintf("%s not found%s", bin, hints.ForMissingTool(bin))
		if required {
			result.Errors = append(result.Errors, msg)
		} else {
			result.Warnings = append(result.Warnings, msg)
		}
		return info
	}

	info.Found = true
	info.Path = path

	version, err := env.ToolVersion(path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", bin, err))
		return info
	}
	info.Version = version
	return info
}

// checkChrome detects Chrome/Chromium installation.
func checkChrome(result *doctorResult, env *Environment, required bool) {
	chromePath := result.Env.BrowserBin

	if chromePath == "" {
		var found bool
		chromePath, found = env.ChromePath()
		if !found {
			msg := "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN"
			if required {
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg)
			}
			return
		}
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if version, err := env.ToolVersion(chromePath); err == nil {
		result.Chrome.Version = version
	}
}

// checkGitHub reports the repository and warns about anonymous access.
func checkGitHub(result *doctorResult, cfg *config.Config) {
	result.GitHub.Repository = cfg.GitHub.Owner + "/" + cfg.GitHub.Repo + "@" + cfg.GitHub.Branch
	result.GitHub.Token = cfg.GitHub.Token != ""
	if !result.GitHub.Token {
		result.Warnings = append(result.Warnings,
			"No GitHub token set. Anonymous requests are rate limited and cannot read private repositories")
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	// Chrome runs without sandbox only for CI=true or a custom browser
	if result.Backend == string(rfd2pdf.BackendChrome) &&
		(result.Env.Container || result.Env.CI) &&
		os.Getenv("CI") != "true" && result.Env.BrowserBin == "" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but Chrome sandbox is enabled. Set CI=true")
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("RFD2PDF_CONTAINER") == "1" {
		return true, "RFD2PDF_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the workspace root accepts new files.
func checkSystem(result *doctorResult, root string) {
	if root == "" {
		root = os.TempDir()
	}
	result.System.WorkspaceRoot = root

	dir, err := os.MkdirTemp(root, "rfd2pdf-doctor-")
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Workspace root not writable: %s", root))
		return
	}
	_ = os.RemoveAll(dir)
	result.System.WorkspaceWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "rfd2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Renderers (backend: %s)\n", r.Backend)
	printTool(w, "asciidoctor-pdf", r.AsciidoctorPDF)
	printTool(w, "asciidoctor", r.Asciidoctor)
	printTool(w, "Chrome", r.Chrome)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "GitHub")
	fmt.Fprintf(w, "  [OK] Repository: %s\n", r.GitHub.Repository)
	if r.GitHub.Token {
		fmt.Fprintln(w, "  [OK] Token: set")
	} else {
		fmt.Fprintln(w, "  [WARN] Token: not set")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.WorkspaceWritable {
		fmt.Fprintf(w, "  [OK] Workspace root: %s (writable)\n", filepath.Clean(r.System.WorkspaceRoot))
	} else {
		fmt.Fprintf(w, "  [ERROR] Workspace root: %s (not writable)\n", r.System.WorkspaceRoot)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: READY")
	case "warnings":
		fmt.Fprintln(w, "Status: READY (with warnings)")
	default:
		fmt.Fprintln(w, "Status: NOT READY")
	}
}

func printTool(w io.Writer, name string, t toolInfo) {
	if !t.Found {
		fmt.Fprintf(w, "  [--] %s: not found\n", name)
		return
	}
	if t.Version != "" {
		fmt.Fprintf(w, "  [OK] %s: %s (%s)\n", name, t.Path, t.Version)
		return
	}
	fmt.Fprintf(w, "  [OK] %s: %s\n", name, t.Path)
}
