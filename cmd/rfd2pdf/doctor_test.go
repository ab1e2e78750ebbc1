package main

// Notes:
// - runDoctor: we test tool detection through injected LookPath, ChromePath
//   and ToolVersion so no real asciidoctor or Chrome is needed. The active
//   backend decides whether a missing tool is an error or a warning.
// - checkSystem: we test a writable and an unwritable workspace root.
// - printDoctorResult: we test the human-readable sections and status line.
// - Container/CI detection depends on the host and is not asserted.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-rfd2pdf/internal/config"
)

var errToolMissing = errors.New("executable file not found in $PATH")

// toolsEnv returns an environment where only the named tools are installed.
func toolsEnv(installed ...string) *Environment {
	env, _, _ := newTestEnv()
	have := make(map[string]bool)
	for _, name := range installed {
		have[name] = true
	}
	env.LookPath = func(file string) (string, error) {
		if have[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errToolMissing
	}
	env.ChromePath = func() (string, bool) {
		return "/usr/bin/chromium", have["chromium"]
	}
	env.ToolVersion = func(path string) (string, error) {
		return filepath.Base(path) + " 1.0.0", nil
	}
	return env
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Backend-aware tool checks
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		backend     string
		installed   []string
		token       string
		wantStatus  string
		wantErrorIn string
	}{
		{
			name:       "asciidoctor backend ready",
			backend:    "asciidoctor",
			installed:  []string{"asciidoctor-pdf", "asciidoctor", "chromium"},
			token:      "ghp_test",
			wantStatus: "ready",
		},
		{
			name:        "asciidoctor backend without asciidoctor-pdf",
			backend:     "asciidoctor",
			installed:   []string{"asciidoctor", "chromium"},
			token:       "ghp_test",
			wantStatus:  "errors",
			wantErrorIn: "asciidoctor-pdf not found",
		},
		{
			name:       "asciidoctor backend without chrome only warns",
			backend:    "asciidoctor",
			installed:  []string{"asciidoctor-pdf", "asciidoctor"},
			token:      "ghp_test",
			wantStatus: "warnings",
		},
		{
			name:        "chrome backend without chrome",
			backend:     "chrome",
			installed:   []string{"asciidoctor-pdf", "asciidoctor"},
			token:       "ghp_test",
			wantStatus:  "errors",
			wantErrorIn: "Chrome/Chromium not found",
		},
		{
			name:       "missing token warns",
			backend:    "asciidoctor",
			installed:  []string{"asciidoctor-pdf", "asciidoctor", "chromium"},
			wantStatus: "warnings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			cfg.Render.Backend = tt.backend
			cfg.Render.WorkspaceRoot = t.TempDir()
			cfg.GitHub.Token = tt.token

			result := runDoctor(cfg, toolsEnv(tt.installed...))

			if result.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (warnings=%v errors=%v)", result.Status, tt.wantStatus, result.Warnings, result.Errors)
			}
			if tt.wantErrorIn != "" && !strings.Contains(strings.Join(result.Errors, "\n"), tt.wantErrorIn) {
				t.Errorf("Errors = %v, should contain %q", result.Errors, tt.wantErrorIn)
			}
			if !result.System.WorkspaceWritable {
				t.Error("temp workspace root should be writable")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCheckTool - Version detection
// ---------------------------------------------------------------------------

func TestCheckTool(t *testing.T) {
	t.Parallel()

	t.Run("found with version", func(t *testing.T) {
		t.Parallel()

		result := &doctorResult{}
		info := checkTool(result, toolsEnv("asciidoctor-pdf"), "asciidoctor-pdf", true)

		if !info.Found || info.Path != "/usr/bin/asciidoctor-pdf" || info.Version != "asciidoctor-pdf 1.0.0" {
			t.Errorf("info = %+v", info)
		}
	})

	t.Run("version failure warns", func(t *testing.T) {
		t.Parallel()

		env := toolsEnv("asciidoctor")
		env.ToolVersion = func(string) (string, error) { return "", errors.New("exit status 1") }
		result := &doctorResult{}
		info := checkTool(result, env, "asciidoctor", true)

		if !info.Found || info.Version != "" {
			t.Errorf("info = %+v", info)
		}
		if len(result.Warnings) != 1 {
			t.Errorf("Warnings = %v, want one", result.Warnings)
		}
	})

	t.Run("missing optional tool warns", func(t *testing.T) {
		t.Parallel()

		result := &doctorResult{}
		checkTool(result, toolsEnv(), "asciidoctor", false)

		if len(result.Errors) != 0 || len(result.Warnings) != 1 {
			t.Errorf("errors=%v warnings=%v, want one warning", result.Errors, result.Warnings)
		}
		if !strings.Contains(result.Warnings[0], "gem install asciidoctor") {
			t.Errorf("warning should include install hint, got %q", result.Warnings[0])
		}
	})
}

// ---------------------------------------------------------------------------
// TestCheckSystem - Workspace root
// ---------------------------------------------------------------------------

func TestCheckSystem(t *testing.T) {
	t.Parallel()

	t.Run("writable", func(t *testing.T) {
		t.Parallel()

		result := &doctorResult{}
		checkSystem(result, t.TempDir())
		if !result.System.WorkspaceWritable || len(result.Errors) != 0 {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("missing root", func(t *testing.T) {
		t.Parallel()

		result := &doctorResult{}
		checkSystem(result, filepath.Join(t.TempDir(), "does", "not", "exist"))
		if result.System.WorkspaceWritable || len(result.Errors) != 1 {
			t.Errorf("result = %+v", result)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunDoctorCmd - Output modes
// ---------------------------------------------------------------------------

func TestRunDoctorCmd(t *testing.T) {
	t.Parallel()

	t.Run("json output", func(t *testing.T) {
		t.Parallel()

		env := toolsEnv("asciidoctor-pdf", "asciidoctor", "chromium")
		var stdout bytes.Buffer
		env.Stdout = &stdout

		code := runDoctorCmd([]string{"--json", "--workspace-root", t.TempDir()}, env)
		if code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}

		var got doctorResult
		if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, stdout.String())
		}
		if !got.AsciidoctorPDF.Found || got.Backend != "asciidoctor" {
			t.Errorf("result = %+v", got)
		}
	})

	t.Run("errors exit 1", func(t *testing.T) {
		t.Parallel()

		env := toolsEnv()
		var stdout bytes.Buffer
		env.Stdout = &stdout

		code := runDoctorCmd([]string{"--workspace-root", t.TempDir()}, env)
		if code != ExitGeneral {
			t.Errorf("exit code = %d, want %d", code, ExitGeneral)
		}
		for _, want := range []string{"rfd2pdf doctor", "Renderers (backend: asciidoctor)", "[ERROR]", "Status: NOT READY"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("stdout should contain %q, got:\n%s", want, stdout.String())
			}
		}
	})
}
