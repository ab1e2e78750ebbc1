package rfd2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-rfd2pdf/internal/process"
)

// errEmptyOutput is returned when a command succeeds without writing output.
var errEmptyOutput = errors.New("command produced no output")

// commandRunner abstracts command execution to enable testing without real subprocesses.
type commandRunner interface {
	Run(ctx context.Context, dir string, stdin []byte, name string, args ...string) (stdout, stderr []byte, err error)
}

// execRunner implements commandRunner using os/exec. The child runs in its
// own process group, which is killed when ctx is canceled.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, stdin []byte, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = bytes.NewReader(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	process.Configure(cmd)

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil && err != nil {
		err = fmt.Errorf("%w: %v", ctxErr, err)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// runDocument feeds content to an asciidoctor-family command on stdin and
// returns what it writes to stdout. dir is used as the base directory, so
// relative image references resolve against staged images.
func runDocument(ctx context.Context, runner commandRunner, dir, content, bin string, extra ...string) ([]byte, error) {
	args := make([]string, 0, len(extra)+6)
	if dir != "" {
		args = append(args, "--base-dir", dir)
	}
	args = append(args, extra...)
	args = append(args, "-o", "-", "-")

	stdout, stderr, err := runner.Run(ctx, dir, []byte(content), bin, args...)
	if err != nil {
		if msg := strings.TrimSpace(string(stderr)); msg != "" {
			return nil, fmt.Errorf("running %s: %s: %w", bin, msg, err)
		}
		return nil, fmt.Errorf("running %s: %w", bin, err)
	}
	if len(stdout) == 0 {
		return nil, fmt.Errorf("running %s: %w", bin, errEmptyOutput)
	}
	return stdout, nil
}

// asciidoctorConverter renders PDF with asciidoctor-pdf.
type asciidoctorConverter struct {
	bin    string
	runner commandRunner
}

func newAsciidoctorConverter(bin string, runner commandRunner) *asciidoctorConverter {
	return &asciidoctorConverter{bin: bin, runner: runner}
}

// ToPDF runs asciidoctor-pdf in workspaceDir and returns the PDF it writes
// to stdout.
func (c *asciidoctorConverter) ToPDF(ctx context.Context, content, workspaceDir string) ([]byte, error) {
	return runDocument(ctx, c.runner, workspaceDir, content, c.bin,
		"-a", "source-highlighter=rouge",
		"-a", "allow-uri-read",
	)
}

// Close is a no-op; each conversion runs its own process.
func (c *asciidoctorConverter) Close() error { return nil }
