//go:build integration

package rfd2pdf

// Notes:
// - Integration tests run the real backends: asciidoctor-pdf for the default
//   backend, asciidoctor plus headless Chrome for the chrome backend.
// - Tests skip when the required executable is not installed.
// - Chrome-backed renderers come from a shared pool so the browser is
//   launched once per process.

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 60 * time.Second

// chromePool is the shared pool of chrome-backed renderers.
var chromePool *RendererPool

func TestMain(m *testing.M) {
	chromePool = NewRendererPool(
		min(ResolvePoolSize(0), 2),
		WithBackend(BackendChrome),
		WithLogger(log.New(io.Discard)),
		WithTimeout(testTimeout),
	)

	code := m.Run()

	_ = chromePool.Close()
	os.Exit(code)
}

// requireTool skips the test when bin is not on PATH.
func requireTool(t *testing.T, bin string) {
	t.Helper()
	if _, err := exec.LookPath(bin); err != nil {
		t.Skipf("%s not installed", bin)
	}
}

func assertValidPDF(t *testing.T, data []byte) {
	t.Helper()

	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("data does not have PDF magic bytes, got prefix: %q", data[:min(10, len(data))])
	}

	if len(data) < 100 {
		t.Errorf("PDF data suspiciously small: %d bytes", len(data))
	}
}
