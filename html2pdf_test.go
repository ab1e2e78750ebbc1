package rfd2pdf

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/alnah/go-rfd2pdf/internal/pipeline"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	HTML       string
	Closed     bool
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	m.CalledWith = filePath
	data, _ := os.ReadFile(filePath)
	m.HTML = string(data)
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed = true
	return nil
}

func TestChromeConverter_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		runner     *mockRunner
		renderer   *mockRenderer
		wantErr    bool
		wantIs     error
		wantRender bool
	}{
		{
			name:       "prints the asciidoctor page",
			runner:     &mockRunner{stdout: []byte("<html><body>RFD</body></html>")},
			renderer:   &mockRenderer{Result: []byte("%PDF-1.4 chrome")},
			wantRender: true,
		},
		{
			name:       "browser error propagates",
			runner:     &mockRunner{stdout: []byte("<html></html>")},
			renderer:   &mockRenderer{Err: ErrPDFGeneration},
			wantErr:    true,
			wantIs:     ErrPDFGeneration,
			wantRender: true,
		},
		{
			name:     "asciidoctor failure skips the browser",
			runner:   &mockRunner{err: errors.New("exit status 1")},
			renderer: &mockRenderer{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			conv := &chromeConverter{asciidoctor: "asciidoctor", runner: tt.runner, renderer: tt.renderer, css: &pipeline.CSSInjection{}}

			pdf, err := conv.ToPDF(context.Background(), testAsciidoc, dir)

			if tt.wantRender != (tt.renderer.CalledWith != "") {
				t.Errorf("renderer called = %v, want %v", tt.renderer.CalledWith != "", tt.wantRender)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
					t.Errorf("error = %v, want %v", err, tt.wantIs)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(pdf) != "%PDF-1.4 chrome" {
				t.Errorf("ToPDF() = %q", pdf)
			}
			if want := filepath.Join(dir, renderedHTMLName); tt.renderer.CalledWith != want {
				t.Errorf("rendered %q, want %q", tt.renderer.CalledWith, want)
			}
			if want := "<html><body><style>" + pipeline.PrintCSS + "</style>RFD</body></html>"; tt.renderer.HTML != want {
				t.Errorf("page = %q, want the asciidoctor output with the print stylesheet", tt.renderer.HTML)
			}
			if !slices.Contains(tt.runner.args, "html5") || tt.runner.dir != dir {
				t.Errorf("asciidoctor args = %q in %q", tt.runner.args, tt.runner.dir)
			}
		})
	}
}

func TestChromeConverter_ToPDF_CanceledSkipsScratchFile(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	renderer := &mockRenderer{}
	conv := &chromeConverter{
		asciidoctor: "asciidoctor",
		runner:      &mockRunner{stdout: []byte("<html><body>RFD</body></html>")},
		renderer:    renderer,
		css:         &pipeline.CSSInjection{},
	}

	_, err := conv.ToPDF(ctx, testAsciidoc, dir)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToPDF() error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, renderedHTMLName)); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("%s written after cancellation", renderedHTMLName)
	}
	if renderer.CalledWith != "" {
		t.Error("browser should not run after cancellation")
	}
}

func TestChromeConverter_Close(t *testing.T) {
	t.Parallel()

	renderer := &mockRenderer{}
	conv := &chromeConverter{renderer: renderer}
	if err := conv.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if !renderer.Closed {
		t.Error("Close() should close the browser renderer")
	}
}

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newRodRenderer(0)
	_, err := r.RenderFromFile(ctx, "/nonexistent.html")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if r.timeout != defaultPageTimeout {
		t.Errorf("timeout = %v, want default %v", r.timeout, defaultPageTimeout)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() without a browser error = %v", err)
	}
}
