package rfd2pdf

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRenderHTML - Per-format HTML output
// ---------------------------------------------------------------------------

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	t.Run("markdown uses goldmark", func(t *testing.T) {
		t.Parallel()

		runner := &mockRunner{}
		r, root := newTestRenderer(t, &mockPDFConverter{})
		r.runner = runner

		out, err := r.RenderHTML(context.Background(), NewMarkdown(testMarkdown+"\n![d](img/d.png)\n"), "")
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}
		for _, want := range []string{"<title>Gizmos</title>", "<h1", `src="img/d.png"`} {
			if !strings.Contains(string(out), want) {
				t.Errorf("output should contain %q, got:\n%s", want, out)
			}
		}
		if runner.calls != 0 {
			t.Error("asciidoctor should not run for Markdown")
		}
		assertNoWorkspaces(t, root)
	})

	t.Run("asciidoc uses asciidoctor", func(t *testing.T) {
		t.Parallel()

		runner := &mockRunner{stdout: []byte(`<!DOCTYPE html><html><head></head><body><img src="img/a.png"></body></html>`)}
		r, _ := newTestRenderer(t, &mockPDFConverter{}, WithAsciidoctor("/opt/asciidoctor"))
		r.runner = runner

		out, err := r.RenderHTML(context.Background(), NewAsciidoc(testAsciidoc), "/staged/0042")
		if err != nil {
			t.Fatalf("RenderHTML() error = %v", err)
		}
		if runner.name != "/opt/asciidoctor" {
			t.Errorf("command = %q, want the configured asciidoctor", runner.name)
		}
		if runner.stdin != testAsciidoc {
			t.Error("asciidoctor should receive the document content")
		}
		if !strings.Contains(string(out), "file://") || !strings.Contains(string(out), "/staged/0042/img/a.png") {
			t.Errorf("image should point into imageDir, got:\n%s", out)
		}
	})

	t.Run("asciidoctor failure", func(t *testing.T) {
		t.Parallel()

		r, _ := newTestRenderer(t, &mockPDFConverter{})
		r.runner = &mockRunner{err: errors.New("exit status 1")}

		_, err := r.RenderHTML(context.Background(), NewAsciidoc(testAsciidoc), "")

		var oerr *OutputError
		if !errors.As(err, &oerr) || oerr.Kind != ErrContentFailure {
			t.Fatalf("error = %v, want OutputError of kind ErrContentFailure", err)
		}
		if !errors.Is(err, ErrParserFailed) {
			t.Errorf("error = %v, want ErrParserFailed", err)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		r, _ := newTestRenderer(t, &mockPDFConverter{})
		_, err := r.RenderHTML(ctx, NewMarkdown(testMarkdown), "")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}
