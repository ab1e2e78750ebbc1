//go:build integration

package rfd2pdf

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// onePixelPNG is a valid 1x1 PNG, base64 encoded.
const onePixelPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

const integrationRFD = `:state: published
:authors: Ada Lovelace <ada@example.com>

= RFD 42 Widgets

== Background

image::img/pixel.png[]

[source,go]
----
func main() {}
----
`

func integrationSource() *mockImageSource {
	return &mockImageSource{images: []Image{{Path: "rfd/0042/img/pixel.png", Content: onePixelPNG}}}
}

func TestRenderPDF_AsciidoctorIntegration(t *testing.T) {
	t.Parallel()
	requireTool(t, DefaultAsciidoctorPDF)

	root := t.TempDir()
	r, err := NewRenderer(WithWorkspaceRoot(root), WithTimeout(testTimeout), WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	pdf, err := r.RenderPDF(context.Background(), NewAsciidoc(integrationRFD), integrationSource(), 42, testLocation())
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	assertValidPDF(t, pdf.Contents)
	assertNoWorkspaces(t, root)
}

func TestRenderPDF_ChromeIntegration(t *testing.T) {
	t.Parallel()
	requireTool(t, DefaultAsciidoctor)

	r, err := chromePool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(func() { chromePool.Release(r) })

	pdf, err := r.RenderPDF(context.Background(), NewAsciidoc(integrationRFD), integrationSource(), 42, testLocation())
	if err != nil {
		t.Fatalf("RenderPDF() error = %v", err)
	}

	assertValidPDF(t, pdf.Contents)
}

func TestRenderHTML_AsciidoctorIntegration(t *testing.T) {
	t.Parallel()
	requireTool(t, DefaultAsciidoctor)

	r, err := NewRenderer(WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()

	html, err := r.RenderHTML(context.Background(), NewAsciidoc(integrationRFD), "")
	if err != nil {
		t.Fatalf("RenderHTML() error = %v", err)
	}
	if len(html) == 0 {
		t.Error("RenderHTML() returned empty output")
	}
}
