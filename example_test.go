package rfd2pdf_test

import (
	"context"
	"errors"
	"fmt"
	"strings"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
)

// Example reads and updates the metadata of an Asciidoc RFD.
func Example() {
	doc := rfd2pdf.NewAsciidoc(":state: discussion\n:authors: Ada Lovelace\n\n= RFD 42 Widgets\n\nText.\n")

	title, _ := doc.Title()
	state, _ := doc.State()
	fmt.Println(title, state)

	doc.UpdateState("published")
	state, _ = doc.State()
	fmt.Println(state)
	fmt.Println(strings.Contains(doc.Raw(), "published"))
	// Output:
	// Widgets discussion
	// published
	// false
}

// ExampleRenderer_RenderHTML previews a Markdown RFD without external tools.
func ExampleRenderer_RenderHTML() {
	r, err := rfd2pdf.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer r.Close()

	html, err := r.RenderHTML(context.Background(), rfd2pdf.NewMarkdown("# RFD 9 Gizmos\n\nText.\n"), "")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(html), "<title>Gizmos</title>"))
	// Output: true
}

// ExampleRenderer_RenderPDF shows that Markdown RFDs cannot be rendered to
// PDF. The check happens before any image is fetched.
func ExampleRenderer_RenderPDF() {
	r, err := rfd2pdf.NewRenderer()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer r.Close()

	_, err = r.RenderPDF(context.Background(), rfd2pdf.NewMarkdown("# RFD 9 Gizmos\n"), nil, 9, rfd2pdf.Location{})
	fmt.Println(errors.Is(err, rfd2pdf.ErrFormatNotSupported))
	// Output: true
}

// ExampleRendererPool renders with a bounded number of renderers.
func ExampleRendererPool() {
	pool := rfd2pdf.NewRendererPool(rfd2pdf.ResolvePoolSize(2))
	defer pool.Close()

	r, err := pool.Acquire(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer pool.Release(r)

	fmt.Println(pool.Size())
	// Output: 2
}
