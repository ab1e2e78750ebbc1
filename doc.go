// Package rfd2pdf renders RFD (Request for Discussion) documents to PDF and
// HTML.
//
// # Documents
//
// An RFD is written in Asciidoc or Markdown. Wrap its text in a
// RenderableRFD to read and update its metadata attributes:
//
//	doc := rfd2pdf.NewAsciidoc(text)
//	title, _ := doc.Title()
//	doc.UpdateState("published")
//
// Updates go to a working copy; Raw always returns the original text.
// Every RenderableRFD gets a fresh render id at construction.
//
// # Rendering
//
// A Renderer stages the images stored next to the RFD in a private workspace
// (<root>/rfd-render/<render id>) and runs a PDF backend there. The
// workspace is removed before RenderPDF returns, on success or failure:
//
//	r, err := rfd2pdf.NewRenderer(rfd2pdf.WithTimeout(2 * time.Minute))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	pdf, err := r.RenderPDF(ctx, doc, source, 42, rfd2pdf.Location{
//	    Owner: "oxidecomputer", Repo: "rfd", Branch: "master",
//	})
//
// Only Asciidoc can be rendered to PDF. Markdown fails with an *OutputError
// of kind ErrFormatNotSupported before any I/O; use RenderHTML for a preview.
//
// # Backends
//
// BackendAsciidoctor (the default) runs asciidoctor-pdf. BackendChrome
// renders HTML with asciidoctor and prints it with headless Chrome through
// go-rod. Any other converter can be plugged in with WithPDFConverter.
//
// # Errors
//
// Content preparation failures are *ContentError values; output failures are
// *OutputError values. A content failure during RenderPDF is reported as an
// *OutputError of kind ErrContentFailure that wraps it, so both kinds match
// with errors.Is:
//
//	if errors.Is(err, rfd2pdf.ErrDecode) { ... }
//
// # Parallel Processing
//
// RendererPool bounds the number of renderers in use:
//
//	pool := rfd2pdf.NewRendererPool(rfd2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	r, err := pool.Acquire(ctx)
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(r)
package rfd2pdf
