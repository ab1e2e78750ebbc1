package rfd2pdf

import (
	"context"

	"github.com/alnah/go-rfd2pdf/internal/pipeline"
)

// RenderHTML renders doc as a standalone HTML page. Markdown is converted
// in-process with goldmark; Asciidoc is converted by asciidoctor. When
// imageDir is set, relative image references point at files under it.
//
// RenderHTML does not fetch images. Callers stage them with StageImages
// and copy them under imageDir.
func (r *Renderer) RenderHTML(ctx context.Context, doc *RenderableRFD, imageDir string) ([]byte, error) {
	var (
		out string
		err error
	)

	switch doc.Format() {
	case FormatMarkdown:
		title, _ := doc.Title()
		out, err = r.markdown.ToHTML(ctx, title, doc.Content())
	case FormatAsciidoc:
		var raw []byte
		raw, err = runTask(ctx, func(ctx context.Context) ([]byte, error) {
			return runDocument(ctx, r.runner, "", doc.Content(), r.cfg.asciidoctor, "-b", "html5")
		})
		out = string(raw)
	}
	if err != nil {
		return nil, OutputFromContent(newContentError(ErrParserFailed, err))
	}

	out, err = pipeline.RewriteImagePaths(out, imageDir)
	if err != nil {
		return nil, OutputFromContent(newContentError(ErrParserFailed, err))
	}
	return []byte(out), nil
}
