package rfd2pdf

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/pipeline"
	"github.com/alnah/go-rfd2pdf/internal/workspace"
)

// Compile-time interface checks
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ PDFConverter           = (*asciidoctorConverter)(nil)
	_ PDFConverter           = (*chromeConverter)(nil)
	_ pdfRenderer            = (*rodRenderer)(nil)
)

// Renderer produces PDF and HTML output for RFDs. Each render gets its own
// workspace under the configured root, so one Renderer may serve concurrent
// renders of different documents.
type Renderer struct {
	cfg       rendererConfig
	converter PDFConverter
	markdown  pipeline.HTMLConverter
	runner    commandRunner
	logger    *log.Logger
}

// NewRenderer creates a Renderer. Without options it renders with
// asciidoctor-pdf into workspaces under the process temporary directory.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			backend:        BackendAsciidoctor,
			asciidoctorPDF: DefaultAsciidoctorPDF,
			asciidoctor:    DefaultAsciidoctor,
		},
		markdown: pipeline.NewGoldmarkConverter(),
		runner:   execRunner{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = log.Default()
	}

	if r.converter == nil {
		switch r.cfg.backend {
		case BackendAsciidoctor:
			r.converter = newAsciidoctorConverter(r.cfg.asciidoctorPDF, r.runner)
		case BackendChrome:
			r.converter = newChromeConverter(r.cfg.asciidoctor, r.runner, r.cfg.timeout)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, r.cfg.backend)
		}
	}

	return r, nil
}

// Close releases backend resources, such as a running browser.
func (r *Renderer) Close() error {
	if r.converter != nil {
		return r.converter.Close()
	}
	return nil
}

// RenderPDF stages the images of an Asciidoc RFD in a fresh workspace and
// converts it to PDF. The workspace is removed before returning, whatever
// the outcome. Markdown documents fail with ErrFormatNotSupported before any
// image is fetched or any directory is created.
func (r *Renderer) RenderPDF(ctx context.Context, doc *RenderableRFD, source ImageSource, number Number, location Location) (*PDF, error) {
	if format := doc.Format(); format != FormatAsciidoc {
		return nil, &OutputError{Kind: ErrFormatNotSupported, Err: fmt.Errorf("%s cannot be rendered to PDF", format)}
	}

	logger := r.logger.With("rfd", number.String(), "render", doc.RenderID())
	ws := workspace.New(r.cfg.workspaceRoot, doc.RenderID())
	defer r.release(logger, ws)

	dir, err := ws.Path()
	if err != nil {
		return nil, OutputFromContent(newContentError(ErrFileIO, err))
	}

	if cerr := stageImages(ctx, logger, dir, source, number, location); cerr != nil {
		return nil, OutputFromContent(cerr)
	}

	pdf, err := r.convert(ctx, doc.Content(), dir)
	if err != nil {
		return nil, err
	}

	return &PDF{Contents: pdf, Number: number}, nil
}

// WorkspacePath returns the workspace directory of doc, creating it if
// needed. Repeated calls return the same path.
func (r *Renderer) WorkspacePath(doc *RenderableRFD) (string, error) {
	dir, err := workspace.New(r.cfg.workspaceRoot, doc.RenderID()).Path()
	if err != nil {
		return "", newContentError(ErrFileIO, err)
	}
	return dir, nil
}

// StageImages writes the images stored next to the RFD into its workspace.
// The workspace is left in place; callers remove it with CleanupWorkspace.
func (r *Renderer) StageImages(ctx context.Context, doc *RenderableRFD, source ImageSource, number Number, location Location) error {
	dir, err := r.WorkspacePath(doc)
	if err != nil {
		return err
	}
	logger := r.logger.With("rfd", number.String(), "render", doc.RenderID())
	if cerr := stageImages(ctx, logger, dir, source, number, location); cerr != nil {
		return cerr
	}
	return nil
}

// CleanupWorkspace removes the workspace of doc. Failures are logged and
// otherwise ignored.
func (r *Renderer) CleanupWorkspace(doc *RenderableRFD) {
	r.release(r.logger, workspace.New(r.cfg.workspaceRoot, doc.RenderID()))
}

func (r *Renderer) release(logger *log.Logger, ws *workspace.Workspace) {
	if !ws.Exists() {
		return
	}
	logger.Info("Removing temporary content directory", "path", ws.Dir())
	if err := ws.Cleanup(); err != nil {
		logger.Warn("Failed to clean up temporary files", "err", err)
	}
}

// convert runs the PDF backend as an isolated task bounded by the
// configured timeout.
func (r *Renderer) convert(ctx context.Context, content, dir string) ([]byte, error) {
	if r.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.timeout)
		defer cancel()
	}

	pdf, err := runTask(ctx, func(ctx context.Context) ([]byte, error) {
		return r.converter.ToPDF(ctx, content, dir)
	})
	if err != nil {
		return nil, &OutputError{Kind: ErrCommand, Err: err}
	}
	return pdf, nil
}
