package rfd2pdf

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-rfd2pdf/internal/fileutil"
	"github.com/alnah/go-rfd2pdf/internal/pipeline"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string) ([]byte, error)
	Close() error
}

// renderedHTMLName is the scratch file the chrome backend prints from. It
// lives in the workspace so relative image paths resolve.
const renderedHTMLName = "index.html"

// defaultPageTimeout bounds page loading when ctx has no deadline.
const defaultPageTimeout = 90 * time.Second

// PDF page dimensions in inches (US Letter format).
const (
	paperWidthInches  = 8.5
	paperHeightInches = 11
	marginInches      = 0.5
)

// rodRenderer implements pdfRenderer using go-rod.
// Rod downloads Chromium on first run if no browser is found.
type rodRenderer struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
}

func newRodRenderer(timeout time.Duration) *rodRenderer {
	if timeout <= 0 {
		timeout = defaultPageTimeout
	}
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return r.browser, nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.browser = browser
	return browser, nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	r.browser = nil
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and prints it.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := r.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Context(ctx).Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := page.Context(ctx).PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdf, nil
}

func floatPtr(v float64) *float64 {
	return &v
}

// chromeConverter renders Asciidoc to standalone HTML with asciidoctor and
// prints the page with headless Chrome.
type chromeConverter struct {
	asciidoctor string
	runner      commandRunner
	renderer    pdfRenderer
	css         pipeline.CSSInjector
}

func newChromeConverter(asciidoctor string, runner commandRunner, timeout time.Duration) *chromeConverter {
	return &chromeConverter{
		asciidoctor: asciidoctor,
		runner:      runner,
		renderer:    newRodRenderer(timeout),
		css:         &pipeline.CSSInjection{},
	}
}

// ToPDF writes the HTML rendering into workspaceDir, next to the staged
// images, and prints it.
func (c *chromeConverter) ToPDF(ctx context.Context, content, workspaceDir string) ([]byte, error) {
	html, err := runDocument(ctx, c.runner, workspaceDir, content, c.asciidoctor, "-b", "html5")
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	html = []byte(c.css.InjectCSS(ctx, string(html), pipeline.PrintCSS))

	path := filepath.Join(workspaceDir, renderedHTMLName)
	if err := fileutil.WriteFile(path, html); err != nil {
		return nil, err
	}

	return c.renderer.RenderFromFile(ctx, path)
}

// Close releases browser resources.
func (c *chromeConverter) Close() error {
	if c.renderer != nil {
		return c.renderer.Close()
	}
	return nil
}
