package rfd2pdf

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Format identifies the markup dialect of an RFD.
type Format int

// Supported formats. The set is closed.
const (
	FormatAsciidoc Format = iota + 1
	FormatMarkdown
)

// String returns the lowercase dialect name.
func (f Format) String() string {
	switch f {
	case FormatAsciidoc:
		return "asciidoc"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseFormat parses a dialect name ("asciidoc", "adoc", "markdown", "md").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asciidoc", "adoc":
		return FormatAsciidoc, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath infers the dialect from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".adoc", ".asciidoc", ".asc":
		return FormatAsciidoc, nil
	case ".md", ".markdown":
		return FormatMarkdown, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Number identifies an RFD.
type Number int

// String returns the zero-padded four digit form used in paths ("0042").
func (n Number) String() string {
	return fmt.Sprintf("%04d", int(n))
}

// RepoPath returns the RFD directory within its repository ("/rfd/0042").
func (n Number) RepoPath() string {
	return "/rfd/" + n.String()
}

// ParseNumber parses "42", "0042" or "RFD 42".
func ParseNumber(s string) (Number, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) >= 3 && strings.EqualFold(trimmed[:3], "rfd") {
		trimmed = strings.TrimSpace(trimmed[3:])
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return Number(n), nil
}

// Location is the source-control reference an RFD is read from.
type Location struct {
	Owner  string
	Repo   string
	Branch string
	Commit string // preferred over Branch when set
}

// Ref returns the git reference to read at.
func (l Location) Ref() string {
	if l.Commit != "" {
		return l.Commit
	}
	return l.Branch
}

func (l Location) String() string {
	return fmt.Sprintf("%s/%s@%s", l.Owner, l.Repo, l.Ref())
}

// Image is an image stored next to an RFD in source control.
type Image struct {
	Path    string // repository path, e.g. "rfd/0042/img/diagram.png"
	Content string // base64 encoded bytes
}

// PDF is a rendered RFD.
type PDF struct {
	Contents []byte
	Number   Number
}

// ImageSource lists the images stored alongside an RFD.
type ImageSource interface {
	ListImages(ctx context.Context, number Number, location Location) ([]Image, error)
}

// PDFConverter turns Asciidoc content into PDF bytes. workspaceDir holds the
// staged images and may be used for scratch files.
type PDFConverter interface {
	ToPDF(ctx context.Context, content, workspaceDir string) ([]byte, error)
	Close() error
}

// Backend selects the built-in PDFConverter.
type Backend string

// Built-in backends.
const (
	BackendAsciidoctor Backend = "asciidoctor" // asciidoctor-pdf
	BackendChrome      Backend = "chrome"      // asciidoctor HTML printed by headless Chrome
)

// ParseBackend validates a backend name. Empty selects the default.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BackendAsciidoctor, nil
	case BackendAsciidoctor, BackendChrome:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, s)
	}
}

// Default external tools.
const (
	DefaultAsciidoctorPDF = "asciidoctor-pdf"
	DefaultAsciidoctor    = "asciidoctor"
)

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	workspaceRoot  string
	timeout        time.Duration
	backend        Backend
	asciidoctorPDF string
	asciidoctor    string
}

// WithWorkspaceRoot sets the directory under which render workspaces are
// created. Empty means the process temporary directory.
func WithWorkspaceRoot(dir string) Option {
	return func(r *Renderer) {
		r.cfg.workspaceRoot = dir
	}
}

// WithTimeout bounds each conversion task.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("rfd2pdf: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithBackend selects a built-in PDF backend. Ignored when WithPDFConverter
// is also given.
func WithBackend(b Backend) Option {
	return func(r *Renderer) {
		r.cfg.backend = b
	}
}

// WithAsciidoctorPDF sets the asciidoctor-pdf executable.
func WithAsciidoctorPDF(bin string) Option {
	return func(r *Renderer) {
		r.cfg.asciidoctorPDF = bin
	}
}

// WithAsciidoctor sets the asciidoctor executable used for HTML output.
func WithAsciidoctor(bin string) Option {
	return func(r *Renderer) {
		r.cfg.asciidoctor = bin
	}
}

// WithPDFConverter replaces the built-in backend.
func WithPDFConverter(c PDFConverter) Option {
	return func(r *Renderer) {
		r.converter = c
	}
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) {
		r.logger = l
	}
}
