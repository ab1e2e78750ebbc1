package rfd2pdf

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alnah/go-rfd2pdf/internal/asciidoc"
	"github.com/alnah/go-rfd2pdf/internal/markdown"
)

// Attributes is read and update access to the metadata of an RFD.
type Attributes interface {
	Title() (string, bool)
	State() (string, bool)
	UpdateState(value string)
	Discussion() (string, bool)
	UpdateDiscussion(value string)
	Authors() (string, bool)
	Labels() (string, bool)
	UpdateLabels(value string)
}

// dialect is the capability shared by every supported markup dialect.
type dialect interface {
	Attributes
	Raw() string
	Content() string
	Header() (string, bool)
	Body() (string, bool)
}

// Compile-time interface checks
var (
	_ dialect    = (*asciidoc.Document)(nil)
	_ dialect    = (*markdown.Document)(nil)
	_ Attributes = (*RenderableRFD)(nil)
)

// RenderableRFD is an RFD document together with the identity of the render
// it belongs to. The render id is fixed at construction and names the
// workspace used while producing output.
//
// A RenderableRFD is not safe for concurrent mutation.
type RenderableRFD struct {
	content  dialect
	renderID uuid.UUID
}

// New wraps text in the given format.
// Panics if format is not a known Format (programmer error).
func New(format Format, text string) *RenderableRFD {
	switch format {
	case FormatAsciidoc:
		return NewAsciidoc(text)
	case FormatMarkdown:
		return NewMarkdown(text)
	default:
		panic(fmt.Sprintf("rfd2pdf: unknown format %d", int(format)))
	}
}

// NewAsciidoc wraps Asciidoc text.
func NewAsciidoc(text string) *RenderableRFD {
	return newRenderable(asciidoc.New(strings.Clone(text)))
}

// NewMarkdown wraps Markdown text.
func NewMarkdown(text string) *RenderableRFD {
	return newRenderable(markdown.New(strings.Clone(text)))
}

// NewFromBytes wraps raw bytes, which must be valid UTF-8.
func NewFromBytes(format Format, data []byte) (*RenderableRFD, error) {
	if _, err := ParseFormat(format.String()); err != nil {
		return nil, newContentError(ErrInvalidContent, err)
	}
	if !utf8.Valid(data) {
		return nil, newContentError(ErrInvalidContent, fmt.Errorf("content is not valid UTF-8"))
	}
	return New(format, string(data)), nil
}

func newRenderable(content dialect) *RenderableRFD {
	return &RenderableRFD{content: content, renderID: uuid.New()}
}

// Format reports the dialect of the document.
func (r *RenderableRFD) Format() Format {
	switch r.content.(type) {
	case *asciidoc.Document:
		return FormatAsciidoc
	case *markdown.Document:
		return FormatMarkdown
	default:
		panic(fmt.Sprintf("rfd2pdf: unhandled dialect %T", r.content))
	}
}

// RenderID returns the identifier of this render.
func (r *RenderableRFD) RenderID() uuid.UUID { return r.renderID }

// Raw returns the text the document was created from.
func (r *RenderableRFD) Raw() string { return r.content.Raw() }

// Content returns the document text, including attribute updates.
func (r *RenderableRFD) Content() string { return r.content.Content() }

// Header returns the text above the title, if the document has one.
func (r *RenderableRFD) Header() (string, bool) { return r.content.Header() }

// Body returns the text below the title, if the document has one.
func (r *RenderableRFD) Body() (string, bool) { return r.content.Body() }

// Title returns the RFD title without its "RFD <n>" prefix.
func (r *RenderableRFD) Title() (string, bool) { return r.content.Title() }

// State returns the "state" attribute.
func (r *RenderableRFD) State() (string, bool) { return r.content.State() }

// Discussion returns the "discussion" attribute.
func (r *RenderableRFD) Discussion() (string, bool) { return r.content.Discussion() }

// Authors returns the "authors" attribute.
func (r *RenderableRFD) Authors() (string, bool) { return r.content.Authors() }

// Labels returns the "labels" attribute.
func (r *RenderableRFD) Labels() (string, bool) { return r.content.Labels() }

// UpdateState sets the "state" attribute, inserting it when absent.
func (r *RenderableRFD) UpdateState(value string) { r.content.UpdateState(value) }

// UpdateDiscussion sets the "discussion" attribute, inserting it when absent.
func (r *RenderableRFD) UpdateDiscussion(value string) { r.content.UpdateDiscussion(value) }

// UpdateLabels sets the "labels" attribute, inserting it when absent.
func (r *RenderableRFD) UpdateLabels(value string) { r.content.UpdateLabels(value) }
