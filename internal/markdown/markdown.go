// Package markdown locates the title and metadata attributes of Markdown RFDs.
//
// The title boundary is found by parsing the document with goldmark, so
// headings inside code fences, HTML blocks or block quotes are never mistaken
// for the title. Attributes are "name: value" lines above the title, which
// also covers YAML-style front matter.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-rfd2pdf/internal/rfdattr"
)

// Attribute names used by RFD documents.
const (
	attrAuthors    = "authors"
	attrState      = "state"
	attrDiscussion = "discussion"
	attrLabels     = "labels"
)

// Document is a Markdown RFD. The original text is kept untouched; attribute
// updates are applied to a separate working copy.
type Document struct {
	raw     string
	content string
}

// heading is the located title line.
type heading struct {
	start, end int
	text       string
	ok         bool
}

// New wraps content as a Markdown document.
func New(content string) *Document {
	return &Document{raw: content, content: content}
}

// Raw returns the text the document was created from.
func (d *Document) Raw() string { return d.raw }

// Content returns the text including any attribute updates.
func (d *Document) Content() string { return d.content }

// Header returns the text above the title heading.
func (d *Document) Header() (string, bool) {
	h := d.heading()
	if !h.ok {
		return "", false
	}
	return d.content[:h.start], true
}

// Body returns the text below the title heading.
func (d *Document) Body() (string, bool) {
	h := d.heading()
	if !h.ok {
		return "", false
	}
	return d.content[h.end:], true
}

// Title returns the first level-1 heading without its "RFD <n>" prefix.
func (d *Document) Title() (string, bool) {
	h := d.heading()
	if !h.ok {
		return "", false
	}
	title := rfdattr.StripTitlePrefix(h.text)
	return title, title != ""
}

// State returns the "state" attribute.
func (d *Document) State() (string, bool) { return d.attr(attrState) }

// Discussion returns the "discussion" attribute.
func (d *Document) Discussion() (string, bool) { return d.attr(attrDiscussion) }

// Authors returns the "authors" attribute.
func (d *Document) Authors() (string, bool) { return d.attr(attrAuthors) }

// Labels returns the "labels" attribute.
func (d *Document) Labels() (string, bool) { return d.attr(attrLabels) }

// UpdateState sets the "state" attribute, inserting it when absent.
func (d *Document) UpdateState(value string) { d.setAttr(attrState, value) }

// UpdateDiscussion sets the "discussion" attribute, inserting it when absent.
func (d *Document) UpdateDiscussion(value string) { d.setAttr(attrDiscussion, value) }

// UpdateLabels sets the "labels" attribute, inserting it when absent.
func (d *Document) UpdateLabels(value string) { d.setAttr(attrLabels, value) }

func (d *Document) attr(name string) (string, bool) {
	region := d.content
	if h := d.heading(); h.ok {
		region = d.content[:h.start]
	}
	return rfdattr.Markdown.Get(region, name)
}

func (d *Document) setAttr(name, value string) {
	h := d.heading()
	d.content = rfdattr.Markdown.Set(d.content, h.start, h.ok, name, value)
}

func (d *Document) heading() heading {
	return findTitle(d.content)
}

// findTitle returns the first top-level heading of level 1, either ATX
// ("# Title") or setext (a line underlined with "=").
func findTitle(src string) heading {
	source := []byte(src)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			continue
		}

		first, last := lines.At(0), lines.At(lines.Len()-1)
		start := rfdattr.LineStart(src, first.Start)
		end := rfdattr.LineEnd(src, last.Start)
		if !isATX(src[start:]) {
			// setext: the underline is the next line
			end = rfdattr.LineEnd(src, end)
		}

		var b strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strings.TrimSpace(string(seg.Value(source))))
		}
		return heading{start: start, end: end, text: b.String(), ok: true}
	}
	return heading{}
}

// isATX reports whether line starts with an ATX heading marker after at most
// three spaces of indentation.
func isATX(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	return len(line)-len(trimmed) <= 3 && strings.HasPrefix(trimmed, "#")
}
