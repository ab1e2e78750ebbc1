// Package asciidoc locates the title and metadata attributes of Asciidoc RFDs.
package asciidoc

import (
	"strings"

	"github.com/alnah/go-rfd2pdf/internal/rfdattr"
)

// Attribute names used by RFD documents.
const (
	attrAuthors    = "authors"
	attrState      = "state"
	attrDiscussion = "discussion"
	attrLabels     = "labels"
)

// Document is an Asciidoc RFD. The original text is kept untouched; attribute
// updates are applied to a separate working copy.
type Document struct {
	raw     string
	content string
}

// New wraps content as an Asciidoc document.
func New(content string) *Document {
	return &Document{raw: content, content: content}
}

// Raw returns the text the document was created from.
func (d *Document) Raw() string { return d.raw }

// Content returns the text including any attribute updates.
func (d *Document) Content() string { return d.content }

// Header returns the text above the title line.
func (d *Document) Header() (string, bool) {
	start, _, ok := titleLine(d.content)
	if !ok {
		return "", false
	}
	return d.content[:start], true
}

// Body returns the text below the title line.
func (d *Document) Body() (string, bool) {
	_, end, ok := titleLine(d.content)
	if !ok {
		return "", false
	}
	return d.content[end:], true
}

// Title returns the document title without its "RFD <n>" prefix.
func (d *Document) Title() (string, bool) {
	start, end, ok := titleLine(d.content)
	if !ok {
		return "", false
	}
	line := strings.TrimRight(d.content[start:end], "\r\n")
	title := rfdattr.StripTitlePrefix(strings.TrimPrefix(line, "="))
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

// attr reads an attribute from the header, or from the whole text when the
// document has no title.
func (d *Document) attr(name string) (string, bool) {
	region := d.content
	if start, _, ok := titleLine(d.content); ok {
		region = d.content[:start]
	}
	return rfdattr.Asciidoc.Get(region, name)
}

func (d *Document) setAttr(name, value string) {
	start, _, ok := titleLine(d.content)
	d.content = rfdattr.Asciidoc.Set(d.content, start, ok, name, value)
}

// titleLine finds the first level-0 section title ("= Title") that is not
// inside a delimited block or comment. It returns the byte offsets of the
// line, end exclusive of the following line.
func titleLine(src string) (start, end int, ok bool) {
	var fence string
	for pos := 0; pos < len(src); {
		next := rfdattr.LineEnd(src, pos)
		line := strings.TrimRight(src[pos:next], "\r\n")

		switch {
		case fence != "":
			if line == fence {
				fence = ""
			}
		case isDelimiter(line):
			fence = line
		case strings.HasPrefix(line, "//"):
		case strings.HasPrefix(line, "= ") && strings.TrimSpace(line[2:]) != "":
			return pos, next, true
		}
		pos = next
	}
	return 0, 0, false
}

// isDelimiter reports whether line opens a delimited block: four or more of
// the same delimiter character, or a literal "--" open block.
func isDelimiter(line string) bool {
	if line == "--" {
		return true
	}
	if len(line) < 4 || !strings.ContainsRune("-./=*+_`", rune(line[0])) {
		return false
	}
	return strings.Count(line, line[:1]) == len(line)
}
