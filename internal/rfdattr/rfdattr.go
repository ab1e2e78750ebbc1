// Package rfdattr reads and rewrites the line-oriented metadata attributes
// that RFD documents carry above their title.
//
// Both dialects store one attribute per line; they differ only in the
// delimiters around the attribute name:
//
//	:state: published        (Asciidoc)
//	state: published         (Markdown)
package rfdattr

import (
	"regexp"
	"strings"
)

// Syntax describes how an attribute line is spelled in one dialect.
type Syntax struct {
	open  string // text before the attribute name
	close string // text between the name and the value
	any   *regexp.Regexp

	// detached is set when an inserted line must be kept apart from the
	// text below it by a blank line.
	detached bool
}

// Asciidoc attribute entries: ":name: value".
var Asciidoc = Syntax{
	open:  ":",
	close: ":",
	any:   regexp.MustCompile(`(?m)^:[A-Za-z0-9_][A-Za-z0-9_-]*:.*$`),
}

// Markdown attribute lines: "name: value".
// A line directly above paragraph text would join it, and above a setext
// underline would become part of the title, so new lines are detached.
var Markdown = Syntax{
	open:     "",
	close:    ":",
	any:      regexp.MustCompile(`(?m)^[A-Za-z_][A-Za-z0-9_-]*:.*$`),
	detached: true,
}

// titlePrefix matches an optional "RFD 123" or "123:" marker at the start of a title.
var titlePrefix = regexp.MustCompile(`^(?:RFD ?)?(?:\d+:? )?(.*)$`)

func (s Syntax) line(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(s.open+name+s.close) + `[ \t]*(.*?)[ \t]*\r?$`)
}

// Get returns the value of the first name attribute in region.
func (s Syntax) Get(region, name string) (string, bool) {
	m := s.line(name).FindStringSubmatch(region)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Set returns content with the name attribute set to value.
//
// When titled is true only the header (the first headerEnd bytes) is
// searched: an existing line is rewritten in place, otherwise the attribute
// is inserted after the last attribute line of the header, or at headerEnd
// when the header has none. Untitled content is searched in full and new
// attributes go to the very top. Detached syntaxes add a blank line after an
// inserted attribute that would otherwise touch other text.
func (s Syntax) Set(content string, headerEnd int, titled bool, name, value string) string {
	value = strings.Join(strings.Fields(value), " ")
	entry := s.open + name + s.close + " " + value
	if value == "" {
		entry = s.open + name + s.close
	}

	region := content
	if titled {
		region = content[:headerEnd]
	}

	if loc := s.line(name).FindStringIndex(region); loc != nil {
		return content[:loc[0]] + entry + content[trimCR(region, loc[1]):]
	}

	if !titled {
		return s.insert(content, 0, entry)
	}

	if all := s.any.FindAllStringIndex(region, -1); len(all) > 0 {
		end := trimCR(region, all[len(all)-1][1])
		return content[:end] + "\n" + entry + content[end:]
	}

	return s.insert(content, headerEnd, entry)
}

// insert places entry as a new line at offset at.
func (s Syntax) insert(content string, at int, entry string) string {
	rest := content[at:]
	sep := "\n"
	if s.detached {
		next, _, _ := strings.Cut(rest, "\n")
		if strings.TrimSpace(next) != "" && !s.any.MatchString(next) {
			sep = "\n\n"
		}
	}
	return content[:at] + entry + sep + rest
}

// trimCR steps end back over a carriage return so CRLF endings survive rewrites.
func trimCR(s string, end int) int {
	if end > 0 && s[end-1] == '\r' {
		return end - 1
	}
	return end
}

// StripTitlePrefix removes a leading "RFD <n>" marker from a heading.
func StripTitlePrefix(heading string) string {
	heading = strings.TrimSpace(heading)
	m := titlePrefix.FindStringSubmatch(heading)
	if m == nil {
		return heading
	}
	return strings.TrimSpace(m[1])
}

// LineEnd returns the offset just past the line containing pos.
func LineEnd(src string, pos int) int {
	if pos >= len(src) {
		return len(src)
	}
	if i := strings.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i + 1
	}
	return len(src)
}

// LineStart returns the offset of the first byte of the line containing pos.
func LineStart(src string, pos int) int {
	if pos > len(src) {
		pos = len(src)
	}
	return strings.LastIndexByte(src[:pos], '\n') + 1
}
