package asciidoc

import (
	"strings"
	"testing"
)

const rfd = `:showtitle:
:toc: left
:numbered:
:state: published
:discussion: https://github.com/acme/rfd/pull/42
:revremark: State: {state} | {discussion}
:authors: Ada Lovelace <ada@example.com>

= RFD 42 Widgets

== Background

:labels: not-a-header-attribute
`

// ---------------------------------------------------------------------------
// TestDocument_Title - Title location
// ---------------------------------------------------------------------------

func TestDocument_Title(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
		wantOK  bool
	}{
		{"rfd title", rfd, "Widgets", true},
		{"plain title", "= Widgets\n", "Widgets", true},
		{"section is not a title", "== Widgets\n", "", false},
		{"inside listing block", "----\n= Not Title\n----\n= Real\n", "Real", true},
		{"inside open block", "--\n= Not Title\n--\n", "", false},
		{"commented out", "// = Not Title\n= Real\n", "Real", true},
		{"empty title text", "=  \n= Real\n", "Real", true},
		{"no title", "Just text.\n", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := New(tt.content).Title()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Title() = %q, %v, want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestDocument_HeaderBody - Split around the title
// ---------------------------------------------------------------------------

func TestDocument_HeaderBody(t *testing.T) {
	t.Parallel()

	doc := New(rfd)

	header, ok := doc.Header()
	if !ok || !strings.HasPrefix(header, ":showtitle:") || !strings.HasSuffix(header, "<ada@example.com>\n\n") {
		t.Errorf("Header() = %q, %v", header, ok)
	}
	body, ok := doc.Body()
	if !ok || !strings.HasPrefix(body, "\n== Background") {
		t.Errorf("Body() = %q, %v", body, ok)
	}
	if header+"= RFD 42 Widgets\n"+body != rfd {
		t.Error("header, title and body should reassemble the document")
	}

	untitled := New("text\n")
	if _, ok := untitled.Header(); ok {
		t.Error("Header() should report false without a title")
	}
	if _, ok := untitled.Body(); ok {
		t.Error("Body() should report false without a title")
	}
}

// ---------------------------------------------------------------------------
// TestDocument_Attributes - Header-only lookup
// ---------------------------------------------------------------------------

func TestDocument_Attributes(t *testing.T) {
	t.Parallel()

	doc := New(rfd)

	if got, _ := doc.State(); got != "published" {
		t.Errorf("State() = %q, want published", got)
	}
	if got, _ := doc.Discussion(); got != "https://github.com/acme/rfd/pull/42" {
		t.Errorf("Discussion() = %q", got)
	}
	if got, _ := doc.Authors(); got != "Ada Lovelace <ada@example.com>" {
		t.Errorf("Authors() = %q", got)
	}
	if got, ok := doc.Labels(); ok {
		t.Errorf("Labels() = %q, body attributes should be ignored", got)
	}

	untitled := New(":state: draft\nText.\n")
	if got, _ := untitled.State(); got != "draft" {
		t.Errorf("untitled State() = %q, want draft", got)
	}
}

// ---------------------------------------------------------------------------
// TestDocument_Update - Working copy
// ---------------------------------------------------------------------------

func TestDocument_Update(t *testing.T) {
	t.Parallel()

	doc := New(rfd)
	doc.UpdateState("committed")
	doc.UpdateLabels("api, storage")
	doc.UpdateDiscussion("https://github.com/acme/rfd/pull/43")

	if doc.Raw() != rfd {
		t.Error("Raw() should keep the original text")
	}

	content := doc.Content()
	for _, want := range []string{
		":state: committed\n",
		":authors: Ada Lovelace <ada@example.com>\n:labels: api, storage\n",
		":discussion: https://github.com/acme/rfd/pull/43\n",
		":labels: not-a-header-attribute\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("Content() should contain %q, got:\n%s", want, content)
		}
	}
	if strings.Count(content, ":state:") != 1 {
		t.Errorf("state should be rewritten in place, got:\n%s", content)
	}
	if got, _ := doc.Title(); got != "Widgets" {
		t.Errorf("Title() = %q after updates", got)
	}
}

func TestIsDelimiter(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		line string
		want bool
	}{
		{"----", true},
		{"....", true},
		{"====", true},
		{"++++", true},
		{"--", true},
		{"---", false},
		{"----x", false},
		{"abcd", false},
		{"", false},
	} {
		if got := isDelimiter(tt.line); got != tt.want {
			t.Errorf("isDelimiter(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
