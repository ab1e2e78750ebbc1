package pipeline

// Notes:
// - Tests cover the goldmark configuration observable in the output (GFM,
//   heading IDs, highlighting classes) and the context handling of ToHTML.
// - The ErrHTMLConversion branch is not reachable: goldmark only fails on
//   writer errors and ToHTML writes to a bytes.Buffer.

import (
	"context"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML - Rendering
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		title        string
		input        string
		wantContains []string
		wantAbsent   []string
	}{
		{
			name:         "standalone document with title",
			title:        "Widget Protocol",
			input:        "# RFD 42 Widget Protocol\n\nBody.",
			wantContains: []string{"<!DOCTYPE html>", "<title>Widget Protocol</title>", "<h1", "<p>Body.</p>"},
		},
		{
			name:         "empty title falls back",
			input:        "Body.",
			wantContains: []string{"<title>RFD</title>"},
		},
		{
			name:         "title is escaped",
			title:        "A <b> & C",
			input:        "x",
			wantContains: []string{"<title>A &lt;b&gt; &amp; C</title>"},
		},
		{
			name:         "heading ids",
			input:        "## Determinations",
			wantContains: []string{`id="determinations"`},
		},
		{
			name:         "GFM table",
			input:        "| A | B |\n|---|---|\n| 1 | 2 |",
			wantContains: []string{"<table>", "<th>", "<td>"},
		},
		{
			name:         "highlighted code uses classes",
			input:        "```go\nfunc main() {}\n```",
			wantContains: []string{`class="chroma"`},
		},
		{
			name:         "footnote",
			input:        "Claim.[^1]\n\n[^1]: Source.",
			wantContains: []string{"footnote"},
		},
		{
			name:         "front matter is not rendered",
			input:        "---\nstate: ideation\n---\n# RFD 7 Gadgets\n",
			wantContains: []string{"<h1"},
			wantAbsent:   []string{"<hr", "state: ideation", "<h2"},
		},
	}

	conv := NewGoldmarkConverter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := conv.ToHTML(context.Background(), tt.title, tt.input)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() missing %q in:\n%s", want, got)
				}
			}
			for _, absent := range tt.wantAbsent {
				if strings.Contains(got, absent) {
					t.Errorf("ToHTML() contains %q in:\n%s", absent, got)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestGoldmarkConverter_ToHTML_ContextCancellation
// ---------------------------------------------------------------------------

func TestGoldmarkConverter_ToHTML_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter().ToHTML(ctx, "", "# Title")
	if err != context.Canceled {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}
