package pipeline

import "testing"

func TestNormalizeMarkdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"crlf", "# T\r\n\r\nText.\r\n", "# T\n\nText.\n"},
		{"lone cr", "a\rb", "a\nb"},
		{"blank runs compressed", "a\n\n\n\n\nb", "a\n\nb"},
		{"byte order mark", "\uFEFF# T\n", "# T\n"},
		{"setext underline untouched", "T\n======\n", "T\n======\n"},
		{"already clean", "a\n\nb\n", "a\n\nb\n"},
		{"front matter dropped", "---\nstate: ideation\n---\n\n# RFD 7 Gadgets\n", "# RFD 7 Gadgets\n"},
		{"front matter with crlf", "---\r\nstate: ideation\r\n---\r\n# T\r\n", "# T\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := normalizeMarkdown(tt.input); got != tt.want {
				t.Errorf("normalizeMarkdown(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripFrontMatter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no front matter", "# T\n", "# T\n"},
		{"block removed", "---\na: 1\nb: 2\n---\nbody\n", "body\n"},
		{"closing fence at end", "---\na: 1\n---", ""},
		{"unclosed block kept", "---\na: 1\nbody\n", "---\na: 1\nbody\n"},
		{"thematic break later is not front matter", "text\n---\nmore\n", "text\n---\nmore\n"},
		{"single line", "---", "---"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := stripFrontMatter(tt.input); got != tt.want {
				t.Errorf("stripFrontMatter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
