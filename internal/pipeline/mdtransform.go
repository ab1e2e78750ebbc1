package pipeline

import (
	"regexp"
	"strings"
)

var (
	crlfOrCR           = regexp.MustCompile(`\r\n?`)
	multipleBlankLines = regexp.MustCompile(`\n{3,}`)
)

// frontMatterFence opens and closes a YAML attribute block.
const frontMatterFence = "---"

// normalizeMarkdown prepares RFD text for goldmark: line endings become \n,
// a leading byte order mark and front matter block are dropped, and runs of
// blank lines are compressed to one.
func normalizeMarkdown(content string) string {
	content = strings.TrimPrefix(content, "\uFEFF")
	content = crlfOrCR.ReplaceAllString(content, "\n")
	content = stripFrontMatter(content)
	return multipleBlankLines.ReplaceAllString(content, "\n\n")
}

// stripFrontMatter removes a leading "---" delimited block. Without a
// closing fence the text is returned as is.
func stripFrontMatter(content string) string {
	first, rest, ok := strings.Cut(content, "\n")
	if !ok || strings.TrimSpace(first) != frontMatterFence {
		return content
	}

	for offset := 0; offset < len(rest); {
		line, after, found := strings.Cut(rest[offset:], "\n")
		if strings.TrimSpace(line) == frontMatterFence {
			return strings.TrimLeft(after, "\n")
		}
		if !found {
			break
		}
		offset += len(line) + 1
	}
	return content
}
