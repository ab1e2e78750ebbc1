// Package pipeline holds the HTML stages of rendering: Markdown RFDs are
// converted to standalone HTML with goldmark, staged image paths are
// rewritten to file URLs, and the print stylesheet is injected before
// Chrome prints a page.
//
// Asciidoc itself is rendered by asciidoctor in the root package.
package pipeline
