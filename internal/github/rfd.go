package github

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	rfd2pdf "github.com/alnah/go-rfd2pdf"
)

// Compile-time interface check
var _ rfd2pdf.ImageSource = (*Client)(nil)

// imageExtensions are the file types staged next to an RFD.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// documentNames are tried in order when reading an RFD.
var documentNames = []string{"README.adoc", "README.md"}

// ListImages returns every image below the RFD directory, walking
// subdirectories. Paths are repository paths ("rfd/0042/img/a.png") and
// contents are base64 encoded.
func (c *Client) ListImages(ctx context.Context, number rfd2pdf.Number, location rfd2pdf.Location) ([]rfd2pdf.Image, error) {
	var images []rfd2pdf.Image

	dirs := []string{strings.TrimPrefix(number.RepoPath(), "/")}
	for len(dirs) > 0 {
		dir := dirs[0]
		dirs = dirs[1:]

		entries, err := c.ListContents(ctx, location.Owner, location.Repo, dir, location.Ref())
		if err != nil {
			return nil, fmt.Errorf("listing %s: %w", dir, err)
		}

		for _, e := range entries {
			switch {
			case e.Type == "dir":
				dirs = append(dirs, e.Path)
			case e.Type == "file" && isImage(e.Name):
				content, err := c.Blob(ctx, location.Owner, location.Repo, e.SHA)
				if err != nil {
					return nil, fmt.Errorf("fetching %s: %w", e.Path, err)
				}
				images = append(images, rfd2pdf.Image{Path: e.Path, Content: content})
			}
		}
	}

	return images, nil
}

// FetchDocument reads the RFD document, preferring Asciidoc over Markdown.
func (c *Client) FetchDocument(ctx context.Context, number rfd2pdf.Number, location rfd2pdf.Location) (*rfd2pdf.RenderableRFD, error) {
	dir := strings.TrimPrefix(number.RepoPath(), "/")

	for _, name := range documentNames {
		p := path.Join(dir, name)
		data, err := c.FileRaw(ctx, location.Owner, location.Repo, p, location.Ref())
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}

		format, err := rfd2pdf.FormatFromPath(name)
		if err != nil {
			return nil, err
		}
		return rfd2pdf.NewFromBytes(format, data)
	}

	return nil, fmt.Errorf("RFD %s at %s: %w", number, location, ErrNotFound)
}

func isImage(name string) bool {
	return imageExtensions[strings.ToLower(path.Ext(name))]
}
