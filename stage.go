package rfd2pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-rfd2pdf/internal/fileutil"
)

// stageImages fetches the images stored next to the RFD and writes them
// into dir, keeping their layout relative to the RFD directory. Images are
// written one at a time; on failure the ones already written stay in place.
func stageImages(ctx context.Context, logger *log.Logger, dir string, source ImageSource, number Number, location Location) *ContentError {
	images, err := source.ListImages(ctx, number, location)
	if err != nil {
		return newContentError(ErrSourceControl, err)
	}

	prefix := number.RepoPath()
	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return newContentError(ErrIO, err)
		}

		path, err := fileutil.JoinWithin(dir, stagedPath(prefix, img.Path))
		if err != nil {
			return newContentError(ErrFileIO, err)
		}

		data, err := fileutil.DecodeBase64(img.Content)
		if err != nil {
			return newContentError(ErrDecode, fmt.Errorf("%s: %w", img.Path, err))
		}

		if err := fileutil.WriteFile(path, data); err != nil {
			return newContentError(ErrFileIO, err)
		}
		logger.Info("Wrote embedded image", "path", path)
	}
	return nil
}

// stagedPath returns the position of a repository file relative to the RFD
// directory. Leading and trailing slashes on either side are ignored and the
// directory is only stripped on a whole path segment, so "/7/" strips
// "/7/img/a.png" to "img/a.png" but leaves "/70/a.png" alone.
func stagedPath(rfdDir, path string) string {
	dir := strings.Trim(rfdDir, "/")
	p := strings.Trim(path, "/")
	if dir == "" {
		return p
	}
	if p == dir {
		return ""
	}
	if rest, ok := strings.CutPrefix(p, dir+"/"); ok {
		return strings.TrimLeft(rest, "/")
	}
	return p
}
