// Package fileutil provides file and path utility functions.
package fileutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File permission constants.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath   = errors.New("path cannot be empty")
	ErrOutsideBase = errors.New("path escapes base directory")
)

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), DirPermissions); err != nil {
		return fmt.Errorf("creating parent of %s: %w", path, err)
	}
	// #nosec G306 -- staged images and rendered documents are meant to be readable
	if err := os.WriteFile(path, data, FilePermissions); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// CopyTree copies the regular files under src into dst, keeping their
// layout, and returns how many were copied. Directories are created only
// for files, so an empty src leaves dst untouched.
func CopyTree(src, dst string) (int, error) {
	copied := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		// #nosec G304 -- path comes from walking src
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err := WriteFile(filepath.Join(dst, rel), data); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

// DecodeBase64 decodes standard base64 content. Line breaks are ignored, as
// the GitHub API wraps encoded content at 60 columns.
func DecodeBase64(content string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, content)
	return base64.StdEncoding.DecodeString(clean)
}

// JoinWithin joins rel onto base and rejects results that leave base.
func JoinWithin(base, rel string) (string, error) {
	if rel == "" {
		return "", ErrEmptyPath
	}
	joined := filepath.Join(base, filepath.FromSlash(rel))
	r, err := filepath.Rel(base, joined)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrOutsideBase, rel)
	}
	return joined, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
