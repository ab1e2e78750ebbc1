// Package workspace manages the per-render temporary directory in which
// images are staged and the PDF backends run.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Dir is the subfolder of the root that holds every render workspace.
const Dir = "rfd-render"

// dirPermissions keeps staged content private to the rendering user.
const dirPermissions = 0o750

// ErrNilID is returned when a workspace is requested for the zero UUID.
var ErrNilID = errors.New("workspace: render id must not be nil")

// Workspace is the directory <root>/rfd-render/<id>. It is created lazily
// by Path and removed by Cleanup. One workspace belongs to exactly one
// render; the id keeps concurrent renders apart.
type Workspace struct {
	root string
	id   uuid.UUID
}

// New returns the workspace for id under root. An empty root selects the
// process temporary directory.
func New(root string, id uuid.UUID) *Workspace {
	if root == "" {
		root = os.TempDir()
	}
	return &Workspace{root: root, id: id}
}

// Dir returns the workspace path without touching the filesystem.
func (w *Workspace) Dir() string {
	return filepath.Join(w.root, Dir, w.id.String())
}

// Path returns the workspace path, creating it and any missing parents.
// Calling it again returns the same path.
func (w *Workspace) Path() (string, error) {
	if w.id == uuid.Nil {
		return "", ErrNilID
	}
	dir := w.Dir()
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return "", fmt.Errorf("creating workspace %s: %w", dir, err)
	}
	return dir, nil
}

// Exists reports whether the workspace directory is present.
func (w *Workspace) Exists() bool {
	info, err := os.Stat(w.Dir())
	return err == nil && info.IsDir()
}

// Cleanup removes the workspace and everything staged in it. A workspace
// that was never created is not an error.
func (w *Workspace) Cleanup() error {
	if !w.Exists() {
		return nil
	}
	if err := os.RemoveAll(w.Dir()); err != nil {
		return fmt.Errorf("removing workspace %s: %w", w.Dir(), err)
	}
	return nil
}
