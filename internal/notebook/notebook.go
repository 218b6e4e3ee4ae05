// Package notebook manages a directory tree of interlinked markdown
// notes, marked at its root by a .notelink directory.
package notebook

import (
	"os"
	"path/filepath"
)

// MarkerDir marks a directory as a notebook root and holds notelink's
// index, templates and logs.
const MarkerDir = ".notelink"

// Notebook is a recognized notes directory tree.
type Notebook struct {
	Root string
}

func Open(root string) *Notebook {
	return &Notebook{Root: root}
}

// FindRoot walks up from path looking for a directory containing
// MarkerDir. path may name a file; the walk starts at its directory.
func FindRoot(path string) (string, bool) {
	dir := path
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, MarkerDir)); err == nil && info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// EnsureLayout creates the marker and templates directories.
func (nb *Notebook) EnsureLayout() error {
	return os.MkdirAll(filepath.Join(nb.Root, MarkerDir, "templates"), 0755)
}

// MarkerPath returns the path of a file inside the marker directory.
func (nb *Notebook) MarkerPath(name string) string {
	return filepath.Join(nb.Root, MarkerDir, name)
}
