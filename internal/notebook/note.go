package notebook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// CreateOptions controls new note creation.
type CreateOptions struct {
	Title    string
	Dir      string            // subdirectory relative to the notebook root
	Template string            // template name, "" for the built-in default
	Extra    map[string]string // extra template variables
}

// CreateNote creates a new note for the given title and returns its
// absolute path. An existing note for the same title is returned
// unchanged, never overwritten.
func (nb *Notebook) CreateNote(opts CreateOptions) (string, error) {
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		return "", fmt.Errorf("create note: empty title")
	}

	slug := Slugify(title)
	if slug == "" {
		return "", fmt.Errorf("create note: title %q has no usable characters", title)
	}

	relPath := filepath.Join(opts.Dir, slug+".md")
	absPath := filepath.Join(nb.Root, relPath)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return "", fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		return absPath, nil
	}

	tmpl, err := nb.lookupTemplate(opts.Template)
	if err != nil {
		return "", err
	}

	content := ExpandTemplate(tmpl, title, opts.Extra)
	if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}

	return absPath, nil
}

// NewNoteID returns a short random note identifier for frontmatter.
func NewNoteID() string {
	return uuid.NewString()[:8]
}
