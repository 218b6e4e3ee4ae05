package index

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfassina/notelink/internal/markdown"
	"github.com/pfassina/notelink/internal/notebook"
)

// Indexer keeps the note index in sync with the notebook tree.
type Indexer struct {
	db     *DB
	parser *markdown.Parser
	root   string
}

func NewIndexer(db *DB, root string) *Indexer {
	return &Indexer{
		db:     db,
		parser: markdown.NewParser(),
		root:   root,
	}
}

// IndexAll performs a full index of all markdown files in the notebook.
func (idx *Indexer) IndexAll() error {
	// Clear hashes so every file is re-read; links and headings are
	// derived data rebuilt per file.
	if _, err := idx.db.conn.Exec("UPDATE notes SET hash = ''"); err != nil {
		return fmt.Errorf("clear hashes: %w", err)
	}

	return filepath.Walk(idx.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() && strings.HasPrefix(info.Name(), ".") && path != idx.root {
			return filepath.SkipDir
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".md") {
			return nil
		}
		return idx.IndexFile(path)
	})
}

// IndexFile indexes a single markdown file. Unchanged files (by content
// hash) are skipped.
func (idx *Indexer) IndexFile(absPath string) error {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", absPath, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat %s: %w", absPath, err)
	}

	relPath, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		relPath = absPath
	}

	hash := fmt.Sprintf("%x", sha256.Sum256(content))
	existingHash, _ := idx.db.GetNoteHash(relPath)
	if hash == existingHash {
		return nil // unchanged
	}

	parsed := idx.parser.Parse(content)

	title := titleFromPath(relPath)
	var tags []string
	if parsed.Frontmatter != nil {
		if parsed.Frontmatter.Title != "" {
			title = parsed.Frontmatter.Title
		}
		tags = parsed.Frontmatter.Tags
	}

	noteID, err := idx.db.UpsertNote(relPath, title, slugify(title),
		strings.Join(tags, " "), hash, info.ModTime().Unix(), info.Size())
	if err != nil {
		return fmt.Errorf("upsert note: %w", err)
	}

	if err := idx.db.ClearNoteHeadings(noteID); err != nil {
		return fmt.Errorf("clear note headings: %w", err)
	}
	for _, h := range parsed.Headings {
		if err := idx.db.InsertHeading(noteID, h.Level, h.Text, h.Line); err != nil {
			return fmt.Errorf("insert heading %q: %w", h.Text, err)
		}
	}

	// Links are stored by target basename for name-based resolution.
	if err := idx.db.ClearNoteLinks(noteID); err != nil {
		return fmt.Errorf("clear note links: %w", err)
	}
	for _, link := range parsed.WikiLinks {
		target := filepath.Base(markdown.ResolveTarget(link.Title))
		if target == "" || target == "." {
			continue
		}
		if err := idx.db.InsertLink(noteID, target, link.Heading, link.Line, link.Col); err != nil {
			return fmt.Errorf("insert link to %q: %w", target, err)
		}
	}

	return nil
}

// RemoveFile removes a file from the index.
func (idx *Indexer) RemoveFile(absPath string) error {
	relPath, err := filepath.Rel(idx.root, absPath)
	if err != nil {
		relPath = absPath
	}
	return idx.db.DeleteNote(relPath)
}

func titleFromPath(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return name
}

func slugify(title string) string {
	return notebook.Slugify(title)
}
