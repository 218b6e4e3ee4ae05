package index

import (
	"database/sql"
	"strings"
)

// NoteRef identifies an indexed note.
type NoteRef struct {
	Path  string // relative to the notebook root
	Title string
}

// LookupHref finds the note a wiki link title refers to. Matches, in
// one query: exact relative path, basename, case-insensitive title, or
// slug. Shorter paths win so a root-level note beats a nested duplicate.
func (db *DB) LookupHref(href string) (NoteRef, bool, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return NoteRef{}, false, nil
	}

	target := href
	if !strings.HasSuffix(target, ".md") {
		target += ".md"
	}

	var ref NoteRef
	err := db.conn.QueryRow(`
		SELECT path, title FROM notes
		WHERE path = ?
		   OR path LIKE '%/' || ?
		   OR lower(title) = lower(?)
		   OR slug = ?
		ORDER BY length(path)
		LIMIT 1
	`, target, target, href, slugify(href)).Scan(&ref.Path, &ref.Title)
	if err == sql.ErrNoRows {
		return NoteRef{}, false, nil
	}
	if err != nil {
		return NoteRef{}, false, err
	}
	return ref, true, nil
}

// HeadingLine returns the 1-based line of the first heading in the note
// matching text (case-insensitive, prefix fallback). Returns 0 when the
// note has no such heading.
func (db *DB) HeadingLine(notePath, text string) (int, error) {
	var line int
	err := db.conn.QueryRow(`
		SELECT h.line FROM headings h
		JOIN notes n ON n.id = h.note_id
		WHERE n.path = ? AND lower(h.text) = lower(?)
		ORDER BY h.line
		LIMIT 1
	`, notePath, text).Scan(&line)
	if err == nil {
		return line, nil
	}
	if err != sql.ErrNoRows {
		return 0, err
	}

	err = db.conn.QueryRow(`
		SELECT h.line FROM headings h
		JOIN notes n ON n.id = h.note_id
		WHERE n.path = ? AND lower(h.text) LIKE lower(?) || '%'
		ORDER BY h.line
		LIMIT 1
	`, notePath, text).Scan(&line)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return line, nil
}

// Backlink is a wiki link pointing at a note from elsewhere.
type Backlink struct {
	SourcePath  string
	SourceTitle string
	Line        int
	Col         int
}

// Backlinks returns the notes linking to the given note path, with the
// link positions in their source. Links are stored by target filename,
// so both the relative path and the bare basename match.
func (db *DB) Backlinks(notePath string) ([]Backlink, error) {
	base := notePath
	if i := strings.LastIndex(base, "/"); i != -1 {
		base = base[i+1:]
	}

	rows, err := db.conn.Query(`
		SELECT n.path, n.title, l.line, l.col
		FROM links l
		JOIN notes n ON n.id = l.source_id
		WHERE l.target_path = ? OR l.target_path = ?
		ORDER BY n.path, l.line
	`, notePath, base)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var backlinks []Backlink
	for rows.Next() {
		var b Backlink
		if err := rows.Scan(&b.SourcePath, &b.SourceTitle, &b.Line, &b.Col); err != nil {
			return nil, err
		}
		backlinks = append(backlinks, b)
	}
	return backlinks, rows.Err()
}
