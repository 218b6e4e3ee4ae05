package index

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL DEFAULT '',
    slug TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    mod_time INTEGER NOT NULL,
    size INTEGER NOT NULL DEFAULT 0,
    hash TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_notes_slug ON notes(slug);
CREATE INDEX IF NOT EXISTS idx_notes_title ON notes(title);

CREATE TABLE IF NOT EXISTS headings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    note_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    level INTEGER NOT NULL,
    text TEXT NOT NULL,
    line INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source_id INTEGER NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
    target_path TEXT NOT NULL,
    heading TEXT DEFAULT '',
    line INTEGER NOT NULL,
    col INTEGER NOT NULL
);
`

// DB wraps the SQLite note index.
type DB struct {
	conn *sql.DB
}

// Open opens or creates the index database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// OpenMemory opens an in-memory index (for testing).
func OpenMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(on)")
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(schema); err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			return nil, fmt.Errorf("init schema: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// UpsertNote inserts or updates a note and returns its ID.
func (db *DB) UpsertNote(path, title, slug, tags, hash string, modTime, size int64) (int64, error) {
	_, err := db.conn.Exec(`
		INSERT INTO notes (path, title, slug, tags, mod_time, size, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			title = excluded.title,
			slug = excluded.slug,
			tags = excluded.tags,
			mod_time = excluded.mod_time,
			size = excluded.size,
			hash = excluded.hash
	`, path, title, slug, tags, modTime, size, hash)
	if err != nil {
		return 0, err
	}

	var id int64
	err = db.conn.QueryRow("SELECT id FROM notes WHERE path = ?", path).Scan(&id)
	return id, err
}

// GetNoteHash returns the stored content hash for a note path.
func (db *DB) GetNoteHash(path string) (string, error) {
	var hash string
	err := db.conn.QueryRow("SELECT hash FROM notes WHERE path = ?", path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// DeleteNote removes a note and its headings and links.
func (db *DB) DeleteNote(path string) error {
	_, err := db.conn.Exec("DELETE FROM notes WHERE path = ?", path)
	return err
}

// InsertHeading adds a heading record.
func (db *DB) InsertHeading(noteID int64, level int, text string, line int) error {
	_, err := db.conn.Exec("INSERT INTO headings (note_id, level, text, line) VALUES (?, ?, ?, ?)",
		noteID, level, text, line)
	return err
}

// ClearNoteHeadings removes all headings for a note.
func (db *DB) ClearNoteHeadings(noteID int64) error {
	_, err := db.conn.Exec("DELETE FROM headings WHERE note_id = ?", noteID)
	return err
}

// InsertLink adds an outgoing wiki link record.
func (db *DB) InsertLink(sourceID int64, targetPath, heading string, line, col int) error {
	_, err := db.conn.Exec(`
		INSERT INTO links (source_id, target_path, heading, line, col)
		VALUES (?, ?, ?, ?, ?)
	`, sourceID, targetPath, heading, line, col)
	return err
}

// ClearNoteLinks removes all links from a note.
func (db *DB) ClearNoteLinks(noteID int64) error {
	_, err := db.conn.Exec("DELETE FROM links WHERE source_id = ?", noteID)
	return err
}

// Stats summarizes the index contents.
type Stats struct {
	Notes    int
	Headings int
	Links    int
}

// Stats returns counts of indexed notes, headings and links.
func (db *DB) Stats() (Stats, error) {
	var s Stats
	row := db.conn.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM notes),
			(SELECT COUNT(*) FROM headings),
			(SELECT COUNT(*) FROM links)
	`)
	err := row.Scan(&s.Notes, &s.Headings, &s.Links)
	return s, err
}
