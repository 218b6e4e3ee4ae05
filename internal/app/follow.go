package app

import (
	"path/filepath"
	"strings"

	"github.com/pfassina/notelink/internal/bufpath"
	"github.com/pfassina/notelink/internal/config"
	"github.com/pfassina/notelink/internal/editor"
	"github.com/pfassina/notelink/internal/markdown"
	"github.com/pfassina/notelink/internal/notebook"
)

// followLink handles the follow-or-create keypress: find the wiki link
// under the cursor, then open the note it names, creating it first when
// it doesn't exist yet.
func (a *App) followLink() {
	bufName, err := a.ed.BufferName()
	if err != nil {
		a.fail("read buffer name", err)
		return
	}

	path, ok := bufpath.Resolve(bufName)
	if !ok {
		a.warn("buffer has no local file path")
		return
	}
	if !filepath.IsAbs(path) {
		abs, err := a.ed.AbsPath(path)
		if err != nil {
			a.fail("expand buffer path", err)
			return
		}
		path = abs
	}

	root, ok := notebook.FindRoot(path)
	if !ok {
		a.warn("buffer is not inside a notebook")
		return
	}
	if err := a.bind(root); err != nil {
		a.fail("bind notebook", err)
		return
	}

	line, err := a.ed.CurrentLine()
	if err != nil {
		a.fail("read current line", err)
		return
	}
	_, col, err := a.ed.CursorPosition()
	if err != nil {
		a.fail("read cursor position", err)
		return
	}

	text, ok := markdown.LinkAt(line, col)
	if !ok {
		a.warn("no wiki link under cursor")
		return
	}
	ref := markdown.ParseRef(text)
	if ref.Title == "" {
		a.warn("no wiki link under cursor")
		return
	}

	note, found, err := a.db.LookupHref(ref.Title)
	if err != nil {
		a.fail("look up note", err)
		return
	}

	if found {
		if a.cfg.OnExisting == config.OnExistingNoop {
			a.ed.Notify("note exists: "+note.Path, editor.SeverityInfo)
			return
		}
		a.openNote(note.Path, ref.Heading)
		return
	}

	absPath, err := a.nb.CreateNote(notebook.CreateOptions{
		Title:    ref.Title,
		Dir:      a.cfg.NoteDir,
		Template: a.cfg.Template,
	})
	if err != nil {
		a.fail("create note", err)
		return
	}
	// Index immediately; the watcher will catch it too, but the user may
	// follow the same link again before the debounce fires.
	if err := a.indexer.IndexFile(absPath); err != nil {
		a.log.Warn("index new note", "path", absPath, "error", err)
	}

	a.log.Info("note created", "title", ref.Title, "path", absPath)
	a.openNote(a.relToRoot(absPath), ref.Heading)
}

// goBack reopens the previously visited note.
func (a *App) goBack() {
	if a.nb == nil || a.prevFile == "" {
		a.warn("no previous note")
		return
	}
	a.openNote(a.prevFile, "")
}

// bufWritten reindexes a saved buffer when it belongs to the bound
// notebook.
func (a *App) bufWritten(absPath string) {
	if a.indexer == nil {
		return
	}
	rel, err := filepath.Rel(a.nb.Root, absPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return
	}
	if err := a.indexer.IndexFile(absPath); err != nil {
		a.log.Warn("reindex written buffer", "path", absPath, "error", err)
	}
}

// openNote opens a notebook-relative note path in the editor and, when
// a heading is given, places the cursor on it.
func (a *App) openNote(relPath, heading string) {
	absPath := filepath.Join(a.nb.Root, relPath)
	if err := a.ed.OpenFile(absPath); err != nil {
		a.fail("open note", err)
		return
	}

	if a.currentFile != "" && a.currentFile != relPath {
		a.prevFile = a.currentFile
	}
	a.currentFile = relPath
	a.saveState()

	if heading == "" {
		return
	}
	if line, err := a.db.HeadingLine(relPath, heading); err == nil && line > 0 {
		if err := a.ed.SetCursor(line, 0); err != nil {
			a.log.Warn("jump to heading", "heading", heading, "error", err)
		}
		return
	}
	// Index has no line for it; let Neovim search the buffer instead.
	if err := a.ed.SearchHeading(heading); err != nil {
		a.log.Warn("search heading", "heading", heading, "error", err)
	}
}

// warn surfaces a "nothing to do" outcome to the user.
func (a *App) warn(msg string) {
	a.log.Debug(msg)
	if err := a.ed.Notify(msg, editor.SeverityWarn); err != nil {
		a.log.Warn("notify", "error", err)
	}
}

// fail surfaces a failed operation to the user.
func (a *App) fail(op string, err error) {
	a.log.Error(op, "error", err)
	if nerr := a.ed.Notify(op+": "+err.Error(), editor.SeverityError); nerr != nil {
		a.log.Warn("notify", "error", nerr)
	}
}
