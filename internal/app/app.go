// Package app wires the editor, notebook and index together: it owns
// the event loop that turns keypress notifications from Neovim into
// follow-or-create actions.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/pfassina/notelink/internal/config"
	"github.com/pfassina/notelink/internal/editor"
	"github.com/pfassina/notelink/internal/index"
	"github.com/pfassina/notelink/internal/logger"
	"github.com/pfassina/notelink/internal/notebook"
	"github.com/pfassina/notelink/internal/session"
)

type App struct {
	cfg config.Config
	ed  *editor.Editor
	log *logger.Logger

	// Bound notebook state; rebound when the user follows a link from a
	// buffer inside a different notebook.
	nb      *notebook.Notebook
	db      *index.DB
	indexer *index.Indexer
	watcher *index.Watcher
	store   *session.Store

	// Navigation history, as paths relative to the bound notebook root.
	currentFile string
	prevFile    string

	watcherErr chan error
}

func New(cfg config.Config, ed *editor.Editor, log *logger.Logger) *App {
	return &App{
		cfg:        cfg,
		ed:         ed,
		log:        log,
		watcherErr: make(chan error, 1),
	}
}

// Run binds the configured notebook, installs the editor hooks and
// processes events until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if err := a.bind(a.cfg.NotebookPath); err != nil {
		return err
	}
	defer a.unbind()

	if err := a.ed.SetupKeymaps(a.cfg.FollowKey, a.cfg.BackKey); err != nil {
		return fmt.Errorf("setup keymaps: %w", err)
	}
	if err := a.ed.SetupWriteNotify(); err != nil {
		return fmt.Errorf("setup write notify: %w", err)
	}
	if err := a.ed.SetupQuitNotify(); err != nil {
		return fmt.Errorf("setup quit notify: %w", err)
	}

	a.log.Info("attached", "notebook", a.nb.Root, "follow_key", a.cfg.FollowKey)

	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-a.watcherErr:
			return fmt.Errorf("watcher: %w", err)

		case ev, ok := <-a.ed.Events():
			if !ok {
				return nil
			}
			if done := a.handleEvent(ev); done {
				return nil
			}
		}
	}
}

// handleEvent dispatches one editor event. It reports true when the
// event ends the session (Neovim is exiting).
func (a *App) handleEvent(ev any) bool {
	switch ev := ev.(type) {
	case editor.FollowEvent:
		a.followLink()
	case editor.BackEvent:
		a.goBack()
	case editor.BufWrittenEvent:
		a.bufWritten(ev.Path)
	case editor.QuitEvent:
		a.log.Info("neovim exiting")
		return true
	}
	return false
}

// bind attaches the app to the notebook rooted at root: opens its
// index, runs a full reindex and starts the file watcher.
func (a *App) bind(root string) error {
	if a.nb != nil && a.nb.Root == root {
		return nil
	}
	a.unbind()

	nb := notebook.Open(root)
	if err := nb.EnsureLayout(); err != nil {
		return fmt.Errorf("notebook layout: %w", err)
	}

	db, err := index.Open(nb.MarkerPath("index.db"))
	if err != nil {
		return fmt.Errorf("open index: %w", err)
	}

	idx := index.NewIndexer(db, root)
	if err := idx.IndexAll(); err != nil {
		db.Close()
		return fmt.Errorf("index notebook: %w", err)
	}

	w, err := index.NewWatcher(idx, root, func(path string) {
		a.log.Debug("reindexed", "path", path)
	}, func(err error) {
		select {
		case a.watcherErr <- err:
		default:
		}
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("start watcher: %w", err)
	}
	go w.Start()

	a.nb = nb
	a.db = db
	a.indexer = idx
	a.watcher = w
	a.store = session.NewStore(root)

	state, err := a.store.Load()
	if err != nil {
		a.log.Warn("session state unreadable", "error", err)
		state = session.State{}
	}
	a.currentFile = state.LastFile
	a.prevFile = state.PrevFile

	a.log.Info("notebook bound", "root", root)
	return nil
}

// unbind stops the watcher and closes the index of the bound notebook.
func (a *App) unbind() {
	if a.watcher != nil {
		a.watcher.Stop()
		a.watcher = nil
	}
	if a.db != nil {
		a.db.Close()
		a.db = nil
	}
	a.nb = nil
	a.indexer = nil
	a.store = nil
	a.currentFile = ""
	a.prevFile = ""
}

// saveState persists the navigation history for the bound notebook.
func (a *App) saveState() {
	if a.store == nil {
		return
	}
	err := a.store.Save(session.State{
		LastFile: a.currentFile,
		PrevFile: a.prevFile,
	})
	if err != nil {
		a.log.Warn("save session state", "error", err)
	}
}

// relToRoot converts an absolute path to notebook-relative when possible.
func (a *App) relToRoot(absPath string) string {
	rel, err := filepath.Rel(a.nb.Root, absPath)
	if err != nil {
		return absPath
	}
	return rel
}
