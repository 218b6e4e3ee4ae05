package index

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatcherDebounceAfterStop(t *testing.T) {
	// A debounce timer armed before Stop must not touch the index once
	// the watcher is stopped.
	root := t.TempDir()
	notePath := filepath.Join(root, "note.md")
	if err := os.WriteFile(notePath, []byte("# Note\n"), 0644); err != nil {
		t.Fatal(err)
	}

	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	changed := false
	w, err := NewWatcher(NewIndexer(db, root), root, func(string) { changed = true }, nil)
	if err != nil {
		t.Fatal(err)
	}

	w.handleEvent(fsnotify.Event{Name: notePath, Op: fsnotify.Create})
	if err := w.Stop(); err != nil {
		t.Fatal(err)
	}

	time.Sleep(350 * time.Millisecond)

	stats, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Notes != 0 {
		t.Errorf("indexed %d notes after Stop, want 0", stats.Notes)
	}
	if changed {
		t.Error("onChange fired after Stop")
	}
}

func TestWatcherIndexesOnEvent(t *testing.T) {
	root := t.TempDir()
	notePath := filepath.Join(root, "note.md")
	if err := os.WriteFile(notePath, []byte("# Note\n"), 0644); err != nil {
		t.Fatal(err)
	}

	db, err := OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	changed := make(chan string, 1)
	w, err := NewWatcher(NewIndexer(db, root), root, func(p string) { changed <- p }, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	w.handleEvent(fsnotify.Event{Name: notePath, Op: fsnotify.Write})

	select {
	case p := <-changed:
		if p != notePath {
			t.Errorf("onChange path: got %q, want %q", p, notePath)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("onChange never fired")
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.Notes != 1 {
		t.Errorf("indexed %d notes, want 1", stats.Notes)
	}
}
