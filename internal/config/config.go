package config

import (
	"os"
	"path/filepath"
)

// OnExisting selects what happens when a followed link already resolves
// to a note.
const (
	OnExistingOpen = "open" // open the note (default)
	OnExistingNoop = "noop" // do nothing, just report
)

type Config struct {
	NotebookPath string // default notebook when a buffer isn't inside one
	Socket       string // nvim socket; empty means $NVIM
	FollowKey    string // normal-mode mapping for follow-or-create
	BackKey      string // normal-mode mapping for go back
	OnExisting   string // "open" or "noop"
	NoteDir      string // subdirectory (relative to root) for new notes
	Template     string // template name in .notelink/templates, "" = built-in
	LogLevel     string
	LogFile      string // empty = <root>/.notelink/notelink.log
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		NotebookPath: filepath.Join(home, "notes"),
		FollowKey:    "<CR>",
		BackKey:      "gb",
		OnExisting:   OnExistingOpen,
		NoteDir:      "",
		Template:     "",
		LogLevel:     "info",
	}
}
