package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// fileConfig mirrors Config with pointer fields so we can distinguish
// "not set" from zero values when merging TOML.
type fileConfig struct {
	NotebookPath *string `toml:"notebook_path"`
	Socket       *string `toml:"socket"`
	FollowKey    *string `toml:"follow_key"`
	BackKey      *string `toml:"back_key"`
	OnExisting   *string `toml:"on_existing"`
	NoteDir      *string `toml:"note_dir"`
	Template     *string `toml:"template"`
	LogLevel     *string `toml:"log_level"`
	LogFile      *string `toml:"log_file"`
}

// ConfigDir returns the notelink config directory, respecting XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "notelink")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "notelink")
}

// ConfigPath returns the full path to config.toml.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// LoadFile reads config.toml and merges non-nil fields into cfg.
// Returns true if the file existed, false otherwise.
func LoadFile(cfg *Config) (bool, error) {
	path := ConfigPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return true, err
	}

	if fc.NotebookPath != nil {
		cfg.NotebookPath = ExpandHome(*fc.NotebookPath)
	}
	if fc.Socket != nil {
		cfg.Socket = *fc.Socket
	}
	if fc.FollowKey != nil {
		cfg.FollowKey = *fc.FollowKey
	}
	if fc.BackKey != nil {
		cfg.BackKey = *fc.BackKey
	}
	if fc.OnExisting != nil {
		cfg.OnExisting = *fc.OnExisting
	}
	if fc.NoteDir != nil {
		cfg.NoteDir = *fc.NoteDir
	}
	if fc.Template != nil {
		cfg.Template = *fc.Template
	}
	if fc.LogLevel != nil {
		cfg.LogLevel = *fc.LogLevel
	}
	if fc.LogFile != nil {
		cfg.LogFile = ExpandHome(*fc.LogFile)
	}

	return true, nil
}

// ExpandHome replaces a leading ~/ (or a bare ~) with the user's home
// directory. Other ~-prefixed names (~user, ~backup) pass through.
func ExpandHome(path string) string {
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path[2:])
}
