package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pfassina/notelink/internal/app"
	"github.com/pfassina/notelink/internal/config"
	"github.com/pfassina/notelink/internal/editor"
	"github.com/pfassina/notelink/internal/index"
	"github.com/pfassina/notelink/internal/logger"
	"github.com/pfassina/notelink/internal/notebook"
)

func main() {
	cfg := config.Default()
	if _, err := config.LoadFile(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "error loading config:", err)
		os.Exit(1)
	}

	nbPath := flag.String("notebook", cfg.NotebookPath, "path to notebook directory")
	socket := flag.String("socket", cfg.Socket, "nvim socket path (default: $NVIM)")
	followKey := flag.String("follow-key", cfg.FollowKey, "normal-mode mapping for follow-or-create")
	backKey := flag.String("back-key", cfg.BackKey, "normal-mode mapping for go back")
	onExisting := flag.String("on-existing", cfg.OnExisting, "behavior when a followed note exists: open|noop")
	noteDir := flag.String("note-dir", cfg.NoteDir, "subdirectory for new notes, relative to the notebook root")
	template := flag.String("template", cfg.Template, "template name for new notes")
	logLevel := flag.String("log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	logFile := flag.String("log-file", cfg.LogFile, "log file (default: <notebook>/.notelink/notelink.log)")
	reindex := flag.Bool("index", false, "rebuild the note index and exit")
	backlinksFor := flag.String("backlinks", "", "print notes linking to the given note and exit")

	flag.Parse()

	// Normalize notebook path: expand ~ and make absolute so the index,
	// watcher and Neovim all agree on paths.
	cfg.NotebookPath = config.ExpandHome(*nbPath)
	if abs, err := filepath.Abs(cfg.NotebookPath); err == nil {
		cfg.NotebookPath = abs
	}
	cfg.Socket = *socket
	cfg.FollowKey = *followKey
	cfg.BackKey = *backKey
	cfg.OnExisting = *onExisting
	cfg.NoteDir = *noteDir
	cfg.Template = *template
	cfg.LogLevel = *logLevel
	cfg.LogFile = config.ExpandHome(*logFile)

	if cfg.OnExisting != config.OnExistingOpen && cfg.OnExisting != config.OnExistingNoop {
		fmt.Fprintf(os.Stderr, "invalid --on-existing value %q\n", cfg.OnExisting)
		os.Exit(1)
	}

	nb := notebook.Open(cfg.NotebookPath)
	if err := nb.EnsureLayout(); err != nil {
		fmt.Fprintln(os.Stderr, "error creating notebook dir:", err)
		os.Exit(1)
	}

	if *reindex {
		runIndex(nb)
		return
	}
	if *backlinksFor != "" {
		runBacklinks(nb, *backlinksFor)
		return
	}
	runSidecar(cfg, nb)
}

// runBacklinks resolves a note by href and prints every note linking
// to it, with the link positions in their source.
func runBacklinks(nb *notebook.Notebook, href string) {
	db, err := index.Open(nb.MarkerPath("index.db"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error opening index:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := index.NewIndexer(db, nb.Root).IndexAll(); err != nil {
		fmt.Fprintln(os.Stderr, "error indexing:", err)
		os.Exit(1)
	}

	ref, found, err := db.LookupHref(href)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error looking up note:", err)
		os.Exit(1)
	}
	if !found {
		fmt.Fprintf(os.Stderr, "no note matches %q\n", href)
		os.Exit(1)
	}

	backlinks, err := db.Backlinks(ref.Path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading backlinks:", err)
		os.Exit(1)
	}
	for _, b := range backlinks {
		fmt.Printf("%s:%d:%d\n", b.SourcePath, b.Line, b.Col)
	}
}

// runIndex rebuilds the index from scratch and prints a summary.
func runIndex(nb *notebook.Notebook) {
	db, err := index.Open(nb.MarkerPath("index.db"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error opening index:", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := index.NewIndexer(db, nb.Root).IndexAll(); err != nil {
		fmt.Fprintln(os.Stderr, "error indexing:", err)
		os.Exit(1)
	}

	stats, err := db.Stats()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error reading stats:", err)
		os.Exit(1)
	}
	fmt.Printf("indexed %d notes, %d headings, %d links\n", stats.Notes, stats.Headings, stats.Links)
}

// runSidecar attaches to Neovim and serves follow/back events until the
// process is signalled or the RPC connection dies.
func runSidecar(cfg config.Config, nb *notebook.Notebook) {
	socket := cfg.Socket
	if socket == "" {
		socket = os.Getenv("NVIM")
	}
	if socket == "" {
		fmt.Fprintln(os.Stderr, "no nvim socket: set --socket or run inside :terminal ($NVIM)")
		os.Exit(1)
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = nb.MarkerPath("notelink.log")
	}
	log, cleanup, err := logger.NewFile(logPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error opening log file:", err)
		os.Exit(1)
	}
	defer cleanup()

	ed, err := editor.Connect(socket)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer ed.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.New(cfg, ed, log).Run(ctx); err != nil {
		log.Error("sidecar exited", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
