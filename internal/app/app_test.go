package app

import (
	"testing"

	"github.com/pfassina/notelink/internal/config"
	"github.com/pfassina/notelink/internal/editor"
	"github.com/pfassina/notelink/internal/logger"
)

func TestHandleEventQuit(t *testing.T) {
	a := New(config.Default(), nil, logger.Discard())

	if done := a.handleEvent(editor.QuitEvent{}); !done {
		t.Error("QuitEvent should end the session")
	}
}

func TestHandleEventBufWrittenUnbound(t *testing.T) {
	a := New(config.Default(), nil, logger.Discard())

	// A write event before any notebook is bound is a no-op, not a crash.
	if done := a.handleEvent(editor.BufWrittenEvent{Path: "/tmp/x.md"}); done {
		t.Error("BufWrittenEvent should not end the session")
	}
}
