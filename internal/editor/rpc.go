package editor

import (
	"fmt"
	"time"

	"github.com/neovim/go-client/nvim"
)

// Severity maps to vim.log.levels for user-facing notifications.
type Severity int

const (
	SeverityInfo  Severity = 2
	SeverityWarn  Severity = 3
	SeverityError Severity = 4
)

// Events delivered to the app loop.
type (
	// FollowEvent fires when the user presses the follow-link mapping.
	FollowEvent struct{}
	// BackEvent fires when the user presses the go-back mapping.
	BackEvent struct{}
	// BufWrittenEvent fires after Neovim writes a named buffer.
	BufWrittenEvent struct{ Path string }
	// QuitEvent fires when Neovim is about to exit; the sidecar should
	// shut down with it.
	QuitEvent struct{}
)

// Editor manages the Neovim RPC connection for the sidecar.
type Editor struct {
	client *nvim.Nvim
	events chan any
}

// Connect dials the Neovim socket. It retries briefly since the socket
// may not be ready immediately after Neovim starts.
func Connect(socketPath string) (*Editor, error) {
	var client *nvim.Nvim
	var err error

	for i := 0; i < 50; i++ {
		client, err = nvim.Dial(socketPath)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to nvim socket: %w", err)
	}

	return &Editor{
		client: client,
		events: make(chan any, 16),
	}, nil
}

// Events returns the channel the RPC handlers deliver events on.
func (e *Editor) Events() <-chan any {
	return e.events
}

// send delivers an event without ever blocking the RPC dispatch
// goroutine; a full queue drops the oldest pending event.
func (e *Editor) send(ev any) {
	for {
		select {
		case e.events <- ev:
			return
		default:
			select {
			case <-e.events:
			default:
			}
		}
	}
}

// SetupKeymaps installs normal-mode mappings for markdown buffers that
// notify the sidecar instead of acting inside Neovim.
func (e *Editor) SetupKeymaps(followKey, backKey string) error {
	if err := e.client.RegisterHandler("notelink:follow", func(args ...interface{}) {
		e.send(FollowEvent{})
	}); err != nil {
		return err
	}
	if err := e.client.RegisterHandler("notelink:back", func(args ...interface{}) {
		e.send(BackEvent{})
	}); err != nil {
		return err
	}
	if err := e.client.Subscribe("notelink:follow"); err != nil {
		return err
	}
	if err := e.client.Subscribe("notelink:back"); err != nil {
		return err
	}

	cid := e.client.ChannelID()
	lua := fmt.Sprintf(`
local chan = %d
local follow_key, back_key = ...

local function map(buf)
  vim.keymap.set('n', follow_key, function()
    vim.rpcnotify(chan, 'notelink:follow')
  end, {buffer=buf, noremap=true, desc='Follow or create wiki link'})
  vim.keymap.set('n', back_key, function()
    vim.rpcnotify(chan, 'notelink:back')
  end, {buffer=buf, noremap=true, desc='Go back to previous note'})
end

vim.api.nvim_create_augroup('NotelinkKeymaps', {clear=true})
vim.api.nvim_create_autocmd('FileType', {
  group = 'NotelinkKeymaps',
  pattern = 'markdown',
  callback = function(args) map(args.buf) end,
})

-- Map buffers that were already open before the sidecar attached.
for _, buf in ipairs(vim.api.nvim_list_bufs()) do
  if vim.bo[buf].filetype == 'markdown' then
    map(buf)
  end
end
`, cid)

	return e.client.ExecLua(lua, nil, followKey, backKey)
}

// SetupWriteNotify installs an autocmd that notifies the sidecar after a
// buffer is written, so the index stays current.
func (e *Editor) SetupWriteNotify() error {
	if err := e.client.RegisterHandler("notelink:buf-written", func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		path, ok := args[0].(string)
		if !ok || path == "" {
			return
		}
		e.send(BufWrittenEvent{Path: path})
	}); err != nil {
		return err
	}
	if err := e.client.Subscribe("notelink:buf-written"); err != nil {
		return err
	}

	cid := e.client.ChannelID()
	lua := fmt.Sprintf(`
vim.api.nvim_create_augroup('NotelinkBufWrite', {clear=true})
vim.api.nvim_create_autocmd('BufWritePost', {
  group = 'NotelinkBufWrite',
  callback = function(args)
    -- args.file is the absolute path, empty for unnamed buffers.
    if args == nil or args.file == nil or args.file == '' then
      return
    end
    vim.rpcnotify(%d, 'notelink:buf-written', args.file)
  end,
})
`, cid)
	return e.client.ExecLua(lua, nil)
}

// SetupQuitNotify installs an autocmd that notifies the sidecar when
// Neovim exits, so the event loop can stop instead of waiting on a dead
// connection.
func (e *Editor) SetupQuitNotify() error {
	if err := e.client.RegisterHandler("notelink:quit", func(args ...interface{}) {
		e.send(QuitEvent{})
	}); err != nil {
		return err
	}
	if err := e.client.Subscribe("notelink:quit"); err != nil {
		return err
	}

	cid := e.client.ChannelID()
	lua := fmt.Sprintf(`
vim.api.nvim_create_augroup('NotelinkQuit', {clear=true})
vim.api.nvim_create_autocmd('VimLeavePre', {
  group = 'NotelinkQuit',
  callback = function()
    vim.rpcnotify(%d, 'notelink:quit')
  end,
})
`, cid)
	return e.client.ExecLua(lua, nil)
}

// BufferName returns the current buffer's name. May be empty or a
// scheme-prefixed virtual name.
func (e *Editor) BufferName() (string, error) {
	buf, err := e.client.CurrentBuffer()
	if err != nil {
		return "", err
	}
	return e.client.BufferName(buf)
}

// CurrentLine returns the text of the line under the cursor.
func (e *Editor) CurrentLine() (string, error) {
	line, err := e.client.CurrentLine()
	if err != nil {
		return "", err
	}
	return string(line), nil
}

// CursorPosition returns the current cursor position as (line, col).
// Line is 1-based, col is 0-based (matching Neovim convention).
func (e *Editor) CursorPosition() (int, int, error) {
	var pos [2]int
	err := e.client.ExecLua("return vim.api.nvim_win_get_cursor(0)", &pos)
	if err != nil {
		return 0, 0, err
	}
	return pos[0], pos[1], nil
}

// SetCursor sets the current window cursor position.
// Line is 1-based, col is 0-based.
func (e *Editor) SetCursor(line, col int) error {
	return e.client.ExecLua("vim.api.nvim_win_set_cursor(0, {...})", nil, line, col)
}

// OpenFile opens a file in the current window.
func (e *Editor) OpenFile(path string) error {
	return e.client.ExecLua("vim.cmd('edit ' .. vim.fn.fnameescape(...))", nil, path)
}

// AbsPath expands a buffer name to an absolute path using Neovim's own
// notion of the working directory.
func (e *Editor) AbsPath(name string) (string, error) {
	var abs string
	err := e.client.ExecLua("return vim.fn.fnamemodify(..., ':p')", &abs, name)
	return abs, err
}

// SearchHeading moves the cursor to the first heading matching text,
// searching from the top of the buffer. Used as a fallback when the
// index has no line for the heading.
func (e *Editor) SearchHeading(text string) error {
	return e.client.ExecLua(`
local text = ...
local pattern = [[\v^#+\s*\V]] .. vim.fn.escape(text, [[\]])
vim.api.nvim_win_set_cursor(0, {1, 0})
vim.fn.search(pattern, 'c')
`, nil, text)
}

// Notify shows a user-facing notification at the given severity.
func (e *Editor) Notify(msg string, level Severity) error {
	return e.client.ExecLua("vim.notify(select(1, ...), select(2, ...))", nil, msg, int(level))
}

// Close closes the RPC connection.
func (e *Editor) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
