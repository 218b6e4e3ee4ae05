// Package bufpath normalizes Neovim buffer names into filesystem paths.
//
// Overlay plugins (oil.nvim, fugitive, archive browsers) name their
// buffers with URI-style scheme prefixes wrapping a real local path.
// Remote-editing schemes (scp, oil-ssh) put a hostname after the scheme
// instead; those buffers have no local path at all.
package bufpath

import (
	"regexp"
	"strings"
)

// schemePattern matches a generic URI scheme prefix per RFC 3986:
// one letter, then letters/digits/+/./-, then ://.
var schemePattern = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9+.-]*)://(.*)$`)

// Resolve normalizes a buffer name into a local filesystem path.
//
// Scheme-prefixed names keep only the remainder, and only when it is an
// absolute path; a remainder without a leading slash encodes a remote
// host and resolves to nothing. Plain names pass through unchanged —
// the caller absolutizes them via the editor.
//
// The leading-slash heuristic cannot tell a local overlay path from a
// remote scheme whose paths happen to start with /; such schemes are
// misclassified as local.
func Resolve(name string) (string, bool) {
	if name == "" {
		return "", false
	}

	m := schemePattern.FindStringSubmatch(name)
	if m == nil {
		return name, true
	}

	rest := m[2]
	if !strings.HasPrefix(rest, "/") {
		return "", false
	}
	return rest, true
}
