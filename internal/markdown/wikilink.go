package markdown

import (
	"bufio"
	"bytes"
	"strings"
)

// Ref is the parsed inner text of a wiki link: a note title and an
// optional heading fragment ([[title#heading]]).
type Ref struct {
	Title   string
	Heading string
}

// WikiLink is a wiki link found in note content.
type WikiLink struct {
	Ref
	Line int // 1-based line number
	Col  int // 0-based byte column of the opening [[
}

// LinkAt returns the trimmed inner text of the innermost [[...]] span
// enclosing the cursor, scanning outward from the cursor in both
// directions. col is a 0-based byte offset (Neovim convention); a cursor
// sitting on any of the bracket characters counts as inside the span.
// Returns false when no span encloses the cursor or the span is empty.
func LinkAt(line string, col int) (string, bool) {
	if col < 0 {
		return "", false
	}
	if col > len(line) {
		col = len(line)
	}

	// Nearest [[ starting at or before the cursor. The +2 window lets a
	// cursor on either opening bracket still find its own pair.
	bound := col + 2
	if bound > len(line) {
		bound = len(line)
	}
	open := strings.LastIndex(line[:bound], "[[")
	if open == -1 {
		return "", false
	}
	inner := open + 2

	// A complete ]] between the opening pair and the cursor means the
	// cursor sits past this span, not inside it.
	if col > inner && strings.Contains(line[inner:col], "]]") {
		return "", false
	}

	// First ]] at or after the cursor. Start one byte early so a cursor on
	// the second closing bracket still matches its own pair.
	from := col - 1
	if from < inner {
		from = inner
	}
	end := strings.Index(line[from:], "]]")
	if end == -1 {
		return "", false
	}
	end += from

	text := strings.TrimSpace(line[inner:end])
	if text == "" {
		return "", false
	}
	return text, true
}

// ParseRef splits wiki link inner text into a title and optional heading.
// Only the first # delimits; later # characters belong to the heading.
// A bare trailing # ([[note#]]) yields no heading.
func ParseRef(text string) Ref {
	if hash := strings.Index(text, "#"); hash > 0 {
		if heading := text[hash+1:]; heading != "" {
			return Ref{Title: text[:hash], Heading: heading}
		}
	}
	return Ref{Title: strings.TrimSuffix(text, "#")}
}

// ExtractWikiLinks finds all [[wiki links]] in note content, skipping
// YAML frontmatter. An Obsidian-style |alias suffix is dropped.
func ExtractWikiLinks(content []byte) []WikiLink {
	var links []WikiLink
	scanner := bufio.NewScanner(bytes.NewReader(content))

	inFrontmatter := false
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		if lineNum == 1 && strings.TrimSpace(line) == "---" {
			inFrontmatter = true
			continue
		}
		if inFrontmatter {
			if strings.TrimSpace(line) == "---" {
				inFrontmatter = false
			}
			continue
		}

		col := 0
		for {
			idx := strings.Index(line[col:], "[[")
			if idx == -1 {
				break
			}
			start := col + idx + 2

			end := strings.Index(line[start:], "]]")
			if end == -1 {
				break
			}

			inner := line[start : start+end]
			if pipe := strings.Index(inner, "|"); pipe != -1 {
				inner = inner[:pipe]
			}
			inner = strings.TrimSpace(inner)

			if inner != "" {
				ref := ParseRef(inner)
				ref.Title = strings.TrimSpace(ref.Title)
				ref.Heading = strings.TrimSpace(ref.Heading)
				links = append(links, WikiLink{
					Ref:  ref,
					Line: lineNum,
					Col:  col + idx,
				})
			}
			col = start + end + 2
		}
	}

	return links
}

// ResolveTarget maps a wiki link title to its note filename:
// "my note" -> "my note.md". Titles already carrying the extension
// keep it.
func ResolveTarget(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	if strings.HasSuffix(title, ".md") {
		return title
	}
	return title + ".md"
}
