package markdown

import (
	"bufio"
	"bytes"
	"strings"
)

// Heading is an ATX heading in a note.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-based line number
}

// ExtractHeadings extracts all ATX headings from note content,
// skipping YAML frontmatter.
func ExtractHeadings(content []byte) []Heading {
	var headings []Heading
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

		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "#") {
			continue
		}

		level := 0
		for _, ch := range trimmed {
			if ch != '#' {
				break
			}
			level++
		}
		if level > 6 {
			continue
		}

		text := strings.TrimSpace(trimmed[level:])
		text = strings.TrimSpace(strings.TrimRight(text, "# "))
		if text == "" {
			continue
		}

		headings = append(headings, Heading{
			Level: level,
			Text:  text,
			Line:  lineNum,
		})
	}

	return headings
}
