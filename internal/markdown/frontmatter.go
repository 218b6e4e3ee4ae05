package markdown

import (
	"bufio"
	"bytes"
	"strings"
)

// Frontmatter holds the fields notelink cares about from a note's YAML
// frontmatter. Raw keeps every scalar key for template/extra lookups.
type Frontmatter struct {
	Title   string
	ID      string
	Tags    []string
	Raw     map[string]string
	EndLine int // line number where frontmatter ends (1-based)
}

// ExtractFrontmatter parses --- delimited YAML frontmatter.
// Returns nil when the content has no (or unclosed) frontmatter.
func ExtractFrontmatter(content []byte) *Frontmatter {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil
	}

	fm := &Frontmatter{
		Raw: make(map[string]string),
	}

	lineNum := 1
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if strings.TrimSpace(line) == "---" {
			fm.EndLine = lineNum
			break
		}

		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.TrimSpace(val)

		fm.Raw[key] = val

		switch key {
		case "title":
			fm.Title = strings.Trim(val, `"'`)
		case "id":
			fm.ID = val
		case "tags":
			val = strings.Trim(val, "[]")
			for _, tag := range strings.Split(val, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					fm.Tags = append(fm.Tags, tag)
				}
			}
		}
	}

	if fm.EndLine == 0 {
		return nil // unclosed frontmatter
	}

	return fm
}
