package notebook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTemplate is used when the notebook defines no templates.
const DefaultTemplate = `---
title: {{title}}
id: {{id}}
date: {{date}}
---

# {{title}}

`

// Template is a named note template from <root>/.notelink/templates.
type Template struct {
	Name    string
	Path    string
	Content string
}

// LoadTemplates loads all templates from the notebook's templates directory.
func (nb *Notebook) LoadTemplates() ([]Template, error) {
	dir := nb.MarkerPath("templates")

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var templates []Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}

		templates = append(templates, Template{
			Name:    strings.TrimSuffix(entry.Name(), ".md"),
			Path:    path,
			Content: string(content),
		})
	}

	return templates, nil
}

// lookupTemplate returns the content of the named template, or the
// built-in default for an empty name.
func (nb *Notebook) lookupTemplate(name string) (string, error) {
	if name == "" {
		return DefaultTemplate, nil
	}

	templates, err := nb.LoadTemplates()
	if err != nil {
		return "", fmt.Errorf("load templates: %w", err)
	}
	for _, t := range templates {
		if t.Name == name {
			return t.Content, nil
		}
	}
	return "", fmt.Errorf("template %q not found", name)
}

// ExpandTemplate expands template variables in content.
// Variables:
//
//	{{title}}     - Note title
//	{{slug}}      - Slugified title
//	{{id}}        - Short random note ID
//	{{date}}      - Current date (YYYY-MM-DD)
//	{{datetime}}  - Current datetime (YYYY-MM-DD HH:MM:SS)
//	{{time}}      - Current time (HH:MM:SS)
//
// extra entries expand as {{key}} and win over the built-ins.
func ExpandTemplate(content, title string, extra map[string]string) string {
	now := time.Now()

	replacements := map[string]string{
		"title":    title,
		"slug":     Slugify(title),
		"id":       NewNoteID(),
		"date":     now.Format("2006-01-02"),
		"datetime": now.Format("2006-01-02 15:04:05"),
		"time":     now.Format("15:04:05"),
	}
	for k, v := range extra {
		replacements[k] = v
	}

	result := content
	for key, value := range replacements {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return result
}
