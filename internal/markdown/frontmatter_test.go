package markdown

import "testing"

func TestExtractFrontmatter(t *testing.T) {
	input := `---
title: "My Note"
id: a1b2
tags: [zettel, draft]
custom: value
---
# Body
`
	fm := ExtractFrontmatter([]byte(input))
	if fm == nil {
		t.Fatal("expected frontmatter, got nil")
	}
	if fm.Title != "My Note" {
		t.Errorf("title: got %q, want %q", fm.Title, "My Note")
	}
	if fm.ID != "a1b2" {
		t.Errorf("id: got %q, want %q", fm.ID, "a1b2")
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "zettel" || fm.Tags[1] != "draft" {
		t.Errorf("tags: got %v", fm.Tags)
	}
	if fm.Raw["custom"] != "value" {
		t.Errorf("raw custom: got %q", fm.Raw["custom"])
	}
	if fm.EndLine != 6 {
		t.Errorf("end line: got %d, want 6", fm.EndLine)
	}
}

func TestExtractFrontmatterMissing(t *testing.T) {
	if fm := ExtractFrontmatter([]byte("# Just a heading\n")); fm != nil {
		t.Errorf("expected nil, got %+v", fm)
	}
}

func TestExtractFrontmatterUnclosed(t *testing.T) {
	if fm := ExtractFrontmatter([]byte("---\ntitle: broken\n")); fm != nil {
		t.Errorf("expected nil for unclosed frontmatter, got %+v", fm)
	}
}
