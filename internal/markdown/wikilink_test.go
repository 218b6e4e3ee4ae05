package markdown

import "testing"

func TestLinkAt(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want string // "" if no link expected
	}{
		{
			name: "cursor on link text",
			line: "See [[my note]] for details",
			col:  8,
			want: "my note",
		},
		{
			name: "cursor on opening brackets",
			line: "See [[my note]] for details",
			col:  4,
			want: "my note",
		},
		{
			name: "cursor on second opening bracket",
			line: "See [[my note]] for details",
			col:  5,
			want: "my note",
		},
		{
			name: "cursor on first closing bracket",
			line: "See [[my note]] for details",
			col:  13,
			want: "my note",
		},
		{
			name: "cursor on second closing bracket",
			line: "See [[my note]] for details",
			col:  14,
			want: "my note",
		},
		{
			name: "cursor before link",
			line: "See [[my note]] for details",
			col:  3,
			want: "",
		},
		{
			name: "cursor after link",
			line: "See [[my note]] for details",
			col:  15,
			want: "",
		},
		{
			name: "cursor in first of two spans",
			line: "[[first]] and [[second]]",
			col:  4,
			want: "first",
		},
		{
			name: "cursor in second of two spans",
			line: "[[first]] and [[second]]",
			col:  18,
			want: "second",
		},
		{
			name: "cursor in gap between spans",
			line: "[[first]] and [[second]]",
			col:  11,
			want: "",
		},
		{
			name: "unclosed pair",
			line: "See [[my note for details",
			col:  8,
			want: "",
		},
		{
			name: "whitespace only span",
			line: "x [[ ]] y",
			col:  4,
			want: "",
		},
		{
			name: "empty span",
			line: "x [[]] y",
			col:  3,
			want: "",
		},
		{
			name: "inner text trimmed",
			line: "a [[  spaced  ]] b",
			col:  7,
			want: "spaced",
		},
		{
			name: "heading fragment kept in span text",
			line: "see [[note#section]]",
			col:  8,
			want: "note#section",
		},
		{
			name: "no links on line",
			line: "no links here",
			col:  5,
			want: "",
		},
		{
			name: "cursor at end of line",
			line: "ends with [[note]]",
			col:  17,
			want: "note",
		},
		{
			name: "cursor past end of line",
			line: "short",
			col:  40,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LinkAt(tt.line, tt.col)
			if tt.want == "" {
				if ok {
					t.Errorf("expected no link, got %q", got)
				}
				return
			}
			if !ok {
				t.Fatalf("expected %q, got none", tt.want)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseRef(t *testing.T) {
	tests := []struct {
		input       string
		wantTitle   string
		wantHeading string
	}{
		{"new note", "new note", ""},
		{"note#heading", "note", "heading"},
		{"a#b#c", "a", "b#c"},
		{"note#", "note", ""},
		{"#heading", "#heading", ""},
		{"#", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseRef(tt.input)
			if got.Title != tt.wantTitle {
				t.Errorf("title: got %q, want %q", got.Title, tt.wantTitle)
			}
			if got.Heading != tt.wantHeading {
				t.Errorf("heading: got %q, want %q", got.Heading, tt.wantHeading)
			}
		})
	}
}

func TestExtractWikiLinks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []WikiLink
	}{
		{
			name:  "simple link",
			input: "See [[my note]] for details",
			want:  []WikiLink{{Ref: Ref{Title: "my note"}, Line: 1, Col: 4}},
		},
		{
			name:  "link with heading",
			input: "Refer to [[note#section]]",
			want:  []WikiLink{{Ref: Ref{Title: "note", Heading: "section"}, Line: 1, Col: 9}},
		},
		{
			name:  "alias dropped",
			input: "Click [[note|display text]]",
			want:  []WikiLink{{Ref: Ref{Title: "note"}, Line: 1, Col: 6}},
		},
		{
			name:  "multiple links",
			input: "Link [[a]] and [[b]]",
			want: []WikiLink{
				{Ref: Ref{Title: "a"}, Line: 1, Col: 5},
				{Ref: Ref{Title: "b"}, Line: 1, Col: 15},
			},
		},
		{
			name:  "no links",
			input: "No links here",
			want:  nil,
		},
		{
			name:  "empty span skipped",
			input: "Empty [[]] then [[real]]",
			want:  []WikiLink{{Ref: Ref{Title: "real"}, Line: 1, Col: 16}},
		},
		{
			name:  "skip frontmatter",
			input: "---\ntitle: test\n---\n[[real link]]",
			want:  []WikiLink{{Ref: Ref{Title: "real link"}, Line: 4, Col: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractWikiLinks([]byte(tt.input))
			if len(got) != len(tt.want) {
				t.Fatalf("got %d links, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Title != tt.want[i].Title {
					t.Errorf("[%d] title: got %q, want %q", i, got[i].Title, tt.want[i].Title)
				}
				if got[i].Heading != tt.want[i].Heading {
					t.Errorf("[%d] heading: got %q, want %q", i, got[i].Heading, tt.want[i].Heading)
				}
				if got[i].Line != tt.want[i].Line || got[i].Col != tt.want[i].Col {
					t.Errorf("[%d] position: got (%d,%d), want (%d,%d)",
						i, got[i].Line, got[i].Col, tt.want[i].Line, tt.want[i].Col)
				}
			}
		})
	}
}

func TestResolveTarget(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"note", "note.md"},
		{"note.md", "note.md"},
		{"folder/note", "folder/note.md"},
		{"  padded  ", "padded.md"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ResolveTarget(tt.input); got != tt.want {
			t.Errorf("ResolveTarget(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
