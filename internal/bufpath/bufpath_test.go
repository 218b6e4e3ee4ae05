package bufpath

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{
			name:   "oil overlay",
			input:  "oil:///Users/foo/notes/",
			want:   "/Users/foo/notes/",
			wantOK: true,
		},
		{
			name:   "fugitive overlay",
			input:  "fugitive:///Users/foo/.git//abc/f.md",
			want:   "/Users/foo/.git//abc/f.md",
			wantOK: true,
		},
		{
			name:   "scp remote",
			input:  "scp://host/path/file.md",
			wantOK: false,
		},
		{
			name:   "oil-ssh remote",
			input:  "oil-ssh://host/notes/",
			wantOK: false,
		},
		{
			name:   "plain absolute path",
			input:  "/home/user/notes/todo.md",
			want:   "/home/user/notes/todo.md",
			wantOK: true,
		},
		{
			name:   "plain relative path",
			input:  "notes/todo.md",
			want:   "notes/todo.md",
			wantOK: true,
		},
		{
			name:   "empty name",
			input:  "",
			wantOK: false,
		},
		{
			name:   "colon without scheme",
			input:  "c:notes.md",
			want:   "c:notes.md",
			wantOK: true,
		},
		{
			name:   "scheme with digits and plus",
			input:  "tar+gz:///tmp/archive/file.md",
			want:   "/tmp/archive/file.md",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
