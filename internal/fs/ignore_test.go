package fs

import (
	"testing"
	"testing/fstest"
)

func TestParseIgnoreRule(t *testing.T) {
	tests := []struct {
		line   string
		want   ignoreRule
		wantOK bool
	}{
		{line: "*.log", want: ignoreRule{glob: "*.log"}, wantOK: true},
		{line: "  *.log  ", want: ignoreRule{glob: "*.log"}, wantOK: true},
		{line: "/notes", want: ignoreRule{glob: "notes", anchored: true}, wantOK: true},
		{line: "build/out", want: ignoreRule{glob: "build/out", anchored: true}, wantOK: true},
		{line: "tmp/", want: ignoreRule{glob: "tmp", dirOnly: true}, wantOK: true},
		{line: "!keep.log", want: ignoreRule{glob: "keep.log", negate: true}, wantOK: true},
		{line: "!/docs/", want: ignoreRule{glob: "docs", anchored: true, dirOnly: true, negate: true}, wantOK: true},
		{line: ""},
		{line: "# comment"},
		{line: "/"},
		{line: "!"},
		{line: "[unclosed"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := parseIgnoreRule(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("parseIgnoreRule(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("parseIgnoreRule(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestIgnoreMatcher_Match(t *testing.T) {
	tests := []struct {
		name  string
		rules []string
		path  string
		isDir bool
		want  bool
	}{
		{name: "basename glob at root", rules: []string{"*.log"}, path: "app.log", want: true},
		{name: "basename glob at depth", rules: []string{"*.log"}, path: "sub/deep/app.log", want: true},
		{name: "basename glob other extension", rules: []string{"*.log"}, path: "app.txt"},
		{name: "question mark", rules: []string{"?.txt"}, path: "a.txt", want: true},
		{name: "question mark is one rune", rules: []string{"?.txt"}, path: "ab.txt"},
		{name: "character class", rules: []string{"*.[oa]"}, path: "lib/main.o", want: true},
		{name: "anchored by leading slash", rules: []string{"/notes"}, path: "notes", want: true},
		{name: "leading slash does not match deeper", rules: []string{"/notes"}, path: "docs/notes"},
		{name: "inner slash matches full path", rules: []string{"build/*.o"}, path: "build/main.o", want: true},
		{name: "inner slash wrong parent", rules: []string{"build/*.o"}, path: "src/main.o"},
		{name: "double star spans directories", rules: []string{"docs/**/draft.md"}, path: "docs/a/b/draft.md", want: true},
		{name: "double star spans zero directories", rules: []string{"docs/**/draft.md"}, path: "docs/draft.md", want: true},
		{name: "leading double star matches any depth", rules: []string{"**/cache"}, path: "a/b/cache", isDir: true, want: true},
		{name: "trailing double star matches contents", rules: []string{"vendor/**"}, path: "vendor/x/y.go", want: true},
		{name: "double star keeps the prefix", rules: []string{"docs/**/draft.md"}, path: "src/draft.md"},
		{name: "dir rule matches directory", rules: []string{"node_modules/"}, path: "web/node_modules", isDir: true, want: true},
		{name: "dir rule skips file of same name", rules: []string{"node_modules/"}, path: "web/node_modules"},
		{name: "negation re-includes", rules: []string{"*.log", "!keep.log"}, path: "keep.log"},
		{name: "negation leaves others ignored", rules: []string{"*.log", "!keep.log"}, path: "drop.log", want: true},
		{name: "last rule wins", rules: []string{"!keep.log", "*.log"}, path: "keep.log", want: true},
		{name: "malformed rule dropped", rules: []string{"[", "*.tmp"}, path: "data.tmp", want: true},
		{name: "no rules", path: "anything.txt"},
		{name: "empty path", rules: []string{"*"}, path: ""},
		{name: "root path", rules: []string{"*"}, path: ".", isDir: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewIgnoreMatcher(tt.rules)
			if got := m.Match(tt.path, tt.isDir); got != tt.want {
				t.Errorf("Match(%q, %v) = %v, want %v", tt.path, tt.isDir, got, tt.want)
			}
		})
	}
}

func TestParseIgnoreFile(t *testing.T) {
	t.Run("returns raw lines", func(t *testing.T) {
		t.Parallel()
		fsys := fstest.MapFS{
			".snapignore": {Data: []byte("*.log\r\n# comment\n\n!keep.log\ntmp/\n")},
		}

		lines, err := ParseIgnoreFile(fsys, ".snapignore")
		if err != nil {
			t.Fatalf("ParseIgnoreFile() error = %v", err)
		}
		if len(lines) != 5 || lines[0] != "*.log" {
			t.Fatalf("lines = %q, want 5 raw lines starting with *.log", lines)
		}

		if n := NewIgnoreMatcher(lines).Len(); n != 3 {
			t.Errorf("Len() = %d, want 3", n)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		lines, err := ParseIgnoreFile(fstest.MapFS{}, ".snapignore")
		if err != nil {
			t.Fatalf("ParseIgnoreFile() error = %v", err)
		}
		if lines != nil {
			t.Errorf("lines = %v, want nil", lines)
		}
	})
}
